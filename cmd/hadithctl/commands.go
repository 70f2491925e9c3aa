package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gorm.io/gorm"

	"hadithapi/internal/config"
	"hadithapi/internal/domain"
	"hadithapi/internal/pkg/pagination"
	"hadithapi/internal/repository"
	"hadithapi/internal/selection"
)

type opener func() (*gorm.DB, error)

type app struct {
	cfg  *config.Config
	open opener
	out  io.Writer
	now  func() time.Time

	indent string // "auto" | "always" | "never"
	hasan  bool
}

func newRootCmd(cfg *config.Config, open opener, out io.Writer) *cobra.Command {
	a := &app{cfg: cfg, open: open, out: out, now: time.Now}

	root := &cobra.Command{
		Use:          "hadithctl",
		Short:        "Query the hadith store from the command line",
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&a.indent, "indent", "auto", "indent JSON output: auto, always or never")
	root.PersistentFlags().BoolVar(&a.hasan, "include-hasan", cfg.Daily.IncludeHasan, "widen the daily pick to Sahih and Hasan")

	root.AddCommand(a.dailyCmd(), a.randomCmd(), a.listCmd())
	return root
}

func (a *app) dailyCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Print the hadith of the day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, closeDB, err := a.engine()
			if err != nil {
				return err
			}
			defer closeDB()

			day, err := selection.ParseDay(strings.TrimSpace(date), a.now(), a.location())
			if err != nil {
				return err
			}
			h, err := engine.Daily(cmd.Context(), day, 0)
			if err != nil {
				return err
			}
			return a.print(map[string]any{
				"date":   day.Format(selection.DateLayout),
				"hadith": h,
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default today)")
	return cmd
}

func (a *app) randomCmd() *cobra.Command {
	var collectionID, grade string

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Print a random hadith",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			grades, err := parseGrades(grade)
			if err != nil {
				return err
			}
			engine, closeDB, err := a.engine()
			if err != nil {
				return err
			}
			defer closeDB()

			h, err := engine.Random(cmd.Context(), selection.Filter{
				CollectionID: collectionID,
				Grades:       grades,
			})
			if err != nil {
				return err
			}
			return a.print(h)
		},
	}
	cmd.Flags().StringVar(&collectionID, "collection", "", "collection id")
	cmd.Flags().StringVar(&grade, "grade", "", "Sahih, Hasan, Da'if, Mawdu' or Unknown")
	return cmd
}

func (a *app) listCmd() *cobra.Command {
	var (
		f              selection.Filter
		grade          string
		page, pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List hadiths matching a filter, one page at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := pagination.New(page, pageSize)
			if err != nil {
				return fmt.Errorf("page must be >= 1 and page-size in 1..%d", pagination.MaxPageSize)
			}
			if f.Grades, err = parseGrades(grade); err != nil {
				return err
			}
			engine, closeDB, err := a.engine()
			if err != nil {
				return err
			}
			defer closeDB()

			items, meta, err := engine.Page(cmd.Context(), f, p)
			if err != nil {
				return err
			}
			return a.print(map[string]any{"data": items, "meta": meta})
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&f.Query, "query", "q", "", "substring of text, narrator, collection or chapter")
	flags.StringVar(&f.CollectionID, "collection", "", "collection id")
	flags.StringVar(&f.ChapterID, "chapter", "", "chapter id")
	flags.StringVar(&f.Narrator, "narrator", "", "substring of the narrator")
	flags.StringVar(&grade, "grade", "", "Sahih, Hasan, Da'if, Mawdu' or Unknown")
	flags.StringSliceVar(&f.Tags, "tags", nil, "tags that must all be present")
	flags.IntVar(&page, "page", pagination.DefaultPage, "page number")
	flags.IntVar(&pageSize, "page-size", pagination.DefaultPageSize, "items per page")
	return cmd
}

// engine opens the store; the caller runs the returned func when done.
func (a *app) engine() (*selection.Engine, func(), error) {
	db, err := a.open()
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return selection.NewEngine(repository.NewHadithRepository(db), selection.WithDailyHasan(a.hasan)), closeDB, nil
}

func (a *app) location() *time.Location {
	if a.cfg.Daily.Location != nil {
		return a.cfg.Daily.Location
	}
	return time.UTC
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetEscapeHTML(false)
	if a.pretty() {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func (a *app) pretty() bool {
	switch a.indent {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := a.out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func parseGrades(raw string) ([]domain.Grade, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	g, err := domain.ParseGrade(raw)
	if err != nil {
		return nil, err
	}
	return []domain.Grade{g}, nil
}
