package selection

import (
	"context"
	"math/rand/v2"
	"time"

	"hadithapi/internal/domain"
	"hadithapi/internal/pkg/apperror"
	"hadithapi/internal/pkg/pagination"
)

const (
	DateLayout = "2006-01-02"

	// unixEpochOrdinal is the proleptic Gregorian ordinal of 1970-01-01,
	// counting 0001-01-01 as day 1.
	unixEpochOrdinal = 719163

	dailyStream = 0x9e3779b97f4a7c15
)

var (
	ErrNoEligible  = apperror.NotFound("HADITH_NOT_FOUND", "No hadiths found matching the criteria")
	ErrInvalidDate = apperror.BadRequest("INVALID_DATE", "Invalid date format. Use YYYY-MM-DD")
)

type Engine struct {
	store       Store
	dailyGrades []domain.Grade
	int64n      func(n int64) int64
}

type Option func(*Engine)

// WithDailyHasan widens the daily pick from Sahih to Sahih and Hasan.
func WithDailyHasan(include bool) Option {
	return func(e *Engine) {
		if include {
			e.dailyGrades = []domain.Grade{domain.GradeSahih, domain.GradeHasan}
		}
	}
}

// WithRandom replaces the source used by Random. fn must return a value in [0, n).
func WithRandom(fn func(n int64) int64) Option {
	return func(e *Engine) {
		e.int64n = fn
	}
}

func NewEngine(store Store, opts ...Option) *Engine {
	e := &Engine{
		store:       store,
		dailyGrades: []domain.Grade{domain.GradeSahih},
		int64n:      rand.Int64N,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DailyGrades returns the grades eligible for the daily pick.
func (e *Engine) DailyGrades() []domain.Grade {
	return append([]domain.Grade(nil), e.dailyGrades...)
}

// Page returns one page of the filtered result and its metadata. Count and
// fetch share a snapshot.
func (e *Engine) Page(ctx context.Context, f Filter, p pagination.Params) ([]domain.HadithDetails, pagination.Meta, error) {
	items := []domain.HadithDetails{}
	var total int64

	err := e.store.Snapshot(ctx, func(r Reader) error {
		var err error
		total, err = r.Count(ctx, f)
		if err != nil {
			return err
		}
		if int64(p.Offset()) >= total {
			return nil
		}
		rows, err := r.Slice(ctx, f, p.Offset(), p.Limit())
		if err != nil {
			return err
		}
		items = append(items, rows...)
		return nil
	})
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return items, pagination.NewMeta(p, total), nil
}

// Daily picks the hadith for the calendar date of day. The same date over
// the same eligible set always yields the same hadith.
func (e *Engine) Daily(ctx context.Context, day time.Time, viewerID int64) (*domain.HadithDetails, error) {
	rng := rand.New(rand.NewPCG(uint64(DayOrdinal(day)), dailyStream))
	f := Filter{Grades: e.dailyGrades, ViewerID: viewerID}
	return e.pick(ctx, f, rng.Int64N)
}

// Random picks one hadith matching f using process entropy.
func (e *Engine) Random(ctx context.Context, f Filter) (*domain.HadithDetails, error) {
	return e.pick(ctx, f, e.int64n)
}

func (e *Engine) pick(ctx context.Context, f Filter, draw func(n int64) int64) (*domain.HadithDetails, error) {
	var picked *domain.HadithDetails

	err := e.store.Snapshot(ctx, func(r Reader) error {
		count, err := r.Count(ctx, f)
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNoEligible
		}

		rows, err := r.Slice(ctx, f, int(draw(count)), 1)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return ErrNoEligible
		}
		picked = &rows[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return picked, nil
}

// DayOrdinal returns the proleptic Gregorian ordinal of t's calendar date,
// with 0001-01-01 as 1. Only the year, month and day of t are used.
func DayOrdinal(t time.Time) int64 {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return midnight.Unix()/86400 + unixEpochOrdinal
}

// ParseDay parses a YYYY-MM-DD date. An empty string means today in loc.
func ParseDay(s string, now time.Time, loc *time.Location) (time.Time, error) {
	if s == "" {
		if loc == nil {
			loc = time.UTC
		}
		y, m, d := now.In(loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	day, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return day, nil
}
