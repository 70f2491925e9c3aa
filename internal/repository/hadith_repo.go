package repository

import (
	"context"
	"strings"

	"hadithapi/internal/database"
	"hadithapi/internal/domain"
	"hadithapi/internal/selection"

	"gorm.io/gorm"
)

const hadithDetailsColumns = `hadiths.id, hadiths.collection_id, hadiths.chapter_id, hadiths.hadith_number,
hadiths.arabic_text, hadiths.english_text, hadiths.narrator, hadiths.grade, hadiths.grade_details,
hadiths.refs, hadiths.source_url, hadiths.created_at, hadiths.updated_at,
collections.name_en AS collection_name_en, collections.name_ar AS collection_name_ar,
chapters.title_en AS chapter_title_en, chapters.title_ar AS chapter_title_ar,
chapters.chapter_number AS chapter_number,
EXISTS (SELECT 1 FROM favorites f WHERE f.hadith_id = hadiths.id AND f.user_id = ?) AS is_favorite`

// HadithRepository читает хадисы вместе с коллекцией и главой.
// Реализует selection.Store.
type HadithRepository struct {
	db *gorm.DB
}

func NewHadithRepository(db *gorm.DB) *HadithRepository {
	return &HadithRepository{db: db}
}

var _ selection.Store = (*HadithRepository)(nil)

// Snapshot выполняет fn в одной read-only транзакции, чтобы count и выборка
// видели одни и те же данные.
func (r *HadithRepository) Snapshot(ctx context.Context, fn func(selection.Reader) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&hadithReader{db: tx})
	}, database.SnapshotTxOptions(r.db))
}

// GetByID возвращает хадис с деталями. viewerID = 0 для анонимного запроса.
func (r *HadithRepository) GetByID(ctx context.Context, id string, viewerID int64) (*domain.HadithDetails, error) {
	db := r.db.WithContext(ctx)

	var rows []domain.HadithDetails
	err := joinedHadiths(db).
		Select(hadithDetailsColumns, viewerID).
		Where("hadiths.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	if err := attachTags(db, rows); err != nil {
		return nil, err
	}
	return &rows[0], nil
}

func (r *HadithRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Hadith{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

type hadithReader struct {
	db *gorm.DB
}

func (r *hadithReader) Count(ctx context.Context, f selection.Filter) (int64, error) {
	var count int64
	err := applyFilter(joinedHadiths(r.db.WithContext(ctx)), f).Count(&count).Error
	return count, err
}

func (r *hadithReader) Slice(ctx context.Context, f selection.Filter, offset, limit int) ([]domain.HadithDetails, error) {
	db := r.db.WithContext(ctx)

	rows := []domain.HadithDetails{}
	err := applyFilter(joinedHadiths(db), f).
		Select(hadithDetailsColumns, f.ViewerID).
		Order("hadiths.hadith_number ASC, hadiths.id ASC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	if err := attachTags(db, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func joinedHadiths(db *gorm.DB) *gorm.DB {
	return db.Table("hadiths").
		Joins("JOIN collections ON collections.id = hadiths.collection_id").
		Joins("JOIN chapters ON chapters.id = hadiths.chapter_id")
}

func applyFilter(q *gorm.DB, f selection.Filter) *gorm.DB {
	if f.CollectionID != "" {
		q = q.Where("hadiths.collection_id = ?", f.CollectionID)
	}
	if f.ChapterID != "" {
		q = q.Where("hadiths.chapter_id = ?", f.ChapterID)
	}
	if len(f.Grades) > 0 {
		grades := make([]string, 0, len(f.Grades))
		for _, g := range f.Grades {
			grades = append(grades, string(g))
		}
		q = q.Where("hadiths.grade IN ?", grades)
	}
	if f.Narrator != "" {
		q = q.Where(`LOWER(hadiths.narrator) LIKE ? ESCAPE '\'`, containsPattern(f.Narrator))
	}
	if f.Query != "" {
		p := containsPattern(f.Query)
		q = q.Where(`(LOWER(hadiths.english_text) LIKE ? ESCAPE '\'`+
			` OR LOWER(hadiths.arabic_text) LIKE ? ESCAPE '\'`+
			` OR LOWER(hadiths.narrator) LIKE ? ESCAPE '\'`+
			` OR LOWER(collections.name_en) LIKE ? ESCAPE '\'`+
			` OR LOWER(chapters.title_en) LIKE ? ESCAPE '\')`, p, p, p, p, p)
	}
	// Каждый тег должен присутствовать (AND), сравнение точное.
	for _, tag := range f.Tags {
		q = q.Where("EXISTS (SELECT 1 FROM hadith_tags ht WHERE ht.hadith_id = hadiths.id AND ht.tag = ?)", tag)
	}
	if f.ExcludeFavorites && f.ViewerID != 0 {
		q = q.Where("NOT EXISTS (SELECT 1 FROM favorites f WHERE f.hadith_id = hadiths.id AND f.user_id = ?)", f.ViewerID)
	}
	return q
}

// attachTags заполняет Tags у каждой строки одним запросом.
func attachTags(db *gorm.DB, rows []domain.HadithDetails) error {
	if len(rows) == 0 {
		return nil
	}

	ids := make([]string, 0, len(rows))
	for _, h := range rows {
		ids = append(ids, h.ID)
	}

	var tags []domain.HadithTag
	if err := db.Where("hadith_id IN ?", ids).Order("tag ASC").Find(&tags).Error; err != nil {
		return err
	}

	byHadith := make(map[string][]string, len(rows))
	for _, t := range tags {
		byHadith[t.HadithID] = append(byHadith[t.HadithID], t.Tag)
	}
	for i := range rows {
		rows[i].Tags = byHadith[rows[i].ID]
		if rows[i].Tags == nil {
			rows[i].Tags = []string{}
		}
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
