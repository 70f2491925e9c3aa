package domain

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Grade string

const (
	GradeSahih   Grade = "Sahih"
	GradeHasan   Grade = "Hasan"
	GradeDaif    Grade = "Da'if"
	GradeMawdu   Grade = "Mawdu'"
	GradeUnknown Grade = "Unknown"
)

var ErrInvalidGrade = errors.New("invalid grade")

var ErrChapterCollectionMismatch = errors.New("chapter does not belong to the hadith's collection")

// ParseGrade accepts the canonical spelling only.
func ParseGrade(s string) (Grade, error) {
	switch g := Grade(s); g {
	case GradeSahih, GradeHasan, GradeDaif, GradeMawdu, GradeUnknown:
		return g, nil
	}
	return "", ErrInvalidGrade
}

type Hadith struct {
	ID           string            `json:"id" gorm:"primaryKey;size:64"`
	CollectionID string            `json:"collection_id" gorm:"not null;size:64;index;uniqueIndex:idx_hadiths_collection_number"`
	ChapterID    string            `json:"chapter_id" gorm:"not null;size:64;index"`
	HadithNumber int               `json:"hadith_number" gorm:"not null;uniqueIndex:idx_hadiths_collection_number"`
	ArabicText   string            `json:"arabic_text" gorm:"type:text;not null"`
	EnglishText  string            `json:"english_text" gorm:"type:text;not null"`
	Narrator     string            `json:"narrator" gorm:"not null"`
	Grade        Grade             `json:"grade" gorm:"not null;size:16;index"`
	GradeDetails *string           `json:"grade_details,omitempty" gorm:"type:text"`
	Refs         datatypes.JSONMap `json:"refs,omitempty"`
	SourceURL    *string           `json:"source_url,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`

	Collection *Collection `json:"-" gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE"`
	Chapter    *Chapter    `json:"-" gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE"`
	Tags       []HadithTag `json:"-" gorm:"foreignKey:HadithID;constraint:OnDelete:CASCADE"`
}

func (Hadith) TableName() string {
	return "hadiths"
}

// BeforeSave rejects a hadith whose chapter lives in another collection.
func (h *Hadith) BeforeSave(tx *gorm.DB) error {
	if _, err := ParseGrade(string(h.Grade)); err != nil {
		return fmt.Errorf("hadith %s: %w", h.ID, err)
	}

	var owner string
	err := tx.Session(&gorm.Session{NewDB: true}).
		Table("chapters").
		Select("collection_id").
		Where("id = ?", h.ChapterID).
		Scan(&owner).Error
	if err != nil {
		return err
	}
	if owner != h.CollectionID {
		return fmt.Errorf("hadith %s: %w", h.ID, ErrChapterCollectionMismatch)
	}
	return nil
}

// HadithTag stores one tag of a hadith. Matching is exact and case-sensitive.
type HadithTag struct {
	HadithID string `json:"hadith_id" gorm:"primaryKey;size:64"`
	Tag      string `json:"tag" gorm:"primaryKey;size:128;index"`
}

func (HadithTag) TableName() string {
	return "hadith_tags"
}

// HadithDetails is a hadith joined with its collection and chapter, plus
// the viewer-specific favorite flag.
type HadithDetails struct {
	ID           string            `json:"id"`
	CollectionID string            `json:"collection_id"`
	ChapterID    string            `json:"chapter_id"`
	HadithNumber int               `json:"hadith_number"`
	ArabicText   string            `json:"arabic_text"`
	EnglishText  string            `json:"english_text"`
	Narrator     string            `json:"narrator"`
	Grade        Grade             `json:"grade"`
	GradeDetails *string           `json:"grade_details"`
	Refs         datatypes.JSONMap `json:"refs"`
	Tags         []string          `json:"tags" gorm:"-"`
	SourceURL    *string           `json:"source_url"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`

	CollectionNameEn string `json:"collection_name_en"`
	CollectionNameAr string `json:"collection_name_ar"`
	ChapterTitleEn   string `json:"chapter_title_en"`
	ChapterTitleAr   string `json:"chapter_title_ar"`
	ChapterNumber    int    `json:"chapter_number"`
	IsFavorite       bool   `json:"is_favorite"`
}
