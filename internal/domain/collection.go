package domain

import "time"

// Collection is a named compilation of hadiths (e.g. "riyad"). The id is a
// stable slug assigned by the import process.
type Collection struct {
	ID            string    `json:"id" gorm:"primaryKey;size:64"`
	NameEn        string    `json:"name_en" gorm:"not null"`
	NameAr        string    `json:"name_ar" gorm:"not null"`
	DescriptionEn *string   `json:"description_en,omitempty"`
	DescriptionAr *string   `json:"description_ar,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Chapters []Chapter `json:"-" gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE"`
}

func (Collection) TableName() string {
	return "collections"
}

// Chapter is a numbered subdivision of one collection.
type Chapter struct {
	ID            string    `json:"id" gorm:"primaryKey;size:64"`
	CollectionID  string    `json:"collection_id" gorm:"not null;size:64;index;uniqueIndex:idx_chapters_collection_number"`
	ChapterNumber int       `json:"chapter_number" gorm:"not null;uniqueIndex:idx_chapters_collection_number"`
	TitleEn       string    `json:"title_en" gorm:"not null"`
	TitleAr       string    `json:"title_ar" gorm:"not null"`
	DescriptionEn *string   `json:"description_en,omitempty"`
	DescriptionAr *string   `json:"description_ar,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Chapter) TableName() string {
	return "chapters"
}
