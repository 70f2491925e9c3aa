// Package testutil builds throwaway SQLite databases with a small fixture
// dataset for package tests.
package testutil

import (
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"hadithapi/internal/config"
	"hadithapi/internal/database"
	"hadithapi/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const Password = "password123"

// NewDB returns a migrated in-memory database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(uuid.NewString(), "-", "")
	dsn := fmt.Sprintf("file:test_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)

	db, err := database.Connect(config.Database{URL: dsn, LogLevel: "silent"}, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func ptr[T any](v T) *T { return &v }

// Seed loads two collections, three chapters and four hadiths. riyad-1 is
// the only Sahih hadith.
func Seed(t *testing.T, db *gorm.DB) {
	t.Helper()

	collections := []domain.Collection{
		{ID: "riyad", NameEn: "Riyad as-Salihin", NameAr: "رياض الصالحين", DescriptionEn: ptr("Gardens of the Righteous")},
		{ID: "bukhari", NameEn: "Sahih al-Bukhari", NameAr: "صحيح البخاري"},
	}
	require.NoError(t, db.Create(&collections).Error)

	chapters := []domain.Chapter{
		{ID: "riyad-1", CollectionID: "riyad", ChapterNumber: 1, TitleEn: "Sincerity", TitleAr: "الإخلاص"},
		{ID: "riyad-2", CollectionID: "riyad", ChapterNumber: 2, TitleEn: "Repentance", TitleAr: "التوبة"},
		{ID: "bukhari-1", CollectionID: "bukhari", ChapterNumber: 1, TitleEn: "Revelation", TitleAr: "بدء الوحي"},
	}
	require.NoError(t, db.Create(&chapters).Error)

	hadiths := []domain.Hadith{
		{
			ID: "riyad-1", CollectionID: "riyad", ChapterID: "riyad-1", HadithNumber: 1,
			ArabicText: "إنما الأعمال بالنيات", EnglishText: "Actions are judged by intentions",
			Narrator: "Umar ibn al-Khattab", Grade: domain.GradeSahih,
			Refs: map[string]any{"bukhari": 1, "muslim": 1907},
			Tags: []domain.HadithTag{{Tag: "intention"}, {Tag: "sincerity"}},
		},
		{
			ID: "riyad-2", CollectionID: "riyad", ChapterID: "riyad-1", HadithNumber: 2,
			ArabicText: "إن الله لا ينظر إلى أجسامكم", EnglishText: "Allah does not look at your bodies",
			Narrator: "Abu Hurairah", Grade: domain.GradeHasan,
			Tags: []domain.HadithTag{{Tag: "sincerity"}, {Tag: "heart"}},
		},
		{
			ID: "riyad-3", CollectionID: "riyad", ChapterID: "riyad-2", HadithNumber: 3,
			ArabicText: "توبوا إلى الله", EnglishText: "Repent to Allah, 100% of your days",
			Narrator: "Anas ibn Malik", Grade: domain.GradeDaif,
			Tags: []domain.HadithTag{{Tag: "repentance"}},
		},
		{
			ID: "bukhari-1", CollectionID: "bukhari", ChapterID: "bukhari-1", HadithNumber: 1,
			ArabicText: "أول ما بدئ به رسول الله", EnglishText: "The commencement of the divine inspiration",
			Narrator: "Aisha", Grade: domain.GradeHasan,
			SourceURL: ptr("https://example.org/bukhari/1"),
		},
	}
	for i := range hadiths {
		require.NoError(t, db.Create(&hadiths[i]).Error)
	}
}

// CreateUser inserts an active user with Password as password.
func CreateUser(t *testing.T, db *gorm.DB, email string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
		Role:         domain.RoleUser,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}
