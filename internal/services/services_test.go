package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"hadron_scholar_backend/internal/database"
	"hadron_scholar_backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory sqlite database migrated to the
// application schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createPaper(t *testing.T, db *gorm.DB, externalID, source, title string, publishedAt time.Time, keywords ...string) *models.Paper {
	t.Helper()

	paper := &models.Paper{
		ExternalID:  externalID,
		Source:      source,
		Title:       title,
		Authors:     "A. Author, B. Author",
		Abstract:    "An abstract.",
		PublishedAt: publishedAt,
		URL:         "https://example.org/" + externalID,
	}
	for _, name := range keywords {
		keyword := models.Keyword{Name: name}
		require.NoError(t, db.Where(models.Keyword{Name: name}).FirstOrCreate(&keyword).Error)
		paper.Keywords = append(paper.Keywords, keyword)
	}
	require.NoError(t, db.Create(paper).Error)
	return paper
}

func createUser(t *testing.T, db *gorm.DB, email string, digestEnabled bool) *models.User {
	t.Helper()

	users := NewUserService(db)
	user, err := users.Register(email, "password123", "password123")
	require.NoError(t, err)
	if digestEnabled {
		require.NoError(t, users.SetDigestEnabled(user.ID, true))
		user.EmailDigestEnabled = true
	}
	return user
}
