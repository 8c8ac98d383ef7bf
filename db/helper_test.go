package db

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"libtool/models"
)

// newTestRepo opens a private in-memory SQLite database with the real
// migrations applied. shared cache keeps the pool's connections on one DB.
func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(conn))
	return NewRepo(conn)
}

func seedBook(t *testing.T, r *Repo, count int) *models.Book {
	t.Helper()
	b, err := r.CreateBook(context.Background(), CreateBookInput{
		Name:   "The Master and Margarita",
		Author: "Bulgakov",
		Genre:  "novel",
		Count:  count,
	})
	require.NoError(t, err)
	return b
}

func seedReader(t *testing.T, r *Repo) *models.Reader {
	t.Helper()
	rd, err := r.CreateReader(context.Background(), CreateReaderInput{
		FullName: "Anna Petrova",
		Email:    "anna@example.com",
	})
	require.NoError(t, err)
	return rd
}

func plusDays(t time.Time, days int) time.Time { return t.AddDate(0, 0, days) }
