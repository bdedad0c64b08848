package repository

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"noteapp/internal/domain/entity"
	dbinit "noteapp/internal/domain/sqlite"
	"noteapp/internal/utils/uid"
)

func init() {
	uid.Init(1)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// An in-memory database exists per connection; a second pooled
	// connection would see an empty schema.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbinit.Migrate(db))
	return db
}

func makeUser(t *testing.T, db *gorm.DB, email string, createdAt int64) *entity.User {
	t.Helper()

	id := uid.Generate()
	user := &entity.User{
		ID:        id,
		Uid:       fmt.Sprintf("sub-%d", id),
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, NewUserRepository(db).Save(user))
	return user
}

func makeNote(t *testing.T, db *gorm.DB, ownerID int64, title string, createdAt int64) *entity.Note {
	t.Helper()

	note := &entity.Note{
		ID:        uid.Generate(),
		Title:     title,
		Content:   "content",
		OwnerID:   ownerID,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, NewNoteRepository(db).Save(note))
	return note
}
