package service

import (
	"context"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"noteapp/internal/domain/entity"
	"noteapp/internal/domain/events"
	dbinit "noteapp/internal/domain/sqlite"
	"noteapp/internal/domain/sqlite/repository"
	"noteapp/internal/utils"
	"noteapp/internal/utils/uid"
	"noteapp/internal/utils/validators"
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

func newTestValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("hasupper", validators.HasUpper)
	_ = validate.RegisterValidation("haslower", validators.HasLower)
	_ = validate.RegisterValidation("hasdigit", validators.HasDigit)
	_ = validate.RegisterValidation("hasspecial", validators.HasSpecial)
	_ = validate.RegisterValidation("nodupes", validators.NoDupes)
	_ = validate.RegisterValidation("nospaces", validators.NoWhiteSpaces)
	return validate
}

func createTestUser(t *testing.T, db *gorm.DB, email, displayName string) *entity.User {
	t.Helper()

	now := utils.NowUTC()
	user := &entity.User{
		ID:          uid.Generate(),
		Uid:         "sub-" + email,
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, repository.NewUserRepository(db).Save(user))
	return user
}

// fakeDispatcher swallows dispatched events. Mutations fire pushes from
// goroutines, so the sink has to be safe for concurrent appends.
type fakeDispatcher struct {
	mu     sync.Mutex
	events []events.SocketEvent
}

func (f *fakeDispatcher) DispatchToUsers(_ context.Context, _ []int64, evt events.SocketEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, evt)
}

// fakeS3 keeps uploaded objects in memory.
type fakeS3 struct {
	objects map[string][]byte
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}}
}

func (f *fakeS3) UploadFile(data []byte, key string) error {
	f.objects[key] = data
	return nil
}

func (f *fakeS3) DeleteFile(key string) error {
	delete(f.objects, key)
	return nil
}
