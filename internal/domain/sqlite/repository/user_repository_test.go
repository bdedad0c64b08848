package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserFindByEmailMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	user, err := repo.FindByEmail("ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserFindByEmailOldestWins(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	newer := makeUser(t, db, "dup@example.com", 2000)
	older := makeUser(t, db, "dup@example.com", 1000)

	user, err := repo.FindByEmail("dup@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, older.ID, user.ID)
	assert.NotEqual(t, newer.ID, user.ID)
}

func TestUserFindBySub(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	saved := makeUser(t, db, "alice@example.com", 1000)

	user, err := repo.FindBySub(saved.Uid)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, saved.ID, user.ID)

	user, err = repo.FindBySub("unknown-sub")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserExistsByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	makeUser(t, db, "alice@example.com", 1000)

	found, err := repo.ExistsByEmail("alice@example.com")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = repo.ExistsByEmail("ghost@example.com")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUserSearchMatchesEmailAndName(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	actor := makeUser(t, db, "me@example.com", 1000)
	byEmail := makeUser(t, db, "john@example.com", 1000)

	byName := makeUser(t, db, "x@example.com", 1000)
	byName.DisplayName = "Johnny"
	require.NoError(t, repo.Save(byName))

	miss := makeUser(t, db, "mary@example.com", 1000)
	miss.DisplayName = "Mary"
	require.NoError(t, repo.Save(miss))

	users, err := repo.Search("JOHN", actor.ID, 10)
	require.NoError(t, err)
	require.Len(t, users, 2)

	ids := []int64{users[0].ID, users[1].ID}
	assert.ElementsMatch(t, []int64{byEmail.ID, byName.ID}, ids)
}

func TestUserSearchExcludesRequesterAndLimits(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	actor := makeUser(t, db, "dev0@example.com", 1000)
	for i := 1; i <= 6; i++ {
		makeUser(t, db, fmt.Sprintf("dev%d@example.com", i), 1000)
	}

	users, err := repo.Search("dev", actor.ID, 5)
	require.NoError(t, err)
	require.Len(t, users, 5)
	for _, user := range users {
		assert.NotEqual(t, actor.ID, user.ID)
	}
}
