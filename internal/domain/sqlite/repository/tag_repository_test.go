package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noteapp/internal/domain/entity"
	"noteapp/internal/utils/uid"
)

func TestTagFindByOwnerAndNameExactMatch(t *testing.T) {
	db := newTestDB(t)
	repo := NewTagRepository(db)
	owner := makeUser(t, db, "alice@example.com", 1000)

	tag := &entity.Tag{ID: uid.Generate(), Name: "Work", Color: "#DBEAFE", OwnerID: owner.ID, CreatedAt: 1000}
	require.NoError(t, repo.Save(tag))

	got, err := repo.FindByOwnerAndName(owner.ID, "Work")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, tag.ID, got.ID)

	// Lookup is case-sensitive: "work" is a different tag.
	got, err = repo.FindByOwnerAndName(owner.ID, "work")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.FindByOwnerAndName(owner.ID+1, "Work")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTagFindAllByOwner(t *testing.T) {
	db := newTestDB(t)
	repo := NewTagRepository(db)
	owner := makeUser(t, db, "alice@example.com", 1000)
	other := makeUser(t, db, "bob@example.com", 1000)

	for _, name := range []string{"work", "home"} {
		require.NoError(t, repo.Save(&entity.Tag{
			ID: uid.Generate(), Name: name, Color: "#DBEAFE", OwnerID: owner.ID, CreatedAt: 1000,
		}))
	}
	require.NoError(t, repo.Save(&entity.Tag{
		ID: uid.Generate(), Name: "work", Color: "#DBEAFE", OwnerID: other.ID, CreatedAt: 1000,
	}))

	tags, err := repo.FindAllByOwner(owner.ID)
	require.NoError(t, err)
	assert.Len(t, tags, 2)
}
