package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noteapp/internal/domain/entity"
	"noteapp/internal/utils/uid"
)

func TestNoteFindByIDMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewNoteRepository(db)

	note, err := repo.FindByID(123456)
	require.NoError(t, err)
	assert.Nil(t, note)
}

func TestNoteFindByIDPreloadsRelations(t *testing.T) {
	db := newTestDB(t)
	repo := NewNoteRepository(db)
	owner := makeUser(t, db, "alice@example.com", 1000)
	viewer := makeUser(t, db, "bob@example.com", 1000)
	note := makeNote(t, db, owner.ID, "n", 1000)

	tag := &entity.Tag{ID: uid.Generate(), Name: "work", Color: "#DBEAFE", OwnerID: owner.ID, CreatedAt: 1000}
	require.NoError(t, NewTagRepository(db).Save(tag))
	require.NoError(t, repo.ReplaceTags(note, []*entity.Tag{tag}))
	require.NoError(t, repo.AddShare(note, viewer))

	got, err := repo.FindByID(note.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	require.NotNil(t, got.Owner)
	assert.Equal(t, owner.Email, got.Owner.Email)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "work", got.Tags[0].Name)
	require.Len(t, got.SharedWith, 1)
	assert.Equal(t, viewer.ID, got.SharedWith[0].ID)
}

func TestAddShareIsSetAdd(t *testing.T) {
	db := newTestDB(t)
	repo := NewNoteRepository(db)
	owner := makeUser(t, db, "alice@example.com", 1000)
	viewer := makeUser(t, db, "bob@example.com", 1000)
	note := makeNote(t, db, owner.ID, "n", 1000)

	require.NoError(t, repo.AddShare(note, viewer))
	require.NoError(t, repo.AddShare(note, viewer))

	var count int64
	require.NoError(t, db.Table("note_shares").Where("note_id = ?", note.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRemoveShareAbsentMember(t *testing.T) {
	db := newTestDB(t)
	repo := NewNoteRepository(db)
	owner := makeUser(t, db, "alice@example.com", 1000)
	outsider := makeUser(t, db, "carol@example.com", 1000)
	note := makeNote(t, db, owner.ID, "n", 1000)

	require.NoError(t, repo.RemoveShare(note, outsider))
}

func TestFindSharedWithOrderAndExclusion(t *testing.T) {
	db := newTestDB(t)
	repo := NewNoteRepository(db)
	owner := makeUser(t, db, "alice@example.com", 1000)
	viewer := makeUser(t, db, "bob@example.com", 1000)

	older := makeNote(t, db, owner.ID, "older", 1000)
	newer := makeNote(t, db, owner.ID, "newer", 2000)
	own := makeNote(t, db, viewer.ID, "viewer's own", 3000)

	require.NoError(t, repo.AddShare(older, viewer))
	require.NoError(t, repo.AddShare(newer, viewer))

	// A self-referencing share row must not leak the viewer's own note
	// into the shared listing.
	require.NoError(t, db.Exec(
		"INSERT INTO note_shares (note_id, user_id) VALUES (?, ?)", own.ID, viewer.ID,
	).Error)

	notes, err := repo.FindSharedWith(viewer.ID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "newer", notes[0].Title)
	assert.Equal(t, "older", notes[1].Title)
}

func TestDeleteNoteCleansJoinRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewNoteRepository(db)
	owner := makeUser(t, db, "alice@example.com", 1000)
	viewer := makeUser(t, db, "bob@example.com", 1000)
	note := makeNote(t, db, owner.ID, "n", 1000)

	tag := &entity.Tag{ID: uid.Generate(), Name: "work", Color: "#DBEAFE", OwnerID: owner.ID, CreatedAt: 1000}
	require.NoError(t, NewTagRepository(db).Save(tag))
	require.NoError(t, repo.ReplaceTags(note, []*entity.Tag{tag}))
	require.NoError(t, repo.AddShare(note, viewer))

	require.NoError(t, repo.Delete(note))

	var shares, links int64
	require.NoError(t, db.Table("note_shares").Where("note_id = ?", note.ID).Count(&shares).Error)
	require.NoError(t, db.Table("note_tags").Where("note_id = ?", note.ID).Count(&links).Error)
	assert.Zero(t, shares)
	assert.Zero(t, links)

	// The tag record itself survives the note.
	stored, err := NewTagRepository(db).FindByOwnerAndName(owner.ID, "work")
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestReplaceTagsSwapsWholeSet(t *testing.T) {
	db := newTestDB(t)
	repo := NewNoteRepository(db)
	tagRepo := NewTagRepository(db)
	owner := makeUser(t, db, "alice@example.com", 1000)
	note := makeNote(t, db, owner.ID, "n", 1000)

	a := &entity.Tag{ID: uid.Generate(), Name: "a", Color: "#DBEAFE", OwnerID: owner.ID, CreatedAt: 1000}
	b := &entity.Tag{ID: uid.Generate(), Name: "b", Color: "#E0E7FF", OwnerID: owner.ID, CreatedAt: 1000}
	require.NoError(t, tagRepo.Save(a))
	require.NoError(t, tagRepo.Save(b))

	require.NoError(t, repo.ReplaceTags(note, []*entity.Tag{a}))
	require.NoError(t, repo.ReplaceTags(note, []*entity.Tag{b}))

	got, err := repo.FindByID(note.ID)
	require.NoError(t, err)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "b", got.Tags[0].Name)
}
