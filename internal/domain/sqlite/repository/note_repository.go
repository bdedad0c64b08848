package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"noteapp/internal/domain/entity"
)

type DefaultNoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *DefaultNoteRepository {
	return &DefaultNoteRepository{db: db}
}

// FindByID loads the note with its owner, tags and shared-with set,
// ready for denormalized responses. Returns (nil, nil) when absent.
func (d *DefaultNoteRepository) FindByID(id int64) (*entity.Note, error) {
	var note entity.Note
	err := d.db.
		Preload("Owner").
		Preload("Tags").
		Preload("SharedWith").
		First(&note, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (d *DefaultNoteRepository) FindAllByOwner(ownerID int64) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := d.db.
		Preload("Owner").
		Preload("Tags").
		Preload("SharedWith").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// FindSharedWith returns every note shared with the given user, newest
// first. The owner filter is redundant as long as the self-share
// invariant holds, but it keeps reads correct even if a bad row sneaks in.
func (d *DefaultNoteRepository) FindSharedWith(userID int64) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := d.db.
		Preload("Owner").
		Preload("Tags").
		Preload("SharedWith").
		Joins("JOIN note_shares ns ON ns.note_id = notes.id").
		Where("ns.user_id = ? AND notes.owner_id <> ?", userID, userID).
		Order("notes.created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// Save persists the note's own columns only. Tag and share links are
// mutated through ReplaceTags/AddShare/RemoveShare so a stale in-memory
// association can never clobber the stored sets.
func (d *DefaultNoteRepository) Save(note *entity.Note) error {
	return d.db.Omit("Owner", "Tags", "SharedWith").Save(note).Error
}

// ReplaceTags swaps the entire tag set. Partial merges are not supported;
// the normalizer always re-resolves the full list.
func (d *DefaultNoteRepository) ReplaceTags(note *entity.Note, tags []*entity.Tag) error {
	return d.db.Model(note).Association("Tags").Replace(tags)
}

// AddShare adds the user to the note's shared-with set. The join table's
// composite primary key makes this a set-add: re-appending an existing
// member leaves a single row.
func (d *DefaultNoteRepository) AddShare(note *entity.Note, user *entity.User) error {
	return d.db.Model(note).Association("SharedWith").Append(user)
}

// RemoveShare removes the user from the shared-with set. Removing an
// absent member is a silent no-op.
func (d *DefaultNoteRepository) RemoveShare(note *entity.Note, user *entity.User) error {
	return d.db.Model(note).Association("SharedWith").Delete(user)
}

// Delete removes the note and its join rows, so revoked viewers cannot
// retain access through a dangling share entry. Tags themselves survive.
func (d *DefaultNoteRepository) Delete(note *entity.Note) error {
	return d.db.Select(clause.Associations).Delete(note).Error
}
