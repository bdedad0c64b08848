package repository

import (
	"errors"

	"gorm.io/gorm"

	"noteapp/internal/domain/entity"
)

type DefaultTagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *DefaultTagRepository {
	return &DefaultTagRepository{db: db}
}

// FindByOwnerAndName matches the exact stored name. Lookups are
// case-sensitive: "Work" and "work" are different tags.
func (t *DefaultTagRepository) FindByOwnerAndName(ownerID int64, name string) (*entity.Tag, error) {
	var tag entity.Tag
	err := t.db.Where("owner_id = ? AND name = ?", ownerID, name).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (t *DefaultTagRepository) FindAllByOwner(ownerID int64) ([]*entity.Tag, error) {
	var tags []*entity.Tag
	err := t.db.
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (t *DefaultTagRepository) Save(tag *entity.Tag) error {
	return t.db.Save(tag).Error
}
