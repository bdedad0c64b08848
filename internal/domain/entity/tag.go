package entity

// Tag is a per-user label. (OwnerID, Name) is unique; names are matched
// exactly, so "Work" and "work" are two different tags. Tags are created
// lazily by the normalizer and never updated afterwards.
type Tag struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false"`
	Name      string `gorm:"not null;uniqueIndex:idx_tags_owner_name"`
	Color     string `gorm:"not null"`
	OwnerID   int64  `gorm:"not null;uniqueIndex:idx_tags_owner_name;index"`
	CreatedAt int64  `gorm:"not null"`
}
