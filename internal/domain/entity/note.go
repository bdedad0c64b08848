package entity

// Note is the central record. The owner is set at creation and never
// changes; only the owner may mutate the note or its sharing list.
// SharedWith holds the users granted read-only access (never the owner
// itself). Tags and SharedWith live in join tables with composite
// primary keys, which is what gives them set semantics.
type Note struct {
	ID        int64    `gorm:"primaryKey;autoIncrement:false"`
	Title     string   `gorm:"not null"`
	Content   string   `gorm:"not null"`
	Images    []string `gorm:"serializer:json"`
	OwnerID   int64    `gorm:"not null;index"`
	CreatedAt int64    `gorm:"not null;index"`
	UpdatedAt int64    `gorm:"not null;autoUpdateTime:false"`

	// Relations
	Owner      *User   `gorm:"foreignKey:OwnerID;references:ID"`
	Tags       []*Tag  `gorm:"many2many:note_tags"`
	SharedWith []*User `gorm:"many2many:note_shares"`
}

// IsOwnedBy reports whether the user is the note's owner.
func (n *Note) IsOwnedBy(user *User) bool {
	return user != nil && n.OwnerID == user.ID
}

// IsSharedWith reports whether the user appears in the shared-with set.
// Relies on SharedWith being preloaded.
func (n *Note) IsSharedWith(user *User) bool {
	if user == nil {
		return false
	}
	for _, u := range n.SharedWith {
		if u.ID == user.ID {
			return true
		}
	}
	return false
}
