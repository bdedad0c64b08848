package entity

// User is a registered account. The identity provider owns the
// credentials; we only keep the profile copy and the subject UUID
// linking the two. Rows are never deleted.
type User struct {
	ID            int64  `gorm:"primaryKey;autoIncrement:false"`
	Uid           string `gorm:"not null;uniqueIndex"` // IdP subject
	Email         string `gorm:"not null;index"`
	DisplayName   string
	PhotoURL      string
	EmailVerified bool  `gorm:"not null;default:false"`
	CreatedAt     int64 `gorm:"not null"`
	UpdatedAt     int64 `gorm:"not null;autoUpdateTime:false"`
}
