package users

import "time"

type VerificationToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserUID   string `gorm:"index"`
	User      User   `gorm:"foreignKey:UserUID;constraint:OnDelete:CASCADE"`
	Token     string `gorm:"uniqueIndex"`
	Type      string `gorm:"index"`
	ExpiresAt time.Time
	CreatedAt time.Time
}
