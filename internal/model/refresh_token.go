package model

import (
	"time"
)

// RefreshToken is one issued refresh credential. Revocation and rotation are
// row deletes, so horizontal replicas share the same revocation state.
type RefreshToken struct {
	ID        string    `gorm:"primarykey;type:uuid" json:"id"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;index"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
