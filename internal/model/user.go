package model

import (
	"time"
)

// User is a registered identity, local or Google-provisioned. Email is stored
// lowercase-folded; the unique index on it is the arbiter for concurrent
// registrations with the same address.
type User struct {
	ID             string    `gorm:"primarykey;type:uuid" json:"id"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null"`
	Name           string    `json:"name" gorm:"not null"`
	Phone          *string   `json:"phone,omitempty"`
	Address        *string   `json:"address,omitempty"`
	GoogleID       *string   `json:"-" gorm:"uniqueIndex"`
	HashedPassword *string   `json:"-"`
	IsActive       bool      `json:"is_active" gorm:"default:true"`
	IsAdmin        bool      `json:"is_admin" gorm:"default:false"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
