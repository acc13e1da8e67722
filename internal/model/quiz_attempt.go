package model

import (
	"time"
)

// QuizAttempt is one completed, scored run persisted for an authenticated
// user. ResultJSON holds the full scored-result snapshot (per-question text
// and options included) so later edits to the bank never alter what a past
// attempt displays. Rows are append-only and removed only when the owning
// user is deleted.
type QuizAttempt struct {
	ID             string    `gorm:"primarykey;type:uuid" json:"id"`
	UserID         string    `json:"user_id" gorm:"type:uuid;not null;index"`
	User           User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Score          int       `json:"score" gorm:"not null"`
	TotalQuestions int       `json:"total_questions" gorm:"not null"`
	Percentage     float64   `json:"percentage" gorm:"not null"`
	ResultJSON     []byte    `json:"-" gorm:"type:jsonb"`
	SubmittedAt    time.Time `json:"submitted_at" gorm:"autoCreateTime;index"`
	CreatedAt      time.Time `json:"created_at"`
}
