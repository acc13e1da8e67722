package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// OptionList stores the ordered answer options as a JSON array column.
type OptionList []string

func (o OptionList) Value() (driver.Value, error) {
	return json.Marshal(o)
}

func (o *OptionList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	default:
		return fmt.Errorf("unsupported type %T for OptionList", value)
	}
}

// Question is one multiple-choice question. CorrectOption indexes into
// Options and is never serialized on public listings (see dto package).
type Question struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Text          string         `json:"question_text" gorm:"type:text;not null"`
	Options       OptionList     `json:"options" gorm:"type:jsonb;not null"`
	CorrectOption int            `json:"correct_option" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
