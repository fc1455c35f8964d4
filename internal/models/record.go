package models

import (
	"time"

	"gorm.io/gorm"
)

// CompositionRecord is the history row written for every generated song.
type CompositionRecord struct {
	ID         string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	UserID     string         `gorm:"index" json:"user_id,omitempty"`
	Key        string         `gorm:"not null" json:"key"`
	Scale      string         `gorm:"not null" json:"scale"`
	Tempo      int            `json:"tempo"`
	Bars       int            `json:"bars"`
	TrackCount int            `json:"track_count"`
	NoteCount  int            `json:"note_count"`
	ByteSize   int            `json:"byte_size"`
	Truncated  bool           `gorm:"default:false" json:"truncated"`
	Params     string         `gorm:"type:jsonb" json:"params"`
	StorageKey string         `json:"storage_key,omitempty"`
	Prompt     string         `json:"prompt,omitempty"`
}

func (CompositionRecord) TableName() string {
	return "compositions"
}
