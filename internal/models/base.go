package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is the base model for all entities.
// UpdatedAt stays nil until the first explicit edit.
type Base struct {
	ID        string     `json:"id"         gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// Touch stamps UpdatedAt with now.
func (b *Base) Touch(now time.Time) {
	t := now
	b.UpdatedAt = &t
}
