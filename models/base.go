package models

import "time"

// Base is embedded by every persistent model. IsDeleted drives the soft-delete
// lifecycle: the database layer injects `is_deleted = false` into every default
// query, so a flagged row is invisible until restored.
type Base struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsDeleted bool      `json:"-" gorm:"default:false"`
}
