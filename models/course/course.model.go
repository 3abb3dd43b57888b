package course

import "lms/models"

// Course status values
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
	StatusDeleted  = "Deleted"
)

// Course represents a learning course owned by a company
type Course struct {
	models.Base
	Name       string   `json:"name" gorm:"not null"`
	CompanyID  uint     `json:"company_id" gorm:"index;not null"`
	IsPublic   bool     `json:"is_public" gorm:"not null"`
	InviteLink string   `json:"invite_link"`
	Status     string   `json:"status" gorm:"default:'Active'"` // Active, Inactive, Deleted
	Modules    []Module `json:"modules,omitempty" gorm:"foreignKey:CourseID"`
	Groups     []Group  `json:"groups,omitempty" gorm:"foreignKey:CourseID"`
}

// ValidStatus reports whether s is one of the known course statuses
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive || s == StatusDeleted
}
