package models

type Role struct {
	Base
	Name        string    `json:"name" gorm:"not null"`
	IsPublic    bool      `json:"is_public" gorm:"default:false"`
	AvailableTo []Company `json:"available_to,omitempty" gorm:"many2many:role_companies"`
}
