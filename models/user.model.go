package models

type User struct {
	Base
	FirstName string    `json:"first_name" gorm:"not null"`
	LastName  string    `json:"last_name" gorm:"not null"`
	Email     string    `json:"email" gorm:"unique;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Companies []Company `json:"companies,omitempty" gorm:"many2many:user_companies"`
}
