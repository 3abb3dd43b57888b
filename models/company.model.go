package models

import "gorm.io/datatypes"

type Company struct {
	Base
	Name             string                    `json:"name" gorm:"not null"`
	SupportEmail     string                    `json:"support_email"`
	OwnerID          uint                      `json:"owner_id" gorm:"index;not null"`
	Owner            *User                     `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Employees        []Employee                `json:"employees,omitempty" gorm:"foreignKey:CompanyID"`
	AvailableRoleIDs datatypes.JSONSlice[uint] `json:"available_role_ids"`
	DefaultRoleID    *uint                     `json:"default_role_id"`
}

// Employee is one membership row per (company, user) pair. The composite unique
// index backs the idempotence guarantee of AddEmployee.
type Employee struct {
	Base
	CompanyID uint                      `json:"company_id" gorm:"uniqueIndex:idx_company_user;not null"`
	UserID    uint                      `json:"user_id" gorm:"uniqueIndex:idx_company_user;not null"`
	User      *User                     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	RoleIDs   datatypes.JSONSlice[uint] `json:"role_ids"`
	IsActive  bool                      `json:"is_active" gorm:"default:true"`
}
