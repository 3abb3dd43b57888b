package course

import "lms/models"

// Module represents a section within a course
type Module struct {
	models.Base
	Name      string           `json:"name" gorm:"not null"`
	CourseID  uint             `json:"course_id" gorm:"index;not null"`
	Resources []ModuleResource `json:"resources,omitempty" gorm:"foreignKey:ModuleID"`
}

// ModuleResource orders a resource inside a module
type ModuleResource struct {
	models.Base
	ModuleID   uint      `json:"module_id" gorm:"uniqueIndex:idx_module_resource;not null"`
	ResourceID uint      `json:"resource_id" gorm:"uniqueIndex:idx_module_resource;not null"`
	Resource   *Resource `json:"resource,omitempty" gorm:"foreignKey:ResourceID"`
	Order      int       `json:"order" gorm:"not null"`
	IsRequired bool      `json:"is_required" gorm:"not null"`
}
