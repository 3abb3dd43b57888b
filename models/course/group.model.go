package course

import "lms/models"

// Group collects enrollments for a course
type Group struct {
	models.Base
	Name         string       `json:"name" gorm:"not null"`
	CourseID     uint         `json:"course_id" gorm:"index;not null"`
	Participants []Enrollment `json:"participants,omitempty" gorm:"foreignKey:GroupID"`
}
