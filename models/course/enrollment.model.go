package course

import (
	"fmt"

	"gorm.io/datatypes"

	"lms/models"
)

// Enrollment tracks a user's membership in a course group with progress
type Enrollment struct {
	models.Base
	CourseID             uint                      `json:"course_id" gorm:"index;not null"`
	UserID               uint                      `json:"user_id" gorm:"index;not null"`
	GroupID              uint                      `json:"group_id" gorm:"index;not null"`
	Progress             int                       `json:"progress" gorm:"default:0"` // 0..100
	IsCompleted          bool                      `json:"is_completed" gorm:"default:false"`
	Certificate          string                    `json:"certificate" gorm:"default:''"`
	CompletedResourceIDs datatypes.JSONSlice[uint] `json:"completed_resource_ids"`
	AllowedResourceIDs   datatypes.JSONSlice[uint] `json:"allowed_resource_ids"`
}

// ApplyProgress is the only mutation path for Progress and IsCompleted.
// Progress is clamped to [0,100] by rejection, and completion flips on
// exactly when progress reaches 100 — it cannot be set independently.
func (e *Enrollment) ApplyProgress(progress int) error {
	if progress < 0 || progress > 100 {
		return fmt.Errorf("progress must be between 0 and 100, got %d", progress)
	}
	e.Progress = progress
	e.IsCompleted = progress == 100
	return nil
}

// MarkResourceCompleted records a completed resource id once
func (e *Enrollment) MarkResourceCompleted(resourceID uint) {
	for _, id := range e.CompletedResourceIDs {
		if id == resourceID {
			return
		}
	}
	e.CompletedResourceIDs = append(e.CompletedResourceIDs, resourceID)
}
