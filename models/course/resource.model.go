package course

import (
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lms/models"
)

// Resource type discriminator values. The tag is written once at creation and
// never updated afterwards (gorm write permission `<-:create`).
const (
	ResourceTest    = "TEST"
	ResourceLecture = "LECTURE"
	ResourceVideo   = "VIDEO"
)

// MediaItem is an embedded media reference for lectures and questions
type MediaItem struct {
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

// Resource is the base row shared by every variant. All variants live in one
// table; columns past the discriminator are only meaningful for the matching
// Type. Pagination and soft delete operate on this table and therefore apply
// to every variant identically.
type Resource struct {
	models.Base
	Name     string `json:"name" gorm:"not null"`
	CourseID uint   `json:"course_id" gorm:"index;not null"`
	Type     string `json:"type" gorm:"<-:create;index;not null"` // TEST, LECTURE, VIDEO

	// TEST
	QuestionIDs        datatypes.JSONSlice[uint] `json:"question_ids,omitempty"`
	PassRate           int                       `json:"pass_rate" gorm:"default:0"`
	ShowCorrectAnswers bool                      `json:"show_correct_answers" gorm:"default:false"`

	// LECTURE / VIDEO
	Text  string                         `json:"text,omitempty" gorm:"type:text"`
	Media datatypes.JSONSlice[MediaItem] `json:"media,omitempty"`
	URL   string                         `json:"url,omitempty"`
}

// TestResource is the concrete shape of a TEST resource with its questions
// resolved. Questions is populated by Concrete, not stored on the row.
type TestResource struct {
	Resource
	Questions []Question `json:"questions" gorm:"-"`
}

// LectureResource is the concrete shape of a LECTURE resource
type LectureResource struct {
	Resource
}

// VideoResource is the concrete shape of a VIDEO resource
type VideoResource struct {
	Resource
}

// Validate checks the variant-specific schema for the resource's type
func (r *Resource) Validate() error {
	switch r.Type {
	case ResourceTest:
		if len(r.QuestionIDs) == 0 {
			return fmt.Errorf("test resource requires at least one question")
		}
		if r.PassRate < 0 || r.PassRate > 100 {
			return fmt.Errorf("pass rate must be between 0 and 100")
		}
	case ResourceLecture:
		if r.Text == "" && len(r.Media) == 0 {
			return fmt.Errorf("lecture resource requires text or media")
		}
		for _, m := range r.Media {
			if m.Kind == "" || m.URL == "" {
				return fmt.Errorf("lecture media entries require kind and url")
			}
		}
	case ResourceVideo:
		if r.URL == "" {
			return fmt.Errorf("video resource requires a url")
		}
	default:
		return fmt.Errorf("unknown resource type: %s", r.Type)
	}
	return nil
}

// Concrete dispatches on the discriminator and returns the variant's full
// shape. TEST resources come back with their question list loaded so that
// variant-only fields are never flattened away to the base shape.
func Concrete(db *gorm.DB, r *Resource) (interface{}, error) {
	switch r.Type {
	case ResourceTest:
		var questions []Question
		if len(r.QuestionIDs) > 0 {
			if err := db.Where("id IN ?", []uint(r.QuestionIDs)).Find(&questions).Error; err != nil {
				return nil, err
			}
		}
		return &TestResource{Resource: *r, Questions: questions}, nil
	case ResourceLecture:
		return &LectureResource{Resource: *r}, nil
	case ResourceVideo:
		return &VideoResource{Resource: *r}, nil
	default:
		return nil, fmt.Errorf("unknown resource type: %s", r.Type)
	}
}
