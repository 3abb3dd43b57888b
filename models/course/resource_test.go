package course_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"lms/database"
	"lms/models/course"
)

func TestResourceValidate(t *testing.T) {
	tests := []struct {
		name     string
		resource course.Resource
		wantErr  bool
	}{
		{
			name: "valid test",
			resource: course.Resource{
				Type:        course.ResourceTest,
				QuestionIDs: datatypes.NewJSONSlice([]uint{1}),
				PassRate:    70,
			},
		},
		{
			name:     "test without questions",
			resource: course.Resource{Type: course.ResourceTest, PassRate: 70},
			wantErr:  true,
		},
		{
			name: "test pass rate out of range",
			resource: course.Resource{
				Type:        course.ResourceTest,
				QuestionIDs: datatypes.NewJSONSlice([]uint{1}),
				PassRate:    101,
			},
			wantErr: true,
		},
		{
			name:     "valid lecture with text",
			resource: course.Resource{Type: course.ResourceLecture, Text: "intro"},
		},
		{
			name: "valid lecture with media",
			resource: course.Resource{
				Type:  course.ResourceLecture,
				Media: datatypes.NewJSONSlice([]course.MediaItem{{Kind: "image", URL: "https://cdn/img.png"}}),
			},
		},
		{
			name:     "lecture without content",
			resource: course.Resource{Type: course.ResourceLecture},
			wantErr:  true,
		},
		{
			name: "lecture media missing url",
			resource: course.Resource{
				Type:  course.ResourceLecture,
				Media: datatypes.NewJSONSlice([]course.MediaItem{{Kind: "image"}}),
			},
			wantErr: true,
		},
		{
			name:     "valid video",
			resource: course.Resource{Type: course.ResourceVideo, URL: "https://cdn/v.mp4"},
		},
		{
			name:     "video without url",
			resource: course.Resource{Type: course.ResourceVideo},
			wantErr:  true,
		},
		{
			name:     "unknown type",
			resource: course.Resource{Type: "PODCAST"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.resource.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConcreteDispatch(t *testing.T) {
	db := database.ConnectTest()

	q1 := course.Question{Text: "2+2?", Answers: datatypes.NewJSONSlice([]string{"3", "4"}), CorrectAnswers: datatypes.NewJSONSlice([]string{"4"})}
	q2 := course.Question{Text: "capital of France?", Answers: datatypes.NewJSONSlice([]string{"Paris", "Lyon"}), CorrectAnswers: datatypes.NewJSONSlice([]string{"Paris"})}
	require.NoError(t, db.Create(&q1).Error)
	require.NoError(t, db.Create(&q2).Error)

	test := course.Resource{
		Name:        "final exam",
		CourseID:    1,
		Type:        course.ResourceTest,
		QuestionIDs: datatypes.NewJSONSlice([]uint{q1.ID, q2.ID}),
		PassRate:    80,
	}
	require.NoError(t, db.Create(&test).Error)

	concrete, err := course.Concrete(db, &test)
	require.NoError(t, err)
	tr, ok := concrete.(*course.TestResource)
	require.True(t, ok)
	assert.Equal(t, 80, tr.PassRate)
	require.Len(t, tr.Questions, 2)

	video := course.Resource{Name: "intro clip", CourseID: 1, Type: course.ResourceVideo, URL: "https://cdn/v.mp4"}
	concrete, err = course.Concrete(db, &video)
	require.NoError(t, err)
	vr, ok := concrete.(*course.VideoResource)
	require.True(t, ok)
	assert.Equal(t, "https://cdn/v.mp4", vr.URL)

	lecture := course.Resource{Name: "notes", CourseID: 1, Type: course.ResourceLecture, Text: "read this"}
	concrete, err = course.Concrete(db, &lecture)
	require.NoError(t, err)
	_, ok = concrete.(*course.LectureResource)
	require.True(t, ok)

	_, err = course.Concrete(db, &course.Resource{Type: "PODCAST"})
	assert.Error(t, err)
}

func TestResourceTypeImmutable(t *testing.T) {
	db := database.ConnectTest()

	r := course.Resource{Name: "clip", CourseID: 1, Type: course.ResourceVideo, URL: "https://cdn/v.mp4"}
	require.NoError(t, db.Create(&r).Error)

	// The discriminator column has create-only write permission, so an
	// update attempt leaves it untouched
	require.NoError(t, db.Model(&course.Resource{}).Where("id = ?", r.ID).
		Updates(map[string]interface{}{"name": "renamed", "type": course.ResourceLecture}).Error)

	var reloaded course.Resource
	require.NoError(t, db.First(&reloaded, r.ID).Error)
	assert.Equal(t, "renamed", reloaded.Name)
	assert.Equal(t, course.ResourceVideo, reloaded.Type)
}
