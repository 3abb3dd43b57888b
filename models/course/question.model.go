package course

import (
	"gorm.io/datatypes"

	"lms/models"
)

// Question belongs to test resources through Resource.QuestionIDs
type Question struct {
	models.Base
	Text           string                         `json:"text"`
	Media          datatypes.JSONSlice[MediaItem] `json:"media,omitempty"`
	Answers        datatypes.JSONSlice[string]    `json:"answers"`
	CorrectAnswers datatypes.JSONSlice[string]    `json:"correct_answers"`
	IsMultichoice  bool                           `json:"is_multichoice" gorm:"not null"`
}
