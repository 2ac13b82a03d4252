package training

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MCQ is a multiple choice question attached to a module. Options keep
// their authoring order; Answer must be one of Options.
type MCQ struct {
	gorm.Model
	ModuleID    uint                       `json:"module_id" gorm:"index;not null"`
	Question    string                     `json:"question" gorm:"not null"`
	Options     datatypes.JSONSlice[string] `json:"options"`
	Answer      string                     `json:"answer" gorm:"not null"`
	Explanation string                     `json:"explanation"`
	IsDeleted   bool                       `gorm:"default:false"`
}

// MCQAnswer records a trainee's graded answer to one question for their
// latest quiz attempt. A fresh submission replaces all rows for the
// (user, module) pair, so there is exactly one row per question.
type MCQAnswer struct {
	gorm.Model
	UserID         uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_mcq_answers_user_mcq"`
	ModuleID       uint   `json:"module_id" gorm:"index;not null"`
	MCQID          uint   `json:"mcq_id" gorm:"not null;uniqueIndex:idx_mcq_answers_user_mcq"`
	SelectedOption string `json:"selected_option"` // empty when the question was left unanswered
	IsCorrect      bool   `json:"is_correct" gorm:"default:false"`
}
