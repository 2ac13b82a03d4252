package training

import "gorm.io/gorm"

// ProgressRecord is the per-(trainee, module) completion state. One row
// exists for every module of the trainee's company; the enrollment
// synchronizer keeps that set complete.
//
// For modules without a quiz, completed implies pass with score 100.
type ProgressRecord struct {
	gorm.Model
	UserID           uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_progress_user_module"`
	ModuleID         uint   `json:"module_id" gorm:"not null;uniqueIndex:idx_progress_user_module"`
	Completed        bool   `json:"completed" gorm:"default:false"`
	Pass             bool   `json:"pass" gorm:"default:false"`
	Score            *int   `json:"score"`      // 0-100, nil until first evaluation
	TimeSpentSeconds *int64 `json:"time_spent"` // nil until first tracking update
}
