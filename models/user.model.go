package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleTrainee = "TRAINEE"
	RoleManager = "MANAGER"
	RoleAdmin   = "ADMIN"
)

type User struct {
	gorm.Model
	ProfileImage        string     `gorm:"default:''"`
	Name                string     `gorm:"default:''"`
	Email               string     `gorm:"unique;not null"`
	Mobile              string     `gorm:"default:''"`
	Role                string     `gorm:"default:'TRAINEE'"` // TRAINEE, MANAGER, ADMIN
	Password            string     `gorm:"not null" json:"-"`
	CompanyID           *uint      `gorm:"index" json:"company_id"`
	Designation         string     `json:"designation"`
	IsApproved          bool       `gorm:"default:false"` // manager/admin approval gates portal access
	IsEmailVerified     bool       `gorm:"default:false"`
	LastLogin           time.Time  `gorm:"default:NULL"`
	FailedLoginAttempts int        `gorm:"default:0"`
	LastFailedLogin     *time.Time `json:"last_failed_login"`
	IsBlocked           bool       `gorm:"default:false"`
	BlockedUntil        *time.Time `json:"blocked_until"`
	IsDeleted           bool       `gorm:"default:false"`
}
