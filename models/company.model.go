package models

import "gorm.io/gorm"

// Company is a tenant. Every trainee, module and certificate hangs off one.
type Company struct {
	gorm.Model
	Name      string `json:"name" gorm:"unique;not null"`
	LogoURL   string `json:"logo_url"`
	IsDeleted bool   `gorm:"default:false"`
}
