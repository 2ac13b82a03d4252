package training

import "gorm.io/gorm"

// Module represents one unit of training content within a company's catalog.
// OrderIndex defines the unlock sequence: dense, sequential, starting at 1
// and unique within a company. Resource modules are exempt from the
// sequence and are always accessible.
type Module struct {
	gorm.Model
	CompanyID        uint   `json:"company_id" gorm:"index;not null"`
	Name             string `json:"name" gorm:"not null"`
	Description      string `json:"description"`
	OrderIndex       int    `json:"order_index" gorm:"not null"`
	IsResourceModule bool   `json:"is_resource_module" gorm:"default:false"`
	IsDeleted        bool   `gorm:"default:false"`
}

// Video is the single optional video attached to a module.
type Video struct {
	gorm.Model
	ModuleID        uint   `json:"module_id" gorm:"uniqueIndex;not null"`
	Title           string `json:"title"`
	URL             string `json:"url"`
	DurationSeconds int64  `json:"duration_seconds" gorm:"default:0"`
	IsDeleted       bool   `gorm:"default:false"`
}

// Resource is a downloadable attachment on a module.
type Resource struct {
	gorm.Model
	ModuleID  uint   `json:"module_id" gorm:"index;not null"`
	Title     string `json:"title"`
	FileURL   string `json:"file_url"`
	IsDeleted bool   `gorm:"default:false"`
}
