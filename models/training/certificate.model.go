package training

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is issued once per (user, company) when every module of the
// company's catalog has been passed. Revocation flips IsActive instead of
// deleting the row; at most one active certificate exists per pair
// (enforced by a partial unique index created in database.ConnectDb).
type Certificate struct {
	gorm.Model
	UserID            uint      `json:"user_id" gorm:"index;not null"`
	CompanyID         uint      `json:"company_id" gorm:"index;not null"`
	CertificateNumber string    `json:"certificate_number" gorm:"unique;not null"`
	CompletedAt       time.Time `json:"completed_at"`
	PdfPath           string    `json:"pdf_path"`
	IsActive          bool      `json:"is_active" gorm:"default:true"`
}
