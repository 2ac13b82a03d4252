package training

import (
	"fmt"
	"strings"
	"time"

	trainingModels "trainport/models/training"

	"github.com/google/uuid"
)

// Issuer is the default certificate issuance collaborator. It assigns the
// certificate number and the pdf path; actual PDF rendering happens out of
// band from the stored path.
type Issuer struct {
	store Store
}

// NewIssuer returns an Issuer writing through the given store.
func NewIssuer(store Store) *Issuer {
	return &Issuer{store: store}
}

// TryIssue creates the certificate row. The partial unique index on
// (user_id, company_id) for active rows makes the second of two
// concurrent attempts fail; callers treat that failure as "already
// issued" and re-read.
func (i *Issuer) TryIssue(userID, companyID uint) (*trainingModels.Certificate, error) {
	number := certificateNumber(userID, companyID)
	cert := &trainingModels.Certificate{
		UserID:            userID,
		CompanyID:         companyID,
		CertificateNumber: number,
		CompletedAt:       time.Now(),
		PdfPath:           fmt.Sprintf("certificates/%s.pdf", number),
		IsActive:          true,
	}
	if err := i.store.Certificates().Create(cert); err != nil {
		return nil, err
	}
	return cert, nil
}

// certificateNumber derives a unique human-readable number from the ids,
// the issuance time and a random suffix.
func certificateNumber(userID, companyID uint) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("CERT-%d-%d-%d-%s", companyID, userID, time.Now().Unix(), suffix)
}
