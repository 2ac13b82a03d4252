package training

import (
	trainingModels "trainport/models/training"
)

// PassThreshold is the fixed quiz pass mark in percent.
const PassThreshold = 70

// CertificateIssuer is the external issuance collaborator. It is invoked
// only after eligibility has been established and must be idempotent per
// (user, company).
type CertificateIssuer interface {
	TryIssue(userID, companyID uint) (*trainingModels.Certificate, error)
}

// Service is the training domain core: module unlocking, completion
// evaluation, enrollment synchronization and certificate eligibility.
// It is invoked in-process by the request handlers and by the periodic
// eligibility sweep.
type Service struct {
	store  Store
	issuer CertificateIssuer

	// NotifyIssued, when set, is called once for every newly issued
	// certificate. Failures are the hook's problem; the core never
	// depends on it.
	NotifyIssued func(cert *trainingModels.Certificate)
}

// NewService wires the domain core to its storage and issuance collaborators.
func NewService(store Store, issuer CertificateIssuer) *Service {
	return &Service{store: store, issuer: issuer}
}

// Store exposes the underlying store, mainly for the HTTP layer's read paths.
func (s *Service) Store() Store {
	return s.store
}
