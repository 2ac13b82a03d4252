package training

import (
	trainingModels "trainport/models/training"
)

// IsEligible reports whether the trainee has passed every module of the
// company's catalog. A company with no modules is never eligible. The
// check keys on the same pass column the evaluator writes.
func (s *Service) IsEligible(userID, companyID uint) (bool, error) {
	total, err := s.store.Modules().CountByCompany(companyID)
	if err != nil {
		return false, err
	}
	if total == 0 {
		return false, nil
	}

	passed, err := s.store.Progress().CountPassedInCompany(userID, companyID)
	if err != nil {
		return false, err
	}
	return passed == total, nil
}

// EnsureCertificate checks eligibility and, when met, hands off to the
// issuance collaborator. Exactly-once per (user, company): an existing
// active certificate is returned as-is and never duplicated, and the
// partial unique index on active certificates settles concurrent races.
// Returns (nil, nil) when the trainee is not yet eligible.
func (s *Service) EnsureCertificate(userID, companyID uint) (*trainingModels.Certificate, error) {
	eligible, err := s.IsEligible(userID, companyID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, nil
	}

	existing, err := s.store.Certificates().FindActiveByUserAndCompany(userID, companyID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	cert, err := s.issuer.TryIssue(userID, companyID)
	if err != nil {
		// A concurrent passing submission may have issued first; the
		// unique index rejected this attempt. Return the winner.
		if winner, ferr := s.store.Certificates().FindActiveByUserAndCompany(userID, companyID); ferr == nil && winner != nil {
			return winner, nil
		}
		return nil, err
	}

	if s.NotifyIssued != nil {
		go s.NotifyIssued(cert)
	}
	return cert, nil
}
