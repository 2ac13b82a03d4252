package training

import (
	trainingModels "trainport/models/training"
)

// EnrollTrainee guarantees one progress record per module of the given
// company for the trainee, inserting only the missing rows. Safe to call
// repeatedly; existing rows (and the progress on them) are never touched.
// A company with no modules makes this a no-op. Returns the number of
// rows created.
func (s *Service) EnrollTrainee(userID, companyID uint) (int, error) {
	return s.enrollTrainee(s.store, userID, companyID)
}

func (s *Service) enrollTrainee(store Store, userID, companyID uint) (int, error) {
	modules, err := store.Modules().ListByCompany(companyID)
	if err != nil {
		return 0, err
	}
	if len(modules) == 0 {
		return 0, nil
	}

	existing, err := store.Progress().FindByUser(userID)
	if err != nil {
		return 0, err
	}
	have := make(map[uint]bool, len(existing))
	for _, rec := range existing {
		have[rec.ModuleID] = true
	}

	var missing []trainingModels.ProgressRecord
	for _, module := range modules {
		if have[module.ID] {
			continue
		}
		missing = append(missing, trainingModels.ProgressRecord{
			UserID:   userID,
			ModuleID: module.ID,
		})
	}
	if len(missing) == 0 {
		return 0, nil
	}

	// Skip-duplicates at the storage layer: a concurrent enrollment for
	// the same trainee must not error the caller.
	if err := store.Progress().CreateMany(missing); err != nil {
		return 0, err
	}
	return len(missing), nil
}

// EnrollAllTraineesInModule backfills a progress record for every trainee
// of the company who lacks one for the module. Called when a module is
// added to a company that already has trainees.
func (s *Service) EnrollAllTraineesInModule(moduleID, companyID uint) (int, error) {
	module, err := s.store.Modules().FindByID(moduleID)
	if err != nil {
		return 0, err
	}
	if module == nil {
		return 0, &NotFoundError{Resource: "module", ID: moduleID}
	}

	trainees, err := s.store.Users().ListTraineesByCompany(companyID)
	if err != nil {
		return 0, err
	}
	if len(trainees) == 0 {
		return 0, nil
	}

	records := make([]trainingModels.ProgressRecord, 0, len(trainees))
	for _, trainee := range trainees {
		records = append(records, trainingModels.ProgressRecord{
			UserID:   trainee.ID,
			ModuleID: moduleID,
		})
	}
	if err := s.store.Progress().CreateMany(records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// ReassignTrainee moves a trainee to a different company. All existing
// progress records are deleted, the trainee is enrolled fresh into the
// new company's catalog, and the user's company pointer moves with them,
// all in one transaction so a failure cannot leave the user record
// pointing at the old company with the progress already moved.
//
// This discards every bit of prior progress. Call it only on an explicit
// company reassignment, never as a side effect of unrelated updates.
func (s *Service) ReassignTrainee(userID, newCompanyID uint) (int, error) {
	created := 0
	err := s.store.Transaction(func(tx Store) error {
		if err := tx.Progress().DeleteByUser(userID); err != nil {
			return err
		}
		n, err := s.enrollTrainee(tx, userID, newCompanyID)
		if err != nil {
			return err
		}
		if err := tx.Users().AssignCompany(userID, newCompanyID); err != nil {
			return err
		}
		created = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
