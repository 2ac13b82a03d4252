package training

import (
	trainingModels "trainport/models/training"
)

// ModuleProgress is one dashboard row: a module joined with the trainee's
// progress record and the derived unlock state.
type ModuleProgress struct {
	ModuleID         uint   `json:"module_id"`
	ModuleName       string `json:"module_name"`
	OrderIndex       int    `json:"order_index"`
	IsResourceModule bool   `json:"is_resource_module"`
	Completed        bool   `json:"completed"`
	Pass             bool   `json:"pass"`
	Score            *int   `json:"score"`
	TimeSpentSeconds *int64 `json:"time_spent"`
	Unlocked         bool   `json:"unlocked"`
}

// ProgressOverview is a trainee's aggregate view over one company catalog.
type ProgressOverview struct {
	Modules          []ModuleProgress `json:"modules"`
	TotalModules     int              `json:"total_modules"`
	CompletedModules int              `json:"completed_modules"`
	PassedModules    int              `json:"passed_modules"`
	OverallPercent   int              `json:"overall_percent"`
}

// BuildProgressOverview derives the dashboard for (trainee, company):
// per-module completion joined with unlock state, plus overall progress.
// An empty catalog yields an empty module list and 0 percent. Unlock state
// is always derived fresh here, never read from storage.
func (s *Service) BuildProgressOverview(userID, companyID uint) (*ProgressOverview, error) {
	modules, err := s.store.Modules().ListByCompany(companyID)
	if err != nil {
		return nil, err
	}

	records, err := s.store.Progress().FindByUser(userID)
	if err != nil {
		return nil, err
	}
	byModule := make(map[uint]trainingModels.ProgressRecord, len(records))
	for _, rec := range records {
		byModule[rec.ModuleID] = rec
	}

	inputs := make([]UnlockInput, len(modules))
	for i, module := range modules {
		rec := byModule[module.ID] // zero value when not yet enrolled
		inputs[i] = UnlockInput{
			Completed:      rec.Completed,
			Passed:         rec.Pass,
			ResourceModule: module.IsResourceModule,
		}
	}
	unlocked := ResolveUnlocks(inputs)

	overview := &ProgressOverview{
		Modules:      make([]ModuleProgress, len(modules)),
		TotalModules: len(modules),
	}
	for i, module := range modules {
		rec := byModule[module.ID]
		if rec.Completed {
			overview.CompletedModules++
		}
		if rec.Pass {
			overview.PassedModules++
		}
		overview.Modules[i] = ModuleProgress{
			ModuleID:         module.ID,
			ModuleName:       module.Name,
			OrderIndex:       module.OrderIndex,
			IsResourceModule: module.IsResourceModule,
			Completed:        rec.Completed,
			Pass:             rec.Pass,
			Score:            rec.Score,
			TimeSpentSeconds: rec.TimeSpentSeconds,
			Unlocked:         unlocked[i],
		}
	}

	// Guard the division: zero modules means zero percent, not NaN.
	if overview.TotalModules > 0 {
		overview.OverallPercent = 100 * overview.PassedModules / overview.TotalModules
	}
	return overview, nil
}

// IsModuleUnlocked derives the unlock state of a single module for a
// trainee, used to gate module detail reads. It goes through the same
// resolver as the dashboard so the logic cannot diverge.
func (s *Service) IsModuleUnlocked(userID uint, module *trainingModels.Module) (bool, error) {
	overview, err := s.BuildProgressOverview(userID, module.CompanyID)
	if err != nil {
		return false, err
	}
	for _, row := range overview.Modules {
		if row.ModuleID == module.ID {
			return row.Unlocked, nil
		}
	}
	return false, &NotFoundError{Resource: "module", ID: module.ID}
}

// requireUnlocked gates completion actions on the resolver. Reads and
// writes refuse locked modules through the same check so a trainee who
// bypasses the dashboard cannot record progress out of order.
func (s *Service) requireUnlocked(userID uint, module *trainingModels.Module) error {
	unlocked, err := s.IsModuleUnlocked(userID, module)
	if err != nil {
		return err
	}
	if !unlocked {
		return &ModuleLockedError{ModuleID: module.ID}
	}
	return nil
}
