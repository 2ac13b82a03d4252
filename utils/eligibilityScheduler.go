package utils

import (
	"log"

	"trainport/config"
	"trainport/database"
	"trainport/models"
	trainingService "trainport/services/training"

	"github.com/robfig/cron/v3"
)

// InitializeEligibilityScheduler starts the periodic certificate sweep.
// The sweep re-checks every approved trainee against their company's
// catalog, self-healing certificates whose synchronous trigger was missed
// (process crash between the passing write and the issuance call).
func InitializeEligibilityScheduler(service *trainingService.Service) {
	log.Println("[ELIGIBILITY-SWEEP] Initializing certificate eligibility scheduler...")

	c := cron.New()

	if _, err := c.AddFunc(config.AppConfig.SweepSchedule, func() {
		RunEligibilitySweep(service)
	}); err != nil {
		log.Printf("[ELIGIBILITY-SWEEP] Invalid cron spec %q: %v", config.AppConfig.SweepSchedule, err)
		return
	}

	c.Start()
	log.Printf("[ELIGIBILITY-SWEEP] Scheduler started with spec %q", config.AppConfig.SweepSchedule)
}

// RunEligibilitySweep walks all approved trainees and re-runs the
// eligibility check. Reconciliation semantics: one trainee's failure is
// logged and the sweep continues.
func RunEligibilitySweep(service *trainingService.Service) {
	db := database.Database.Db

	var trainees []models.User
	err := db.Where("role = ? AND is_approved = ? AND is_deleted = ? AND company_id IS NOT NULL",
		models.RoleTrainee, true, false).Find(&trainees).Error
	if err != nil {
		log.Printf("[ELIGIBILITY-SWEEP] Error fetching trainees: %v", err)
		return
	}

	log.Printf("[ELIGIBILITY-SWEEP] Checking %d trainees...", len(trainees))

	for _, trainee := range trainees {
		if _, err := service.EnsureCertificate(trainee.ID, *trainee.CompanyID); err != nil {
			log.Printf("[ELIGIBILITY-SWEEP] Check failed for user %d: %v", trainee.ID, err)
			continue
		}
	}

	log.Printf("[ELIGIBILITY-SWEEP] Sweep finished, %d trainees checked", len(trainees))
}
