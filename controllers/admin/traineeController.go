package adminController

import (
	"log"

	"trainport/database"
	"trainport/middleware"
	"trainport/models"
	"trainport/utils"

	"github.com/gofiber/fiber/v2"
)

// ListTrainees returns the trainees of a company with approval state.
func ListTrainees(c *fiber.Ctx) error {
	companyID := c.Locals("companyID").(uint)

	var trainees []models.User
	err := database.Database.Db.
		Where("company_id = ? AND role = ? AND is_deleted = ?", companyID, models.RoleTrainee, false).
		Order("created_at desc").Find(&trainees).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch trainees!", nil)
	}

	for i := range trainees {
		trainees[i].Password = ""
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Trainees fetched successfully!", fiber.Map{
		"trainees": trainees,
		"total":    len(trainees),
	})
}

// ApproveTrainee opens the portal for a pending trainee and enrolls them
// into every module of their company. Enrollment is idempotent, so
// re-approving is harmless.
func ApproveTrainee(c *fiber.Ctx) error {
	traineeID := c.Locals("traineeID").(uint)

	db := database.Database.Db

	var trainee models.User
	if err := db.Where("id = ? AND role = ? AND is_deleted = ?", traineeID, models.RoleTrainee, false).
		First(&trainee).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Trainee not found!", nil)
	}
	if trainee.CompanyID == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Trainee has no company assigned!", nil)
	}

	trainee.IsApproved = true
	if err := db.Save(&trainee).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve trainee!", nil)
	}

	created, err := service.EnrollTrainee(trainee.ID, *trainee.CompanyID)
	if err != nil {
		log.Printf("[ADMIN] enrollment after approval failed for user %d: %v", trainee.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Approved, but enrollment failed!", nil)
	}

	go utils.SendApprovalEmail(trainee.Email, trainee.Name)
	go utils.PostEvent("trainee.approved", map[string]interface{}{
		"user_id":    trainee.ID,
		"company_id": *trainee.CompanyID,
	})

	trainee.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Trainee approved and enrolled!", fiber.Map{
		"trainee":          trainee,
		"modules_enrolled": created,
	})
}

// ReassignTrainee moves a trainee to another company. All prior progress
// is discarded. This is deliberate and destructive, and only this
// endpoint may trigger it.
func ReassignTrainee(c *fiber.Ctx) error {
	traineeID := c.Locals("traineeID").(uint)
	reqData := c.Locals("validatedReassign").(*struct {
		NewCompanyID uint `json:"new_company_id"`
		Confirm      bool `json:"confirm"`
	})

	if !reqData.Confirm {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
			"Reassignment discards all existing progress. Pass confirm=true to proceed.", nil)
	}

	db := database.Database.Db

	var trainee models.User
	if err := db.Where("id = ? AND role = ? AND is_deleted = ?", traineeID, models.RoleTrainee, false).
		First(&trainee).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Trainee not found!", nil)
	}

	var company models.Company
	if err := db.Where("id = ? AND is_deleted = ?", reqData.NewCompanyID, false).First(&company).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Company not found!", nil)
	}

	if trainee.CompanyID != nil && *trainee.CompanyID == company.ID {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Trainee is already assigned to this company!", nil)
	}

	// Progress move and company pointer update commit together inside
	// the service transaction.
	created, err := service.ReassignTrainee(trainee.ID, company.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, err.Error(), nil)
	}

	trainee.CompanyID = &company.ID
	trainee.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Trainee reassigned. Prior progress discarded.", fiber.Map{
		"trainee":          trainee,
		"modules_enrolled": created,
	})
}

// CompanyProgressReport aggregates every trainee's progress for a company.
func CompanyProgressReport(c *fiber.Ctx) error {
	companyID := c.Locals("companyID").(uint)

	db := database.Database.Db

	var trainees []models.User
	err := db.Where("company_id = ? AND role = ? AND is_deleted = ?", companyID, models.RoleTrainee, false).
		Find(&trainees).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch trainees!", nil)
	}

	type traineeReport struct {
		UserID         uint   `json:"user_id"`
		Name           string `json:"name"`
		Email          string `json:"email"`
		IsApproved     bool   `json:"is_approved"`
		OverallPercent int    `json:"overall_percent"`
		PassedModules  int    `json:"passed_modules"`
		TotalModules   int    `json:"total_modules"`
	}

	reports := make([]traineeReport, 0, len(trainees))
	for _, trainee := range trainees {
		overview, err := service.BuildProgressOverview(trainee.ID, companyID)
		if err != nil {
			log.Printf("[ADMIN] progress report failed for user %d: %v", trainee.ID, err)
			continue
		}
		reports = append(reports, traineeReport{
			UserID:         trainee.ID,
			Name:           trainee.Name,
			Email:          trainee.Email,
			IsApproved:     trainee.IsApproved,
			OverallPercent: overview.OverallPercent,
			PassedModules:  overview.PassedModules,
			TotalModules:   overview.TotalModules,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress report generated!", fiber.Map{
		"company_id": companyID,
		"trainees":   reports,
		"total":      len(reports),
	})
}
