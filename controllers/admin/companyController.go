package adminController

import (
	"trainport/database"
	"trainport/middleware"
	"trainport/models"
	trainingModels "trainport/models/training"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateCompany creates a tenant. Admin only.
func CreateCompany(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCompany").(*struct {
		Name    string `json:"name"`
		LogoURL string `json:"logo_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	if err := db.Where("name = ? AND is_deleted = ?", reqData.Name, false).First(&models.Company{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Company with this name already exists!", nil)
	}

	company := models.Company{Name: reqData.Name, LogoURL: reqData.LogoURL}
	if err := db.Create(&company).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create company!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Company created successfully!", company)
}

// ListCompanies returns all active companies with their module counts.
func ListCompanies(c *fiber.Ctx) error {
	db := database.Database.Db

	var companies []models.Company
	if err := db.Where("is_deleted = ?", false).Order("name asc").Find(&companies).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch companies!", nil)
	}

	type companyRow struct {
		models.Company
		ModuleCount  int64 `json:"module_count"`
		TraineeCount int64 `json:"trainee_count"`
	}
	rows := make([]companyRow, len(companies))
	for i, company := range companies {
		rows[i].Company = company
		db.Model(&trainingModels.Module{}).
			Where("company_id = ? AND is_deleted = ?", company.ID, false).
			Count(&rows[i].ModuleCount)
		db.Model(&models.User{}).
			Where("company_id = ? AND role = ? AND is_deleted = ?", company.ID, models.RoleTrainee, false).
			Count(&rows[i].TraineeCount)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Companies fetched successfully!", fiber.Map{
		"companies": rows,
		"total":     len(rows),
	})
}

// UpdateCompany updates name/logo.
func UpdateCompany(c *fiber.Ctx) error {
	companyID := c.Locals("companyID").(uint)
	reqData, ok := c.Locals("validatedCompany").(*struct {
		Name    string `json:"name"`
		LogoURL string `json:"logo_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var company models.Company
	if err := db.Where("id = ? AND is_deleted = ?", companyID, false).First(&company).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Company not found!", nil)
	}

	company.Name = reqData.Name
	if reqData.LogoURL != "" {
		company.LogoURL = reqData.LogoURL
	}
	if err := db.Save(&company).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update company!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Company updated successfully!", company)
}

// DeleteCompany removes a tenant and all dependent entities: modules and
// their content, trainee progress, answers and certificates. One
// transaction, so a partial cascade never survives.
func DeleteCompany(c *fiber.Ctx) error {
	companyID := c.Locals("companyID").(uint)

	db := database.Database.Db

	var company models.Company
	if err := db.Where("id = ? AND is_deleted = ?", companyID, false).First(&company).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Company not found!", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var moduleIDs []uint
		if err := tx.Model(&trainingModels.Module{}).
			Where("company_id = ?", companyID).Pluck("id", &moduleIDs).Error; err != nil {
			return err
		}

		if len(moduleIDs) > 0 {
			if err := tx.Unscoped().Where("module_id IN ?", moduleIDs).Delete(&trainingModels.ProgressRecord{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("module_id IN ?", moduleIDs).Delete(&trainingModels.MCQAnswer{}).Error; err != nil {
				return err
			}
			for _, model := range []interface{}{
				&trainingModels.MCQ{}, &trainingModels.Video{}, &trainingModels.Resource{},
			} {
				if err := tx.Model(model).Where("module_id IN ?", moduleIDs).
					Update("is_deleted", true).Error; err != nil {
					return err
				}
			}
			if err := tx.Model(&trainingModels.Module{}).Where("company_id = ?", companyID).
				Update("is_deleted", true).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&trainingModels.Certificate{}).
			Where("company_id = ?", companyID).Update("is_active", false).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("company_id = ?", companyID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&company).Update("is_deleted", true).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete company!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Company and all dependent data removed.", nil)
}
