package adminController

import (
	"errors"
	"log"

	"trainport/database"
	"trainport/middleware"
	"trainport/models"
	trainingModels "trainport/models/training"
	trainingService "trainport/services/training"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// service is wired once at startup from main.
var service *trainingService.Service

// Setup injects the training service used by the admin handlers.
func Setup(svc *trainingService.Service) {
	service = svc
}

// CreateModuleRequest is validated with struct tags before it reaches the
// handler.
type CreateModuleRequest struct {
	CompanyID        uint   `json:"company_id" validate:"required"`
	Name             string `json:"name" validate:"required,min=3"`
	Description      string `json:"description"`
	IsResourceModule bool   `json:"is_resource_module"`
}

// CreateModule appends a module to the end of a company's catalog and
// backfills a progress record for every existing trainee, keeping the
// order sequence dense.
func CreateModule(c *fiber.Ctx) error {
	reqData := c.Locals("validatedModule").(*CreateModuleRequest)

	db := database.Database.Db

	var company models.Company
	if err := db.Where("id = ? AND is_deleted = ?", reqData.CompanyID, false).First(&company).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Company not found!", nil)
	}

	module := trainingModels.Module{
		CompanyID:        reqData.CompanyID,
		Name:             reqData.Name,
		Description:      reqData.Description,
		IsResourceModule: reqData.IsResourceModule,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		// Append at the next dense order index.
		var count int64
		if err := tx.Model(&trainingModels.Module{}).
			Where("company_id = ? AND is_deleted = ?", reqData.CompanyID, false).
			Count(&count).Error; err != nil {
			return err
		}
		module.OrderIndex = int(count) + 1
		return tx.Create(&module).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	created, err := service.EnrollAllTraineesInModule(module.ID, module.CompanyID)
	if err != nil {
		log.Printf("[ADMIN] backfill for new module %d failed: %v", module.ID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", fiber.Map{
		"module":            module,
		"trainees_enrolled": created,
	})
}

// ListModules returns a company catalog in unlock order, with quiz sizes.
func ListModules(c *fiber.Ctx) error {
	companyID := c.Locals("companyID").(uint)

	modules, err := service.Store().Modules().ListByCompany(companyID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, err.Error(), nil)
	}

	db := database.Database.Db
	type moduleRow struct {
		trainingModels.Module
		QuestionCount int64 `json:"question_count"`
	}
	rows := make([]moduleRow, len(modules))
	for i, module := range modules {
		rows[i].Module = module
		db.Model(&trainingModels.MCQ{}).
			Where("module_id = ? AND is_deleted = ?", module.ID, false).
			Count(&rows[i].QuestionCount)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", fiber.Map{
		"modules": rows,
		"total":   len(rows),
	})
}

// UpdateModule edits name/description/resource flag. Order changes go
// through deletion/recreation, not ad-hoc renumbering.
func UpdateModule(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(uint)
	reqData := c.Locals("validatedModule").(*CreateModuleRequest)

	db := database.Database.Db

	var module trainingModels.Module
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	module.Name = reqData.Name
	module.Description = reqData.Description
	module.IsResourceModule = reqData.IsResourceModule
	if err := db.Save(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// DeleteModule removes a module, its content and all progress against it,
// then closes the gap in the order sequence so it stays dense.
func DeleteModule(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(uint)

	db := database.Database.Db

	var module trainingModels.Module
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		// Hard-delete progress so the (user, module) unique index never
		// trips over a soft-deleted leftover.
		if err := tx.Unscoped().Where("module_id = ?", module.ID).Delete(&trainingModels.ProgressRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("module_id = ?", module.ID).Delete(&trainingModels.MCQAnswer{}).Error; err != nil {
			return err
		}
		for _, model := range []interface{}{
			&trainingModels.MCQ{}, &trainingModels.Video{}, &trainingModels.Resource{},
		} {
			if err := tx.Model(model).Where("module_id = ?", module.ID).
				Update("is_deleted", true).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&module).Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&trainingModels.Module{}).
			Where("company_id = ? AND is_deleted = ? AND order_index > ?", module.CompanyID, false, module.OrderIndex).
			Update("order_index", gorm.Expr("order_index - 1")).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted and catalog resequenced.", nil)
}

// CreateMCQRequest is validated with struct tags; the answer must be one
// of the options, checked in the validator.
type CreateMCQRequest struct {
	Question    string   `json:"question" validate:"required,min=5"`
	Options     []string `json:"options" validate:"required,min=2,dive,required"`
	Answer      string   `json:"answer" validate:"required"`
	Explanation string   `json:"explanation"`
}

// CreateMCQ attaches a question to a module.
func CreateMCQ(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(uint)
	reqData := c.Locals("validatedMCQ").(*CreateMCQRequest)

	db := database.Database.Db

	var module trainingModels.Module
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	mcq := trainingModels.MCQ{
		ModuleID:    module.ID,
		Question:    reqData.Question,
		Options:     datatypes.NewJSONSlice(reqData.Options),
		Answer:      reqData.Answer,
		Explanation: reqData.Explanation,
	}
	if err := db.Create(&mcq).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question created successfully!", mcq)
}

// DeleteMCQ removes a question from a module.
func DeleteMCQ(c *fiber.Ctx) error {
	mcqID := c.Locals("mcqID").(uint)

	db := database.Database.Db

	var mcq trainingModels.MCQ
	if err := db.Where("id = ? AND is_deleted = ?", mcqID, false).First(&mcq).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	if err := db.Model(&mcq).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}

// AttachVideo sets or replaces the module's single video.
func AttachVideo(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(uint)
	reqData := new(struct {
		Title           string `json:"title"`
		URL             string `json:"url"`
		DurationSeconds int64  `json:"duration_seconds"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.URL == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var module trainingModels.Module
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var video trainingModels.Video
	err := db.Where("module_id = ?", module.ID).First(&video).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		video = trainingModels.Video{ModuleID: module.ID}
	}
	video.Title = reqData.Title
	video.URL = reqData.URL
	video.DurationSeconds = reqData.DurationSeconds
	video.IsDeleted = false
	if err := db.Save(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to attach video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video attached successfully!", video)
}
