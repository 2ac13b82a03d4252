package controllers

import (
	"trainport/database"
	"trainport/middleware"
	"trainport/models"
	trainingModels "trainport/models/training"
	"trainport/utils"

	"github.com/gofiber/fiber/v2"
)

// GetDashboard returns the trainee's module list with derived unlock
// state and overall progress.
func GetDashboard(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	overview, err := service.BuildProgressOverview(user.ID, *user.CompanyID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", overview)
}

// GetModuleDetail returns one module's content: video, resources and quiz
// questions with answers stripped. Locked modules are refused.
func GetModuleDetail(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)
	moduleID := c.Locals("moduleID").(uint)

	db := database.Database.Db

	var module trainingModels.Module
	if err := db.Where("id = ? AND company_id = ? AND is_deleted = ?", moduleID, *user.CompanyID, false).
		First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	unlocked, err := service.IsModuleUnlocked(user.ID, &module)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !unlocked {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Complete the previous module to unlock this one!", nil)
	}

	var video trainingModels.Video
	hasVideo := db.Where("module_id = ? AND is_deleted = ?", module.ID, false).First(&video).Error == nil

	var resources []trainingModels.Resource
	db.Where("module_id = ? AND is_deleted = ?", module.ID, false).Find(&resources)

	mcqs, err := service.Store().MCQs().ListByModule(module.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	// Strip answers and explanations before handing questions to trainees.
	type questionView struct {
		ID       uint     `json:"id"`
		Question string   `json:"question"`
		Options  []string `json:"options"`
	}
	questions := make([]questionView, len(mcqs))
	for i, mcq := range mcqs {
		questions[i] = questionView{ID: mcq.ID, Question: mcq.Question, Options: []string(mcq.Options)}
	}

	result := fiber.Map{
		"module":    module,
		"resources": resources,
		"questions": questions,
	}
	if hasVideo {
		result["video"] = video
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module fetched successfully!", result)
}

// CompleteVideo marks a video-only module as completed. For quiz-bearing
// modules the response tells the trainee to submit the quiz instead.
func CompleteVideo(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)
	moduleID := c.Locals("moduleID").(uint)

	result, err := service.CompleteVideo(user.ID, moduleID)
	if err != nil {
		return respondServiceError(c, err)
	}

	if result.QuizRequired {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz required: submit the module quiz to complete this module.", result)
	}

	if result.Certificate != nil {
		go utils.PostEvent("training.completed", map[string]interface{}{
			"user_id":            user.ID,
			"company_id":         *user.CompanyID,
			"certificate_number": result.Certificate.CertificateNumber,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module completed!", result)
}

// SubmitQuiz grades the trainee's quiz answers for a module.
func SubmitQuiz(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)
	moduleID := c.Locals("moduleID").(uint)
	answers := c.Locals("validatedAnswers").(map[uint]string)

	result, err := service.SubmitQuiz(user.ID, moduleID, answers)
	if err != nil {
		return respondServiceError(c, err)
	}

	if result.Certificate != nil {
		go utils.PostEvent("training.completed", map[string]interface{}{
			"user_id":            user.ID,
			"company_id":         *user.CompanyID,
			"certificate_number": result.Certificate.CertificateNumber,
		})
	}

	message := "Quiz submitted! You need 70% to pass."
	if result.Pass {
		message = "Quiz passed!"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, result)
}

// UpdateTimeSpent records the seconds a trainee has spent on a module.
func UpdateTimeSpent(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)
	moduleID := c.Locals("moduleID").(uint)
	seconds := c.Locals("validatedTimeSpent").(int64)

	if err := service.UpdateTimeSpent(user.ID, moduleID, seconds); err != nil {
		return respondServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Time tracked!", nil)
}

// GetMyCertificates lists the trainee's certificates.
func GetMyCertificates(c *fiber.Ctx) error {
	user := c.Locals("currentUser").(*models.User)

	var certificates []trainingModels.Certificate
	err := database.Database.Db.
		Where("user_id = ? AND is_active = ?", user.ID, true).
		Order("completed_at desc").Find(&certificates).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certificates,
		"total":        len(certificates),
	})
}
