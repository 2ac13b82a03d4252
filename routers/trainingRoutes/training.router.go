package trainingRoutes

import (
	trainingController "trainport/controllers/training"
	"trainport/middleware"
	trainingValidator "trainport/validators/training"

	"github.com/gofiber/fiber/v2"
)

// SetupTrainingRoutes sets up all trainee-facing routes
func SetupTrainingRoutes(app *fiber.App) {
	group := app.Group("/training", middleware.JWTMiddleware, middleware.RequireApprovedTrainee)

	// Dashboard with unlock state and overall progress
	group.Get("/dashboard", trainingController.GetDashboard)

	// Module content (gated on unlock)
	group.Get("/module/:module_id", trainingValidator.ModuleParam(), trainingController.GetModuleDetail)

	// Completion actions
	group.Post("/module/:module_id/complete", trainingValidator.ModuleParam(), trainingController.CompleteVideo)
	group.Post("/module/:module_id/quiz/submit", trainingValidator.ModuleParam(), trainingValidator.SubmitQuiz(), trainingController.SubmitQuiz)

	// Time tracking
	group.Put("/module/:module_id/time", trainingValidator.ModuleParam(), trainingValidator.TimeSpent(), trainingController.UpdateTimeSpent)

	// Certificates
	group.Get("/certificates", trainingController.GetMyCertificates)
}
