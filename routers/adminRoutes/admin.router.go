package adminRoutes

import (
	adminController "trainport/controllers/admin"
	"trainport/middleware"
	"trainport/models"
	adminValidator "trainport/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up company, catalog and trainee management routes
func SetupAdminRoutes(app *fiber.App) {
	// Company management is admin only
	companies := app.Group("/admin/companies", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))
	companies.Post("/", adminValidator.CreateCompany(), adminController.CreateCompany)
	companies.Get("/", adminController.ListCompanies)
	companies.Put("/:company_id", adminValidator.CompanyParam(), adminValidator.CreateCompany(), adminController.UpdateCompany)
	companies.Delete("/:company_id", adminValidator.CompanyParam(), adminController.DeleteCompany)

	// Catalog and trainee management is open to managers as well
	manage := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin, models.RoleManager))

	manage.Post("/modules", adminValidator.CreateModule(), adminController.CreateModule)
	manage.Get("/companies/:company_id/modules", adminValidator.CompanyParam(), adminController.ListModules)
	manage.Put("/modules/:module_id", adminValidator.ModuleParam(), adminValidator.CreateModule(), adminController.UpdateModule)
	manage.Delete("/modules/:module_id", adminValidator.ModuleParam(), adminController.DeleteModule)

	manage.Post("/modules/:module_id/mcqs", adminValidator.ModuleParam(), adminValidator.CreateMCQ(), adminController.CreateMCQ)
	manage.Delete("/mcqs/:mcq_id", adminValidator.MCQParam(), adminController.DeleteMCQ)
	manage.Put("/modules/:module_id/video", adminValidator.ModuleParam(), adminController.AttachVideo)

	manage.Get("/companies/:company_id/trainees", adminValidator.CompanyParam(), adminController.ListTrainees)
	manage.Post("/trainees/:trainee_id/approve", adminValidator.TraineeParam(), adminController.ApproveTrainee)
	manage.Post("/trainees/:trainee_id/reassign", adminValidator.TraineeParam(), adminValidator.Reassign(), adminController.ReassignTrainee)
	manage.Get("/companies/:company_id/progress-report", adminValidator.CompanyParam(), adminController.CompanyProgressReport)
}
