package main

import (
	"log"

	"trainport/config"
	adminController "trainport/controllers/admin"
	trainingController "trainport/controllers/training"
	"trainport/database"
	"trainport/models"
	trainingModels "trainport/models/training"
	adminRoutes "trainport/routers/adminRoutes"
	authRoutes "trainport/routers/authRoutes"
	trainingRoutes "trainport/routers/trainingRoutes"
	trainingService "trainport/services/training"
	"trainport/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// Domain core wiring
	store := trainingService.NewStore(database.Database.Db)
	service := trainingService.NewService(store, trainingService.NewIssuer(store))
	service.NotifyIssued = func(cert *trainingModels.Certificate) {
		var user models.User
		if err := database.Database.Db.First(&user, cert.UserID).Error; err != nil {
			log.Printf("Certificate notification lookup failed for user %d: %v", cert.UserID, err)
			return
		}
		utils.SendCertificateEmail(user.Email, user.Name, cert.CertificateNumber)
		utils.PostEvent("certificate.issued", map[string]interface{}{
			"user_id":            cert.UserID,
			"company_id":         cert.CompanyID,
			"certificate_number": cert.CertificateNumber,
		})
	}
	trainingController.Setup(service)
	adminController.Setup(service)

	utils.InitializeEligibilityScheduler(service)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve generated certificates and other static assets
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	trainingRoutes.SetupTrainingRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
