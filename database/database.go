package database

import (
	"fmt"
	"log"

	"trainport/config"
	"trainport/models"
	trainingModels "trainport/models/training"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a connection to PostgreSQL
func ConnectDb() {
	cfg := config.AppConfig

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	if err := RunMigrations(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	Database = DbInstance{Db: db}
}

// RunMigrations performs schema migrations. Also used by tests against
// an in-memory database.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running Migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.OTP{},
		&trainingModels.Module{},
		&trainingModels.Video{},
		&trainingModels.Resource{},
		&trainingModels.MCQ{},
		&trainingModels.MCQAnswer{},
		&trainingModels.ProgressRecord{},
		&trainingModels.Certificate{},
	); err != nil {
		return err
	}

	// At most one active certificate per (user, company). Concurrent
	// eligibility checks race on insert; the second must hit this index.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_certificates_user_company_active
		 ON certificates (user_id, company_id) WHERE is_active`,
	).Error; err != nil {
		return err
	}

	log.Println("Migrations completed successfully.")
	return nil
}
