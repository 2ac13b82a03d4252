package training

import (
	"fmt"
	"testing"

	"trainport/database"
	"trainport/models"
	trainingModels "trainport/models/training"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestService spins up the full service against a private in-memory
// sqlite database with the production schema.
func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))

	store := NewStore(db)
	return NewService(store, NewIssuer(store)), db
}

func createCompany(t *testing.T, db *gorm.DB, name string) *models.Company {
	t.Helper()
	company := &models.Company{Name: name}
	require.NoError(t, db.Create(company).Error)
	return company
}

func createTrainee(t *testing.T, db *gorm.DB, companyID uint, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:       "Test Trainee",
		Email:      email,
		Password:   "x",
		Role:       models.RoleTrainee,
		CompanyID:  &companyID,
		IsApproved: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createModule(t *testing.T, db *gorm.DB, companyID uint, order int, resource bool) *trainingModels.Module {
	t.Helper()
	module := &trainingModels.Module{
		CompanyID:        companyID,
		Name:             fmt.Sprintf("Module %d", order),
		OrderIndex:       order,
		IsResourceModule: resource,
	}
	require.NoError(t, db.Create(module).Error)
	return module
}

func createMCQ(t *testing.T, db *gorm.DB, moduleID uint, question, answer string, options ...string) *trainingModels.MCQ {
	t.Helper()
	mcq := &trainingModels.MCQ{
		ModuleID: moduleID,
		Question: question,
		Options:  datatypes.NewJSONSlice(options),
		Answer:   answer,
	}
	require.NoError(t, db.Create(mcq).Error)
	return mcq
}

func progressFor(t *testing.T, db *gorm.DB, userID, moduleID uint) *trainingModels.ProgressRecord {
	t.Helper()
	var record trainingModels.ProgressRecord
	require.NoError(t, db.Where("user_id = ? AND module_id = ?", userID, moduleID).First(&record).Error)
	return &record
}
