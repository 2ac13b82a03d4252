package training

import (
	"errors"
	"fmt"

	"trainport/models"
	trainingModels "trainport/models/training"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepository is the persistence contract for per-(user, module)
// progress state.
type ProgressRepository interface {
	FindByUser(userID uint) ([]trainingModels.ProgressRecord, error)
	FindByUserAndModule(userID, moduleID uint) (*trainingModels.ProgressRecord, error)
	// CreateMany inserts with skip-duplicate semantics on (user, module),
	// so concurrent enrollment calls never error on the same row.
	CreateMany(records []trainingModels.ProgressRecord) error
	UpdateByUserAndModule(userID, moduleID uint, patch map[string]interface{}) error
	DeleteByUser(userID uint) error
	CountPassedInCompany(userID, companyID uint) (int64, error)
}

// ModuleRepository reads the per-company module catalog.
type ModuleRepository interface {
	// ListByCompany returns the catalog ordered by OrderIndex.
	ListByCompany(companyID uint) ([]trainingModels.Module, error)
	FindByID(moduleID uint) (*trainingModels.Module, error)
	CountByCompany(companyID uint) (int64, error)
}

// MCQRepository reads quiz questions.
type MCQRepository interface {
	ListByModule(moduleID uint) ([]trainingModels.MCQ, error)
}

// AnswerRepository persists graded quiz answers.
type AnswerRepository interface {
	DeleteByUserAndModule(userID, moduleID uint) error
	CreateMany(answers []trainingModels.MCQAnswer) error
}

// CertificateRepository persists issued certificates.
type CertificateRepository interface {
	FindActiveByUserAndCompany(userID, companyID uint) (*trainingModels.Certificate, error)
	Create(cert *trainingModels.Certificate) error
}

// UserRepository reads trainees for enrollment fan-out and moves them
// between companies.
type UserRepository interface {
	FindByID(userID uint) (*models.User, error)
	ListTraineesByCompany(companyID uint) ([]models.User, error)
	AssignCompany(userID, companyID uint) error
}

// Store bundles the repositories and provides transaction scoping. Every
// learner-facing mutation runs inside a single Transaction call.
type Store interface {
	Progress() ProgressRepository
	Modules() ModuleRepository
	MCQs() MCQRepository
	Answers() AnswerRepository
	Certificates() CertificateRepository
	Users() UserRepository
	Transaction(fn func(Store) error) error
}

// NewStore returns the gorm-backed Store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

type gormStore struct {
	db *gorm.DB
}

func (s *gormStore) Progress() ProgressRepository       { return &gormProgressRepo{db: s.db} }
func (s *gormStore) Modules() ModuleRepository          { return &gormModuleRepo{db: s.db} }
func (s *gormStore) MCQs() MCQRepository                { return &gormMCQRepo{db: s.db} }
func (s *gormStore) Answers() AnswerRepository          { return &gormAnswerRepo{db: s.db} }
func (s *gormStore) Certificates() CertificateRepository { return &gormCertificateRepo{db: s.db} }
func (s *gormStore) Users() UserRepository              { return &gormUserRepo{db: s.db} }

func (s *gormStore) Transaction(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

type gormProgressRepo struct {
	db *gorm.DB
}

func (r *gormProgressRepo) FindByUser(userID uint) ([]trainingModels.ProgressRecord, error) {
	var records []trainingModels.ProgressRecord
	if err := r.db.Where("user_id = ?", userID).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("fetch progress for user %d: %w", userID, err)
	}
	return records, nil
}

func (r *gormProgressRepo) FindByUserAndModule(userID, moduleID uint) (*trainingModels.ProgressRecord, error) {
	var record trainingModels.ProgressRecord
	err := r.db.Where("user_id = ? AND module_id = ?", userID, moduleID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch progress for user %d module %d: %w", userID, moduleID, err)
	}
	return &record, nil
}

func (r *gormProgressRepo) CreateMany(records []trainingModels.ProgressRecord) error {
	if len(records) == 0 {
		return nil
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "module_id"}},
		DoNothing: true,
	}).Create(&records).Error
	if err != nil {
		return fmt.Errorf("insert progress records: %w", err)
	}
	return nil
}

func (r *gormProgressRepo) UpdateByUserAndModule(userID, moduleID uint, patch map[string]interface{}) error {
	err := r.db.Model(&trainingModels.ProgressRecord{}).
		Where("user_id = ? AND module_id = ?", userID, moduleID).
		Updates(patch).Error
	if err != nil {
		return fmt.Errorf("update progress for user %d module %d: %w", userID, moduleID, err)
	}
	return nil
}

func (r *gormProgressRepo) DeleteByUser(userID uint) error {
	err := r.db.Unscoped().Where("user_id = ?", userID).
		Delete(&trainingModels.ProgressRecord{}).Error
	if err != nil {
		return fmt.Errorf("delete progress for user %d: %w", userID, err)
	}
	return nil
}

func (r *gormProgressRepo) CountPassedInCompany(userID, companyID uint) (int64, error) {
	var count int64
	err := r.db.Model(&trainingModels.ProgressRecord{}).
		Joins("JOIN modules ON modules.id = progress_records.module_id").
		Where("progress_records.user_id = ? AND progress_records.pass = ?", userID, true).
		Where("modules.company_id = ? AND modules.is_deleted = ?", companyID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count passed modules for user %d company %d: %w", userID, companyID, err)
	}
	return count, nil
}

type gormModuleRepo struct {
	db *gorm.DB
}

func (r *gormModuleRepo) ListByCompany(companyID uint) ([]trainingModels.Module, error) {
	var modules []trainingModels.Module
	err := r.db.Where("company_id = ? AND is_deleted = ?", companyID, false).
		Order("order_index asc").Find(&modules).Error
	if err != nil {
		return nil, fmt.Errorf("list modules for company %d: %w", companyID, err)
	}
	return modules, nil
}

func (r *gormModuleRepo) FindByID(moduleID uint) (*trainingModels.Module, error) {
	var module trainingModels.Module
	err := r.db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch module %d: %w", moduleID, err)
	}
	return &module, nil
}

func (r *gormModuleRepo) CountByCompany(companyID uint) (int64, error) {
	var count int64
	err := r.db.Model(&trainingModels.Module{}).
		Where("company_id = ? AND is_deleted = ?", companyID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count modules for company %d: %w", companyID, err)
	}
	return count, nil
}

type gormMCQRepo struct {
	db *gorm.DB
}

func (r *gormMCQRepo) ListByModule(moduleID uint) ([]trainingModels.MCQ, error) {
	var mcqs []trainingModels.MCQ
	err := r.db.Where("module_id = ? AND is_deleted = ?", moduleID, false).
		Order("id asc").Find(&mcqs).Error
	if err != nil {
		return nil, fmt.Errorf("list questions for module %d: %w", moduleID, err)
	}
	return mcqs, nil
}

type gormAnswerRepo struct {
	db *gorm.DB
}

func (r *gormAnswerRepo) DeleteByUserAndModule(userID, moduleID uint) error {
	err := r.db.Unscoped().Where("user_id = ? AND module_id = ?", userID, moduleID).
		Delete(&trainingModels.MCQAnswer{}).Error
	if err != nil {
		return fmt.Errorf("delete answers for user %d module %d: %w", userID, moduleID, err)
	}
	return nil
}

func (r *gormAnswerRepo) CreateMany(answers []trainingModels.MCQAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	if err := r.db.Create(&answers).Error; err != nil {
		return fmt.Errorf("insert answers: %w", err)
	}
	return nil
}

type gormCertificateRepo struct {
	db *gorm.DB
}

func (r *gormCertificateRepo) FindActiveByUserAndCompany(userID, companyID uint) (*trainingModels.Certificate, error) {
	var cert trainingModels.Certificate
	err := r.db.Where("user_id = ? AND company_id = ? AND is_active = ?", userID, companyID, true).
		First(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch certificate for user %d company %d: %w", userID, companyID, err)
	}
	return &cert, nil
}

func (r *gormCertificateRepo) Create(cert *trainingModels.Certificate) error {
	if err := r.db.Create(cert).Error; err != nil {
		return fmt.Errorf("insert certificate: %w", err)
	}
	return nil
}

type gormUserRepo struct {
	db *gorm.DB
}

func (r *gormUserRepo) FindByID(userID uint) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch user %d: %w", userID, err)
	}
	return &user, nil
}

func (r *gormUserRepo) ListTraineesByCompany(companyID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("company_id = ? AND role = ? AND is_deleted = ?", companyID, models.RoleTrainee, false).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list trainees for company %d: %w", companyID, err)
	}
	return users, nil
}

func (r *gormUserRepo) AssignCompany(userID, companyID uint) error {
	err := r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("company_id", companyID).Error
	if err != nil {
		return fmt.Errorf("assign user %d to company %d: %w", userID, companyID, err)
	}
	return nil
}
