package training

import (
	"testing"

	"trainport/models"
	trainingModels "trainport/models/training"

	"github.com/stretchr/testify/require"
)

func TestEnrollTrainee_Idempotent(t *testing.T) {
	svc, db := newTestService(t)
	company := createCompany(t, db, "Acme")
	for i := 1; i <= 3; i++ {
		createModule(t, db, company.ID, i, false)
	}
	user := createTrainee(t, db, company.ID, "trainee@acme.test")

	created, err := svc.EnrollTrainee(user.ID, company.ID)
	require.NoError(t, err)
	require.Equal(t, 3, created)

	created, err = svc.EnrollTrainee(user.ID, company.ID)
	require.NoError(t, err)
	require.Zero(t, created, "second call creates no rows")

	var rows int64
	require.NoError(t, db.Model(&trainingModels.ProgressRecord{}).
		Where("user_id = ?", user.ID).Count(&rows).Error)
	require.EqualValues(t, 3, rows)
}

func TestEnrollTrainee_PreservesExistingProgress(t *testing.T) {
	svc, db := newTestService(t)
	company := createCompany(t, db, "Acme")
	first := createModule(t, db, company.ID, 1, false)
	user := createTrainee(t, db, company.ID, "trainee@acme.test")

	_, err := svc.EnrollTrainee(user.ID, company.ID)
	require.NoError(t, err)
	_, err = svc.CompleteVideo(user.ID, first.ID)
	require.NoError(t, err)

	// A new module appears; re-sync must only add the missing row.
	createModule(t, db, company.ID, 2, false)
	created, err := svc.EnrollTrainee(user.ID, company.ID)
	require.NoError(t, err)
	require.Equal(t, 1, created)

	record := progressFor(t, db, user.ID, first.ID)
	require.True(t, record.Completed, "existing progress survives re-enrollment")
}

func TestEnrollTrainee_EmptyCatalog(t *testing.T) {
	svc, db := newTestService(t)
	company := createCompany(t, db, "Empty Co")
	user := createTrainee(t, db, company.ID, "trainee@empty.test")

	created, err := svc.EnrollTrainee(user.ID, company.ID)
	require.NoError(t, err)
	require.Zero(t, created)

	overview, err := svc.BuildProgressOverview(user.ID, company.ID)
	require.NoError(t, err)
	require.Empty(t, overview.Modules)
	require.Zero(t, overview.OverallPercent)
}

func TestEnrollAllTraineesInModule(t *testing.T) {
	svc, db := newTestService(t)
	company := createCompany(t, db, "Acme")
	existing := createModule(t, db, company.ID, 1, false)
	alice := createTrainee(t, db, company.ID, "alice@acme.test")
	bob := createTrainee(t, db, company.ID, "bob@acme.test")
	for _, u := range []uint{alice.ID, bob.ID} {
		_, err := svc.EnrollTrainee(u, company.ID)
		require.NoError(t, err)
	}
	_ = existing

	added := createModule(t, db, company.ID, 2, false)
	created, err := svc.EnrollAllTraineesInModule(added.ID, company.ID)
	require.NoError(t, err)
	require.Equal(t, 2, created)

	// Repeat run is absorbed by the uniqueness constraint.
	_, err = svc.EnrollAllTraineesInModule(added.ID, company.ID)
	require.NoError(t, err)

	var rows int64
	require.NoError(t, db.Model(&trainingModels.ProgressRecord{}).
		Where("module_id = ?", added.ID).Count(&rows).Error)
	require.EqualValues(t, 2, rows)
}

func TestEnrollAllTraineesInModule_UnknownModule(t *testing.T) {
	svc, db := newTestService(t)
	company := createCompany(t, db, "Acme")

	_, err := svc.EnrollAllTraineesInModule(42, company.ID)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestReassignTrainee_DiscardsPriorProgress(t *testing.T) {
	svc, db := newTestService(t)
	oldCo := createCompany(t, db, "Old Co")
	oldModule := createModule(t, db, oldCo.ID, 1, false)
	newCo := createCompany(t, db, "New Co")
	createModule(t, db, newCo.ID, 1, false)
	createModule(t, db, newCo.ID, 2, false)
	user := createTrainee(t, db, oldCo.ID, "trainee@old.test")

	_, err := svc.EnrollTrainee(user.ID, oldCo.ID)
	require.NoError(t, err)
	_, err = svc.CompleteVideo(user.ID, oldModule.ID)
	require.NoError(t, err)

	created, err := svc.ReassignTrainee(user.ID, newCo.ID)
	require.NoError(t, err)
	require.Equal(t, 2, created)

	var records []trainingModels.ProgressRecord
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&records).Error)
	require.Len(t, records, 2)
	for _, rec := range records {
		require.NotEqual(t, oldModule.ID, rec.ModuleID)
		require.False(t, rec.Completed, "reassignment starts from scratch")
	}

	// The company pointer moves in the same transaction as the progress.
	var reassigned models.User
	require.NoError(t, db.First(&reassigned, user.ID).Error)
	require.NotNil(t, reassigned.CompanyID)
	require.Equal(t, newCo.ID, *reassigned.CompanyID)
}

func TestBuildProgressOverview_UnlockSequence(t *testing.T) {
	svc, db := newTestService(t)
	company := createCompany(t, db, "Acme")
	first := createModule(t, db, company.ID, 1, false)
	createModule(t, db, company.ID, 2, false)
	resource := createModule(t, db, company.ID, 3, true)
	user := createTrainee(t, db, company.ID, "trainee@acme.test")
	_, err := svc.EnrollTrainee(user.ID, company.ID)
	require.NoError(t, err)

	overview, err := svc.BuildProgressOverview(user.ID, company.ID)
	require.NoError(t, err)
	require.Len(t, overview.Modules, 3)
	require.True(t, overview.Modules[0].Unlocked)
	require.False(t, overview.Modules[1].Unlocked)
	require.True(t, overview.Modules[2].Unlocked, "resource module bypasses gating")
	require.Zero(t, overview.OverallPercent)
	_ = resource

	_, err = svc.CompleteVideo(user.ID, first.ID)
	require.NoError(t, err)

	overview, err = svc.BuildProgressOverview(user.ID, company.ID)
	require.NoError(t, err)
	require.True(t, overview.Modules[1].Unlocked, "passing the first module unlocks the second")
	require.Equal(t, 33, overview.OverallPercent)
}
