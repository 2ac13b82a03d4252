package training

import (
	"testing"

	trainingModels "trainport/models/training"

	"github.com/stretchr/testify/require"
)

func TestIsEligible_ZeroModulesNeverEligible(t *testing.T) {
	svc, db := newTestService(t)
	company := createCompany(t, db, "Empty Co")
	user := createTrainee(t, db, company.ID, "trainee@empty.test")

	eligible, err := svc.IsEligible(user.ID, company.ID)
	require.NoError(t, err)
	require.False(t, eligible)
}

func TestIsEligible_RequiresEveryModulePassed(t *testing.T) {
	svc, db := newTestService(t)
	company := createCompany(t, db, "Acme")
	first := createModule(t, db, company.ID, 1, false)
	second := createModule(t, db, company.ID, 2, false)
	user := createTrainee(t, db, company.ID, "trainee@acme.test")
	_, err := svc.EnrollTrainee(user.ID, company.ID)
	require.NoError(t, err)

	_, err = svc.CompleteVideo(user.ID, first.ID)
	require.NoError(t, err)

	eligible, err := svc.IsEligible(user.ID, company.ID)
	require.NoError(t, err)
	require.False(t, eligible)

	_, err = svc.CompleteVideo(user.ID, second.ID)
	require.NoError(t, err)

	eligible, err = svc.IsEligible(user.ID, company.ID)
	require.NoError(t, err)
	require.True(t, eligible)
}

func TestEnsureCertificate_NotEligibleIsNil(t *testing.T) {
	svc, db := newTestService(t)
	company := createCompany(t, db, "Acme")
	createModule(t, db, company.ID, 1, false)
	user := createTrainee(t, db, company.ID, "trainee@acme.test")
	_, err := svc.EnrollTrainee(user.ID, company.ID)
	require.NoError(t, err)

	cert, err := svc.EnsureCertificate(user.ID, company.ID)
	require.NoError(t, err)
	require.Nil(t, cert)
}

func TestCertificate_IssuedOnFinalPassExactlyOnce(t *testing.T) {
	svc, db := newTestService(t)
	company := createCompany(t, db, "Acme")
	video := createModule(t, db, company.ID, 1, false)
	quiz := createModule(t, db, company.ID, 2, false)
	q := createMCQ(t, db, quiz.ID, "Q?", "A", "A", "B")
	user := createTrainee(t, db, company.ID, "trainee@acme.test")
	_, err := svc.EnrollTrainee(user.ID, company.ID)
	require.NoError(t, err)

	videoResult, err := svc.CompleteVideo(user.ID, video.ID)
	require.NoError(t, err)
	require.Nil(t, videoResult.Certificate, "not eligible until every module passed")

	quizResult, err := svc.SubmitQuiz(user.ID, quiz.ID, map[uint]string{q.ID: "A"})
	require.NoError(t, err)
	require.True(t, quizResult.Pass)
	require.NotNil(t, quizResult.Certificate, "final pass triggers issuance")

	// Re-checks return the same certificate, never a second one.
	for i := 0; i < 3; i++ {
		cert, err := svc.EnsureCertificate(user.ID, company.ID)
		require.NoError(t, err)
		require.NotNil(t, cert)
		require.Equal(t, quizResult.Certificate.CertificateNumber, cert.CertificateNumber)
	}

	var rows int64
	require.NoError(t, db.Model(&trainingModels.Certificate{}).
		Where("user_id = ? AND company_id = ? AND is_active = ?", user.ID, company.ID, true).
		Count(&rows).Error)
	require.EqualValues(t, 1, rows)
}

func TestCertificate_ResubmissionAfterIssuanceKeepsSingleCertificate(t *testing.T) {
	svc, db := newTestService(t)
	company := createCompany(t, db, "Acme")
	quiz := createModule(t, db, company.ID, 1, false)
	q := createMCQ(t, db, quiz.ID, "Q?", "A", "A", "B")
	user := createTrainee(t, db, company.ID, "trainee@acme.test")
	_, err := svc.EnrollTrainee(user.ID, company.ID)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		result, err := svc.SubmitQuiz(user.ID, quiz.ID, map[uint]string{q.ID: "A"})
		require.NoError(t, err)
		require.NotNil(t, result.Certificate)
	}

	var rows int64
	require.NoError(t, db.Model(&trainingModels.Certificate{}).
		Where("user_id = ? AND company_id = ?", user.ID, company.ID).
		Count(&rows).Error)
	require.EqualValues(t, 1, rows)
}

func TestEnsureCertificate_NotifyHookFiresOnceOnIssue(t *testing.T) {
	svc, db := newTestService(t)
	company := createCompany(t, db, "Acme")
	module := createModule(t, db, company.ID, 1, false)
	user := createTrainee(t, db, company.ID, "trainee@acme.test")
	_, err := svc.EnrollTrainee(user.ID, company.ID)
	require.NoError(t, err)

	notified := make(chan *trainingModels.Certificate, 4)
	svc.NotifyIssued = func(cert *trainingModels.Certificate) { notified <- cert }

	result, err := svc.CompleteVideo(user.ID, module.ID)
	require.NoError(t, err)
	require.NotNil(t, result.Certificate)

	first := <-notified
	require.Equal(t, result.Certificate.CertificateNumber, first.CertificateNumber)

	// A later re-check finds the existing certificate and stays quiet.
	_, err = svc.EnsureCertificate(user.ID, company.ID)
	require.NoError(t, err)
	require.Empty(t, notified)
}
