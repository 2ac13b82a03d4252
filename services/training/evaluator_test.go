package training

import (
	"testing"

	trainingModels "trainport/models/training"

	"github.com/stretchr/testify/require"
)

func TestCompleteVideo_NoQuizAutoPass(t *testing.T) {
	svc, db := newTestService(t)
	company := createCompany(t, db, "Acme")
	module := createModule(t, db, company.ID, 1, false)
	user := createTrainee(t, db, company.ID, "trainee@acme.test")
	_, err := svc.EnrollTrainee(user.ID, company.ID)
	require.NoError(t, err)

	result, err := svc.CompleteVideo(user.ID, module.ID)
	require.NoError(t, err)
	require.False(t, result.QuizRequired)

	record := progressFor(t, db, user.ID, module.ID)
	require.True(t, record.Completed)
	require.True(t, record.Pass)
	require.NotNil(t, record.Score)
	require.Equal(t, 100, *record.Score)
}

func TestCompleteVideo_QuizBearingModuleStaysGated(t *testing.T) {
	svc, db := newTestService(t)
	company := createCompany(t, db, "Acme")
	module := createModule(t, db, company.ID, 1, false)
	createMCQ(t, db, module.ID, "Q1?", "A", "A", "B")
	user := createTrainee(t, db, company.ID, "trainee@acme.test")
	_, err := svc.EnrollTrainee(user.ID, company.ID)
	require.NoError(t, err)

	result, err := svc.CompleteVideo(user.ID, module.ID)
	require.NoError(t, err)
	require.True(t, result.QuizRequired)

	// No completion state must have changed.
	record := progressFor(t, db, user.ID, module.ID)
	require.False(t, record.Completed)
	require.False(t, record.Pass)
	require.Nil(t, record.Score)
}

func TestCompleteVideo_UnknownModule(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CompleteVideo(1, 999)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, uint(999), notFound.ID)
}

func TestSubmitQuiz_GradingDeterminism(t *testing.T) {
	svc, db := newTestService(t)
	company := createCompany(t, db, "Acme")
	module := createModule(t, db, company.ID, 1, false)
	q1 := createMCQ(t, db, module.ID, "Q1?", "A", "A", "B")
	q2 := createMCQ(t, db, module.ID, "Q2?", "B", "A", "B", "C")
	user := createTrainee(t, db, company.ID, "trainee@acme.test")
	_, err := svc.EnrollTrainee(user.ID, company.ID)
	require.NoError(t, err)

	result, err := svc.SubmitQuiz(user.ID, module.ID, map[uint]string{
		q1.ID: "A",
		q2.ID: "C",
	})
	require.NoError(t, err)
	require.Equal(t, 2, result.TotalQuestions)
	require.Equal(t, 1, result.CorrectAnswers)
	require.Equal(t, 50, result.Score)
	require.False(t, result.Pass)

	record := progressFor(t, db, user.ID, module.ID)
	require.True(t, record.Completed)
	require.False(t, record.Pass)
	require.Equal(t, 50, *record.Score)
}

func TestSubmitQuiz_ResubmissionIdempotent(t *testing.T) {
	svc, db := newTestService(t)
	company := createCompany(t, db, "Acme")
	module := createModule(t, db, company.ID, 1, false)
	q1 := createMCQ(t, db, module.ID, "Q1?", "A", "A", "B")
	q2 := createMCQ(t, db, module.ID, "Q2?", "B", "A", "B")
	user := createTrainee(t, db, company.ID, "trainee@acme.test")
	_, err := svc.EnrollTrainee(user.ID, company.ID)
	require.NoError(t, err)

	answers := map[uint]string{q1.ID: "A", q2.ID: "B"}
	for i := 0; i < 2; i++ {
		result, err := svc.SubmitQuiz(user.ID, module.ID, answers)
		require.NoError(t, err)
		require.Equal(t, 100, result.Score)
		require.True(t, result.Pass)

		var rows int64
		require.NoError(t, db.Model(&trainingModels.MCQAnswer{}).
			Where("user_id = ? AND module_id = ?", user.ID, module.ID).
			Count(&rows).Error)
		require.EqualValues(t, 2, rows, "exactly one answer row per question after each submission")
	}
}

func TestSubmitQuiz_MissingAnswerGradedIncorrect(t *testing.T) {
	svc, db := newTestService(t)
	company := createCompany(t, db, "Acme")
	module := createModule(t, db, company.ID, 1, false)
	q1 := createMCQ(t, db, module.ID, "Q1?", "A", "A", "B")
	q2 := createMCQ(t, db, module.ID, "Q2?", "B", "A", "B")
	user := createTrainee(t, db, company.ID, "trainee@acme.test")
	_, err := svc.EnrollTrainee(user.ID, company.ID)
	require.NoError(t, err)

	result, err := svc.SubmitQuiz(user.ID, module.ID, map[uint]string{q1.ID: "A"})
	require.NoError(t, err)
	require.Equal(t, 2, result.TotalQuestions)
	require.Equal(t, 1, result.CorrectAnswers)
	require.Equal(t, 50, result.Score)

	var skipped trainingModels.MCQAnswer
	require.NoError(t, db.Where("user_id = ? AND mcq_id = ?", user.ID, q2.ID).First(&skipped).Error)
	require.False(t, skipped.IsCorrect)
	require.Empty(t, skipped.SelectedOption)
}

func TestSubmitQuiz_NoQuestions(t *testing.T) {
	svc, db := newTestService(t)
	company := createCompany(t, db, "Acme")
	module := createModule(t, db, company.ID, 1, false)
	user := createTrainee(t, db, company.ID, "trainee@acme.test")
	_, err := svc.EnrollTrainee(user.ID, company.ID)
	require.NoError(t, err)

	_, err = svc.SubmitQuiz(user.ID, module.ID, map[uint]string{})
	var noQuestions *NoQuestionsError
	require.ErrorAs(t, err, &noQuestions)
}

func TestSubmitQuiz_PassThreshold(t *testing.T) {
	svc, db := newTestService(t)
	company := createCompany(t, db, "Acme")
	module := createModule(t, db, company.ID, 1, false)
	var mcqs []*trainingModels.MCQ
	for i := 0; i < 10; i++ {
		mcqs = append(mcqs, createMCQ(t, db, module.ID, "Q?", "A", "A", "B"))
	}
	user := createTrainee(t, db, company.ID, "trainee@acme.test")
	_, err := svc.EnrollTrainee(user.ID, company.ID)
	require.NoError(t, err)

	// 7/10 correct is exactly on the threshold.
	answers := map[uint]string{}
	for i, mcq := range mcqs {
		if i < 7 {
			answers[mcq.ID] = "A"
		} else {
			answers[mcq.ID] = "B"
		}
	}
	result, err := svc.SubmitQuiz(user.ID, module.ID, answers)
	require.NoError(t, err)
	require.Equal(t, 70, result.Score)
	require.True(t, result.Pass)
}

func TestUpdateTimeSpent_LastWriteWins(t *testing.T) {
	svc, db := newTestService(t)
	company := createCompany(t, db, "Acme")
	module := createModule(t, db, company.ID, 1, false)
	user := createTrainee(t, db, company.ID, "trainee@acme.test")
	_, err := svc.EnrollTrainee(user.ID, company.ID)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateTimeSpent(user.ID, module.ID, 120))
	require.NoError(t, svc.UpdateTimeSpent(user.ID, module.ID, 45))

	record := progressFor(t, db, user.ID, module.ID)
	require.NotNil(t, record.TimeSpentSeconds)
	require.EqualValues(t, 45, *record.TimeSpentSeconds)
}

func TestUpdateTimeSpent_NoRecordIsSilentNoop(t *testing.T) {
	svc, db := newTestService(t)
	company := createCompany(t, db, "Acme")
	module := createModule(t, db, company.ID, 1, false)
	user := createTrainee(t, db, company.ID, "trainee@acme.test")

	// Not enrolled: no error, no row created.
	require.NoError(t, svc.UpdateTimeSpent(user.ID, module.ID, 60))

	var rows int64
	require.NoError(t, db.Model(&trainingModels.ProgressRecord{}).
		Where("user_id = ?", user.ID).Count(&rows).Error)
	require.Zero(t, rows)
}

func TestUpdateTimeSpent_RejectsNegative(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.UpdateTimeSpent(1, 1, -5)
	var invalid *ValidationError
	require.ErrorAs(t, err, &invalid)
}

func TestCompleteVideo_LockedModuleRejected(t *testing.T) {
	svc, db := newTestService(t)
	company := createCompany(t, db, "Acme")
	createModule(t, db, company.ID, 1, false)
	second := createModule(t, db, company.ID, 2, false)
	user := createTrainee(t, db, company.ID, "trainee@acme.test")
	_, err := svc.EnrollTrainee(user.ID, company.ID)
	require.NoError(t, err)

	overview, err := svc.BuildProgressOverview(user.ID, company.ID)
	require.NoError(t, err)
	require.False(t, overview.Modules[1].Unlocked)

	_, err = svc.CompleteVideo(user.ID, second.ID)
	var locked *ModuleLockedError
	require.ErrorAs(t, err, &locked)
	require.Equal(t, second.ID, locked.ModuleID)

	// The locked module's record stays untouched.
	record := progressFor(t, db, user.ID, second.ID)
	require.False(t, record.Completed)
	require.False(t, record.Pass)
}

func TestSubmitQuiz_LockedModuleRejected(t *testing.T) {
	svc, db := newTestService(t)
	company := createCompany(t, db, "Acme")
	createModule(t, db, company.ID, 1, false)
	second := createModule(t, db, company.ID, 2, false)
	q := createMCQ(t, db, second.ID, "Q1?", "A", "A", "B")
	user := createTrainee(t, db, company.ID, "trainee@acme.test")
	_, err := svc.EnrollTrainee(user.ID, company.ID)
	require.NoError(t, err)

	_, err = svc.SubmitQuiz(user.ID, second.ID, map[uint]string{q.ID: "A"})
	var locked *ModuleLockedError
	require.ErrorAs(t, err, &locked)

	record := progressFor(t, db, user.ID, second.ID)
	require.False(t, record.Completed)
	require.False(t, record.Pass)
	require.Nil(t, record.Score)

	var answerRows int64
	require.NoError(t, db.Model(&trainingModels.MCQAnswer{}).
		Where("user_id = ?", user.ID).Count(&answerRows).Error)
	require.Zero(t, answerRows)
}
