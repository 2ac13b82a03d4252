package training

import (
	"log"
	"math"

	trainingModels "trainport/models/training"
)

// VideoCompletionResult reports the outcome of a video-complete action.
// QuizRequired distinguishes "module has a quiz, submit it" from the
// no-quiz auto-pass; completion state is untouched when it is set.
type VideoCompletionResult struct {
	QuizRequired bool                          `json:"quiz_required"`
	Record       *trainingModels.ProgressRecord `json:"record,omitempty"`
	Certificate  *trainingModels.Certificate    `json:"certificate,omitempty"`
}

// QuizResult reports a graded quiz submission.
type QuizResult struct {
	Score          int                         `json:"score"`
	Pass           bool                        `json:"pass"`
	TotalQuestions int                         `json:"total_questions"`
	CorrectAnswers int                         `json:"correct_answers"`
	Certificate    *trainingModels.Certificate `json:"certificate,omitempty"`
}

// CompleteVideo marks a no-quiz module completed and passed with score 100.
// For quiz-bearing modules it changes nothing and reports QuizRequired, so
// the trainee stays gated until a quiz submission.
func (s *Service) CompleteVideo(userID, moduleID uint) (*VideoCompletionResult, error) {
	module, err := s.store.Modules().FindByID(moduleID)
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, &NotFoundError{Resource: "module", ID: moduleID}
	}
	if err := s.requireUnlocked(userID, module); err != nil {
		return nil, err
	}

	mcqs, err := s.store.MCQs().ListByModule(moduleID)
	if err != nil {
		return nil, err
	}
	if len(mcqs) > 0 {
		return &VideoCompletionResult{QuizRequired: true}, nil
	}

	record, err := s.store.Progress().FindByUserAndModule(userID, moduleID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, &NotFoundError{Resource: "progress record for module", ID: moduleID}
	}

	score := 100
	err = s.store.Transaction(func(tx Store) error {
		return tx.Progress().UpdateByUserAndModule(userID, moduleID, map[string]interface{}{
			"completed": true,
			"pass":      true,
			"score":     score,
		})
	})
	if err != nil {
		return nil, err
	}

	record.Completed = true
	record.Pass = true
	record.Score = &score

	cert := s.certificateAfterPass(userID, module.CompanyID)

	return &VideoCompletionResult{Record: record, Certificate: cert}, nil
}

// SubmitQuiz grades a quiz submission against every question of the module.
// Questions missing from answers are graded as answered-but-incorrect, so
// each submission always yields exactly one answer row per question. Prior
// rows for the (user, module) pair are replaced in the same transaction
// that updates the progress record.
func (s *Service) SubmitQuiz(userID, moduleID uint, answers map[uint]string) (*QuizResult, error) {
	module, err := s.store.Modules().FindByID(moduleID)
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, &NotFoundError{Resource: "module", ID: moduleID}
	}
	if err := s.requireUnlocked(userID, module); err != nil {
		return nil, err
	}

	mcqs, err := s.store.MCQs().ListByModule(moduleID)
	if err != nil {
		return nil, err
	}
	if len(mcqs) == 0 {
		return nil, &NoQuestionsError{ModuleID: moduleID}
	}

	record, err := s.store.Progress().FindByUserAndModule(userID, moduleID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, &NotFoundError{Resource: "progress record for module", ID: moduleID}
	}

	rows := make([]trainingModels.MCQAnswer, 0, len(mcqs))
	correct := 0
	for _, mcq := range mcqs {
		selected := answers[mcq.ID] // empty string when unanswered
		isCorrect := selected != "" && selected == mcq.Answer
		if isCorrect {
			correct++
		}
		rows = append(rows, trainingModels.MCQAnswer{
			UserID:         userID,
			ModuleID:       moduleID,
			MCQID:          mcq.ID,
			SelectedOption: selected,
			IsCorrect:      isCorrect,
		})
	}

	total := len(mcqs)
	score := int(math.Round(100 * float64(correct) / float64(total)))
	pass := score >= PassThreshold

	err = s.store.Transaction(func(tx Store) error {
		if err := tx.Answers().DeleteByUserAndModule(userID, moduleID); err != nil {
			return err
		}
		if err := tx.Answers().CreateMany(rows); err != nil {
			return err
		}
		return tx.Progress().UpdateByUserAndModule(userID, moduleID, map[string]interface{}{
			"completed": true,
			"pass":      pass,
			"score":     score,
		})
	})
	if err != nil {
		return nil, err
	}

	result := &QuizResult{
		Score:          score,
		Pass:           pass,
		TotalQuestions: total,
		CorrectAnswers: correct,
	}
	if pass {
		result.Certificate = s.certificateAfterPass(userID, module.CompanyID)
	}
	return result, nil
}

// UpdateTimeSpent overwrites the tracked time on a progress record
// (last-write-wins). Silently does nothing when the trainee has no record
// for the module; callers are expected to have enrolled them first.
func (s *Service) UpdateTimeSpent(userID, moduleID uint, seconds int64) error {
	if seconds < 0 {
		return &ValidationError{Field: "time_spent", Reason: "must not be negative"}
	}

	record, err := s.store.Progress().FindByUserAndModule(userID, moduleID)
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}

	return s.store.Progress().UpdateByUserAndModule(userID, moduleID, map[string]interface{}{
		"time_spent_seconds": seconds,
	})
}

// certificateAfterPass runs the eligibility check after a passing
// transition. Issuance failures never fail the learner action; the
// periodic sweep self-heals missed certificates.
func (s *Service) certificateAfterPass(userID, companyID uint) *trainingModels.Certificate {
	cert, err := s.EnsureCertificate(userID, companyID)
	if err != nil {
		log.Printf("[TRAINING] certificate check failed for user %d company %d: %v", userID, companyID, err)
		return nil
	}
	return cert
}
