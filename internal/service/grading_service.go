package service

import (
	"errors"
	"strings"
	"tamamali_backend/internal/model"
	"tamamali_backend/internal/util"
	"tamamali_backend/pkg/logger"
	"tamamali_backend/pkg/monitoring"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QuizReader loads a quiz with its questions and options, filtered to
// non-deleted rows.
type QuizReader interface {
	FindWithQuestions(id uint) (*model.Quiz, error)
}

// AssignmentReader resolves the assignment authorizing a student for a quiz,
// directly or through group membership.
type AssignmentReader interface {
	FindForStudent(studentID, quizID uint) (*model.QuizAssignment, error)
}

// AttemptWriter persists an attempt and its answers as one logical write and
// assigns the attempt number within the same transaction.
type AttemptWriter interface {
	CreateWithAnswers(attempt *model.QuizAttempt) error
}

type GradingService struct {
	Quizzes     QuizReader
	Assignments AssignmentReader
	Attempts    AttemptWriter
}

func NewGradingService(quizzes QuizReader, assignments AssignmentReader, attempts AttemptWriter) *GradingService {
	return &GradingService{
		Quizzes:     quizzes,
		Assignments: assignments,
		Attempts:    attempts,
	}
}

type AnswerSubmission struct {
	QuestionID       uint    `json:"questionId"`
	SelectedOptionID *uint   `json:"selectedOptionId,omitempty"`
	TextAnswer       *string `json:"textAnswer,omitempty"`
}

type SubmitQuizRequest struct {
	StudentID uint               `json:"studentId"`
	QuizID    uint               `json:"quizId"`
	Answers   []AnswerSubmission `json:"answers"`
	TimeSpent int                `json:"timeSpent"`
}

type SubmitQuizResult struct {
	SubmissionID uint `json:"submissionId"`
	Score        int  `json:"score"`
	TotalPoints  int  `json:"totalPoints"`
	TimeSpent    int  `json:"timeSpent"`
}

// Submit grades one quiz submission and persists it as a new immutable
// attempt. Resubmitting creates another attempt with the next attempt number;
// there is no deduplication.
func (s *GradingService) Submit(req SubmitQuizRequest) (*SubmitQuizResult, error) {
	if req.StudentID == 0 || req.QuizID == 0 || len(req.Answers) == 0 {
		return nil, util.ErrMissingFields
	}

	quiz, err := s.Quizzes.FindWithQuestions(req.QuizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	if _, err := s.Assignments.FindForStudent(req.StudentID, req.QuizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotAssigned
		}
		return nil, err
	}

	score, answers := scoreAnswers(quiz.Questions, req.Answers)

	attempt := &model.QuizAttempt{
		StudentID:   req.StudentID,
		QuizID:      req.QuizID,
		Score:       score,
		TimeSpent:   req.TimeSpent,
		SubmittedAt: time.Now(),
		Answers:     answers,
	}

	if err := s.Attempts.CreateWithAnswers(attempt); err != nil {
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues(string(quiz.Type)).Inc()
	logger.Log.Info("quiz submission graded",
		zap.Uint("studentId", req.StudentID),
		zap.Uint("quizId", req.QuizID),
		zap.Uint("attemptId", attempt.ID),
		zap.Int("attemptNo", attempt.AttemptNo),
		zap.Int("score", score),
	)

	return &SubmitQuizResult{
		SubmissionID: attempt.ID,
		Score:        score,
		TotalPoints:  quiz.TotalPoints,
		TimeSpent:    req.TimeSpent,
	}, nil
}

// scoreAnswers computes per-answer correctness and the aggregate score.
// Answers referencing unknown question ids are skipped; they contribute
// neither to the score nor to the stored answer list.
func scoreAnswers(questions []model.Question, answers []AnswerSubmission) (int, []model.QuizAnswer) {
	byID := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	total := 0
	processed := make([]model.QuizAnswer, 0, len(answers))

	for _, ans := range answers {
		question, ok := byID[ans.QuestionID]
		if !ok {
			logger.Log.Warn("submitted answer references unknown question", zap.Uint("questionId", ans.QuestionID))
			continue
		}

		isCorrect := false

		switch question.Type {
		case model.MultipleChoice:
			if ans.SelectedOptionID != nil {
				for i := range question.Options {
					if question.Options[i].ID == *ans.SelectedOptionID {
						isCorrect = question.Options[i].IsCorrect
						break
					}
				}
			}
		case model.Identification:
			if ans.TextAnswer != nil {
				if correct := question.CorrectOption(); correct != nil {
					isCorrect = normalizeAnswer(*ans.TextAnswer) == normalizeAnswer(correct.Text)
				}
			}
		}

		if isCorrect {
			total += question.Points
		}

		processed = append(processed, model.QuizAnswer{
			QuestionID:       question.ID,
			SelectedOptionID: ans.SelectedOptionID,
			TextAnswer:       ans.TextAnswer,
			IsCorrect:        isCorrect,
		})
	}

	return total, processed
}

// normalizeAnswer is the entire comparison contract for identification
// questions: trimmed, case-insensitive equality. No partial credit, no fuzzy
// matching.
func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
