package service

import (
	"tamamali_backend/internal/model"
	"tamamali_backend/internal/util"
	"tamamali_backend/pkg/logger"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	logger.Log = zap.NewNop()
}

type fakeQuizStore struct {
	quiz *model.Quiz
}

func (f *fakeQuizStore) FindWithQuestions(id uint) (*model.Quiz, error) {
	if f.quiz == nil || f.quiz.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.quiz, nil
}

type fakeAssignmentStore struct {
	assigned bool
}

func (f *fakeAssignmentStore) FindForStudent(studentID, quizID uint) (*model.QuizAssignment, error) {
	if !f.assigned {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.QuizAssignment{QuizID: quizID, StudentID: &studentID}, nil
}

type fakeAttemptStore struct {
	attempts []*model.QuizAttempt
}

func (f *fakeAttemptStore) CreateWithAnswers(attempt *model.QuizAttempt) error {
	prior := 0
	for _, a := range f.attempts {
		if a.StudentID == attempt.StudentID && a.QuizID == attempt.QuizID {
			prior++
		}
	}
	attempt.AttemptNo = prior + 1
	attempt.ID = uint(len(f.attempts) + 1)
	f.attempts = append(f.attempts, attempt)
	return nil
}

func uintPtr(v uint) *uint    { return &v }
func strPtr(v string) *string { return &v }

// mixedQuiz has two multiple choice questions worth 5 points each and one
// identification question worth 5 points, 15 points total.
func mixedQuiz() *model.Quiz {
	return &model.Quiz{
		BaseModel:   model.BaseModel{ID: 1},
		Title:       "Philippine Geography",
		Type:        model.MultipleChoice,
		TotalPoints: 15,
		TeacherID:   9,
		Questions: []model.Question{
			{
				BaseModel: model.BaseModel{ID: 10},
				Type:      model.MultipleChoice,
				Points:    5,
				Options: []model.Option{
					{BaseModel: model.BaseModel{ID: 101}, Text: "Luzon", IsCorrect: true},
					{BaseModel: model.BaseModel{ID: 102}, Text: "Cebu", IsCorrect: false},
				},
			},
			{
				BaseModel: model.BaseModel{ID: 11},
				Type:      model.MultipleChoice,
				Points:    5,
				Options: []model.Option{
					{BaseModel: model.BaseModel{ID: 111}, Text: "1898", IsCorrect: true},
					{BaseModel: model.BaseModel{ID: 112}, Text: "1946", IsCorrect: false},
				},
			},
			{
				BaseModel: model.BaseModel{ID: 12},
				Type:      model.Identification,
				Points:    5,
				Options: []model.Option{
					{BaseModel: model.BaseModel{ID: 121}, Text: "Manila", IsCorrect: true},
				},
			},
		},
	}
}

func newGradingFixture(assigned bool) (*GradingService, *fakeAttemptStore) {
	attempts := &fakeAttemptStore{}
	svc := NewGradingService(
		&fakeQuizStore{quiz: mixedQuiz()},
		&fakeAssignmentStore{assigned: assigned},
		attempts,
	)
	return svc, attempts
}

func TestSubmitMissingFields(t *testing.T) {
	svc, attempts := newGradingFixture(true)

	cases := []SubmitQuizRequest{
		{QuizID: 1, Answers: []AnswerSubmission{{QuestionID: 10}}},
		{StudentID: 2, Answers: []AnswerSubmission{{QuestionID: 10}}},
		{StudentID: 2, QuizID: 1},
	}
	for _, req := range cases {
		_, err := svc.Submit(req)
		assert.ErrorIs(t, err, util.ErrMissingFields)
	}
	assert.Empty(t, attempts.attempts)
}

func TestSubmitQuizNotFound(t *testing.T) {
	svc, _ := newGradingFixture(true)

	_, err := svc.Submit(SubmitQuizRequest{
		StudentID: 2,
		QuizID:    99,
		Answers:   []AnswerSubmission{{QuestionID: 10}},
	})
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestSubmitUnassignedQuiz(t *testing.T) {
	svc, attempts := newGradingFixture(false)

	_, err := svc.Submit(SubmitQuizRequest{
		StudentID: 2,
		QuizID:    1,
		Answers:   []AnswerSubmission{{QuestionID: 10, SelectedOptionID: uintPtr(101)}},
	})
	assert.ErrorIs(t, err, util.ErrQuizNotAssigned)
	assert.Empty(t, attempts.attempts, "rejected submissions must not persist an attempt")
}

func TestSubmitGradesMixedQuiz(t *testing.T) {
	svc, attempts := newGradingFixture(true)

	result, err := svc.Submit(SubmitQuizRequest{
		StudentID: 2,
		QuizID:    1,
		TimeSpent: 120,
		Answers: []AnswerSubmission{
			{QuestionID: 10, SelectedOptionID: uintPtr(101)},  // correct
			{QuestionID: 11, SelectedOptionID: uintPtr(112)},  // wrong
			{QuestionID: 12, TextAnswer: strPtr("  manila ")}, // correct after normalization
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, 10, result.Score)
	assert.Equal(t, 15, result.TotalPoints)
	assert.Equal(t, 120, result.TimeSpent)
	assert.Equal(t, uint(1), result.SubmissionID)

	stored := attempts.attempts[0]
	assert.Len(t, stored.Answers, 3)
	assert.True(t, stored.Answers[0].IsCorrect)
	assert.False(t, stored.Answers[1].IsCorrect)
	assert.True(t, stored.Answers[2].IsCorrect)
}

func TestSubmitSkipsUnknownQuestions(t *testing.T) {
	svc, attempts := newGradingFixture(true)

	result, err := svc.Submit(SubmitQuizRequest{
		StudentID: 2,
		QuizID:    1,
		Answers: []AnswerSubmission{
			{QuestionID: 10, SelectedOptionID: uintPtr(101)},
			{QuestionID: 999, SelectedOptionID: uintPtr(101)},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, 5, result.Score)
	assert.Len(t, attempts.attempts[0].Answers, 1, "unknown question ids are not stored")
}

func TestSubmitMultipleChoiceWithoutSelection(t *testing.T) {
	svc, attempts := newGradingFixture(true)

	result, err := svc.Submit(SubmitQuizRequest{
		StudentID: 2,
		QuizID:    1,
		Answers: []AnswerSubmission{
			{QuestionID: 10},
			{QuestionID: 12},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Score)

	stored := attempts.attempts[0]
	assert.Len(t, stored.Answers, 2, "unanswered questions are recorded as incorrect")
	assert.False(t, stored.Answers[0].IsCorrect)
	assert.False(t, stored.Answers[1].IsCorrect)
}

func TestSubmitAttemptNumbersIncrement(t *testing.T) {
	svc, attempts := newGradingFixture(true)

	req := SubmitQuizRequest{
		StudentID: 2,
		QuizID:    1,
		Answers:   []AnswerSubmission{{QuestionID: 10, SelectedOptionID: uintPtr(101)}},
	}

	_, err := svc.Submit(req)
	assert.NoError(t, err)
	_, err = svc.Submit(req)
	assert.NoError(t, err)

	assert.Equal(t, 1, attempts.attempts[0].AttemptNo)
	assert.Equal(t, 2, attempts.attempts[1].AttemptNo)
}

func TestNormalizeAnswer(t *testing.T) {
	assert.Equal(t, normalizeAnswer("  Paris "), normalizeAnswer("paris"))
	assert.NotEqual(t, normalizeAnswer("Paris"), normalizeAnswer("Pariss"))
	assert.Equal(t, "jose rizal", normalizeAnswer("\tJose Rizal\n"))
}

func TestScoreAnswersIdentificationWithoutCorrectOption(t *testing.T) {
	questions := []model.Question{
		{
			BaseModel: model.BaseModel{ID: 1},
			Type:      model.Identification,
			Points:    5,
		},
	}

	score, answers := scoreAnswers(questions, []AnswerSubmission{
		{QuestionID: 1, TextAnswer: strPtr("anything")},
	})
	assert.Equal(t, 0, score)
	assert.Len(t, answers, 1)
	assert.False(t, answers[0].IsCorrect)
}
