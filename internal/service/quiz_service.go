package service

import (
	"errors"
	"tamamali_backend/internal/model"
	"tamamali_backend/internal/repository"
	"tamamali_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo *repository.QuizRepository
	UserRepo *repository.UserRepository
}

func NewQuizService(quizRepo *repository.QuizRepository, userRepo *repository.UserRepository) *QuizService {
	return &QuizService{QuizRepo: quizRepo, UserRepo: userRepo}
}

type OptionReq struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuestionReq struct {
	Text    string      `json:"text" binding:"required"`
	Type    string      `json:"type"`
	Order   int         `json:"order"`
	Points  int         `json:"points"`
	Answer  string      `json:"answer"` // identification shorthand: the canonical answer text
	Options []OptionReq `json:"options"`
}

type QuizReq struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Subject     string        `json:"subject"`
	Type        string        `json:"type"`
	TimeLimit   int           `json:"timeLimit"`
	TotalPoints int           `json:"totalPoints"`
	Deadline    *time.Time    `json:"deadline"`
	TeacherID   uint          `json:"teacherId"`
	Questions   []QuestionReq `json:"questions"`
}

// Create validates the teacher and writes the quiz with nested questions and
// options in one transaction.
func (s *QuizService) Create(req QuizReq) (*model.Quiz, error) {
	if req.Title == "" || req.Type == "" || req.TotalPoints == 0 || req.TeacherID == 0 {
		return nil, util.ErrMissingFields
	}

	quizType := model.QuizType(req.Type)
	if !quizType.Valid() {
		return nil, util.ErrMissingFields
	}

	if _, err := s.UserRepo.FindByIDAndRole(req.TeacherID, model.Teacher); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidTeacher
		}
		return nil, err
	}

	quiz := &model.Quiz{
		Title:       req.Title,
		Description: req.Description,
		Subject:     req.Subject,
		Type:        quizType,
		TimeLimit:   req.TimeLimit,
		TotalPoints: req.TotalPoints,
		Deadline:    req.Deadline,
		TeacherID:   req.TeacherID,
		Questions:   buildQuestions(quizType, req.Questions),
	}

	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// Update replaces the quiz wholesale: fields are overwritten and the entire
// question list is deleted and recreated. Historical answers keep the
// correctness they were graded with.
func (s *QuizService) Update(id uint, req QuizReq) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	if req.Title == "" || req.Type == "" || req.TotalPoints == 0 {
		return nil, util.ErrMissingFields
	}

	quizType := model.QuizType(req.Type)
	if !quizType.Valid() {
		return nil, util.ErrMissingFields
	}

	quiz.Title = req.Title
	quiz.Description = req.Description
	quiz.Subject = req.Subject
	quiz.Type = quizType
	quiz.TimeLimit = req.TimeLimit
	quiz.TotalPoints = req.TotalPoints
	quiz.Deadline = req.Deadline

	if err := s.QuizRepo.ReplaceQuestions(quiz, buildQuestions(quizType, req.Questions)); err != nil {
		return nil, err
	}

	return s.QuizRepo.FindWithQuestions(id)
}

func (s *QuizService) Get(id uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindWithQuestions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) ListByTeacher(teacherID uint) ([]repository.QuizListRow, error) {
	return s.QuizRepo.ListByTeacher(teacherID)
}

func (s *QuizService) Delete(id uint) error {
	if _, err := s.QuizRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuizNotFound
		}
		return err
	}
	return s.QuizRepo.Delete(id)
}

// buildQuestions maps request questions into models. Identification questions
// authored with the "answer" shorthand get a single correct option holding
// the canonical answer text.
func buildQuestions(quizType model.QuizType, reqs []QuestionReq) []model.Question {
	questions := make([]model.Question, 0, len(reqs))
	for _, q := range reqs {
		questionType := model.QuizType(q.Type)
		if !questionType.Valid() {
			questionType = quizType
		}

		options := make([]model.Option, 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, model.Option{
				Text:      o.Text,
				IsCorrect: o.IsCorrect,
			})
		}
		if len(options) == 0 && q.Answer != "" {
			options = append(options, model.Option{
				Text:      q.Answer,
				IsCorrect: true,
			})
		}

		questions = append(questions, model.Question{
			Text:    q.Text,
			Type:    questionType,
			Order:   q.Order,
			Points:  q.Points,
			Options: options,
		})
	}
	return questions
}
