package service

import (
	"errors"
	"tamamali_backend/internal/model"
	"tamamali_backend/internal/repository"
	"tamamali_backend/internal/util"

	"gorm.io/gorm"
)

type StudentService struct {
	UserRepo       *repository.UserRepository
	QuizRepo       *repository.QuizRepository
	AssignmentRepo *repository.AssignmentRepository
	AttemptRepo    *repository.AttemptRepository
}

func NewStudentService(
	userRepo *repository.UserRepository,
	quizRepo *repository.QuizRepository,
	assignmentRepo *repository.AssignmentRepository,
	attemptRepo *repository.AttemptRepository,
) *StudentService {
	return &StudentService{
		UserRepo:       userRepo,
		QuizRepo:       quizRepo,
		AssignmentRepo: assignmentRepo,
		AttemptRepo:    attemptRepo,
	}
}

// ListAssignments returns everything assigned to the student, directly or via
// a group, newest first.
func (s *StudentService) ListAssignments(studentID uint) ([]model.QuizAssignment, error) {
	return s.AssignmentRepo.ListForStudent(studentID)
}

// GetQuiz loads a quiz for taking. Students only see quizzes assigned to them;
// an unassigned quiz yields ErrQuizNotAssigned regardless of whether it
// exists, checked after existence so a missing quiz still reads as not found.
func (s *StudentService) GetQuiz(studentID, quizID uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindWithQuestions(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	if _, err := s.AssignmentRepo.FindForStudent(studentID, quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotAssigned
		}
		return nil, err
	}
	return quiz, nil
}

// ListAttempts returns the student's own attempts for one quiz, newest first.
func (s *StudentService) ListAttempts(studentID, quizID uint) ([]model.QuizAttempt, error) {
	return s.AttemptRepo.ListByStudentAndQuiz(studentID, quizID)
}

// GetResult loads a graded attempt for review. Students can only read their
// own attempts.
func (s *StudentService) GetResult(studentID, attemptID uint) (*model.QuizAttempt, error) {
	attempt, err := s.AttemptRepo.FindResult(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if attempt.StudentID != studentID {
		return nil, util.ErrAttemptNotFound
	}
	return attempt, nil
}

// ListStudents returns the roster for the teacher's people picker.
func (s *StudentService) ListStudents() ([]model.User, error) {
	return s.UserRepo.ListStudents()
}

type StudentDetail struct {
	Student     model.UserSummary      `json:"student"`
	Groups      []model.GroupStudent   `json:"groups"`
	Assignments []model.QuizAssignment `json:"assignments"`
	Attempts    []model.QuizAttempt    `json:"attempts"`
}

// GetStudentDetail assembles a single student's profile with memberships,
// assignments and attempt history for the teacher view.
func (s *StudentService) GetStudentDetail(id uint) (*StudentDetail, error) {
	student, memberships, assignments, attempts, err := s.UserRepo.FindStudentDetail(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}
	return &StudentDetail{
		Student:     student.Summary(),
		Groups:      memberships,
		Assignments: assignments,
		Attempts:    attempts,
	}, nil
}
