package service

import (
	"errors"
	"tamamali_backend/internal/model"
	"tamamali_backend/internal/repository"
	"tamamali_backend/internal/util"

	"gorm.io/gorm"
)

type AssignmentService struct {
	AssignmentRepo *repository.AssignmentRepository
	QuizRepo       *repository.QuizRepository
	GroupRepo      *repository.GroupRepository
	UserRepo       *repository.UserRepository
}

func NewAssignmentService(
	assignmentRepo *repository.AssignmentRepository,
	quizRepo *repository.QuizRepository,
	groupRepo *repository.GroupRepository,
	userRepo *repository.UserRepository,
) *AssignmentService {
	return &AssignmentService{
		AssignmentRepo: assignmentRepo,
		QuizRepo:       quizRepo,
		GroupRepo:      groupRepo,
		UserRepo:       userRepo,
	}
}

type AssignmentReq struct {
	QuizID    uint  `json:"quizId"`
	StudentID *uint `json:"studentId,omitempty"`
	GroupID   *uint `json:"groupId,omitempty"`
}

// Assign grants quiz access to exactly one of a student or a group.
func (s *AssignmentService) Assign(req AssignmentReq) (*model.QuizAssignment, error) {
	if req.QuizID == 0 || (req.StudentID == nil && req.GroupID == nil) {
		return nil, util.ErrMissingFields
	}

	if _, err := s.QuizRepo.FindByID(req.QuizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	assignment := &model.QuizAssignment{QuizID: req.QuizID}

	if req.StudentID != nil {
		if _, err := s.UserRepo.FindByIDAndRole(*req.StudentID, model.Student); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrInvalidStudent
			}
			return nil, err
		}
		assignment.StudentID = req.StudentID
	} else {
		if _, err := s.GroupRepo.FindByID(*req.GroupID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrInvalidGroup
			}
			return nil, err
		}
		assignment.GroupID = req.GroupID
	}

	if err := s.AssignmentRepo.Create(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *AssignmentService) ListByTeacher(teacherID uint) ([]model.QuizAssignment, error) {
	return s.AssignmentRepo.ListByTeacher(teacherID)
}
