package service

import (
	"tamamali_backend/internal/model"
	"tamamali_backend/internal/repository"
	"tamamali_backend/internal/util"

	"gorm.io/gorm"
)

type GroupService struct {
	GroupRepo *repository.GroupRepository
	UserRepo  *repository.UserRepository
}

func NewGroupService(groupRepo *repository.GroupRepository, userRepo *repository.UserRepository) *GroupService {
	return &GroupService{GroupRepo: groupRepo, UserRepo: userRepo}
}

type GroupReq struct {
	Name       string `json:"name"`
	TeacherID  uint   `json:"teacherId"`
	StudentIDs []uint `json:"studentIds"`
}

// Create validates the teacher and every listed student before writing the
// group with its member rows. One invalid student id rejects the whole
// request.
func (s *GroupService) Create(req GroupReq) (*model.Group, error) {
	if req.Name == "" || req.TeacherID == 0 {
		return nil, util.ErrMissingFields
	}

	if _, err := s.UserRepo.FindByIDAndRole(req.TeacherID, model.Teacher); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrInvalidTeacher
		}
		return nil, err
	}

	var members []model.GroupStudent
	if len(req.StudentIDs) > 0 {
		students, err := s.UserRepo.FindStudentsByIDs(req.StudentIDs)
		if err != nil {
			return nil, err
		}
		if len(students) != len(req.StudentIDs) {
			return nil, util.ErrInvalidStudent
		}
		members = make([]model.GroupStudent, 0, len(students))
		for _, st := range students {
			members = append(members, model.GroupStudent{StudentID: st.ID})
		}
	}

	group := &model.Group{
		Name:      req.Name,
		TeacherID: req.TeacherID,
		Students:  members,
	}

	if err := s.GroupRepo.Create(group); err != nil {
		return nil, err
	}
	return s.GroupRepo.FindWithStudents(group.ID)
}

func (s *GroupService) ListByTeacher(teacherID uint) ([]model.Group, error) {
	return s.GroupRepo.ListByTeacher(teacherID)
}
