package repository

import (
	"tamamali_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByEmailAndRole(email string, role model.UserRole) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ? AND role = ?", email, role).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByIDAndRole(id uint, role model.UserRole) (*model.User, error) {
	var user model.User
	err := r.DB.Where("id = ? AND role = ?", id, role).First(&user).Error
	return &user, err
}

// FindStudentsByIDs returns the subset of ids that identify existing students.
func (r *UserRepository) FindStudentsByIDs(ids []uint) ([]model.User, error) {
	var students []model.User
	err := r.DB.Where("id IN ? AND role = ?", ids, model.Student).Find(&students).Error
	return students, err
}

func (r *UserRepository) ListStudents() ([]model.User, error) {
	var students []model.User
	err := r.DB.Where("role = ?", model.Student).Order("name asc").Find(&students).Error
	return students, err
}

// FindStudentDetail loads one student with group memberships, assignments and
// attempts for the teacher's student view.
func (r *UserRepository) FindStudentDetail(id uint) (*model.User, []model.GroupStudent, []model.QuizAssignment, []model.QuizAttempt, error) {
	var student model.User
	if err := r.DB.Where("id = ? AND role = ?", id, model.Student).First(&student).Error; err != nil {
		return nil, nil, nil, nil, err
	}

	var memberships []model.GroupStudent
	if err := r.DB.Preload("Student").Where("student_id = ?", id).Find(&memberships).Error; err != nil {
		return nil, nil, nil, nil, err
	}

	var assignments []model.QuizAssignment
	if err := r.DB.Preload("Quiz").Where("student_id = ?", id).Find(&assignments).Error; err != nil {
		return nil, nil, nil, nil, err
	}

	var attempts []model.QuizAttempt
	if err := r.DB.Preload("Quiz").Where("student_id = ?", id).Find(&attempts).Error; err != nil {
		return nil, nil, nil, nil, err
	}

	return &student, memberships, assignments, attempts, nil
}
