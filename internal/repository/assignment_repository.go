package repository

import (
	"tamamali_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(assignment *model.QuizAssignment) error {
	return r.DB.Create(assignment).Error
}

// FindForStudent returns an assignment covering the student for the quiz,
// either a direct assignment or one via group membership.
func (r *AssignmentRepository) FindForStudent(studentID, quizID uint) (*model.QuizAssignment, error) {
	groupIDs := r.DB.Model(&model.GroupStudent{}).
		Select("group_id").
		Where("student_id = ?", studentID)

	var assignment model.QuizAssignment
	err := r.DB.
		Where("quiz_id = ?", quizID).
		Where(r.DB.Where("student_id = ?", studentID).Or("group_id IN (?)", groupIDs)).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ListForStudent returns every assignment covering the student, newest first,
// with quiz and teacher info for the student dashboard.
func (r *AssignmentRepository) ListForStudent(studentID uint) ([]model.QuizAssignment, error) {
	groupIDs := r.DB.Model(&model.GroupStudent{}).
		Select("group_id").
		Where("student_id = ?", studentID)

	var assignments []model.QuizAssignment
	err := r.DB.
		Preload("Quiz.Teacher").
		Where(r.DB.Where("student_id = ?", studentID).Or("group_id IN (?)", groupIDs)).
		Order("assigned_at desc").
		Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) ListByTeacher(teacherID uint) ([]model.QuizAssignment, error) {
	var assignments []model.QuizAssignment
	err := r.DB.
		Preload("Quiz").
		Preload("Student").
		Preload("Group.Students.Student").
		Joins("JOIN quizzes ON quizzes.id = quiz_assignments.quiz_id").
		Where("quizzes.teacher_id = ? AND quizzes.deleted_at IS NULL", teacherID).
		Order("quiz_assignments.assigned_at desc").
		Find(&assignments).Error
	return assignments, err
}
