package repository

import (
	"tamamali_backend/internal/model"

	"gorm.io/gorm"
)

type GroupRepository struct {
	DB *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{DB: db}
}

// Create writes the group and its member rows in one transaction.
func (r *GroupRepository) Create(group *model.Group) error {
	return r.DB.Create(group).Error
}

func (r *GroupRepository) FindByID(id uint) (*model.Group, error) {
	var group model.Group
	err := r.DB.First(&group, id).Error
	return &group, err
}

func (r *GroupRepository) FindWithStudents(id uint) (*model.Group, error) {
	var group model.Group
	err := r.DB.Preload("Students.Student").First(&group, id).Error
	return &group, err
}

func (r *GroupRepository) ListByTeacher(teacherID uint) ([]model.Group, error) {
	var groups []model.Group
	err := r.DB.Preload("Students.Student").
		Where("teacher_id = ?", teacherID).
		Order("created_at desc").
		Find(&groups).Error
	return groups, err
}
