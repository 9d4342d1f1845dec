package repository

import (
	"tamamali_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

// Create writes the quiz together with its nested questions and options in
// one transaction; GORM cascades the associations.
func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, id).Error
	return &quiz, err
}

// FindWithQuestions loads the quiz with ordered questions and their options.
func (r *QuizRepository) FindWithQuestions(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_order asc")
		}).
		Preload("Questions.Options").
		Preload("Teacher").
		First(&quiz, id).Error
	return &quiz, err
}

type QuizListRow struct {
	model.Quiz
	QuestionCount int `json:"questionCount"`
}

func (r *QuizRepository) ListByTeacher(teacherID uint) ([]QuizListRow, error) {
	var rows []QuizListRow
	err := r.DB.Table("quizzes q").
		Select("q.*, (SELECT COUNT(*) FROM questions qu WHERE qu.quiz_id = q.id AND qu.deleted_at IS NULL) as question_count").
		Where("q.teacher_id = ? AND q.deleted_at IS NULL", teacherID).
		Order("q.created_at desc").
		Scan(&rows).Error
	return rows, err
}

// ReplaceQuestions deletes every question and option of the quiz and
// recreates them from the given set. There are no partial question edits.
func (r *QuizRepository) ReplaceQuestions(quiz *model.Quiz, questions []model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&model.Question{}).Where("quiz_id = ?", quiz.ID).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.Option{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&model.Question{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Save(quiz).Error; err != nil {
			return err
		}

		for i := range questions {
			questions[i].QuizID = quiz.ID
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete soft-deletes the quiz; historical attempts keep referencing it.
func (r *QuizRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Quiz{}, id).Error
}
