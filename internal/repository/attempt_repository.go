package repository

import (
	"tamamali_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// CreateWithAnswers assigns the attempt number and inserts the attempt with
// its answers in one transaction. Counting inside the same transaction keeps
// the count-then-insert window as small as the database allows instead of
// reading the count in a separate round trip.
func (r *AttemptRepository) CreateWithAnswers(attempt *model.QuizAttempt) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var prior int64
		if err := tx.Model(&model.QuizAttempt{}).
			Where("student_id = ? AND quiz_id = ?", attempt.StudentID, attempt.QuizID).
			Count(&prior).Error; err != nil {
			return err
		}
		attempt.AttemptNo = int(prior) + 1
		return tx.Create(attempt).Error
	})
}

// ListByStudentAndQuiz returns the student's attempts for a quiz, newest first.
func (r *AttemptRepository) ListByStudentAndQuiz(studentID, quizID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.
		Where("student_id = ? AND quiz_id = ?", studentID, quizID).
		Order("submitted_at desc").
		Find(&attempts).Error
	return attempts, err
}

// FindResult loads one attempt with everything the result view needs: the
// quiz with ordered questions and options, the answers with their selected
// options, and the student.
func (r *AttemptRepository) FindResult(attemptID uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.
		Preload("Quiz.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_order asc")
		}).
		Preload("Quiz.Questions.Options").
		Preload("Quiz.Teacher").
		Preload("Answers.SelectedOption").
		Preload("Answers.Question.Options").
		Preload("Student").
		First(&attempt, attemptID).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}
