package model

import "time"

// QuizAttempt is one graded submission of a quiz by a student. Rows are
// immutable after creation; retakes append new rows with the next AttemptNo.
// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel
	StudentID   uint         `gorm:"index;not null" json:"studentId"`
	Student     *User        `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	QuizID      uint         `gorm:"index;not null" json:"quizId"`
	Quiz        *Quiz        `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
	Score       int          `gorm:"not null" json:"score"`
	AttemptNo   int          `gorm:"not null" json:"attemptNo"`
	TimeSpent   int          `gorm:"default:0" json:"timeSpent"` // Seconds
	SubmittedAt time.Time    `gorm:"autoCreateTime" json:"submittedAt"`
	Answers     []QuizAnswer `gorm:"foreignKey:AttemptID" json:"answers,omitempty"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// QuizAnswer records one answer within an attempt. IsCorrect is computed at
// submission time and never recomputed, even if the canonical answer changes.
// swagger:model QuizAnswer
type QuizAnswer struct {
	BaseModel
	AttemptID        uint      `gorm:"index;not null" json:"attemptId"`
	QuestionID       uint      `gorm:"index;not null" json:"questionId"`
	Question         *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	SelectedOptionID *uint     `json:"selectedOptionId,omitempty"`
	SelectedOption   *Option   `gorm:"foreignKey:SelectedOptionID" json:"selectedOption,omitempty"`
	TextAnswer       *string   `gorm:"type:text" json:"textAnswer,omitempty"`
	IsCorrect        bool      `gorm:"default:false" json:"isCorrect"`
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}
