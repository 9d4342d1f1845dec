package model

import "time"

type QuizType string

const (
	MultipleChoice QuizType = "MULTIPLE_CHOICE"
	Identification QuizType = "IDENTIFICATION"
)

func (t QuizType) Valid() bool {
	return t == MultipleChoice || t == Identification
}

// swagger:model Quiz
type Quiz struct {
	BaseModel
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Subject     string     `gorm:"size:100" json:"subject"`
	Type        QuizType   `gorm:"size:50;not null" json:"type"`
	TimeLimit   int        `gorm:"default:0" json:"timeLimit"` // Minutes, 0 means untimed
	TotalPoints int        `gorm:"not null" json:"totalPoints"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	TeacherID   uint       `gorm:"index;not null" json:"teacherId"`
	Teacher     *User      `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Questions   []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model Question
type Question struct {
	BaseModel
	QuizID  uint     `gorm:"index;not null" json:"quizId"`
	Text    string   `gorm:"type:text;not null" json:"text"`
	Type    QuizType `gorm:"size:50;not null" json:"type"`
	Order   int      `gorm:"column:question_order;default:0" json:"order"`
	Points  int      `gorm:"default:0" json:"points"`
	Options []Option `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// CorrectOption returns the option flagged correct, or nil. Multiple-choice
// questions carry exactly one; identification questions use it as the
// canonical answer.
func (q *Question) CorrectOption() *Option {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i]
		}
	}
	return nil
}

// swagger:model Option
type Option struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (Option) TableName() string {
	return "options"
}
