package model

import "time"

// QuizAssignment grants a student access to a quiz, either directly or
// through group membership. Exactly one of StudentID / GroupID is set.
// swagger:model QuizAssignment
type QuizAssignment struct {
	BaseModel
	QuizID     uint      `gorm:"index;not null" json:"quizId"`
	Quiz       *Quiz     `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
	StudentID  *uint     `gorm:"index" json:"studentId,omitempty"`
	Student    *User     `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	GroupID    *uint     `gorm:"index" json:"groupId,omitempty"`
	Group      *Group    `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	AssignedAt time.Time `gorm:"autoCreateTime" json:"assignedAt"`
}

func (QuizAssignment) TableName() string {
	return "quiz_assignments"
}
