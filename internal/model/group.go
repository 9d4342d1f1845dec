package model

// swagger:model Group
type Group struct {
	BaseModel
	Name      string         `gorm:"size:255;not null" json:"name"`
	TeacherID uint           `gorm:"index;not null" json:"teacherId"`
	Teacher   *User          `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Students  []GroupStudent `gorm:"foreignKey:GroupID" json:"students,omitempty"`
}

func (Group) TableName() string {
	return "groups"
}

// GroupStudent links one student into one group.
type GroupStudent struct {
	BaseModel
	GroupID   uint  `gorm:"index;not null" json:"groupId"`
	StudentID uint  `gorm:"index;not null" json:"studentId"`
	Student   *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (GroupStudent) TableName() string {
	return "group_students"
}
