package model

type ModuleType string

const (
	TextModule       ModuleType = "text"
	AssignmentModule ModuleType = "assignment"
	VideoModule      ModuleType = "video"
)

// Module 课程内的一个有序单元，order 在同一课程内唯一且决定顺序
// swagger:model Module
type Module struct {
	BaseModel
	CourseID uint       `gorm:"index;not null;uniqueIndex:idx_course_order" json:"courseId"`
	Title    string     `gorm:"size:255;not null" json:"title"`
	Type     ModuleType `gorm:"type:varchar(20);not null" json:"type"`
	Content  string     `gorm:"type:text" json:"content"`
	Order    int        `gorm:"column:sort_order;not null;uniqueIndex:idx_course_order" json:"order"`

	Assignment *Assignment `gorm:"foreignKey:ModuleID" json:"assignment,omitempty"`
	Video      *Video      `gorm:"foreignKey:ModuleID" json:"video,omitempty"`
}

func (Module) TableName() string {
	return "modules"
}
