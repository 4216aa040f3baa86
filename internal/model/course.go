package model

// swagger:model Course
type Course struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Tags        string `gorm:"size:255" json:"tags"` // 逗号分隔，如 "python,data,pandas"
	Author      string `gorm:"size:100" json:"author"`
	Content     string `gorm:"type:text" json:"content"`

	Modules []Module `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
