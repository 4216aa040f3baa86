package model

// Enrollment 学生查看某课程的授权记录
// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	UserID   uint     `gorm:"index;not null;uniqueIndex:idx_user_course" json:"userId"`
	CourseID uint     `gorm:"index;not null;uniqueIndex:idx_user_course" json:"courseId"`
	Role     UserRole `gorm:"type:varchar(20);default:'student'" json:"role"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
