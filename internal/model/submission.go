package model

import (
	"time"

	"gorm.io/datatypes"
)

type SubmissionStatus string

const (
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionReviewed SubmissionStatus = "reviewed"
)

// Submission 学生对某个作业的一次提交（文件或测验答案）
// 状态只允许 pending → reviewed；测验提交创建时即为 reviewed
// swagger:model Submission
type Submission struct {
	BaseModel
	AssignmentID uint             `gorm:"index;not null" json:"assignmentId"`
	StudentID    uint             `gorm:"index;not null" json:"studentId"`
	FilePath     string           `gorm:"size:512" json:"filePath,omitempty"`
	Status       SubmissionStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Feedback     string           `gorm:"type:text" json:"feedback"`
	Grade        float64          `gorm:"default:0" json:"grade"`
	SubmittedAt  time.Time        `gorm:"index" json:"submittedAt"`
	TestAnswers  datatypes.JSON   `json:"testAnswers,omitempty"`

	Student    *User       `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Assignment *Assignment `gorm:"foreignKey:AssignmentID" json:"assignment,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}
