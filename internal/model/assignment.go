package model

import (
	"encoding/json"
	"time"
)

// QuizQuestion 测验中的单个选择题，correct_answer 是选项下标（0-based）
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

type QuizData struct {
	Questions []QuizQuestion `json:"questions"`
}

// swagger:model Assignment
type Assignment struct {
	BaseModel
	ModuleID    uint       `gorm:"index;not null" json:"moduleId"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	// TestData 非空时该作业为自动判分测验，内容为 {questions:[...]} JSON 文档
	TestData string `gorm:"type:text" json:"testData,omitempty"`

	Submissions []Submission `gorm:"foreignKey:AssignmentID" json:"submissions,omitempty"`
}

func (Assignment) TableName() string {
	return "assignments"
}

func (a *Assignment) IsQuiz() bool {
	return a.TestData != ""
}

func (a *Assignment) QuizData() (*QuizData, error) {
	var data QuizData
	if err := json.Unmarshal([]byte(a.TestData), &data); err != nil {
		return nil, err
	}
	return &data, nil
}
