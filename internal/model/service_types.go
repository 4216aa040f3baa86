package model

// CourseProgress X / Y 进度，completed 只统计已批改的作业型模块
type CourseProgress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// CourseStats 课程内各类型模块数量统计
type CourseStats struct {
	Texts       int `json:"texts"`
	Assignments int `json:"assignments"`
	Videos      int `json:"videos"`
}

// ModuleContext 模块详情页的聚合数据（当前模块 + 前后邻居 + 关联内容）
type ModuleContext struct {
	Module     *Module     `json:"module"`
	Prev       *Module     `json:"prev,omitempty"`
	Next       *Module     `json:"next,omitempty"`
	Assignment *Assignment `json:"assignment,omitempty"`
	Submission *Submission `json:"submission,omitempty"`
	Video      *Video      `json:"video,omitempty"`
}

// Recommendation 规则表推荐结果
type Recommendation struct {
	CourseID uint     `json:"courseId"`
	Title    string   `json:"title"`
	Reason   string   `json:"reason"`
	Tags     []string `json:"tags,omitempty"`
}

// QuizResult 测验判分结果
type QuizResult struct {
	CorrectCount   int     `json:"correctCount"`
	TotalQuestions int     `json:"totalQuestions"`
	GradePercent   float64 `json:"gradePercent"`
}
