package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(submission *model.Submission) error {
	return r.DB.Create(submission).Error
}

func (r *SubmissionRepository) Save(submission *model.Submission) error {
	return r.DB.Save(submission).Error
}

func (r *SubmissionRepository) FindByID(id uint) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.Preload("Student").Preload("Assignment").First(&submission, id).Error
	return &submission, err
}

// FindLatest 同一 (assignment, student) 允许多条提交，读路径取最近一条
func (r *SubmissionRepository) FindLatest(assignmentID, studentID uint) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.
		Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		Order("submitted_at DESC, id DESC").
		First(&submission).Error
	return &submission, err
}

// FindPending 教师工作台的待批改列表
func (r *SubmissionRepository) FindPending() ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.
		Where("status = ?", model.SubmissionPending).
		Preload("Student").
		Preload("Assignment").
		Order("submitted_at ASC").
		Find(&submissions).Error
	return submissions, err
}

// FindReviewedCourseIDs 学生已有批改记录的课程（推荐逻辑的输入）
func (r *SubmissionRepository) FindReviewedCourseIDs(studentID uint) ([]uint, error) {
	var courseIDs []uint
	err := r.DB.Model(&model.Submission{}).
		Distinct("modules.course_id").
		Joins("JOIN assignments ON assignments.id = submissions.assignment_id").
		Joins("JOIN modules ON modules.id = assignments.module_id").
		Where("submissions.student_id = ? AND submissions.status = ?", studentID, model.SubmissionReviewed).
		Pluck("modules.course_id", &courseIDs).Error
	return courseIDs, err
}
