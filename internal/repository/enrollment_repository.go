package repository

import (
	"errors"

	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) Exists(userID, courseID uint) (bool, error) {
	var enrollment model.Enrollment
	err := r.DB.
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *EnrollmentRepository) FindCourseIDsByUser(userID uint) ([]uint, error) {
	var courseIDs []uint
	err := r.DB.Model(&model.Enrollment{}).
		Where("user_id = ?", userID).
		Pluck("course_id", &courseIDs).Error
	return courseIDs, err
}
