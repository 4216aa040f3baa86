package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) FindAll() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Order("id").Find(&courses).Error
	return courses, err
}

// Search 标题/描述子串过滤，q 为空时返回全部
func (r *CourseRepository) Search(q string) ([]model.Course, error) {
	if q == "" {
		return r.FindAll()
	}
	var courses []model.Course
	pattern := "%" + q + "%"
	err := r.DB.
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern).
		Order("id").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByIDs(ids []uint) ([]model.Course, error) {
	var courses []model.Course
	if len(ids) == 0 {
		return courses, nil
	}
	err := r.DB.Where("id IN ?", ids).Order("id").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindExcludingIDs(ids []uint) ([]model.Course, error) {
	var courses []model.Course
	tx := r.DB.Order("id")
	if len(ids) > 0 {
		tx = tx.Where("id NOT IN ?", ids)
	}
	err := tx.Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Count(&count).Error
	return count, err
}
