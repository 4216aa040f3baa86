package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

// FindByCourseOrdered 课程全部模块按 order 升序，预加载作业（含提交，最近优先）与视频。
// 顺序逻辑依赖 (course_id, sort_order) 的唯一性
func (r *ModuleRepository) FindByCourseOrdered(courseID uint) ([]model.Module, error) {
	var modules []model.Module
	err := r.DB.
		Where("course_id = ?", courseID).
		Preload("Assignment").
		Preload("Assignment.Submissions", func(db *gorm.DB) *gorm.DB {
			return db.Order("submitted_at DESC, id DESC")
		}).
		Preload("Video").
		Order("sort_order ASC").
		Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) FindByID(id uint) (*model.Module, error) {
	var module model.Module
	err := r.DB.Preload("Assignment").Preload("Video").First(&module, id).Error
	return &module, err
}
