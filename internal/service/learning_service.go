package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type LearningService struct {
	CourseRepo *repository.CourseRepository
	ModuleRepo *repository.ModuleRepository
}

func NewLearningService(courseRepo *repository.CourseRepository, moduleRepo *repository.ModuleRepository) *LearningService {
	return &LearningService{
		CourseRepo: courseRepo,
		ModuleRepo: moduleRepo,
	}
}

func (s *LearningService) Course(courseID uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *LearningService) CourseModules(courseID uint) ([]model.Module, error) {
	return s.ModuleRepo.FindByCourseOrdered(courseID)
}

// ModuleContext 在课程的有序模块列表里定位目标模块并取前后邻居。
// 目标不在本课程时返回 ErrModuleNotFound，不向上抛
func (s *LearningService) ModuleContext(courseID, moduleID, studentID uint) (*model.ModuleContext, error) {
	modules, err := s.ModuleRepo.FindByCourseOrdered(courseID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range modules {
		if modules[i].ID == moduleID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, util.ErrModuleNotFound
	}

	mc := &model.ModuleContext{Module: &modules[idx]}
	if idx > 0 {
		mc.Prev = &modules[idx-1]
	}
	if idx < len(modules)-1 {
		mc.Next = &modules[idx+1]
	}

	switch mc.Module.Type {
	case model.AssignmentModule:
		mc.Assignment = mc.Module.Assignment
		if mc.Assignment != nil {
			mc.Submission = latestSubmissionFor(mc.Assignment, studentID)
		}
	case model.VideoModule:
		mc.Video = mc.Module.Video
	}

	return mc, nil
}

// Progress 每次查看都重新聚合，不做任何缓存。
// total 只数作业型模块，completed 只数本学生已批改的那部分
func (s *LearningService) Progress(modules []model.Module, studentID uint) model.CourseProgress {
	var progress model.CourseProgress
	for i := range modules {
		if modules[i].Type != model.AssignmentModule {
			continue
		}
		progress.Total++
		assignment := modules[i].Assignment
		if assignment == nil {
			continue
		}
		if sub := latestSubmissionFor(assignment, studentID); sub != nil && sub.Status == model.SubmissionReviewed {
			progress.Completed++
		}
	}
	return progress
}

func (s *LearningService) Stats(modules []model.Module) model.CourseStats {
	var stats model.CourseStats
	for i := range modules {
		switch modules[i].Type {
		case model.TextModule:
			stats.Texts++
		case model.AssignmentModule:
			stats.Assignments++
		case model.VideoModule:
			stats.Videos++
		}
	}
	return stats
}

func (s *LearningService) FirstModule(modules []model.Module) *model.Module {
	if len(modules) == 0 {
		return nil
	}
	return &modules[0]
}

// latestSubmissionFor 预加载的提交已按 submitted_at 倒序，首个匹配即最近一次
func latestSubmissionFor(assignment *model.Assignment, studentID uint) *model.Submission {
	for i := range assignment.Submissions {
		if assignment.Submissions[i].StudentID == studentID {
			return &assignment.Submissions[i]
		}
	}
	return nil
}
