package service

import (
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
)

// CourseService 课程目录的读侧，唯一数据源是关系库
type CourseService struct {
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewCourseService(courseRepo *repository.CourseRepository, enrollmentRepo *repository.EnrollmentRepository) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
	}
}

func (s *CourseService) Catalog(q string) ([]model.Course, error) {
	return s.CourseRepo.Search(q)
}

// SplitForStudent 已选课程与其余课程分列展示
func (s *CourseService) SplitForStudent(studentID uint) (enrolled, others []model.Course, err error) {
	courseIDs, err := s.EnrollmentRepo.FindCourseIDsByUser(studentID)
	if err != nil {
		return nil, nil, err
	}

	enrolled, err = s.CourseRepo.FindByIDs(courseIDs)
	if err != nil {
		return nil, nil, err
	}

	others, err = s.CourseRepo.FindExcludingIDs(courseIDs)
	if err != nil {
		return nil, nil, err
	}

	return enrolled, others, nil
}
