package service

import (
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
)

// AccessService 课程访问守卫：学生需要选课记录，教师只做角色校验
// （现行设计不把教师限定到具体课程）
type AccessService struct {
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewAccessService(enrollmentRepo *repository.EnrollmentRepository) *AccessService {
	return &AccessService{EnrollmentRepo: enrollmentRepo}
}

// CanViewCourse 拒绝时由调用方跳回首页，这是导航结果而不是错误
func (s *AccessService) CanViewCourse(userID uint, role model.UserRole, courseID uint) (bool, error) {
	if role == model.Teacher {
		return true, nil
	}
	return s.EnrollmentRepo.Exists(userID, courseID)
}

// Enroll 幂等选课：已有记录时不再写入
func (s *AccessService) Enroll(userID, courseID uint) error {
	exists, err := s.EnrollmentRepo.Exists(userID, courseID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.EnrollmentRepo.Create(&model.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Role:     model.Student,
	})
}
