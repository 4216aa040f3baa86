package service

import (
	"errors"
	"strings"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
}

func NewAuthService(userRepo *repository.UserRepository) *AuthService {
	return &AuthService{UserRepo: userRepo}
}

// RegisterOrLogin 按邮箱找回或创建用户。角色在创建时固定：
// 同一邮箱换角色再来视为冲突（ErrRoleConflict），不做合并或切换
func (s *AuthService) RegisterOrLogin(email string, role model.UserRole) (*model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err == nil {
		if user.Role != role {
			return nil, util.ErrRoleConflict
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = &model.User{
		Email: email,
		Name:  nameFromEmail(email),
		Role:  role,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// nameFromEmail 取邮箱本地部分并把首字母大写，如 ivan@example.com → Ivan
func nameFromEmail(email string) string {
	local := email
	if i := strings.Index(email, "@"); i >= 0 {
		local = email[:i]
	}
	if local == "" {
		return email
	}
	return strings.ToUpper(local[:1]) + local[1:]
}
