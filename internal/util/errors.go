package util

import "errors"

var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrModuleNotFound      = errors.New("module not found")
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrRoleConflict        = errors.New("邮箱已注册为其他角色")
	ErrNotQuizAssignment   = errors.New("assignment has no test data")
	ErrQuizAssignment      = errors.New("assignment is a quiz, file upload not allowed")
	ErrAnswerCountMismatch = errors.New("answer count does not match question count")
	ErrMalformedTestData   = errors.New("malformed test data")
)
