package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// SubmissionService 提交生命周期：文件路径 pending → reviewed，
// 测验路径创建即 reviewed，之后不再流转
type SubmissionService struct {
	AssignmentRepo *repository.AssignmentRepository
	SubmissionRepo *repository.SubmissionRepository
	Storage        *StorageService
}

func NewSubmissionService(
	assignmentRepo *repository.AssignmentRepository,
	submissionRepo *repository.SubmissionRepository,
	storage *StorageService,
) *SubmissionService {
	return &SubmissionService{
		AssignmentRepo: assignmentRepo,
		SubmissionRepo: submissionRepo,
		Storage:        storage,
	}
}

func (s *SubmissionService) FindAssignment(assignmentID uint) (*model.Assignment, error) {
	assignment, err := s.AssignmentRepo.FindByID(assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignment, nil
}

// SubmissionFilename 路径由 (学生, 作业, 时间戳, 原始文件名) 确定性推导，避免互相覆盖
func SubmissionFilename(studentID, assignmentID uint, now time.Time, original string) string {
	return fmt.Sprintf("%d_%d_%s_%s", studentID, assignmentID, now.Format("20060102_150405"), filepath.Base(original))
}

// SubmitFile 文件路径提交。不校验文件内容与类型
func (s *SubmissionService) SubmitFile(ctx context.Context, studentID, assignmentID uint, file *multipart.FileHeader) (*model.Submission, error) {
	assignment, err := s.FindAssignment(assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.IsQuiz() {
		return nil, util.ErrQuizAssignment
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	now := time.Now()
	filename := SubmissionFilename(studentID, assignmentID, now, file.Filename)
	if _, err := s.Storage.Upload(ctx, filename, src, file.Size, file.Header.Get("Content-Type")); err != nil {
		return nil, err
	}

	submission := &model.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		FilePath:     filename,
		Status:       model.SubmissionPending,
		Feedback:     "",
		Grade:        0,
		SubmittedAt:  now,
	}
	if err := s.SubmissionRepo.Create(submission); err != nil {
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues("file").Inc()
	return submission, nil
}

// GradeQuiz 逐题按下标精确比对（设计如此，不做选项值比较），百分制浮点
func GradeQuiz(quiz *model.QuizData, answers []int) model.QuizResult {
	result := model.QuizResult{TotalQuestions: len(quiz.Questions)}
	for i, q := range quiz.Questions {
		if answers[i] == q.CorrectAnswer {
			result.CorrectCount++
		}
	}
	if result.TotalQuestions > 0 {
		result.GradePercent = 100 * float64(result.CorrectCount) / float64(result.TotalQuestions)
	}
	return result
}

// SubmitQuiz 答案数与题目数不符时直接失败，什么都不落库。
// 判分确定且幂等：同样的答案再提交一次得到同样的分数
func (s *SubmissionService) SubmitQuiz(studentID, assignmentID uint, answers []int) (*model.Submission, *model.QuizResult, error) {
	assignment, err := s.FindAssignment(assignmentID)
	if err != nil {
		return nil, nil, err
	}
	if !assignment.IsQuiz() {
		return nil, nil, util.ErrNotQuizAssignment
	}

	quiz, err := assignment.QuizData()
	if err != nil {
		return nil, nil, util.ErrMalformedTestData
	}
	if len(answers) != len(quiz.Questions) {
		return nil, nil, util.ErrAnswerCountMismatch
	}

	result := GradeQuiz(quiz, answers)

	rawAnswers, err := json.Marshal(answers)
	if err != nil {
		return nil, nil, err
	}

	submission := &model.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		Status:       model.SubmissionReviewed, // 测验创建即终态
		Feedback:     fmt.Sprintf("测验已完成，正确答案：%d/%d。", result.CorrectCount, result.TotalQuestions),
		Grade:        result.GradePercent,
		SubmittedAt:  time.Now(),
		TestAnswers:  rawAnswers,
	}
	if err := s.SubmissionRepo.Create(submission); err != nil {
		return nil, nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues("quiz").Inc()
	return submission, &result, nil
}

// Review 教师批改。对已批改的提交重复批改会直接覆盖分数与评语——
// 有意保留的幂等覆盖语义；并发批改为后写覆盖，不加锁
func (s *SubmissionService) Review(submissionID uint, grade float64, feedback string) (*model.Submission, error) {
	submission, err := s.SubmissionRepo.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}

	submission.Grade = grade
	submission.Feedback = feedback
	submission.Status = model.SubmissionReviewed
	if err := s.SubmissionRepo.Save(submission); err != nil {
		return nil, err
	}

	monitoring.ReviewCounter.Inc()
	return submission, nil
}

func (s *SubmissionService) Find(submissionID uint) (*model.Submission, error) {
	submission, err := s.SubmissionRepo.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	return submission, nil
}

func (s *SubmissionService) Pending() ([]model.Submission, error) {
	return s.SubmissionRepo.FindPending()
}

func (s *SubmissionService) LatestFor(assignmentID, studentID uint) (*model.Submission, error) {
	submission, err := s.SubmissionRepo.FindLatest(assignmentID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return submission, nil
}

// SubmissionCode 读取文件型提交的代码内容用于展示，文件缺失给占位文案
func (s *SubmissionService) SubmissionCode(ctx context.Context, submission *model.Submission) string {
	if submission == nil || submission.FilePath == "" {
		return ""
	}

	reader, err := s.Storage.Open(ctx, submission.FilePath)
	if err != nil {
		return "文件不存在或已被移除。"
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return "文件不存在或已被移除。"
	}
	return string(content)
}
