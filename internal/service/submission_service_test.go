package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSubmissionService(t *testing.T, db *gorm.DB) *SubmissionService {
	t.Helper()
	return NewSubmissionService(
		repository.NewAssignmentRepository(db),
		repository.NewSubmissionRepository(db),
		newTestStorage(t),
	)
}

func multipartFile(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	_, header, err := req.FormFile("file")
	require.NoError(t, err)
	return header
}

func TestSubmissionFilename(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	got := SubmissionFilename(7, 42, now, "solution.py")
	assert.Equal(t, "7_42_20260314_150926_solution.py", got)

	// 原始文件名只保留基名，路径部分丢弃
	got = SubmissionFilename(7, 42, now, "../../etc/solution.py")
	assert.Equal(t, "7_42_20260314_150926_solution.py", got)
}

func TestGradeQuiz(t *testing.T) {
	quiz := twoQuestionQuiz()

	full := GradeQuiz(quiz, []int{1, 2})
	assert.Equal(t, 2, full.CorrectCount)
	assert.InDelta(t, 100.0, full.GradePercent, 0.001)

	half := GradeQuiz(quiz, []int{1, 0})
	assert.Equal(t, 1, half.CorrectCount)
	assert.InDelta(t, 50.0, half.GradePercent, 0.001)

	zero := GradeQuiz(quiz, []int{0, 0})
	assert.Equal(t, 0, zero.CorrectCount)
	assert.InDelta(t, 0.0, zero.GradePercent, 0.001)
}

func TestGradeQuizDeterministic(t *testing.T) {
	quiz := twoQuestionQuiz()
	answers := []int{1, 0}

	first := GradeQuiz(quiz, answers)
	second := GradeQuiz(quiz, answers)
	assert.Equal(t, first, second)
}

func TestSubmitFileCreatesPendingSubmission(t *testing.T) {
	db := newTestDB(t)
	student := createUser(t, db, "student@test.com", model.Student)
	course := createCourse(t, db, "Go 入门", "go")
	m := createModule(t, db, course.ID, 1, model.AssignmentModule, "作业")
	assignment := createAssignment(t, db, m.ID, nil)

	svc := newSubmissionService(t, db)

	submission, err := svc.SubmitFile(context.Background(), student.ID, assignment.ID, multipartFile(t, "solution.py", "print('hi')"))
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionPending, submission.Status)
	assert.Equal(t, 0.0, submission.Grade)
	assert.Empty(t, submission.Feedback)
	assert.Contains(t, submission.FilePath, "solution.py")

	// 上传的内容可以按原样读回
	code := svc.SubmissionCode(context.Background(), submission)
	assert.Equal(t, "print('hi')", code)
}

func TestSubmitFileToQuizRejected(t *testing.T) {
	db := newTestDB(t)
	student := createUser(t, db, "student@test.com", model.Student)
	course := createCourse(t, db, "Go 入门", "go")
	m := createModule(t, db, course.ID, 1, model.AssignmentModule, "测验")
	quiz := createAssignment(t, db, m.ID, twoQuestionQuiz())

	svc := newSubmissionService(t, db)

	_, err := svc.SubmitFile(context.Background(), student.ID, quiz.ID, multipartFile(t, "solution.py", "x"))
	assert.ErrorIs(t, err, util.ErrQuizAssignment)
}

func TestSubmitFileAssignmentNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newSubmissionService(t, db)

	_, err := svc.SubmitFile(context.Background(), 1, 9999, multipartFile(t, "solution.py", "x"))
	assert.ErrorIs(t, err, util.ErrAssignmentNotFound)
}

func TestSubmitQuizAutogrades(t *testing.T) {
	db := newTestDB(t)
	student := createUser(t, db, "student@test.com", model.Student)
	course := createCourse(t, db, "Go 入门", "go")
	m := createModule(t, db, course.ID, 1, model.AssignmentModule, "测验")
	quiz := createAssignment(t, db, m.ID, twoQuestionQuiz())

	svc := newSubmissionService(t, db)

	submission, result, err := svc.SubmitQuiz(student.ID, quiz.ID, []int{1, 0})
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionReviewed, submission.Status)
	assert.InDelta(t, 50.0, submission.Grade, 0.001)
	assert.Equal(t, "测验已完成，正确答案：1/2。", submission.Feedback)
	assert.Equal(t, 1, result.CorrectCount)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.JSONEq(t, "[1,0]", string(submission.TestAnswers))
}

func TestSubmitQuizAnswerCountMismatch(t *testing.T) {
	db := newTestDB(t)
	student := createUser(t, db, "student@test.com", model.Student)
	course := createCourse(t, db, "Go 入门", "go")
	m := createModule(t, db, course.ID, 1, model.AssignmentModule, "测验")
	quiz := createAssignment(t, db, m.ID, twoQuestionQuiz())

	svc := newSubmissionService(t, db)

	_, _, err := svc.SubmitQuiz(student.ID, quiz.ID, []int{1})
	assert.ErrorIs(t, err, util.ErrAnswerCountMismatch)

	// 失败路径不落任何记录
	var count int64
	require.NoError(t, db.Model(&model.Submission{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestSubmitQuizOnFileAssignmentRejected(t *testing.T) {
	db := newTestDB(t)
	student := createUser(t, db, "student@test.com", model.Student)
	course := createCourse(t, db, "Go 入门", "go")
	m := createModule(t, db, course.ID, 1, model.AssignmentModule, "作业")
	assignment := createAssignment(t, db, m.ID, nil)

	svc := newSubmissionService(t, db)

	_, _, err := svc.SubmitQuiz(student.ID, assignment.ID, []int{1})
	assert.ErrorIs(t, err, util.ErrNotQuizAssignment)
}

func TestSubmitQuizMalformedTestData(t *testing.T) {
	db := newTestDB(t)
	student := createUser(t, db, "student@test.com", model.Student)
	course := createCourse(t, db, "Go 入门", "go")
	m := createModule(t, db, course.ID, 1, model.AssignmentModule, "测验")
	broken := &model.Assignment{ModuleID: m.ID, Title: "坏数据", TestData: "{not json"}
	require.NoError(t, db.Create(broken).Error)

	svc := newSubmissionService(t, db)

	_, _, err := svc.SubmitQuiz(student.ID, broken.ID, []int{1})
	assert.ErrorIs(t, err, util.ErrMalformedTestData)
}

func TestReviewTransition(t *testing.T) {
	db := newTestDB(t)
	student := createUser(t, db, "student@test.com", model.Student)
	course := createCourse(t, db, "Go 入门", "go")
	m := createModule(t, db, course.ID, 1, model.AssignmentModule, "作业")
	assignment := createAssignment(t, db, m.ID, nil)
	submission := createSubmission(t, db, assignment.ID, student.ID, model.SubmissionPending, time.Now())

	svc := newSubmissionService(t, db)

	reviewed, err := svc.Review(submission.ID, 8, "完成得不错")
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionReviewed, reviewed.Status)
	assert.InDelta(t, 8.0, reviewed.Grade, 0.001)
	assert.Equal(t, "完成得不错", reviewed.Feedback)

	// 重复批改直接覆盖
	again, err := svc.Review(submission.ID, 9.5, "修订后更好")
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionReviewed, again.Status)
	assert.InDelta(t, 9.5, again.Grade, 0.001)
	assert.Equal(t, "修订后更好", again.Feedback)
}

func TestReviewNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newSubmissionService(t, db)

	_, err := svc.Review(9999, 5, "")
	assert.ErrorIs(t, err, util.ErrSubmissionNotFound)
}

func TestLatestForPicksMostRecent(t *testing.T) {
	db := newTestDB(t)
	student := createUser(t, db, "student@test.com", model.Student)
	course := createCourse(t, db, "Go 入门", "go")
	m := createModule(t, db, course.ID, 1, model.AssignmentModule, "作业")
	assignment := createAssignment(t, db, m.ID, nil)

	createSubmission(t, db, assignment.ID, student.ID, model.SubmissionReviewed, time.Now().Add(-2*time.Hour))
	newest := createSubmission(t, db, assignment.ID, student.ID, model.SubmissionPending, time.Now())

	svc := newSubmissionService(t, db)

	got, err := svc.LatestFor(assignment.ID, student.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, newest.ID, got.ID)
}

func TestLatestForNoSubmissions(t *testing.T) {
	db := newTestDB(t)
	svc := newSubmissionService(t, db)

	got, err := svc.LatestFor(1, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPendingOrderedOldestFirst(t *testing.T) {
	db := newTestDB(t)
	student := createUser(t, db, "student@test.com", model.Student)
	course := createCourse(t, db, "Go 入门", "go")
	m := createModule(t, db, course.ID, 1, model.AssignmentModule, "作业")
	assignment := createAssignment(t, db, m.ID, nil)

	second := createSubmission(t, db, assignment.ID, student.ID, model.SubmissionPending, time.Now())
	first := createSubmission(t, db, assignment.ID, student.ID, model.SubmissionPending, time.Now().Add(-time.Hour))
	createSubmission(t, db, assignment.ID, student.ID, model.SubmissionReviewed, time.Now())

	svc := newSubmissionService(t, db)

	pending, err := svc.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first.ID, pending[0].ID)
	assert.Equal(t, second.ID, pending[1].ID)
}

func TestSubmissionCodeMissingFile(t *testing.T) {
	db := newTestDB(t)
	svc := newSubmissionService(t, db)

	submission := &model.Submission{FilePath: "does_not_exist.py"}
	assert.Equal(t, "文件不存在或已被移除。", svc.SubmissionCode(context.Background(), submission))
	assert.Equal(t, "", svc.SubmissionCode(context.Background(), nil))
}
