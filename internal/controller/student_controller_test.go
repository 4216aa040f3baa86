package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"lms_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) createCourseWithModules(t *testing.T) (*model.Course, []model.Module) {
	t.Helper()

	course := &model.Course{Title: "Python 数据分析", Description: "入门课程", Tags: "python,data", Author: "王老师"}
	require.NoError(t, e.db.Create(course).Error)

	modules := []model.Module{
		{CourseID: course.ID, Title: "第一课", Type: model.TextModule, Content: "<p>讲义</p>", Order: 1},
		{CourseID: course.ID, Title: "作业一", Type: model.AssignmentModule, Content: "<p>练习</p>", Order: 2},
		{CourseID: course.ID, Title: "第三课", Type: model.TextModule, Content: "<p>讲义</p>", Order: 3},
	}
	for i := range modules {
		require.NoError(t, e.db.Create(&modules[i]).Error)
	}
	return course, modules
}

func (e *testEnv) enroll(t *testing.T, userID, courseID uint) {
	t.Helper()
	require.NoError(t, e.db.Create(&model.Enrollment{UserID: userID, CourseID: courseID, Role: model.Student}).Error)
}

func TestStudentPagesRequireLogin(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(httptest.NewRequest(http.MethodGet, "/student/dashboard", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestStudentPagesRejectTeacherRole(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "prof@example.com", model.Teacher)

	req := httptest.NewRequest(http.MethodGet, "/student/dashboard", nil)
	req.AddCookie(env.sessionCookie(t, teacher))
	w := env.do(req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestCourseDetailRequiresEnrollment(t *testing.T) {
	env := newTestEnv(t)
	student := env.createUser(t, "ivan@example.com", model.Student)
	course, _ := env.createCourseWithModules(t)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/student/course/%d", course.ID), nil)
	req.AddCookie(env.sessionCookie(t, student))
	w := env.do(req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestCourseDetailAfterEnrollment(t *testing.T) {
	env := newTestEnv(t)
	student := env.createUser(t, "ivan@example.com", model.Student)
	course, _ := env.createCourseWithModules(t)
	env.enroll(t, student.ID, course.ID)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/student/course/%d", course.ID), nil)
	req.AddCookie(env.sessionCookie(t, student))
	w := env.do(req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Python 数据分析")
	assert.Contains(t, w.Body.String(), "第一课")
}

func TestEnrollThenRedirectToCourse(t *testing.T) {
	env := newTestEnv(t)
	student := env.createUser(t, "ivan@example.com", model.Student)
	course, _ := env.createCourseWithModules(t)

	req := postForm(fmt.Sprintf("/student/enroll/%d", course.ID), url.Values{})
	req.AddCookie(env.sessionCookie(t, student))
	w := env.do(req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, fmt.Sprintf("/student/course/%d", course.ID), w.Header().Get("Location"))

	var count int64
	require.NoError(t, env.db.Model(&model.Enrollment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestModuleDetailShowsNeighbors(t *testing.T) {
	env := newTestEnv(t)
	student := env.createUser(t, "ivan@example.com", model.Student)
	course, modules := env.createCourseWithModules(t)
	env.enroll(t, student.ID, course.ID)

	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/student/course/%d/module/%d", course.ID, modules[1].ID), nil)
	req.AddCookie(env.sessionCookie(t, student))
	w := env.do(req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "第一课")
	assert.Contains(t, w.Body.String(), "第三课")
}

func TestModuleDetailWrongCourse404(t *testing.T) {
	env := newTestEnv(t)
	student := env.createUser(t, "ivan@example.com", model.Student)
	course, _ := env.createCourseWithModules(t)
	env.enroll(t, student.ID, course.ID)

	req := httptest.NewRequest(http.MethodGet,
		fmt.Sprintf("/student/course/%d/module/9999", course.ID), nil)
	req.AddCookie(env.sessionCookie(t, student))
	w := env.do(req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitFileActionRequiresStudent(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(postForm("/student/submit/1", url.Values{}))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "身份验证失败")
}

func TestSubmitFileFlow(t *testing.T) {
	env := newTestEnv(t)
	student := env.createUser(t, "ivan@example.com", model.Student)
	course, modules := env.createCourseWithModules(t)
	env.enroll(t, student.ID, course.ID)

	assignment := &model.Assignment{ModuleID: modules[1].ID, Title: "作业一", Description: "练习"}
	require.NoError(t, env.db.Create(assignment).Error)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "solution.py")
	require.NoError(t, err)
	_, err = part.Write([]byte("print('hi')"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/student/submit/%d", assignment.ID), &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.AddCookie(env.sessionCookie(t, student))
	w := env.do(req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "等待批改")

	var submission model.Submission
	require.NoError(t, env.db.First(&submission).Error)
	assert.Equal(t, model.SubmissionPending, submission.Status)
	assert.Equal(t, student.ID, submission.StudentID)
}

func TestSubmitQuizFlow(t *testing.T) {
	env := newTestEnv(t)
	student := env.createUser(t, "ivan@example.com", model.Student)
	course, modules := env.createCourseWithModules(t)
	env.enroll(t, student.ID, course.ID)

	quiz := model.QuizData{Questions: []model.QuizQuestion{
		{Question: "1+1=?", Options: []string{"1", "2"}, CorrectAnswer: 1},
		{Question: "2*2=?", Options: []string{"4", "5"}, CorrectAnswer: 0},
	}}
	raw, err := json.Marshal(quiz)
	require.NoError(t, err)
	assignment := &model.Assignment{ModuleID: modules[1].ID, Title: "测验", TestData: string(raw)}
	require.NoError(t, env.db.Create(assignment).Error)

	body, err := json.Marshal(map[string][]int{"answers": {1, 0}})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/student/submit-test/%d", assignment.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(env.sessionCookie(t, student))
	w := env.do(req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "正确答案：2/2")

	var submission model.Submission
	require.NoError(t, env.db.First(&submission).Error)
	assert.Equal(t, model.SubmissionReviewed, submission.Status)
	assert.InDelta(t, 100.0, submission.Grade, 0.001)
}

func TestSubmitQuizAnswerCountMismatchHTTP(t *testing.T) {
	env := newTestEnv(t)
	student := env.createUser(t, "ivan@example.com", model.Student)
	_, modules := env.createCourseWithModules(t)

	quiz := model.QuizData{Questions: []model.QuizQuestion{
		{Question: "1+1=?", Options: []string{"1", "2"}, CorrectAnswer: 1},
	}}
	raw, err := json.Marshal(quiz)
	require.NoError(t, err)
	assignment := &model.Assignment{ModuleID: modules[1].ID, Title: "测验", TestData: string(raw)}
	require.NoError(t, env.db.Create(assignment).Error)

	body, err := json.Marshal(map[string][]int{"answers": {1, 0}})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/student/submit-test/%d", assignment.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(env.sessionCookie(t, student))
	w := env.do(req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "答案数量与题目数量不一致")
}

func TestAssignmentDetailShowsMostRecentSubmission(t *testing.T) {
	env := newTestEnv(t)
	student := env.createUser(t, "ivan@example.com", model.Student)
	_, modules := env.createCourseWithModules(t)

	assignment := &model.Assignment{ModuleID: modules[1].ID, Title: "作业一", Description: "练习"}
	require.NoError(t, env.db.Create(assignment).Error)

	older := &model.Submission{AssignmentID: assignment.ID, StudentID: student.ID, Status: model.SubmissionReviewed,
		Grade: 3, Feedback: "老评语", SubmittedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, env.db.Create(older).Error)
	newer := &model.Submission{AssignmentID: assignment.ID, StudentID: student.ID, Status: model.SubmissionReviewed,
		Grade: 9, Feedback: "新评语", SubmittedAt: time.Now()}
	require.NoError(t, env.db.Create(newer).Error)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/student/assignment/%d", assignment.ID), nil)
	req.AddCookie(env.sessionCookie(t, student))
	w := env.do(req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "新评语")
	assert.NotContains(t, w.Body.String(), "老评语")
}
