package controller

import (
	"errors"
	"fmt"
	"net/http"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	CourseService         *service.CourseService
	LearningService       *service.LearningService
	AccessService         *service.AccessService
	SubmissionService     *service.SubmissionService
	RecommendationService *service.RecommendationService
}

func NewStudentController(
	courseService *service.CourseService,
	learningService *service.LearningService,
	accessService *service.AccessService,
	submissionService *service.SubmissionService,
	recommendationService *service.RecommendationService,
) *StudentController {
	return &StudentController{
		CourseService:         courseService,
		LearningService:       learningService,
		AccessService:         accessService,
		SubmissionService:     submissionService,
		RecommendationService: recommendationService,
	}
}

// Dashboard godoc
// @Summary 学生工作台
// @Description 课程目录（支持搜索）与个性化推荐
// @Tags 学生
// @Produce html
// @Param q query string false "搜索关键字"
// @Success 200 {string} string "HTML"
// @Router /student/dashboard [get]
func (c *StudentController) Dashboard(ctx *gin.Context) {
	claims := util.GetSessionFromContext(ctx)
	q := ctx.Query("q")

	courses, err := c.CourseService.Catalog(q)
	if err != nil {
		util.ErrorPage(ctx, http.StatusInternalServerError, "加载课程目录失败")
		return
	}

	recommendations, err := c.RecommendationService.ForStudent(ctx.Request.Context(), claims.UserID)
	if err != nil {
		// 推荐失败不阻断页面
		recommendations = nil
	}

	util.HTML(ctx, http.StatusOK, "student_dashboard.html", gin.H{
		"user":            claims,
		"courses":         courses,
		"recommendations": recommendations,
		"query":           q,
	})
}

// Courses godoc
// @Summary 我的课程
// @Description 已加入课程与可加入课程分列展示
// @Tags 学生
// @Produce html
// @Success 200 {string} string "HTML"
// @Router /student/courses [get]
func (c *StudentController) Courses(ctx *gin.Context) {
	claims := util.GetSessionFromContext(ctx)

	enrolled, others, err := c.CourseService.SplitForStudent(claims.UserID)
	if err != nil {
		util.ErrorPage(ctx, http.StatusInternalServerError, "加载课程列表失败")
		return
	}

	util.HTML(ctx, http.StatusOK, "student_courses.html", gin.H{
		"user":     claims,
		"enrolled": enrolled,
		"others":   others,
	})
}

// Enroll godoc
// @Summary 加入课程
// @Tags 学生
// @Success 303 {string} string "跳转到课程页"
// @Router /student/enroll/{courseId} [post]
func (c *StudentController) Enroll(ctx *gin.Context) {
	claims := util.GetSessionFromContext(ctx)
	courseID, err := util.StringToUint(ctx.Param("courseId"))
	if err != nil {
		util.ErrorPage(ctx, http.StatusNotFound, "课程不存在")
		return
	}

	if _, err := c.LearningService.Course(courseID); err != nil {
		util.ErrorPage(ctx, http.StatusNotFound, "课程不存在")
		return
	}

	if err := c.AccessService.Enroll(claims.UserID, courseID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Redirect(ctx, "/student/course/"+util.UintToString(courseID))
}

// CourseDetail godoc
// @Summary 课程详情
// @Description 模块列表、进度与内容统计，未加入课程时跳转回课程列表
// @Tags 学生
// @Produce html
// @Success 200 {string} string "HTML"
// @Router /student/course/{courseId} [get]
func (c *StudentController) CourseDetail(ctx *gin.Context) {
	claims := util.GetSessionFromContext(ctx)
	courseID, err := util.StringToUint(ctx.Param("courseId"))
	if err != nil {
		util.ErrorPage(ctx, http.StatusNotFound, "课程不存在")
		return
	}

	allowed, err := c.AccessService.CanViewCourse(claims.UserID, claims.UserRole, courseID)
	if err != nil {
		util.ErrorPage(ctx, http.StatusInternalServerError, "加载课程失败")
		return
	}
	if !allowed {
		util.RedirectHome(ctx)
		return
	}

	course, err := c.LearningService.Course(courseID)
	if err != nil {
		util.ErrorPage(ctx, http.StatusNotFound, "课程不存在")
		return
	}

	modules, err := c.LearningService.CourseModules(courseID)
	if err != nil {
		util.ErrorPage(ctx, http.StatusInternalServerError, "加载课程模块失败")
		return
	}

	progress := c.LearningService.Progress(modules, claims.UserID)
	stats := c.LearningService.Stats(modules)
	first := c.LearningService.FirstModule(modules)

	util.HTML(ctx, http.StatusOK, "student_course_detail.html", gin.H{
		"user":        claims,
		"course":      course,
		"modules":     modules,
		"progress":    progress,
		"stats":       stats,
		"firstModule": first,
	})
}

// ModuleDetail godoc
// @Summary 模块详情
// @Description 按模块顺序给出上一个/下一个导航
// @Tags 学生
// @Produce html
// @Success 200 {string} string "HTML"
// @Router /student/course/{courseId}/module/{moduleId} [get]
func (c *StudentController) ModuleDetail(ctx *gin.Context) {
	claims := util.GetSessionFromContext(ctx)
	courseID, err := util.StringToUint(ctx.Param("courseId"))
	if err != nil {
		util.ErrorPage(ctx, http.StatusNotFound, "课程不存在")
		return
	}
	moduleID, err := util.StringToUint(ctx.Param("moduleId"))
	if err != nil {
		util.ErrorPage(ctx, http.StatusNotFound, "模块不存在")
		return
	}

	allowed, err := c.AccessService.CanViewCourse(claims.UserID, claims.UserRole, courseID)
	if err != nil {
		util.ErrorPage(ctx, http.StatusInternalServerError, "加载模块失败")
		return
	}
	if !allowed {
		util.Redirect(ctx, "/student/courses")
		return
	}

	course, err := c.LearningService.Course(courseID)
	if err != nil {
		util.ErrorPage(ctx, http.StatusNotFound, "课程不存在")
		return
	}

	mc, err := c.LearningService.ModuleContext(courseID, moduleID, claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrModuleNotFound) {
			util.ErrorPage(ctx, http.StatusNotFound, "模块不存在")
			return
		}
		util.ErrorPage(ctx, http.StatusInternalServerError, "加载模块失败")
		return
	}

	util.HTML(ctx, http.StatusOK, "student_module.html", gin.H{
		"user":       claims,
		"course":     course,
		"module":     mc.Module,
		"prev":       mc.Prev,
		"next":       mc.Next,
		"assignment": mc.Assignment,
		"submission": mc.Submission,
		"video":      mc.Video,
	})
}

// AssignmentDetail godoc
// @Summary 作业详情
// @Description 展示作业说明与最近一次提交（含文件内容与批改结果）
// @Tags 学生
// @Produce html
// @Success 200 {string} string "HTML"
// @Router /student/assignment/{assignmentId} [get]
func (c *StudentController) AssignmentDetail(ctx *gin.Context) {
	claims := util.GetSessionFromContext(ctx)
	assignmentID, err := util.StringToUint(ctx.Param("assignmentId"))
	if err != nil {
		util.ErrorPage(ctx, http.StatusNotFound, "作业不存在")
		return
	}

	assignment, err := c.SubmissionService.FindAssignment(assignmentID)
	if err != nil {
		util.ErrorPage(ctx, http.StatusNotFound, "作业不存在")
		return
	}

	submission, err := c.SubmissionService.LatestFor(assignmentID, claims.UserID)
	if err != nil {
		util.ErrorPage(ctx, http.StatusInternalServerError, "加载提交记录失败")
		return
	}

	var code string
	if submission != nil && !assignment.IsQuiz() {
		code = c.SubmissionService.SubmissionCode(ctx.Request.Context(), submission)
	}

	var quiz *model.QuizData
	if assignment.IsQuiz() {
		quiz, _ = assignment.QuizData()
	}

	util.HTML(ctx, http.StatusOK, "student_assignment.html", gin.H{
		"user":       claims,
		"assignment": assignment,
		"submission": submission,
		"code":       code,
		"quiz":       quiz,
	})
}

// SubmitFile godoc
// @Summary 提交作业文件
// @Tags 学生
// @Accept mpfd
// @Produce html
// @Param file formData file true "作业文件"
// @Success 200 {string} string "HTML片段"
// @Failure 404 {string} string "HTML片段"
// @Router /student/submit/{assignmentId} [post]
func (c *StudentController) SubmitFile(ctx *gin.Context) {
	claims := util.GetSessionFromContext(ctx)
	assignmentID, err := util.StringToUint(ctx.Param("assignmentId"))
	if err != nil {
		util.Alert(ctx, http.StatusNotFound, "danger", "作业不存在")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.Alert(ctx, http.StatusBadRequest, "danger", "请选择要上传的文件")
		return
	}

	if _, err := c.SubmissionService.SubmitFile(ctx.Request.Context(), claims.UserID, assignmentID, file); err != nil {
		switch {
		case errors.Is(err, util.ErrAssignmentNotFound):
			util.Alert(ctx, http.StatusNotFound, "danger", "作业不存在")
		case errors.Is(err, util.ErrQuizAssignment):
			util.Alert(ctx, http.StatusBadRequest, "danger", "该作业为测验，请在线作答")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Alert(ctx, http.StatusOK, "info", "作业已提交，等待批改")
}

type QuizSubmitRequest struct {
	Answers []int `json:"answers" binding:"required"`
}

// SubmitQuiz godoc
// @Summary 提交测验答案
// @Description 按题目顺序提交所选选项的下标，提交后立即自动判分
// @Tags 学生
// @Accept json
// @Produce html
// @Param request body QuizSubmitRequest true "答案列表"
// @Success 200 {string} string "HTML片段"
// @Failure 400 {string} string "HTML片段"
// @Router /student/submit-test/{assignmentId} [post]
func (c *StudentController) SubmitQuiz(ctx *gin.Context) {
	claims := util.GetSessionFromContext(ctx)
	assignmentID, err := util.StringToUint(ctx.Param("assignmentId"))
	if err != nil {
		util.Alert(ctx, http.StatusNotFound, "danger", "测验不存在")
		return
	}

	var req QuizSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.Alert(ctx, http.StatusBadRequest, "danger", "答案格式不正确")
		return
	}

	submission, result, err := c.SubmissionService.SubmitQuiz(claims.UserID, assignmentID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAssignmentNotFound), errors.Is(err, util.ErrNotQuizAssignment):
			util.Alert(ctx, http.StatusNotFound, "danger", "测验不存在")
		case errors.Is(err, util.ErrAnswerCountMismatch):
			util.Alert(ctx, http.StatusBadRequest, "danger", "答案数量与题目数量不一致")
		case errors.Is(err, util.ErrMalformedTestData):
			util.LogInternalError(ctx, err)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	message := fmt.Sprintf("测验已完成，得分 %.2f 分。正确答案：%d/%d。",
		submission.Grade, result.CorrectCount, result.TotalQuestions)
	util.Alert(ctx, http.StatusOK, "success", message)
}
