package controller

import (
	"errors"
	"net/http"

	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TeacherController struct {
	SubmissionService *service.SubmissionService
}

func NewTeacherController(submissionService *service.SubmissionService) *TeacherController {
	return &TeacherController{SubmissionService: submissionService}
}

// Dashboard godoc
// @Summary 教师工作台
// @Description 按提交时间列出所有待批改的作业
// @Tags 教师
// @Produce html
// @Success 200 {string} string "HTML"
// @Router /teacher/dashboard [get]
func (c *TeacherController) Dashboard(ctx *gin.Context) {
	claims := util.GetSessionFromContext(ctx)

	pending, err := c.SubmissionService.Pending()
	if err != nil {
		util.ErrorPage(ctx, http.StatusInternalServerError, "加载待批改列表失败")
		return
	}

	util.HTML(ctx, http.StatusOK, "teacher_dashboard.html", gin.H{
		"user":    claims,
		"pending": pending,
	})
}

// ReviewPage godoc
// @Summary 批改页面
// @Description 展示提交的文件内容或测验答卷，附打分表单
// @Tags 教师
// @Produce html
// @Success 200 {string} string "HTML"
// @Failure 404 {string} string "HTML片段"
// @Router /teacher/review/{submissionId} [get]
func (c *TeacherController) ReviewPage(ctx *gin.Context) {
	claims := util.GetSessionFromContext(ctx)
	submissionID, err := util.StringToUint(ctx.Param("submissionId"))
	if err != nil {
		util.Alert(ctx, http.StatusNotFound, "danger", "提交记录不存在")
		return
	}

	submission, err := c.SubmissionService.Find(submissionID)
	if err != nil {
		if errors.Is(err, util.ErrSubmissionNotFound) {
			util.Alert(ctx, http.StatusNotFound, "danger", "提交记录不存在")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	var code string
	if submission.Assignment == nil || !submission.Assignment.IsQuiz() {
		code = c.SubmissionService.SubmissionCode(ctx.Request.Context(), submission)
	}

	util.HTML(ctx, http.StatusOK, "teacher_review.html", gin.H{
		"user":       claims,
		"submission": submission,
		"code":       code,
	})
}

// ReviewRequest 分数由教师自定，不限定取值范围
type ReviewRequest struct {
	Grade    float64 `form:"grade"`
	Feedback string  `form:"feedback"`
}

// SubmitReview godoc
// @Summary 提交批改结果
// @Description 写入分数与评语并将提交标记为已批改，重复批改以最后一次为准
// @Tags 教师
// @Accept x-www-form-urlencoded
// @Produce html
// @Param grade formData number true "分数"
// @Param feedback formData string false "评语"
// @Success 200 {string} string "HTML片段"
// @Failure 404 {string} string "HTML片段"
// @Router /teacher/review/{submissionId} [post]
func (c *TeacherController) SubmitReview(ctx *gin.Context) {
	submissionID, err := util.StringToUint(ctx.Param("submissionId"))
	if err != nil {
		util.Alert(ctx, http.StatusNotFound, "danger", "提交记录不存在")
		return
	}

	var req ReviewRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.Alert(ctx, http.StatusBadRequest, "danger", "请填写有效的分数")
		return
	}

	if _, err := c.SubmissionService.Review(submissionID, req.Grade, req.Feedback); err != nil {
		if errors.Is(err, util.ErrSubmissionNotFound) {
			util.Alert(ctx, http.StatusNotFound, "danger", "提交记录不存在")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Alert(ctx, http.StatusOK, "success", "批改完成！")
}
