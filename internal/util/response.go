package util

import (
	"fmt"
	"html"
	"net/http"

	"lms_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一JSON响应结构（健康检查等API端点使用）
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// HTML 渲染完整页面模板
func HTML(c *gin.Context, status int, name string, data gin.H) {
	c.HTML(status, name, data)
}

// ErrorPage 渲染错误页（课程/模块/作业不存在等导航类失败）
func ErrorPage(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", gin.H{"message": message})
}

// Alert 返回htmx局部片段，level 对应bootstrap的 success/info/danger
func Alert(c *gin.Context, status int, level, message string) {
	body := fmt.Sprintf(`<div class="alert alert-%s alert-dismissible fade show" role="alert">%s</div>`,
		level, html.EscapeString(message))
	c.Data(status, "text/html; charset=utf-8", []byte(body))
}

// RedirectHome 访问被拒时跳回首页，导航结果而非错误
func RedirectHome(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	Alert(c, http.StatusInternalServerError, "danger", "服务器内部错误，请稍后重试")
}
