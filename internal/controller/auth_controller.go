package controller

import (
	"errors"
	"net/http"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
	Cfg         *config.Config
}

func NewAuthController(authService *service.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{AuthService: authService, Cfg: cfg}
}

// Home godoc
// @Summary 首页
// @Tags 认证
// @Produce html
// @Success 200 {string} string "HTML"
// @Router / [get]
func (c *AuthController) Home(ctx *gin.Context) {
	util.HTML(ctx, http.StatusOK, "home.html", gin.H{})
}

// AuthPage godoc
// @Summary 注册/登录页
// @Description 已登录用户直接跳转到对应角色的工作台
// @Tags 认证
// @Produce html
// @Success 200 {string} string "HTML"
// @Router /auth [get]
func (c *AuthController) AuthPage(ctx *gin.Context) {
	if claims := util.GetSessionFromContext(ctx); claims != nil {
		util.Redirect(ctx, "/"+string(claims.UserRole)+"/dashboard")
		return
	}
	util.HTML(ctx, http.StatusOK, "register.html", gin.H{})
}

type SetRoleRequest struct {
	Role string `form:"role" binding:"required,oneof=student teacher"`
}

// SetRole godoc
// @Summary 选择注册角色
// @Description 返回填写邮箱的表单片段
// @Tags 认证
// @Accept x-www-form-urlencoded
// @Produce html
// @Param role formData string true "student 或 teacher"
// @Success 200 {string} string "HTML片段"
// @Failure 400 {string} string "HTML片段"
// @Router /set-role [post]
func (c *AuthController) SetRole(ctx *gin.Context) {
	var req SetRoleRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.Alert(ctx, http.StatusBadRequest, "danger", "请选择有效的角色")
		return
	}
	util.HTML(ctx, http.StatusOK, "role_form.html", gin.H{"role": req.Role})
}

type RegisterRequest struct {
	Email string `form:"email" binding:"required,email"`
	Role  string `form:"role" binding:"required,oneof=student teacher"`
}

// Register godoc
// @Summary 注册或登录
// @Description 新邮箱直接建号，老邮箱同角色视为登录；同邮箱换角色视为冲突
// @Tags 认证
// @Accept x-www-form-urlencoded
// @Produce html
// @Param email formData string true "邮箱"
// @Param role formData string true "student 或 teacher"
// @Success 303 {string} string "跳转到工作台"
// @Failure 400 {string} string "HTML片段"
// @Router /register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.Alert(ctx, http.StatusBadRequest, "danger", "请填写有效的邮箱和角色")
		return
	}

	user, err := c.AuthService.RegisterOrLogin(req.Email, model.UserRole(req.Role))
	if err != nil {
		if errors.Is(err, util.ErrRoleConflict) {
			util.HTML(ctx, http.StatusOK, "role_conflict.html", gin.H{"email": req.Email})
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	token, err := util.GenerateSessionToken(user, c.Cfg.Session.Secret, c.Cfg.Session.ExpireTime)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	secure := c.Cfg.Server.Mode == "release"
	util.SetSessionCookie(ctx, token, int(c.Cfg.Session.ExpireTime.Seconds()), secure)
	util.Redirect(ctx, "/"+string(user.Role)+"/dashboard")
}

// Logout godoc
// @Summary 退出登录
// @Tags 认证
// @Success 303 {string} string "跳转到首页"
// @Router /logout [get]
func (c *AuthController) Logout(ctx *gin.Context) {
	util.ClearSessionCookie(ctx)
	util.RedirectHome(ctx)
}
