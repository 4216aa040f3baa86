package middleware

import (
	"net/http"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// SessionMiddleware 解析会话Cookie并把身份放入上下文，不在这里拦截
func SessionMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(util.SessionCookieName)
		if err == nil && token != "" {
			if claims, err := util.ParseSessionToken(token, cfg.Session.Secret); err == nil {
				c.Set("session", claims)
			}
		}
		c.Next()
	}
}

func hasRole(claims *util.SessionClaims, roles []model.UserRole) bool {
	if claims == nil {
		return false
	}
	for _, role := range roles {
		if claims.UserRole == role {
			return true
		}
	}
	return false
}

// RequirePage 页面类路由的角色门：未登录或角色不符时跳回首页，
// 这是导航结果而非错误响应
func RequirePage(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetSessionFromContext(c)
		if !hasRole(claims, roles) {
			util.RedirectHome(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAction 提交类路由的角色门：拒绝时返回显式403片段
func RequireAction(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetSessionFromContext(c)
		if !hasRole(claims, roles) {
			util.Alert(c, http.StatusForbidden, "danger", "身份验证失败")
			c.Abort()
			return
		}
		c.Next()
	}
}
