package app

import (
	"lms_backend/docs"
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Check)

	// 所有页面路由都先解析会话，未登录不拦截
	router.Use(middleware.SessionMiddleware(cfg))

	// 公共路由
	router.GET("/", c.auth.Home)
	router.GET("/auth", c.auth.AuthPage)
	router.POST("/set-role", c.auth.SetRole)
	router.POST("/register", c.auth.Register)
	router.GET("/logout", c.auth.Logout)

	// 学生页面
	student := router.Group("/student")
	student.Use(middleware.RequirePage(model.Student))
	{
		student.GET("/dashboard", c.student.Dashboard)
		student.GET("/courses", c.student.Courses)
		student.GET("/course/:courseId", c.student.CourseDetail)
		student.GET("/course/:courseId/module/:moduleId", c.student.ModuleDetail)
		student.GET("/assignment/:assignmentId", c.student.AssignmentDetail)
	}

	// 学生操作接口，失败返回片段而非跳转
	studentActions := router.Group("/student")
	studentActions.Use(middleware.RequireAction(model.Student))
	{
		studentActions.POST("/enroll/:courseId", c.student.Enroll)
		studentActions.POST("/submit/:assignmentId", c.student.SubmitFile)
		studentActions.POST("/submit-test/:assignmentId", c.student.SubmitQuiz)
	}

	// 教师页面与批改接口
	teacher := router.Group("/teacher")
	{
		teacher.GET("/dashboard", middleware.RequirePage(model.Teacher), c.teacher.Dashboard)
		teacher.GET("/review/:submissionId", middleware.RequirePage(model.Teacher), c.teacher.ReviewPage)
		teacher.POST("/review/:submissionId", middleware.RequireAction(model.Teacher), c.teacher.SubmitReview)
	}
}
