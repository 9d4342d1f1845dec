package app

import (
	"tamamali_backend/docs"
	"tamamali_backend/internal/config"
	"tamamali_backend/internal/middleware"
	"tamamali_backend/internal/model"
	"tamamali_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.POST("/logout", c.auth.Logout)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		teacher := authGroup.Group("")
		teacher.Use(middleware.RoleMiddleware(model.Teacher))
		{
			teacher.POST("/quiz", c.quiz.Create)
			teacher.GET("/quiz", c.quiz.List)
			teacher.GET("/quiz/:id", c.quiz.Get)
			teacher.PUT("/quiz/:id", c.quiz.Update)
			teacher.DELETE("/quiz/:id", c.quiz.Delete)

			teacher.POST("/group", c.group.Create)
			teacher.GET("/group", c.group.List)

			teacher.POST("/assignment", c.assignment.Assign)
			teacher.GET("/assignment", c.assignment.List)

			teacher.GET("/students", c.roster.ListStudents)
			teacher.GET("/students/:id", c.roster.GetStudent)

			teacher.POST("/chat", c.chat.Chat)
			teacher.POST("/chat/stream", c.chat.ChatStream)
		}

		student := authGroup.Group("/student")
		student.Use(middleware.RoleMiddleware(model.Student))
		{
			student.GET("/assignments", c.student.ListAssignments)
			student.GET("/quiz/:id", c.student.GetQuiz)
			student.POST("/submit-quiz", c.student.SubmitQuiz)
			student.GET("/quiz-attempts/:quizId", c.student.ListAttempts)
			student.GET("/quiz-result/:attemptId", c.student.GetResult)
		}
	}
}
