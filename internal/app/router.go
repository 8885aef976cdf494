package app

import (
	"quizmaster_backend/docs"
	"quizmaster_backend/internal/config"
	"quizmaster_backend/internal/middleware"
	"quizmaster_backend/internal/model"
	"quizmaster_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerLearnerRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.POST("/admin/login", c.auth.AdminLogin)
	}
}

// Learner routes require the learner role explicitly: an admin account
// cannot take quizzes or accumulate scores.
func (a *App) registerLearnerRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/profile", c.auth.UpdateProfile)

	learner := rg.Group("/")
	learner.Use(middleware.RoleMiddleware(model.Learner))
	{
		learner.GET("/dashboard", c.user.LearnerDashboard)
		learner.GET("/quizzes/:id/attempt", c.quiz.GetForAttempt)
		learner.POST("/quizzes/:id/submit", c.attempt.Submit)
		learner.GET("/scores/:id", c.attempt.GetScoreDetail)
		learner.GET("/scores/:id/review", c.attempt.Review)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/dashboard", c.user.AdminDashboard)

		admin.POST("/subjects", c.subject.Create)
		admin.GET("/subjects", c.subject.List)
		admin.PUT("/subjects/:id", c.subject.Update)
		admin.DELETE("/subjects/:id", c.subject.Delete)

		admin.POST("/chapters", c.chapter.Create)
		admin.GET("/chapters", c.chapter.List)
		admin.PUT("/chapters/:id", c.chapter.Update)
		admin.DELETE("/chapters/:id", c.chapter.Delete)

		admin.POST("/quizzes", c.quiz.Create)
		admin.GET("/quizzes", c.quiz.List)
		admin.PUT("/quizzes/:id", c.quiz.Update)
		admin.DELETE("/quizzes/:id", c.quiz.Delete)

		admin.POST("/quizzes/:quizId/questions", c.question.Create)
		admin.GET("/quizzes/:quizId/questions", c.question.List)
		admin.POST("/quizzes/:quizId/questions/import", c.question.Import)
		admin.PUT("/questions/:id", c.question.Update)
		admin.DELETE("/questions/:id", c.question.Delete)
		admin.POST("/questions/:id/image", c.question.UploadImage)

		admin.GET("/users", c.user.List)
		admin.GET("/users/:id", c.user.Detail)
		admin.DELETE("/users/:id", c.user.Delete)
	}
}
