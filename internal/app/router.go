package app

import (
	"unicbt_backend/docs"
	"unicbt_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		// 学生端：取卷、交卷、查成绩
		api.GET("/exams/open", c.exam.ListOpenExams)
		api.GET("/exams/:id/paper", c.exam.GetExamPaper)
		api.POST("/exams/:id/submit", c.submission.SubmitExam)
		api.GET("/exams/:id/result", c.submission.GetResult)

		// 问卷
		api.GET("/surveys/:id", c.survey.GetSurvey)
		api.POST("/surveys/:id/responses", c.survey.SubmitResponse)
	}

	// 管理端（认证由外部网关处理）
	admin := router.Group("/api/admin")
	{
		admin.POST("/exams", c.exam.CreateExam)
		admin.GET("/exams", c.exam.ListExams)
		admin.GET("/exams/:id", c.exam.GetExam)
		admin.POST("/exams/:id/questions", c.exam.AddQuestion)
		admin.POST("/exams/:id/publish", c.exam.PublishExam)
		admin.POST("/exams/:id/assignments", c.exam.AssignExam)

		// 报表面板只读
		admin.GET("/exams/:id/stats", c.stats.ListQuestionStats)
		admin.GET("/exams/:id/results", c.stats.ListExamResults)
		admin.GET("/exams/:id/summary", c.stats.GetExamSummary)
		admin.GET("/exams/:id/sheets", c.stats.GetStudentSheet)

		admin.POST("/students", c.user.CreateStudent)
		admin.GET("/students", c.user.ListStudents)
		admin.POST("/departments", c.user.CreateDepartment)
		admin.GET("/departments", c.user.ListDepartments)

		admin.POST("/surveys", c.survey.CreateSurvey)
		admin.GET("/surveys", c.survey.ListSurveys)
		admin.POST("/surveys/:id/questions", c.survey.AddQuestion)
		admin.POST("/surveys/:id/publish", c.survey.PublishSurvey)
	}
}
