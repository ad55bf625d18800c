package app

import (
	"net/http"
	"os"
	"path/filepath"
	"quiz_backend/docs"
	"quiz_backend/internal/config"
	"quiz_backend/internal/util"
	"quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	api.GET("/health", c.health.HealthCheck)

	a.registerQuestionRoutes(api, c)
	a.registerQuizResultRoutes(api, c)

	a.registerStatic(router, cfg.Server.StaticDir)
}

func (a *App) registerQuestionRoutes(api *gin.RouterGroup, c *controllers) {
	questions := api.Group("/questions")
	{
		questions.GET("", c.question.ListQuestions)
		questions.GET("/random", c.question.RandomQuestions)
		questions.GET("/category/:category", c.question.ListByCategory)
		questions.GET("/category/:category/random", c.question.RandomByCategory)
		questions.GET("/:id", c.question.GetQuestion)
		questions.POST("", c.question.CreateQuestion)
		questions.PUT("/:id", c.question.UpdateQuestion)
		questions.DELETE("/:id", c.question.DeleteQuestion)
	}
}

func (a *App) registerQuizResultRoutes(api *gin.RouterGroup, c *controllers) {
	results := api.Group("/quiz-results")
	{
		results.POST("", c.quizResult.RecordResult)
		results.GET("", c.quizResult.ListResults)
		results.GET("/status/ip", c.quizResult.StatusByIP)
		results.GET("/status/:userId", c.quizResult.StatusByUser)
		results.DELETE("", c.quizResult.DeleteAll)
		results.DELETE("/user/:userId", c.quizResult.DeleteByUser)
		results.DELETE("/:timestamp", c.quizResult.DeleteByTimestamp)
	}
}

// registerStatic 未匹配的 GET 请求交给前端静态文件，目录不存在时跳过
func (a *App) registerStatic(router *gin.Engine, dir string) {
	notFound := func(c *gin.Context) {
		util.NotFound(c, "Not Found")
	}
	if dir == "" {
		router.NoRoute(notFound)
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		router.NoRoute(notFound)
		return
	}

	fileServer := http.FileServer(http.Dir(dir))
	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			notFound(c)
			return
		}
		if _, err := os.Stat(filepath.Join(dir, filepath.Clean("/"+c.Request.URL.Path))); err != nil {
			notFound(c)
			return
		}
		fileServer.ServeHTTP(c.Writer, c.Request)
	})
}
