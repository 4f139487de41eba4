package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ressKim-io/promptclf/internal/adapter/http/handler"
	"github.com/ressKim-io/promptclf/internal/adapter/http/middleware"
	"github.com/ressKim-io/promptclf/internal/usecase"
)

// Deps are the components the router serves
type Deps struct {
	ClassifyUC usecase.ClassifyUsecase
	// EvaluationUC serves stored runs; nil leaves /api/v1/evaluations unregistered.
	EvaluationUC usecase.EvaluationUsecase
	DB           *gorm.DB
	Provider     string
	Logger       *zap.Logger
	// Gatherer backs /metrics; nil uses the default registry.
	Gatherer prometheus.Gatherer
}

// Setup creates and configures the Gin router
func Setup(deps Deps) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.CORS())

	// Health endpoints
	healthHandler := handler.NewHealthHandler(deps.DB, deps.Provider)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Prometheus metrics
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	classifyHandler := handler.NewClassifyHandler(deps.ClassifyUC)
	router.POST("/classify", classifyHandler.Classify)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/classify", classifyHandler.ClassifyV1)

		if deps.EvaluationUC != nil {
			evaluationHandler := handler.NewEvaluationHandler(deps.EvaluationUC)
			evaluations := v1.Group("/evaluations")
			{
				evaluations.GET("", evaluationHandler.ListEvaluations)
				evaluations.GET("/:id", evaluationHandler.GetEvaluation)
			}
		}
	}

	return router
}
