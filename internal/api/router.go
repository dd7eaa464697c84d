// Package api wires the HTTP surface: routes, middleware and handlers.
package api

import (
	"net/http"
	"time"

	"rc-building-model/internal/api/handlers"
	"rc-building-model/internal/api/middleware"
	"rc-building-model/internal/api/models"
	"rc-building-model/internal/cache"
	"rc-building-model/internal/config"
	"rc-building-model/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Options struct {
	Model          config.Config
	AllowedOrigins []string
	ResultTTL      time.Duration
	Logger         *zap.Logger
}

// Server owns the router and the results cache behind it.
type Server struct {
	Router  *gin.Engine
	results *cache.TTL[*models.AssessmentResponse]
}

func NewServer(opts Options) *Server {
	log := logging.OrNop(opts.Logger)
	ttl := opts.ResultTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	results := cache.New[*models.AssessmentResponse](ttl, time.Minute)

	router := gin.New()
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler(log))

	assessments := handlers.NewAssessmentHandler(opts.Model, results, log)
	demandHandler := handlers.NewDemandHandler(opts.Model)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/assessments", assessments.RunAssessment)
		v1.GET("/assessments/:id", assessments.GetAssessment)

		v1.POST("/annual-demand", demandHandler.AnnualDemand)
		v1.GET("/profiles", demandHandler.GetProfiles)

		v1.GET("/ventilation-methods", handlers.ListVentilationMethods)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "NOT_FOUND", Message: "Not found"},
		})
	})

	return &Server{Router: router, results: results}
}

// Close stops the results cache sweeper.
func (s *Server) Close() {
	s.results.Close()
}
