// Package api exposes the analysis engines over HTTP.
package api

import (
	"net/http"

	"dataprep/adapters/datareadiness/coercer"
	"dataprep/adapters/excel"
	"dataprep/internal"
	"dataprep/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"golang.org/x/sync/semaphore"
)

// Server wires the HTTP routes to the analysis engines. It holds no
// per-request state; every request decodes its own dataset.
type Server struct {
	router     *gin.Engine
	reader     *excel.DataReader
	flags      *coercer.TypeCoercer
	logger     *internal.Logger
	maxUpload  int64
	maxMB      int
	corsOrigin []string

	// Bounds how many uploads are decoded and analysed at once
	analysisSem *semaphore.Weighted
}

// NewServer creates the API server from configuration
func NewServer(cfg *config.Config, logger *internal.Logger) *Server {
	gin.SetMode(cfg.Server.GinMode)

	readerConfig := excel.DefaultReaderConfig()
	s := &Server{
		router:     gin.New(),
		reader:     excel.NewDataReader(readerConfig),
		flags:      coercer.NewTypeCoercer(readerConfig.CoercionConfig),
		logger:     logger.With("API"),
		maxUpload:  cfg.Upload.MaxBytes(),
		maxMB:      cfg.Upload.MaxSizeMB,
		corsOrigin: cfg.Server.CORSAllowedOrigins,

		analysisSem: semaphore.NewWeighted(int64(cfg.Upload.MaxConcurrent)),
	}

	s.router.Use(gin.Recovery(), requestID(), s.accessLog())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api", s.limitBody(), s.throttle())
	api.POST("/upload", s.handleUpload)
	api.POST("/statistics", s.handleStatistics)

	viz := api.Group("/visualizations")
	viz.POST("/histogram", s.handleHistogram)
	viz.POST("/boxplot", s.handleBoxPlot)
	viz.POST("/scatter", s.handleScatter)
	viz.POST("/heatmap", s.handleHeatmap)
	viz.POST("/normal-distribution", s.handleNormalDistribution)

	cleaning := api.Group("/cleaning")
	cleaning.POST("/detect-missing", s.handleDetectMissing)
	cleaning.POST("/detect-duplicates", s.handleDetectDuplicates)
	cleaning.POST("/detect-outliers", s.handleDetectOutliers)
	cleaning.POST("/clean-dataset", s.handleCleanDataset)
	cleaning.POST("/download-cleaned", s.handleDownloadCleaned)
}

// Handler returns the router wrapped in CORS handling
func (s *Server) Handler() http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   s.corsOrigin,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Disposition", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})(s.router)
}
