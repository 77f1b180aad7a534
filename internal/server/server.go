package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/intakelog/backend/config"
	"github.com/intakelog/backend/internal/api"
	"github.com/intakelog/backend/internal/cache"
	"github.com/intakelog/backend/internal/database"
	"github.com/intakelog/backend/internal/middleware"
	"github.com/intakelog/backend/internal/service"
)

// Server wires the services and HTTP handlers together.
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	logger *logrus.Logger
}

// NewServer builds the router with every handler registered.
func NewServer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	defaultUser, err := uuid.Parse(cfg.DefaultUserID)
	if err != nil {
		return nil, err
	}
	loc := time.Local
	if cfg.Timezone != "" {
		loc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, err
		}
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://frontend:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	totals := cache.NewDayTotalsCache(redisClient, 15*time.Minute)

	foods := service.NewFoodItemService(db)
	recipes := service.NewRecipeService(db)
	logs := service.NewLogService(db, totals, loc)
	tracking := service.NewTrackingService(db)
	presets := service.NewPresetService(db)
	pantry := service.NewPantryService(db)
	export := service.NewExportService(db, logger)
	importer := service.NewImportService(db, logger, defaultUser)
	markdown := service.NewMarkdownExportService(logs, tracking, loc)

	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	api.NewFoodItemHandler(foods, defaultUser).RegisterRoutes(v1)
	api.NewRecipeHandler(recipes, defaultUser).RegisterRoutes(v1)
	api.NewLogHandler(logs, pantry, defaultUser).RegisterRoutes(v1)
	api.NewTrackingHandler(tracking, defaultUser).RegisterRoutes(v1)
	api.NewDashboardHandler(logs, tracking, loc, defaultUser).RegisterRoutes(v1)
	api.NewPresetHandler(presets, defaultUser).RegisterRoutes(v1)
	api.NewPantryHandler(pantry, defaultUser).RegisterRoutes(v1)
	api.NewDataHandler(export, importer, markdown, defaultUser).RegisterRoutes(v1)

	return &Server{
		router: router,
		db:     db,
		logger: logger,
	}, nil
}

// Start begins serving on the given port and blocks until the listener stops.
func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	s.logger.WithField("port", port).Info("server listening")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
