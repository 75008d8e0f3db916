// Package bootstrap wires the application together: config, logger, the
// document store backend, repositories, services, controllers and routes.
package bootstrap

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/derin/classpad/internal/app/controllers"
	appRepos "github.com/derin/classpad/internal/app/repositories"
	appRoutes "github.com/derin/classpad/internal/app/routes"
	appServices "github.com/derin/classpad/internal/app/services"
	"github.com/derin/classpad/internal/config"
	"github.com/derin/classpad/internal/db"
	"github.com/derin/classpad/internal/docstore"
	"github.com/derin/classpad/internal/docstore/memstore"
	"github.com/derin/classpad/internal/docstore/pgstore"
	appMiddleware "github.com/derin/classpad/internal/middleware"
	pkgAuth "github.com/derin/classpad/internal/pkg/auth"
	"github.com/derin/classpad/internal/pkg/helpers"
	"github.com/derin/classpad/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                *appRepos.Repositories
	Services             *appServices.Services
	ClassroomController  *appControllers.ClassroomController
	AssignmentController *appControllers.AssignmentController
	StatsController      *appControllers.StatsController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	JWTService           *pkgAuth.JWTService
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore builds the document store for the configured backend. The
// returned pool is nil for the memory backend.
func SetupStore(cfg *config.Config, lgr zerolog.Logger) (docstore.Store, *pgxpool.Pool, error) {
	if cfg.Store.Backend == config.StoreBackendMemory {
		lgr.Info().Msg("Using in-memory document store")
		return memstore.New(), nil, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store := pgstore.New(database.Pool)
	if err := store.EnsureSchema(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ensure document store schema")
		database.Close()
		return nil, nil, err
	}

	lgr.Info().Msg("Postgres document store ready")
	return store, database.Pool, nil
}

// BuildDependencies constructs repositories, services, controllers and
// middleware over the given store.
func BuildDependencies(cfg *config.Config, store docstore.Store, lgr zerolog.Logger) (*Dependencies, error) {
	accessTokenExp := helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour)

	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: accessTokenExp,
		TokenIssuer:    cfg.JWT.Issuer,
	})

	repos := appRepos.NewRepositories(store, lgr)
	services := appServices.NewServices(repos, lgr)

	deps := &Dependencies{
		Repos:                repos,
		Services:             services,
		ClassroomController:  appControllers.NewClassroomController(services.ClassroomService),
		AssignmentController: appControllers.NewAssignmentController(services.AssignmentService),
		StatsController:      appControllers.NewStatsController(services.StatsService),
		AuthMiddleware:       appMiddleware.NewAuthMiddleware(jwtService),
		JWTService:           jwtService,
		Logger:               lgr,
	}
	return deps, nil
}

// SetupRouter builds the gin engine and registers all routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(lgr))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	appRoutes.SetupRouter(
		router,
		deps.ClassroomController,
		deps.AssignmentController,
		deps.StatsController,
		deps.AuthMiddleware,
	)
	return router
}

// requestLogger logs one line per request with method, path, status and
// latency.
func requestLogger(lgr zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		lgr.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("Request handled")
	}
}
