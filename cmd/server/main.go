package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"social_cases_go/config"
	"social_cases_go/db"
	"social_cases_go/logger"
	"social_cases_go/middleware"
	"social_cases_go/services"
	"social_cases_go/services/enrichment"
	"social_cases_go/services/jobs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if err := logger.Init(cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	if err := db.Initialize(cfg.DBDriver, databaseDSN(cfg), cfg.Environment); err != nil {
		logger.Log.Fatalw("Failed to initialize database", "error", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Log.Fatalw("Failed to run migrations", "error", err)
	}

	services.Enrichment = enrichment.NewHTTPGateway(enrichment.Endpoints{
		Employees:  cfg.EmployeesServiceURL,
		Business:   cfg.BusinessServiceURL,
		Users:      cfg.UsersServiceURL,
		Parameters: cfg.ParametersServiceURL,
	}, cfg.UpstreamTimeout)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", v.Method, "uri", v.URI, "status", v.Status,
				"latency", v.Latency, "request_id", v.RequestID,
			}
			if v.Error != nil {
				logger.Log.Warnw("request failed", append(fields, "error", v.Error)...)
				return nil
			}
			logger.Log.Infow("request", fields...)
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	registerRoutes(e, middleware.RequireBearer(cfg.JWTSecret))

	// Background jobs
	scheduler, err := jobs.StartScheduler(db.DB, services.Enrichment, cfg)
	if err != nil {
		logger.Log.Fatalw("Failed to start scheduler", "error", err)
	}

	// Start server
	go func() {
		logger.Log.Infow("Server starting", "port", cfg.ServerPort, "environment", cfg.Environment)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalw("Failed to start server", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Log.Info("Shutting down")
	<-scheduler.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("Server shutdown failed", "error", err)
	}
}

func databaseDSN(cfg *config.Config) string {
	if cfg.DBDriver == "postgres" {
		return cfg.DatabaseURL
	}
	return cfg.DBPath
}
