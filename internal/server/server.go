package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/pscheid92/ratingpulse/internal/analytics"
	"github.com/pscheid92/ratingpulse/internal/config"
	"github.com/pscheid92/ratingpulse/internal/domain"
	apperrors "github.com/pscheid92/ratingpulse/internal/errors"
)

// appService is the application layer contract the handlers depend on.
type appService interface {
	CreateRating(ctx context.Context, rating domain.NewRating) (*domain.Rating, error)
	ImportRatings(ctx context.Context, ratings []domain.NewRating) ([]domain.Rating, error)
	GetRating(ctx context.Context, id int64) (*domain.Rating, error)
	DeleteRating(ctx context.Context, id int64) error
	ListRatings(ctx context.Context, filter domain.ListFilter) ([]domain.Rating, error)
	ExportRatings(ctx context.Context) ([]domain.Rating, error)
	Summary(ctx context.Context) (analytics.Summary, error)
	Distribution(ctx context.Context) (analytics.DistributionReport, error)
	Trends(ctx context.Context, windowDays int) (analytics.TrendReport, error)
	SentimentAnalysis(ctx context.Context) (analytics.SentimentAnalysis, error)
}

// HealthCheck is a named readiness probe.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type Server struct {
	echo         *echo.Echo
	config       *config.Config
	app          appService
	healthChecks []HealthCheck
	startTime    time.Time
}

func NewServer(cfg *config.Config, app appService, healthChecks []HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:         e,
		config:       cfg,
		app:          app,
		healthChecks: healthChecks,
		startTime:    time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
