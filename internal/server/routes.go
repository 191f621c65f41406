package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Rating CRUD
	s.echo.POST("/ratings", s.handleCreateRating)
	s.echo.GET("/ratings", s.handleListRatings)
	s.echo.GET("/ratings/:id", s.handleGetRating)
	s.echo.DELETE("/ratings/:id", s.handleDeleteRating)

	// Analytics
	s.echo.GET("/analytics/summary", s.handleSummary)
	s.echo.GET("/analytics/distribution", s.handleDistribution)
	s.echo.GET("/analytics/trends", s.handleTrends)
	s.echo.GET("/analytics/sentiment", s.handleSentiment)

	// Bulk data movement
	s.echo.GET("/export", s.handleExport)
	s.echo.POST("/import", s.handleImport)
}
