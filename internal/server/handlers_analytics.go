package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pscheid92/ratingpulse/internal/domain"
	apperrors "github.com/pscheid92/ratingpulse/internal/errors"
)

const (
	defaultTrendDays = 7
	maxTrendDays     = 365
)

func (s *Server) handleSummary(c echo.Context) error {
	summary, err := s.app.Summary(c.Request().Context())
	if err != nil {
		return apperrors.InternalError("failed to compute summary", err)
	}

	if err := c.JSON(http.StatusOK, summary); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleDistribution(c echo.Context) error {
	report, err := s.app.Distribution(c.Request().Context())
	if err != nil {
		return apperrors.InternalError("failed to compute distribution", err)
	}

	if err := c.JSON(http.StatusOK, report); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleTrends(c echo.Context) error {
	days := defaultTrendDays
	if raw := c.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed > maxTrendDays {
			return apperrors.ValidationError(fmt.Sprintf("days must be between 1 and %d", maxTrendDays)).
				WithField("days", raw)
		}
		// Non-positive windows reach the service so the rejection rule
		// lives in one place.
		days = parsed
	}

	report, err := s.app.Trends(c.Request().Context(), days)
	if errors.Is(err, domain.ErrInvalidWindow) {
		return apperrors.ValidationError(fmt.Sprintf("days must be between 1 and %d", maxTrendDays)).
			WithField("days", days)
	}
	if err != nil {
		return apperrors.InternalError("failed to compute trends", err)
	}

	if err := c.JSON(http.StatusOK, report); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleSentiment(c echo.Context) error {
	analysis, err := s.app.SentimentAnalysis(c.Request().Context())
	if err != nil {
		return apperrors.InternalError("failed to compute sentiment analysis", err)
	}

	if err := c.JSON(http.StatusOK, analysis); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
