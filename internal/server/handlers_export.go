package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pscheid92/ratingpulse/internal/app"
	"github.com/pscheid92/ratingpulse/internal/domain"
	apperrors "github.com/pscheid92/ratingpulse/internal/errors"
	"github.com/pscheid92/ratingpulse/internal/export"
	"github.com/pscheid92/ratingpulse/internal/metrics"
)

func (s *Server) handleExport(c echo.Context) error {
	ctx := c.Request().Context()

	format := c.QueryParam("format")
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "csv" {
		return apperrors.ValidationError(`format must be "json" or "csv"`).WithField("format", format)
	}

	ratings, err := s.app.ExportRatings(ctx)
	if err != nil {
		return apperrors.InternalError("failed to load ratings for export", err)
	}

	metrics.ExportRequestsTotal.WithLabelValues(format).Inc()

	if format == "csv" {
		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, ratings); err != nil {
			return apperrors.InternalError("failed to encode CSV export", err)
		}
		c.Response().Header().Set("Content-Disposition", `attachment; filename=ratings.csv`)
		if err := c.Blob(http.StatusOK, "text/csv", buf.Bytes()); err != nil {
			return fmt.Errorf("failed to send CSV response: %w", err)
		}
		return nil
	}

	var buf bytes.Buffer
	if err := export.WriteJSON(&buf, ratings); err != nil {
		return apperrors.InternalError("failed to encode JSON export", err)
	}
	if err := c.JSONBlob(http.StatusOK, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

// importRatingRequest mirrors createRatingRequest plus an optional
// timestamp so historical data keeps its original dates.
type importRatingRequest struct {
	createRatingRequest
	Timestamp string `json:"timestamp"`
}

func (s *Server) handleImport(c echo.Context) error {
	ctx := c.Request().Context()

	var reqs []importRatingRequest
	if err := c.Bind(&reqs); err != nil {
		return apperrors.ValidationError("request body must be a JSON array of ratings")
	}
	if len(reqs) == 0 {
		return apperrors.ValidationError("import batch must not be empty")
	}

	ratings := make([]domain.NewRating, 0, len(reqs))
	for i, req := range reqs {
		rating := req.toNewRating()
		if req.Timestamp != "" {
			createdAt, err := time.Parse(time.RFC3339Nano, req.Timestamp)
			if err != nil {
				return apperrors.ValidationError(fmt.Sprintf("rating at index %d: timestamp must be RFC 3339", i)).
					WithField("timestamp", req.Timestamp)
			}
			rating.CreatedAt = createdAt
		}
		ratings = append(ratings, rating)
	}

	batchID := uuid.New()
	imported, err := s.app.ImportRatings(ctx, ratings)
	if err != nil {
		var importErr *app.ImportError
		if errors.As(err, &importErr) {
			return apperrors.ValidationError(importErr.Error()).WithField("batch_id", batchID.String())
		}
		return apperrors.InternalError("failed to import ratings", err).WithField("batch_id", batchID.String())
	}

	response := map[string]any{
		"message":        fmt.Sprintf("successfully imported %d ratings", len(imported)),
		"imported_count": len(imported),
		"batch_id":       batchID.String(),
	}
	if err := c.JSON(http.StatusCreated, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
