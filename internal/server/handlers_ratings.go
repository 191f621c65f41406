package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pscheid92/ratingpulse/internal/domain"
	apperrors "github.com/pscheid92/ratingpulse/internal/errors"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// createRatingRequest is the POST /ratings payload.
type createRatingRequest struct {
	ConversationID string         `json:"conversation_id"`
	Rating         int            `json:"rating"`
	Feedback       string         `json:"feedback"`
	UserID         string         `json:"user_id"`
	Metadata       map[string]any `json:"metadata"`
}

func (req createRatingRequest) toNewRating() domain.NewRating {
	return domain.NewRating{
		ConversationID: req.ConversationID,
		Rating:         req.Rating,
		Feedback:       req.Feedback,
		UserID:         req.UserID,
		Metadata:       req.Metadata,
	}
}

func (s *Server) handleCreateRating(c echo.Context) error {
	ctx := c.Request().Context()

	var req createRatingRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	rating := req.toNewRating()
	if err := rating.Validate(); err != nil {
		return apperrors.ValidationError(err.Error())
	}

	stored, err := s.app.CreateRating(ctx, rating)
	if err != nil {
		return apperrors.InternalError("failed to create rating", err).
			WithField("conversation_id", req.ConversationID)
	}

	if err := c.JSON(http.StatusCreated, stored); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleListRatings(c echo.Context) error {
	ctx := c.Request().Context()

	filter := domain.ListFilter{Limit: defaultListLimit}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxListLimit {
			return apperrors.ValidationError(fmt.Sprintf("limit must be between 1 and %d", maxListLimit)).
				WithField("limit", raw)
		}
		filter.Limit = limit
	}

	var err error
	if filter.MinRating, err = parseRatingParam(c, "min_rating"); err != nil {
		return err
	}
	if filter.MaxRating, err = parseRatingParam(c, "max_rating"); err != nil {
		return err
	}
	filter.ConversationID = c.QueryParam("conversation_id")

	if filter.From, err = parseTimeParam(c, "from"); err != nil {
		return err
	}
	if filter.To, err = parseTimeParam(c, "to"); err != nil {
		return err
	}

	ratings, err := s.app.ListRatings(ctx, filter)
	if err != nil {
		return apperrors.InternalError("failed to list ratings", err)
	}
	if ratings == nil {
		ratings = []domain.Rating{}
	}

	response := map[string]any{
		"count":   len(ratings),
		"ratings": ratings,
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleGetRating(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseRatingID(c)
	if err != nil {
		return err
	}

	rating, err := s.app.GetRating(ctx, id)
	if errors.Is(err, domain.ErrRatingNotFound) {
		return apperrors.NotFoundError(fmt.Sprintf("rating %d not found", id))
	}
	if err != nil {
		return apperrors.InternalError("failed to load rating", err).WithField("rating_id", id)
	}

	if err := c.JSON(http.StatusOK, rating); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleDeleteRating(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseRatingID(c)
	if err != nil {
		return err
	}

	err = s.app.DeleteRating(ctx, id)
	if errors.Is(err, domain.ErrRatingNotFound) {
		return apperrors.NotFoundError(fmt.Sprintf("rating %d not found", id))
	}
	if err != nil {
		return apperrors.InternalError("failed to delete rating", err).WithField("rating_id", id)
	}

	response := map[string]string{"message": fmt.Sprintf("rating %d deleted", id)}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func parseRatingID(c echo.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, apperrors.ValidationError("invalid rating ID").WithField("id", raw)
	}
	return id, nil
}

func parseRatingParam(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < domain.MinRating || value > domain.MaxRating {
		return 0, apperrors.ValidationError(fmt.Sprintf("%s must be between %d and %d", name, domain.MinRating, domain.MaxRating)).
			WithField(name, raw)
	}
	return value, nil
}

func parseTimeParam(c echo.Context, name string) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, nil
	}
	value, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, apperrors.ValidationError(fmt.Sprintf("%s must be an RFC 3339 timestamp", name)).
			WithField(name, raw)
	}
	return value, nil
}
