package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pscheid92/ratingpulse/internal/analytics"
	"github.com/pscheid92/ratingpulse/internal/config"
	"github.com/pscheid92/ratingpulse/internal/domain"
	apperrors "github.com/pscheid92/ratingpulse/internal/errors"
)

// --- Mock implementations ---

type mockAppService struct {
	createRatingFn      func(ctx context.Context, rating domain.NewRating) (*domain.Rating, error)
	importRatingsFn     func(ctx context.Context, ratings []domain.NewRating) ([]domain.Rating, error)
	getRatingFn         func(ctx context.Context, id int64) (*domain.Rating, error)
	deleteRatingFn      func(ctx context.Context, id int64) error
	listRatingsFn       func(ctx context.Context, filter domain.ListFilter) ([]domain.Rating, error)
	exportRatingsFn     func(ctx context.Context) ([]domain.Rating, error)
	summaryFn           func(ctx context.Context) (analytics.Summary, error)
	distributionFn      func(ctx context.Context) (analytics.DistributionReport, error)
	trendsFn            func(ctx context.Context, windowDays int) (analytics.TrendReport, error)
	sentimentAnalysisFn func(ctx context.Context) (analytics.SentimentAnalysis, error)
}

func (m *mockAppService) CreateRating(ctx context.Context, rating domain.NewRating) (*domain.Rating, error) {
	if m.createRatingFn != nil {
		return m.createRatingFn(ctx, rating)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAppService) ImportRatings(ctx context.Context, ratings []domain.NewRating) ([]domain.Rating, error) {
	if m.importRatingsFn != nil {
		return m.importRatingsFn(ctx, ratings)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAppService) GetRating(ctx context.Context, id int64) (*domain.Rating, error) {
	if m.getRatingFn != nil {
		return m.getRatingFn(ctx, id)
	}
	return nil, domain.ErrRatingNotFound
}

func (m *mockAppService) DeleteRating(ctx context.Context, id int64) error {
	if m.deleteRatingFn != nil {
		return m.deleteRatingFn(ctx, id)
	}
	return nil
}

func (m *mockAppService) ListRatings(ctx context.Context, filter domain.ListFilter) ([]domain.Rating, error) {
	if m.listRatingsFn != nil {
		return m.listRatingsFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockAppService) ExportRatings(ctx context.Context) ([]domain.Rating, error) {
	if m.exportRatingsFn != nil {
		return m.exportRatingsFn(ctx)
	}
	return nil, nil
}

func (m *mockAppService) Summary(ctx context.Context) (analytics.Summary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(ctx)
	}
	return analytics.Summary{}, nil
}

func (m *mockAppService) Distribution(ctx context.Context) (analytics.DistributionReport, error) {
	if m.distributionFn != nil {
		return m.distributionFn(ctx)
	}
	return analytics.DistributionReport{}, nil
}

func (m *mockAppService) Trends(ctx context.Context, windowDays int) (analytics.TrendReport, error) {
	if m.trendsFn != nil {
		return m.trendsFn(ctx, windowDays)
	}
	return analytics.TrendReport{}, nil
}

func (m *mockAppService) SentimentAnalysis(ctx context.Context) (analytics.SentimentAnalysis, error) {
	if m.sentimentAnalysisFn != nil {
		return m.sentimentAnalysisFn(ctx)
	}
	return analytics.SentimentAnalysis{}, nil
}

// --- Test helpers ---

func newTestServer(t *testing.T, app appService) *Server {
	t.Helper()

	e := echo.New()
	// Install error middleware for tests to match production behavior
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:      e,
		config:    &config.Config{Port: "8080"},
		app:       app,
		startTime: time.Now(),
	}

	srv.registerRoutes()

	return srv
}

// callHandler wraps a handler with error middleware, matching production behavior
func callHandler(handler echo.HandlerFunc, c echo.Context) error {
	return apperrors.Middleware()(handler)(c)
}

func newJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func testRating(id int64, stars int) *domain.Rating {
	return &domain.Rating{
		ID:             id,
		ConversationID: "conv-1",
		Rating:         stars,
		Sentiment:      domain.ClassifySentiment(stars, ""),
		CreatedAt:      time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
	}
}
