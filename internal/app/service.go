package app

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/pscheid92/ratingpulse/internal/analytics"
	"github.com/pscheid92/ratingpulse/internal/domain"
	"github.com/pscheid92/ratingpulse/internal/metrics"
)

// allTimePeriod is the label echoed in summaries computed over the full dataset.
const allTimePeriod = "all_time"

// SummaryCache caches computed all-time summaries. May be nil when
// redis is not configured; the service then recomputes on every call.
type SummaryCache interface {
	Get(ctx context.Context) (*analytics.Summary, error)
	Set(ctx context.Context, summary analytics.Summary)
	Invalidate(ctx context.Context) error
}

// Service orchestrates all rating and analytics use cases.
type Service struct {
	ratings      domain.RatingRepository
	cache        SummaryCache
	clock        clockwork.Clock
	summaryGroup singleflight.Group
}

// NewService creates the application layer service.
// cache may be nil if redis is not configured.
func NewService(ratings domain.RatingRepository, cache SummaryCache, clock clockwork.Clock) *Service {
	return &Service{
		ratings: ratings,
		cache:   cache,
		clock:   clock,
	}
}

// CreateRating validates and stores a new rating.
func (s *Service) CreateRating(ctx context.Context, rating domain.NewRating) (*domain.Rating, error) {
	if err := rating.Validate(); err != nil {
		return nil, err
	}

	stored, err := s.ratings.Insert(ctx, rating)
	if err != nil {
		return nil, err
	}

	metrics.RatingsCreatedTotal.WithLabelValues(strconv.Itoa(stored.Rating)).Inc()
	s.invalidateSummary(ctx)
	return stored, nil
}

// ImportRatings validates every rating, then stores the batch in one
// transaction. Validation is all-or-nothing: one bad record rejects the
// whole batch before any insert happens.
func (s *Service) ImportRatings(ctx context.Context, ratings []domain.NewRating) ([]domain.Rating, error) {
	for i, rating := range ratings {
		if err := rating.Validate(); err != nil {
			metrics.ImportBatchesTotal.WithLabelValues("rejected").Inc()
			return nil, &ImportError{Index: i, Err: err}
		}
	}

	inserted, err := s.ratings.BulkInsert(ctx, ratings)
	if err != nil {
		metrics.ImportBatchesTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	metrics.ImportBatchesTotal.WithLabelValues("accepted").Inc()
	metrics.RatingsImportedTotal.Add(float64(len(inserted)))
	s.invalidateSummary(ctx)
	return inserted, nil
}

// GetRating retrieves a rating by ID.
func (s *Service) GetRating(ctx context.Context, id int64) (*domain.Rating, error) {
	return s.ratings.GetByID(ctx, id)
}

// DeleteRating hard-deletes a rating.
func (s *Service) DeleteRating(ctx context.Context, id int64) error {
	if err := s.ratings.Delete(ctx, id); err != nil {
		return err
	}
	metrics.RatingsDeletedTotal.Inc()
	s.invalidateSummary(ctx)
	return nil
}

// ListRatings returns ratings matching the filter, newest first.
func (s *Service) ListRatings(ctx context.Context, filter domain.ListFilter) ([]domain.Rating, error) {
	return s.ratings.List(ctx, filter)
}

// ExportRatings returns the full dataset for export, newest first.
func (s *Service) ExportRatings(ctx context.Context) ([]domain.Rating, error) {
	return s.ratings.ListAll(ctx)
}

// Summary computes the all-time summary, served from the cache when
// possible. Concurrent cache misses collapse into a single computation.
func (s *Service) Summary(ctx context.Context) (analytics.Summary, error) {
	metrics.AnalyticsRequestsTotal.WithLabelValues("summary").Inc()

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err == nil && cached != nil {
			return *cached, nil
		}
	}

	result, err, _ := s.summaryGroup.Do(allTimePeriod, func() (any, error) {
		ratings, err := s.ratings.ListAll(ctx)
		if err != nil {
			return analytics.Summary{}, err
		}
		metrics.AnalyticsDatasetSize.Observe(float64(len(ratings)))

		summary := analytics.Summarize(ratings, allTimePeriod)
		if s.cache != nil {
			s.cache.Set(ctx, summary)
		}
		return summary, nil
	})
	if err != nil {
		return analytics.Summary{}, err
	}

	return result.(analytics.Summary), nil
}

// Distribution computes the detailed star distribution with percentages.
func (s *Service) Distribution(ctx context.Context) (analytics.DistributionReport, error) {
	metrics.AnalyticsRequestsTotal.WithLabelValues("distribution").Inc()

	ratings, err := s.ratings.ListAll(ctx)
	if err != nil {
		return analytics.DistributionReport{}, err
	}
	metrics.AnalyticsDatasetSize.Observe(float64(len(ratings)))

	return analytics.Distribution(ratings), nil
}

// Trends computes the day-bucketed trend report over the last
// windowDays days, using the injected clock as the reference instant.
func (s *Service) Trends(ctx context.Context, windowDays int) (analytics.TrendReport, error) {
	metrics.AnalyticsRequestsTotal.WithLabelValues("trends").Inc()

	// Window validation happens before the store round trip.
	if windowDays <= 0 {
		return analytics.TrendReport{}, domain.ErrInvalidWindow
	}

	ratings, err := s.ratings.ListAll(ctx)
	if err != nil {
		return analytics.TrendReport{}, err
	}
	metrics.AnalyticsDatasetSize.Observe(float64(len(ratings)))

	return analytics.ComputeTrendReport(ratings, windowDays, s.clock.Now())
}

// SentimentAnalysis computes sentiment counts and feedback samples.
func (s *Service) SentimentAnalysis(ctx context.Context) (analytics.SentimentAnalysis, error) {
	metrics.AnalyticsRequestsTotal.WithLabelValues("sentiment").Inc()

	ratings, err := s.ratings.ListAll(ctx)
	if err != nil {
		return analytics.SentimentAnalysis{}, err
	}
	metrics.AnalyticsDatasetSize.Observe(float64(len(ratings)))

	return analytics.SentimentReport(ratings, analytics.DefaultFeedbackSamples), nil
}

func (s *Service) invalidateSummary(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		slog.Warn("Failed to invalidate summary cache", "error", err)
	}
}

// ImportError reports which record of a bulk import failed validation.
type ImportError struct {
	Index int
	Err   error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("rating at index %d: %v", e.Index, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
