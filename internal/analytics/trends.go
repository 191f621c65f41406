package analytics

import (
	"time"

	"github.com/pscheid92/ratingpulse/internal/domain"
)

// Trend directions reported by TrendDirection.
const (
	TrendImproving        = "improving"
	TrendDeclining        = "declining"
	TrendStable           = "stable"
	TrendInsufficientData = "insufficient_data"
	TrendNoData           = "no_data"
)

// trendBand is the dead zone around zero within which a first-half vs
// second-half average difference still counts as stable.
const trendBand = 0.2

// DailyBucket is one calendar day's count and mean rating.
type DailyBucket struct {
	Date          string  `json:"date"`
	Count         int     `json:"count"`
	AverageRating float64 `json:"average_rating"`
}

// TrendReport combines the dense daily series with period-level stats
// and a direction estimate.
type TrendReport struct {
	PeriodDays    int           `json:"period_days"`
	TotalRatings  int           `json:"total_ratings"`
	AverageRating float64       `json:"average_rating"`
	Trend         string        `json:"trend"`
	Daily         []DailyBucket `json:"daily"`
}

// Trends buckets ratings by UTC calendar day over the inclusive range
// [now-windowDays+1, now] and returns exactly windowDays buckets in
// ascending date order. Days without ratings appear with a zero count
// and 0.0 average, so the series is dense and chartable as-is.
//
// The reference instant is a parameter rather than an ambient clock
// read; callers inject it (production code passes clock.Now()).
func Trends(ratings []domain.Rating, windowDays int, now time.Time) ([]DailyBucket, error) {
	if windowDays <= 0 {
		return nil, domain.ErrInvalidWindow
	}

	today := dayOf(now)
	start := today.AddDate(0, 0, -(windowDays - 1))

	counts := make(map[string]int)
	sums := make(map[string]int)
	for _, r := range ratings {
		day := dayOf(r.CreatedAt)
		if day.Before(start) || day.After(today) {
			continue
		}
		key := day.Format(time.DateOnly)
		counts[key]++
		sums[key] += r.Rating
	}

	buckets := make([]DailyBucket, 0, windowDays)
	for day := start; !day.After(today); day = day.AddDate(0, 0, 1) {
		key := day.Format(time.DateOnly)
		bucket := DailyBucket{Date: key}
		if n := counts[key]; n > 0 {
			bucket.Count = n
			bucket.AverageRating = roundTo1(float64(sums[key]) / float64(n))
		}
		buckets = append(buckets, bucket)
	}

	return buckets, nil
}

// ComputeTrendReport runs the full trend pipeline: daily buckets,
// exact period totals over the in-window ratings, and a direction
// estimate. Rejects windowDays <= 0 with domain.ErrInvalidWindow.
func ComputeTrendReport(ratings []domain.Rating, windowDays int, now time.Time) (TrendReport, error) {
	buckets, err := Trends(ratings, windowDays, now)
	if err != nil {
		return TrendReport{}, err
	}

	today := dayOf(now)
	start := today.AddDate(0, 0, -(windowDays - 1))

	var sum, total int
	for _, r := range ratings {
		day := dayOf(r.CreatedAt)
		if day.Before(start) || day.After(today) {
			continue
		}
		sum += r.Rating
		total++
	}

	report := TrendReport{
		PeriodDays:   windowDays,
		TotalRatings: total,
		Trend:        TrendDirection(buckets),
		Daily:        buckets,
	}
	if total > 0 {
		report.AverageRating = roundTo1(float64(sum) / float64(total))
	}
	return report, nil
}

// TrendDirection compares the first and second half of the populated
// buckets and reports whether ratings are improving, declining, or
// stable. Days without data are ignored for the comparison; a single
// populated day cannot support a direction.
func TrendDirection(buckets []DailyBucket) string {
	var populated []DailyBucket
	for _, b := range buckets {
		if b.Count > 0 {
			populated = append(populated, b)
		}
	}

	if len(populated) == 0 {
		return TrendNoData
	}
	mid := len(populated) / 2
	if mid == 0 {
		return TrendInsufficientData
	}

	firstHalf := weightedAverage(populated[:mid])
	secondHalf := weightedAverage(populated[mid:])

	switch {
	case secondHalf > firstHalf+trendBand:
		return TrendImproving
	case secondHalf < firstHalf-trendBand:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// dayOf floors an instant to its UTC calendar date. Timestamps exactly
// on midnight belong to the day they start.
func dayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func weightedAverage(buckets []DailyBucket) float64 {
	var sum float64
	var count int
	for _, b := range buckets {
		sum += b.AverageRating * float64(b.Count)
		count += b.Count
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
