package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pscheid92/ratingpulse/internal/domain"
)

// now is a fixed reference instant so bucket dates are deterministic.
var now = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

func ratingAt(stars int, at time.Time) domain.Rating {
	return domain.Rating{ConversationID: "conv-1", Rating: stars, CreatedAt: at}
}

func TestTrends_RejectsNonPositiveWindow(t *testing.T) {
	_, err := Trends(nil, 0, now)
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)

	_, err = Trends(nil, -7, now)
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)
}

func TestTrends_SingleDayWindow(t *testing.T) {
	ratings := []domain.Rating{
		ratingAt(5, now.Add(-1*time.Hour)),
		ratingAt(5, now.Add(-2*time.Hour)),
		ratingAt(4, now.Add(-3*time.Hour)),
	}

	buckets, err := Trends(ratings, 1, now)
	require.NoError(t, err)
	require.Len(t, buckets, 1)

	assert.Equal(t, "2025-06-15", buckets[0].Date)
	assert.Equal(t, 3, buckets[0].Count)
	assert.Equal(t, 4.7, buckets[0].AverageRating)
}

func TestTrends_DenseAscendingSeries(t *testing.T) {
	// Ratings on two of seven days; the other five still get buckets.
	ratings := []domain.Rating{
		ratingAt(4, now.AddDate(0, 0, -6)),
		ratingAt(2, now.AddDate(0, 0, -2)),
		ratingAt(4, now.AddDate(0, 0, -2)),
	}

	buckets, err := Trends(ratings, 7, now)
	require.NoError(t, err)
	require.Len(t, buckets, 7)

	assert.Equal(t, "2025-06-09", buckets[0].Date)
	assert.Equal(t, "2025-06-15", buckets[6].Date)
	for i := 1; i < len(buckets); i++ {
		assert.Less(t, buckets[i-1].Date, buckets[i].Date)
	}

	assert.Equal(t, DailyBucket{Date: "2025-06-09", Count: 1, AverageRating: 4.0}, buckets[0])
	assert.Equal(t, DailyBucket{Date: "2025-06-13", Count: 2, AverageRating: 3.0}, buckets[4])
	assert.Equal(t, DailyBucket{Date: "2025-06-10"}, buckets[1])
}

func TestTrends_ExcludesRatingsOutsideWindow(t *testing.T) {
	ratings := []domain.Rating{
		ratingAt(1, now.AddDate(0, 0, -7)), // one day too old for a 7-day window
		ratingAt(5, now.AddDate(0, 0, 1)),  // future timestamp, ignored
		ratingAt(3, now),
	}

	buckets, err := Trends(ratings, 7, now)
	require.NoError(t, err)

	var total int
	for _, b := range buckets {
		total += b.Count
	}
	assert.Equal(t, 1, total)
}

func TestTrends_MidnightBelongsToItsDay(t *testing.T) {
	midnight := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	buckets, err := Trends([]domain.Rating{ratingAt(4, midnight)}, 7, now)
	require.NoError(t, err)

	for _, b := range buckets {
		if b.Date == "2025-06-14" {
			assert.Equal(t, 1, b.Count)
			return
		}
	}
	t.Fatal("expected a bucket for 2025-06-14")
}

func TestTrends_NonUTCTimestampsBucketByUTCDate(t *testing.T) {
	// 23:00 UTC-3 on June 14 is 02:00 UTC on June 15.
	loc := time.FixedZone("UTC-3", -3*60*60)
	local := time.Date(2025, 6, 14, 23, 0, 0, 0, loc)

	buckets, err := Trends([]domain.Rating{ratingAt(5, local)}, 2, now)
	require.NoError(t, err)
	require.Len(t, buckets, 2)

	assert.Equal(t, 0, buckets[0].Count) // 2025-06-14
	assert.Equal(t, 1, buckets[1].Count) // 2025-06-15
}

func TestComputeTrendReport_ExactPeriodStats(t *testing.T) {
	// Per-day averages round, but the period average comes from the raw
	// ratings: (5+5+4+1)/4 = 3.75 rounds to 3.8.
	ratings := []domain.Rating{
		ratingAt(5, now.AddDate(0, 0, -1)),
		ratingAt(5, now.AddDate(0, 0, -1)),
		ratingAt(4, now.AddDate(0, 0, -1)),
		ratingAt(1, now),
	}

	report, err := ComputeTrendReport(ratings, 7, now)
	require.NoError(t, err)

	assert.Equal(t, 7, report.PeriodDays)
	assert.Equal(t, 4, report.TotalRatings)
	assert.Equal(t, 3.8, report.AverageRating)
	assert.Len(t, report.Daily, 7)
}

func TestComputeTrendReport_EmptyWindow(t *testing.T) {
	report, err := ComputeTrendReport(nil, 7, now)
	require.NoError(t, err)

	assert.Equal(t, 0, report.TotalRatings)
	assert.Equal(t, 0.0, report.AverageRating)
	assert.Equal(t, TrendNoData, report.Trend)
	assert.Len(t, report.Daily, 7)
}

func TestTrendDirection(t *testing.T) {
	tests := []struct {
		name    string
		buckets []DailyBucket
		want    string
	}{
		{
			name: "no populated days",
			buckets: []DailyBucket{
				{Date: "2025-06-14"},
				{Date: "2025-06-15"},
			},
			want: TrendNoData,
		},
		{
			name: "single populated day",
			buckets: []DailyBucket{
				{Date: "2025-06-15", Count: 3, AverageRating: 4.0},
			},
			want: TrendInsufficientData,
		},
		{
			name: "clear improvement",
			buckets: []DailyBucket{
				{Date: "2025-06-12", Count: 2, AverageRating: 2.0},
				{Date: "2025-06-13", Count: 2, AverageRating: 2.5},
				{Date: "2025-06-14", Count: 2, AverageRating: 4.0},
				{Date: "2025-06-15", Count: 2, AverageRating: 4.5},
			},
			want: TrendImproving,
		},
		{
			name: "clear decline",
			buckets: []DailyBucket{
				{Date: "2025-06-14", Count: 2, AverageRating: 4.5},
				{Date: "2025-06-15", Count: 2, AverageRating: 1.5},
			},
			want: TrendDeclining,
		},
		{
			name: "difference inside the stable band",
			buckets: []DailyBucket{
				{Date: "2025-06-14", Count: 2, AverageRating: 3.9},
				{Date: "2025-06-15", Count: 2, AverageRating: 4.0},
			},
			want: TrendStable,
		},
		{
			name: "empty days ignored for comparison",
			buckets: []DailyBucket{
				{Date: "2025-06-11", Count: 1, AverageRating: 2.0},
				{Date: "2025-06-12"},
				{Date: "2025-06-13"},
				{Date: "2025-06-14"},
				{Date: "2025-06-15", Count: 1, AverageRating: 5.0},
			},
			want: TrendImproving,
		},
		{
			name: "second half weighted by count",
			buckets: []DailyBucket{
				{Date: "2025-06-14", Count: 1, AverageRating: 4.0},
				// One bucket, ten ratings: its weight is 10, not 1.
				{Date: "2025-06-15", Count: 10, AverageRating: 4.1},
			},
			want: TrendStable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrendDirection(tt.buckets))
		})
	}
}
