package analytics

import (
	"math"
	"strconv"

	"github.com/pscheid92/ratingpulse/internal/domain"
)

// Summary holds aggregate statistics over a rating set.
type Summary struct {
	TotalRatings       int                      `json:"total_ratings"`
	AverageRating      float64                  `json:"average_rating"`
	RatingDistribution map[string]int           `json:"rating_distribution"`
	SentimentBreakdown map[domain.Sentiment]int `json:"sentiment_breakdown"`
	TimePeriod         string                   `json:"time_period"`
}

// Summarize computes count, mean, star distribution, and sentiment
// breakdown for the given ratings. The empty set is not an error: it
// yields zero counts and a 0.0 average. timePeriod is an opaque label
// describing the slice of data passed in; it is echoed back unmodified.
func Summarize(ratings []domain.Rating, timePeriod string) Summary {
	distribution := make(map[string]int, domain.MaxRating)
	for star := domain.MinRating; star <= domain.MaxRating; star++ {
		distribution[strconv.Itoa(star)] = 0
	}

	breakdown := make(map[domain.Sentiment]int, len(domain.Sentiments))
	for _, s := range domain.Sentiments {
		breakdown[s] = 0
	}

	var sum int
	for _, r := range ratings {
		sum += r.Rating
		distribution[strconv.Itoa(r.Rating)]++
		// Classified per rating rather than read from the stored column,
		// so the breakdown stays correct if the rule ever changes.
		breakdown[domain.ClassifySentiment(r.Rating, r.Feedback)]++
	}

	var average float64
	if len(ratings) > 0 {
		average = roundTo1(float64(sum) / float64(len(ratings)))
	}

	return Summary{
		TotalRatings:       len(ratings),
		AverageRating:      average,
		RatingDistribution: distribution,
		SentimentBreakdown: breakdown,
		TimePeriod:         timePeriod,
	}
}

// StarBucket is one star value's share of the distribution.
type StarBucket struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// DistributionReport is the detailed star distribution with percentages.
type DistributionReport struct {
	TotalRatings int                   `json:"total_ratings"`
	Distribution map[string]StarBucket `json:"distribution"`
}

// Distribution computes per-star counts and percentage shares. With no
// data the distribution map is empty rather than populated with zeros,
// matching the summary/detail split of the reporting API.
func Distribution(ratings []domain.Rating) DistributionReport {
	report := DistributionReport{
		TotalRatings: len(ratings),
		Distribution: make(map[string]StarBucket),
	}
	if len(ratings) == 0 {
		return report
	}

	counts := make(map[int]int, domain.MaxRating)
	for _, r := range ratings {
		counts[r.Rating]++
	}

	total := float64(len(ratings))
	for star := domain.MinRating; star <= domain.MaxRating; star++ {
		count := counts[star]
		report.Distribution[strconv.Itoa(star)+"_star"] = StarBucket{
			Count:      count,
			Percentage: roundTo1(float64(count) / total * 100),
		}
	}

	return report
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
