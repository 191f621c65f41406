package analytics

import "github.com/pscheid92/ratingpulse/internal/domain"

// DefaultFeedbackSamples is how many feedback texts each sentiment
// class contributes to a SentimentAnalysis by default.
const DefaultFeedbackSamples = 5

// SentimentAnalysis is the detailed sentiment view: counts per label
// plus representative feedback texts for the positive and negative
// classes.
type SentimentAnalysis struct {
	TotalRatings        int                      `json:"total_ratings"`
	SentimentBreakdown  map[domain.Sentiment]int `json:"sentiment_breakdown"`
	TopPositiveFeedback []string                 `json:"top_positive_feedback"`
	TopNegativeFeedback []string                 `json:"top_negative_feedback"`
}

// SentimentReport classifies each rating and collects up to sampleLimit
// non-empty feedback texts per polar class, in input order. Neutral
// feedback is counted but not sampled.
func SentimentReport(ratings []domain.Rating, sampleLimit int) SentimentAnalysis {
	analysis := SentimentAnalysis{
		TotalRatings:        len(ratings),
		SentimentBreakdown:  make(map[domain.Sentiment]int, len(domain.Sentiments)),
		TopPositiveFeedback: []string{},
		TopNegativeFeedback: []string{},
	}
	for _, s := range domain.Sentiments {
		analysis.SentimentBreakdown[s] = 0
	}

	for _, r := range ratings {
		sentiment := domain.ClassifySentiment(r.Rating, r.Feedback)
		analysis.SentimentBreakdown[sentiment]++

		if r.Feedback == "" {
			continue
		}
		switch sentiment {
		case domain.SentimentPositive:
			if len(analysis.TopPositiveFeedback) < sampleLimit {
				analysis.TopPositiveFeedback = append(analysis.TopPositiveFeedback, r.Feedback)
			}
		case domain.SentimentNegative:
			if len(analysis.TopNegativeFeedback) < sampleLimit {
				analysis.TopNegativeFeedback = append(analysis.TopNegativeFeedback, r.Feedback)
			}
		}
	}

	return analysis
}
