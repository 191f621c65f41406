package domain

// Sentiment is the three-way label derived from a rating's numeric value.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Sentiments lists all labels in display order. Aggregations use it to
// keep every bucket present even when its count is zero.
var Sentiments = []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative}

// ClassifySentiment maps a 1-5 rating to its sentiment label:
// 4-5 positive, 3 neutral, 1-2 negative.
//
// The feedback text is accepted for forward compatibility but never
// consulted; classification is a pure function of the numeric rating.
// Out-of-range values (rejected at the HTTP boundary before they reach
// this point) clamp into the nearest band rather than failing.
func ClassifySentiment(rating int, _ string) Sentiment {
	switch {
	case rating >= 4:
		return SentimentPositive
	case rating == 3:
		return SentimentNeutral
	default:
		return SentimentNegative
	}
}
