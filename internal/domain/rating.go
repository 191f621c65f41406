package domain

import (
	"context"
	"fmt"
	"time"
)

const (
	// MinRating and MaxRating bound the accepted star scale.
	MinRating = 1
	MaxRating = 5
)

// Rating is one stored quality judgment for a conversation.
// Ratings are immutable after insert; there is no update operation.
type Rating struct {
	ID             int64          `db:"id" json:"id"`
	ConversationID string         `db:"conversation_id" json:"conversation_id"`
	Rating         int            `db:"rating" json:"rating"`
	Feedback       string         `db:"feedback" json:"feedback,omitempty"`
	UserID         string         `db:"user_id" json:"user_id,omitempty"`
	Metadata       map[string]any `db:"metadata" json:"metadata,omitempty"`
	Sentiment      Sentiment      `db:"sentiment" json:"sentiment"`
	CreatedAt      time.Time      `db:"created_at" json:"timestamp"`
}

// NewRating is the insert payload. The store assigns ID and, when
// CreatedAt is zero, the creation timestamp. Sentiment is always
// derived from the numeric rating at insert, never caller-supplied.
type NewRating struct {
	ConversationID string
	Rating         int
	Feedback       string
	UserID         string
	Metadata       map[string]any
	CreatedAt      time.Time
}

// Validate enforces the boundary contract: analytics and storage only
// ever see ratings that passed this check.
func (n NewRating) Validate() error {
	if n.ConversationID == "" {
		return fmt.Errorf("conversation_id must not be empty")
	}
	if n.Rating < MinRating || n.Rating > MaxRating {
		return fmt.Errorf("rating must be between %d and %d, got %d", MinRating, MaxRating, n.Rating)
	}
	return nil
}

// ListFilter narrows List results. Zero values mean "no constraint",
// except Limit which callers must set explicitly.
type ListFilter struct {
	Limit          int
	MinRating      int
	MaxRating      int
	ConversationID string
	From           time.Time
	To             time.Time
}

// RatingRepository abstracts rating persistence.
type RatingRepository interface {
	Insert(ctx context.Context, rating NewRating) (*Rating, error)
	BulkInsert(ctx context.Context, ratings []NewRating) ([]Rating, error)
	GetByID(ctx context.Context, id int64) (*Rating, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ListFilter) ([]Rating, error)
	ListAll(ctx context.Context) ([]Rating, error)
}
