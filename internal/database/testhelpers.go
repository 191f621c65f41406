package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pscheid92/ratingpulse/internal/domain"
)

// CreateTestRating inserts a rating with sensible defaults for testing
// and returns the stored row.
func CreateTestRating(t *testing.T, db *DB, conversationID string, stars int) *domain.Rating {
	t.Helper()

	repo := NewRatingRepo(db)
	ctx := context.Background()

	rating, err := repo.Insert(ctx, domain.NewRating{
		ConversationID: conversationID,
		Rating:         stars,
	})
	require.NoError(t, err)
	require.NotZero(t, rating.ID)

	return rating
}

// CreateTestRatingAt inserts a rating with an explicit creation time,
// useful for exercising time filters and trend windows.
func CreateTestRatingAt(t *testing.T, db *DB, conversationID string, stars int, createdAt time.Time) *domain.Rating {
	t.Helper()

	repo := NewRatingRepo(db)
	ctx := context.Background()

	rating, err := repo.Insert(ctx, domain.NewRating{
		ConversationID: conversationID,
		Rating:         stars,
		CreatedAt:      createdAt,
	})
	require.NoError(t, err)
	require.NotZero(t, rating.ID)

	return rating
}
