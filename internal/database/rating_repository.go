package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/pscheid92/ratingpulse/internal/domain"
	"github.com/pscheid92/ratingpulse/internal/metrics"
)

// ratingColumns must match the Scan order in scanRating.
const ratingColumns = `id, conversation_id, rating, COALESCE(feedback, ''), COALESCE(user_id, ''), metadata, sentiment, created_at`

// RatingRepo implements domain.RatingRepository backed by PostgreSQL.
type RatingRepo struct {
	db *sql.DB
}

// NewRatingRepo creates a RatingRepo from the shared DB connection.
func NewRatingRepo(db *DB) *RatingRepo {
	return &RatingRepo{db: db.DB}
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRating(row rowScanner) (*domain.Rating, error) {
	var rating domain.Rating
	var metadata []byte
	err := row.Scan(
		&rating.ID, &rating.ConversationID, &rating.Rating,
		&rating.Feedback, &rating.UserID, &metadata,
		&rating.Sentiment, &rating.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &rating.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode metadata for rating %d: %w", rating.ID, err)
		}
	}
	return &rating, nil
}

func encodeMetadata(metadata map[string]any) (any, error) {
	if len(metadata) == 0 {
		return nil, nil
	}
	encoded, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}
	return encoded, nil
}

// observe records query duration and errors under the given query name.
func observe(query string, start time.Time, err error) {
	metrics.DBQueryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		metrics.DBErrorsTotal.WithLabelValues(query).Inc()
	}
}

func (r *RatingRepo) Insert(ctx context.Context, rating domain.NewRating) (_ *domain.Rating, err error) {
	start := time.Now()
	defer func() { observe("insert_rating", start, err) }()

	metadata, err := encodeMetadata(rating.Metadata)
	if err != nil {
		return nil, err
	}

	// Sentiment is derived here, at the single write path, so the stored
	// column can never disagree with the classification rule.
	sentiment := domain.ClassifySentiment(rating.Rating, rating.Feedback)

	var createdAt any
	if !rating.CreatedAt.IsZero() {
		createdAt = rating.CreatedAt.UTC()
	}

	stored, err := scanRating(r.db.QueryRowContext(ctx, `
		INSERT INTO ratings (conversation_id, rating, feedback, user_id, metadata, sentiment, created_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, COALESCE($7, NOW()))
		RETURNING `+ratingColumns+`
	`, rating.ConversationID, rating.Rating, rating.Feedback, rating.UserID, metadata, sentiment, createdAt))
	if err != nil {
		return nil, fmt.Errorf("failed to insert rating: %w", err)
	}

	return stored, nil
}

func (r *RatingRepo) BulkInsert(ctx context.Context, ratings []domain.NewRating) (_ []domain.Rating, err error) {
	start := time.Now()
	defer func() { observe("bulk_insert_ratings", start, err) }()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ratings (conversation_id, rating, feedback, user_id, metadata, sentiment, created_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, COALESCE($7, NOW()))
		RETURNING `+ratingColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close() //nolint:errcheck // read-only cleanup

	inserted := make([]domain.Rating, 0, len(ratings))
	for _, rating := range ratings {
		metadata, err := encodeMetadata(rating.Metadata)
		if err != nil {
			return nil, err
		}
		sentiment := domain.ClassifySentiment(rating.Rating, rating.Feedback)

		var createdAt any
		if !rating.CreatedAt.IsZero() {
			createdAt = rating.CreatedAt.UTC()
		}

		stored, err := scanRating(stmt.QueryRowContext(ctx,
			rating.ConversationID, rating.Rating, rating.Feedback, rating.UserID, metadata, sentiment, createdAt))
		if err != nil {
			return nil, fmt.Errorf("failed to insert rating for conversation %s: %w", rating.ConversationID, err)
		}
		inserted = append(inserted, *stored)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return inserted, nil
}

func (r *RatingRepo) GetByID(ctx context.Context, id int64) (_ *domain.Rating, err error) {
	start := time.Now()
	defer func() { observe("get_rating_by_id", start, err) }()

	rating, err := scanRating(r.db.QueryRowContext(ctx,
		`SELECT `+ratingColumns+` FROM ratings WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRatingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rating %d: %w", id, err)
	}

	return rating, nil
}

func (r *RatingRepo) Delete(ctx context.Context, id int64) (err error) {
	start := time.Now()
	defer func() { observe("delete_rating", start, err) }()

	result, err := r.db.ExecContext(ctx, `DELETE FROM ratings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete rating %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrRatingNotFound
	}

	return nil
}

func (r *RatingRepo) List(ctx context.Context, filter domain.ListFilter) (_ []domain.Rating, err error) {
	start := time.Now()
	defer func() { observe("list_ratings", start, err) }()

	query := `SELECT ` + ratingColumns + ` FROM ratings WHERE 1=1`
	var args []any

	if filter.MinRating > 0 {
		args = append(args, filter.MinRating)
		query += ` AND rating >= $` + strconv.Itoa(len(args))
	}
	if filter.MaxRating > 0 {
		args = append(args, filter.MaxRating)
		query += ` AND rating <= $` + strconv.Itoa(len(args))
	}
	if filter.ConversationID != "" {
		args = append(args, filter.ConversationID)
		query += ` AND conversation_id = $` + strconv.Itoa(len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From.UTC())
		query += ` AND created_at >= $` + strconv.Itoa(len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To.UTC())
		query += ` AND created_at <= $` + strconv.Itoa(len(args))
	}

	args = append(args, filter.Limit)
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args))

	return r.queryRatings(ctx, query, args...)
}

func (r *RatingRepo) ListAll(ctx context.Context) (_ []domain.Rating, err error) {
	start := time.Now()
	defer func() { observe("list_all_ratings", start, err) }()

	return r.queryRatings(ctx, `SELECT `+ratingColumns+` FROM ratings ORDER BY created_at DESC`)
}

func (r *RatingRepo) queryRatings(ctx context.Context, query string, args ...any) ([]domain.Rating, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cleanup

	var ratings []domain.Rating
	for rows.Next() {
		rating, err := scanRating(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, *rating)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ratings: %w", err)
	}

	return ratings, nil
}
