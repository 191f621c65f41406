package domain

import "errors"

var (
	ErrRatingNotFound = errors.New("rating not found")
	ErrInvalidWindow  = errors.New("trend window must be at least one day")
)
