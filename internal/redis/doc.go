// Package redis provides the optional redis-backed cache for analytics
// summaries. The service degrades gracefully when redis is not
// configured or unavailable: every read path falls through to postgres.
package redis
