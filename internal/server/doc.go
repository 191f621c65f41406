// Package server exposes the rating and analytics API over HTTP using
// echo. Handlers stay thin: they validate input, call the application
// service, and rely on the structured-error middleware for responses.
package server
