// Package app is the application layer. It is the only component that
// references multiple collaborators: it orchestrates the rating store,
// the analytics core, and the optional summary cache.
package app
