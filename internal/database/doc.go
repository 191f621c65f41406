// Package database implements the postgres-backed record store for
// ratings, including connection setup and in-code schema migrations.
package database
