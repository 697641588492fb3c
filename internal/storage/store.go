// Package storage provides SQLite-based persistent storage for shifu.
// It holds one record per (user, syllable) pair with cumulative
// correct/incorrect counters.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no record exists for a (user, syllable) pair.
var ErrNotFound = errors.New("attempt record not found")

// Store defines the interface for all storage operations.
// Counters only ever increase; records are never deleted.
type Store interface {
	// UpsertAttempt folds one practice outcome into the record for
	// (userID, syllable), creating the record on first sight. The
	// create-vs-increment decision is made atomically by the store.
	// created reports whether a new record was inserted.
	UpsertAttempt(ctx context.Context, userID, syllable string, correct bool, ts time.Time) (created bool, err error)

	// GetAttempt returns the record for (userID, syllable).
	// Returns ErrNotFound if the pair has never been attempted.
	GetAttempt(ctx context.Context, userID, syllable string) (*AttemptRecord, error)

	// ListAttempts returns all records for a user, most recently
	// updated first. Callers must not rely on the ordering.
	ListAttempts(ctx context.Context, userID string) ([]AttemptRecord, error)

	// ListAllAttempts returns every record in the store.
	ListAllAttempts(ctx context.Context) ([]AttemptRecord, error)

	// Lifecycle
	Close() error
}

// AttemptRecord is one row of accumulated practice outcomes for a
// (user, syllable) pair.
type AttemptRecord struct {
	UserID         string `json:"userId"`
	Syllable       string `json:"syllable"`
	CorrectCount   int    `json:"correct"`
	IncorrectCount int    `json:"incorrect"`
	LastUpdatedMs  int64  `json:"lastUpdated"`
}
