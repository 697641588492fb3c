// Package practice implements the accumulation service that folds
// pronunciation practice outcomes into persisted per-syllable counters.
package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/runger/shifu/internal/storage"
)

// ErrInvalidInput is returned when a practice event is missing
// required fields. It is never retried and maps to a client error.
var ErrInvalidInput = errors.New("invalid input")

// Ack acknowledges a recorded practice attempt.
type Ack struct {
	// Created reports whether this was the first attempt ever
	// recorded for the (user, syllable) pair.
	Created bool
}

// Service records practice attempts. It is the only writer of
// attempt records; reads go through the stats aggregator.
type Service struct {
	store  storage.Store
	logger *slog.Logger
}

// NewService creates a new accumulation service.
func NewService(store storage.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// RecordAttempt folds one practice outcome into the counters for
// (userID, syllable). A zero ts means "now". The store serializes the
// create-vs-increment decision; store errors are surfaced unchanged
// (retry policy belongs to the caller).
func (s *Service) RecordAttempt(ctx context.Context, userID, syllable string, correct bool, ts time.Time) (*Ack, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if syllable == "" {
		return nil, fmt.Errorf("%w: syllable is required", ErrInvalidInput)
	}
	if ts.IsZero() {
		ts = time.Now()
	}

	created, err := s.store.UpsertAttempt(ctx, userID, syllable, correct, ts)
	if err != nil {
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	s.logger.Debug("attempt recorded",
		"user_id", userID,
		"syllable", syllable,
		"correct", correct,
		"created", created,
	)

	return &Ack{Created: created}, nil
}
