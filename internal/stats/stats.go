// Package stats derives accuracy statistics from persisted attempt
// counters for use in recommendation.
package stats

import (
	"context"
	"fmt"

	"github.com/runger/shifu/internal/storage"
)

// DefaultMinAttempts is the minimum number of recorded attempts a
// syllable needs before its accuracy is considered statistically
// meaningful. Syllables below the threshold are excluded.
const DefaultMinAttempts = 10

// SyllableStat is a derived view over one attempt record. It is
// recomputed on every request and never persisted.
type SyllableStat struct {
	Syllable      string  `json:"syllable"`
	Correct       int     `json:"correct"`
	Incorrect     int     `json:"incorrect"`
	TotalAttempts int     `json:"total_attempts"`
	Accuracy      float64 `json:"accuracy"` // percent, 0-100
}

// Aggregator computes per-syllable accuracy stats for a user.
// It is a read-only consumer of the store.
type Aggregator struct {
	store       storage.Store
	minAttempts int
}

// NewAggregator creates an aggregator with the given sample threshold.
// A non-positive minAttempts falls back to DefaultMinAttempts.
func NewAggregator(store storage.Store, minAttempts int) *Aggregator {
	if minAttempts <= 0 {
		minAttempts = DefaultMinAttempts
	}
	return &Aggregator{store: store, minAttempts: minAttempts}
}

// Collect loads all attempt records for the user and returns a stat
// for each syllable meeting the sample threshold, each exactly once.
// Store errors surface directly; there is no retry or fallback.
func (a *Aggregator) Collect(ctx context.Context, userID string) ([]SyllableStat, error) {
	records, err := a.store.ListAttempts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempt records: %w", err)
	}

	stats := make([]SyllableStat, 0, len(records))
	for _, rec := range records {
		total := rec.CorrectCount + rec.IncorrectCount
		if total < a.minAttempts {
			continue
		}
		stats = append(stats, SyllableStat{
			Syllable:      rec.Syllable,
			Correct:       rec.CorrectCount,
			Incorrect:     rec.IncorrectCount,
			TotalAttempts: total,
			Accuracy:      float64(rec.CorrectCount) / float64(total) * 100.0,
		})
	}

	return stats, nil
}
