package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/runger/shifu/internal/stats"
)

// ErrUnavailable is returned when the retry budget is exhausted
// without a validated recommendation. The wrapped message carries the
// last underlying failure for diagnostics.
var ErrUnavailable = errors.New("recommendation unavailable")

// Recommendation is the validated result from the completion service.
// It is never persisted.
type Recommendation struct {
	Syllable    string `json:"syllable"`
	DisplayForm string `json:"displayForm"`
}

// Recommender obtains a practice recommendation from a completion
// backend, retrying until the result is structurally valid or the
// retry budget runs out.
type Recommender struct {
	completer Completer
	policy    RetryPolicy
	logger    *slog.Logger
}

// NewRecommender creates a recommender. A nil policy falls back to
// the fixed default budget with no delay between attempts.
func NewRecommender(completer Completer, policy RetryPolicy, logger *slog.Logger) *Recommender {
	if policy == nil {
		policy = FixedRetry{MaxAttempts: DefaultMaxAttempts}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Recommender{completer: completer, policy: policy, logger: logger}
}

// Recommend prompts the completion backend with the user's accuracy
// history and returns the first validated result. All failure classes
// (transport error, non-success status, undecodable body, invalid
// payload schema) count against the same retry budget. Each attempt
// is an independent, stateless call with the same prompt; only the
// last failure reason is kept.
func (r *Recommender) Recommend(ctx context.Context, history []stats.SyllableStat) (*Recommendation, error) {
	prompt := BuildPrompt(history)
	attempts := r.policy.Attempts()

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := r.policy.Wait(ctx, attempt); err != nil {
				lastErr = err
				break
			}
		}

		content, err := r.completer.Complete(ctx, prompt)
		if err != nil {
			lastErr = err
			r.logger.Warn("completion attempt failed",
				"backend", r.completer.Name(),
				"attempt", attempt,
				"error", err,
			)
			continue
		}

		rec, err := parseRecommendation(content)
		if err != nil {
			lastErr = err
			r.logger.Warn("completion attempt returned invalid payload",
				"backend", r.completer.Name(),
				"attempt", attempt,
				"error", err,
			)
			continue
		}

		return rec, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

// parseRecommendation validates that the content is a JSON object
// carrying both the syllable and displayForm keys.
func parseRecommendation(content string) (*Recommendation, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("invalid response format: %s", content)
	}
	if _, ok := raw["syllable"]; !ok {
		return nil, fmt.Errorf("invalid response format: %s", content)
	}
	if _, ok := raw["displayForm"]; !ok {
		return nil, fmt.Errorf("invalid response format: %s", content)
	}

	var rec Recommendation
	if err := json.Unmarshal([]byte(content), &rec); err != nil {
		return nil, fmt.Errorf("invalid response format: %s", content)
	}
	return &rec, nil
}
