// Package recommend builds practice recommendations by prompting an
// external completion service with the user's accuracy history and
// validating the structured result.
package recommend

import (
	"context"
	"time"
)

// DefaultTimeout is the per-attempt timeout for completion calls.
const DefaultTimeout = 10 * time.Second

// Completer defines the interface for completion backends.
type Completer interface {
	// Name returns the backend name (e.g., "openai")
	Name() string

	// Available checks if the backend is usable (credential present)
	Available() bool

	// Complete sends a single user-role prompt and returns the raw
	// message content of the first choice.
	Complete(ctx context.Context, prompt string) (string, error)
}
