// Package advisor asks an external judgment oracle which directory entries
// are safe to delete and parses its untrusted response into typed
// suggestions. The oracle's output is a hint, never authoritative.
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Oracle abstracts the judgment service behind the advisory client.
type Oracle interface {
	Name() string
	GenerateJSON(ctx context.Context, prompt, input string) (json.RawMessage, error)
	Close() error
}

// ErrAdvisoryUnavailable wraps transport/service failures. These abort the
// current session step; the session loop decides whether to retry.
var ErrAdvisoryUnavailable = errors.New("advisor: advisory service unavailable")

// ErrMalformedResponse matches (via errors.Is) any response that does not
// parse as the documented suggestion shape. There is no automatic retry.
var ErrMalformedResponse = errors.New("advisor: malformed advisory response")

// MalformedResponseError carries the raw unparsed payload for diagnostics.
type MalformedResponseError struct {
	Reason string
	Raw    json.RawMessage
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("advisor: malformed advisory response: %s", e.Reason)
}

func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}
