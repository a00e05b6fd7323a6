package advisor

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"downsweep/internal/types"
)

// Client is the advisory pipeline stage: it renders the filtered snapshot
// into the fixed request format, calls the oracle once, and validates the
// response.
type Client struct {
	Oracle         Oracle
	KeepRecentDays int
	Log            zerolog.Logger
}

// Suggest submits the full filtered entry list to the oracle and returns
// its parsed judgment. Transport failures come back wrapped in
// ErrAdvisoryUnavailable; shape violations as MalformedResponseError.
// Neither touches suppression state.
func (c *Client) Suggest(ctx context.Context, entries []types.EntryRecord) (*types.SuggestionBatch, error) {
	input := requestInput(entries, c.KeepRecentDays)
	c.Log.Debug().Str("oracle", c.Oracle.Name()).Int("entries", len(entries)).Msg("requesting deletion suggestions")

	raw, err := c.Oracle.GenerateJSON(ctx, policyPrompt, input)
	if err != nil {
		var malformed *MalformedResponseError
		if errors.As(err, &malformed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrAdvisoryUnavailable, err)
	}

	batch, err := ParseBatch(raw)
	if err != nil {
		return nil, err
	}
	c.Log.Debug().Int("suggestions", len(batch.Suggestions)).Msg("oracle response parsed")
	return batch, nil
}
