package types

import (
	"strings"
	"time"
)

// EntryRecord is one scanned entry of the target directory. Records are
// rebuilt on every scan and never persisted; Name is the join key used by
// the suppression store, the advisory response and the deletion step.
type EntryRecord struct {
	Name         string
	AbsolutePath string
	SizeBytes    int64
	Modified     time.Time
	Ext          string // lowercase, may be empty
	IsDir        bool
}

// SizeMB reports the entry size in megabytes for display and prompts.
func (e EntryRecord) SizeMB() float64 {
	return float64(e.SizeBytes) / (1024 * 1024)
}

// TotalBytes sums the sizes of all records.
func TotalBytes(records []EntryRecord) int64 {
	var n int64
	for _, r := range records {
		n += r.SizeBytes
	}
	return n
}

// Confidence is the oracle-assigned trust level of a suggestion. It is a
// display heuristic only and never drives control decisions.
type Confidence string

const (
	ConfidenceHigh    Confidence = "high"
	ConfidenceMedium  Confidence = "medium"
	ConfidenceLow     Confidence = "low"
	ConfidenceUnknown Confidence = "unknown"
)

// ParseConfidence normalizes an oracle-reported confidence string. Anything
// outside the documented values lands in the unknown bucket rather than
// being dropped.
func ParseConfidence(s string) Confidence {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return ConfidenceHigh
	case "medium":
		return ConfidenceMedium
	case "low":
		return ConfidenceLow
	default:
		return ConfidenceUnknown
	}
}

// Suggestion is one advisory judgment. Filename references an EntryRecord
// by name but is untrusted input: it is never resolved outside the scanned
// directory and may point at nothing at all.
type Suggestion struct {
	Filename   string     `json:"filename"`
	Reason     string     `json:"reason"`
	Confidence Confidence `json:"confidence"`
	SizeMB     float64    `json:"size_mb"`
	AgeDays    *int       `json:"age_days,omitempty"`
}

// Summary is the oracle's self-reported tally. Display only: deletion
// counts are always derived from the operator's selection, never from here.
type Summary struct {
	TotalFilesScanned         int     `json:"total_files_scanned"`
	FilesSuggestedForDeletion int     `json:"files_suggested_for_deletion"`
	TotalSpaceToFreeMB        float64 `json:"total_space_to_free_mb"`
	KeepRecentDays            int     `json:"keep_recent_days"`
}

// SuggestionBatch is one advisory response. Raw holds the unmodified
// payload as received, for the audit artifact and for diagnostics.
type SuggestionBatch struct {
	Suggestions []Suggestion `json:"suggestions"`
	Summary     Summary      `json:"summary"`

	Raw []byte `json:"-"`
}

// ByConfidence groups suggestions into display buckets, preserving the
// batch order within each bucket.
func (b *SuggestionBatch) ByConfidence() map[Confidence][]Suggestion {
	out := make(map[Confidence][]Suggestion)
	for _, s := range b.Suggestions {
		out[s.Confidence] = append(out[s.Confidence], s)
	}
	return out
}

// DeletionFailure records one entry that could not be removed.
type DeletionFailure struct {
	Filename string
	Reason   string
}

// DeletionOutcome is the complete per-session deletion report. Succeeded
// and failed sets are disjoint; FreedBytes counts sizes observed at
// deletion time, not stale snapshot sizes.
type DeletionOutcome struct {
	Deleted    []string
	Failed     []DeletionFailure
	FreedBytes int64
}

// Empty reports whether nothing was deleted and nothing failed.
func (o DeletionOutcome) Empty() bool {
	return len(o.Deleted) == 0 && len(o.Failed) == 0
}
