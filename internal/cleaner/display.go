package cleaner

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"downsweep/internal/types"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	highStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	mediumStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	lowStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	unknownStyle = lipgloss.NewStyle().Faint(true).Bold(true)
	noticeStyle  = lipgloss.NewStyle().Faint(true)

	divider = lipgloss.NewStyle().Faint(true).Render(
		"======================================================================")
)

// displayOrder fixes how confidence buckets are shown; unknown is always
// rendered last as the lowest-trust bucket.
var displayOrder = []struct {
	level types.Confidence
	title string
	style lipgloss.Style
}{
	{types.ConfidenceHigh, "HIGH CONFIDENCE:", highStyle},
	{types.ConfidenceMedium, "MEDIUM CONFIDENCE:", mediumStyle},
	{types.ConfidenceLow, "LOW CONFIDENCE (review carefully):", lowStyle},
	{types.ConfidenceUnknown, "UNRATED (treat with least trust):", unknownStyle},
}

// Banner prints the per-session scan summary.
func Banner(w io.Writer, dir string, records []types.EntryRecord) {
	fmt.Fprintf(w, "Found %d items in %s\n", len(records), dir)
	fmt.Fprintf(w, "Total size: %s\n", humanize.Bytes(uint64(types.TotalBytes(records))))
}

// FilterNotice reports how many entries the suppression set removed.
func FilterNotice(w io.Writer, suppressed, remaining int) {
	fmt.Fprintln(w, noticeStyle.Render(
		fmt.Sprintf("Filtering out %d file(s) marked as 'keep'; %d file(s) remaining for analysis", suppressed, remaining)))
}

// ShowSuggestions renders the advisory batch grouped by confidence. The
// summary block is oracle-reported and display-only.
func ShowSuggestions(w io.Writer, batch *types.SuggestionBatch) {
	fmt.Fprintln(w, divider)
	fmt.Fprintln(w, headerStyle.Render("DELETION SUGGESTIONS"))
	fmt.Fprintln(w, divider)

	fmt.Fprintf(w, "Summary (as reported by the advisor):\n")
	fmt.Fprintf(w, "  - Total files scanned: %d\n", batch.Summary.TotalFilesScanned)
	fmt.Fprintf(w, "  - Files suggested for deletion: %d\n", batch.Summary.FilesSuggestedForDeletion)
	fmt.Fprintf(w, "  - Space to free: %.2f MB\n", batch.Summary.TotalSpaceToFreeMB)

	if len(batch.Suggestions) == 0 {
		fmt.Fprintln(w, "\nNo files suggested for deletion. This directory looks clean!")
		return
	}

	fmt.Fprintf(w, "\nSuggested for deletion (%d files):\n\n", len(batch.Suggestions))
	buckets := batch.ByConfidence()
	for _, group := range displayOrder {
		items := buckets[group.level]
		if len(items) == 0 {
			continue
		}
		fmt.Fprintln(w, group.style.Render(group.title))
		for _, s := range items {
			fmt.Fprintf(w, "  - %s\n", s.Filename)
			fmt.Fprintf(w, "    Reason: %s\n", s.Reason)
			fmt.Fprintf(w, "    Size: %.2f MB\n", s.SizeMB)
			if s.AgeDays != nil {
				fmt.Fprintf(w, "    Age: %d days\n", *s.AgeDays)
			}
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, divider)
	fmt.Fprintln(w, "Please review these suggestions carefully before deleting any files!")
	fmt.Fprintln(w, divider)
}

// ShowOutcome renders the deletion report: successes and failures in the
// same pass, with explicit counts, so "no news" never means anything.
func ShowOutcome(w io.Writer, outcome types.DeletionOutcome) {
	fmt.Fprintln(w, divider)
	fmt.Fprintln(w, headerStyle.Render("DELETION RESULTS"))
	fmt.Fprintln(w, divider)
	fmt.Fprintf(w, "Successfully deleted: %d file(s)\n", len(outcome.Deleted))
	fmt.Fprintf(w, "Space freed: %s\n", humanize.Bytes(uint64(outcome.FreedBytes)))
	if len(outcome.Failed) > 0 {
		fmt.Fprintf(w, "\nFailed to delete %d file(s):\n", len(outcome.Failed))
		for _, f := range outcome.Failed {
			fmt.Fprintf(w, "  - %s (%s)\n", f.Filename, f.Reason)
		}
	}
	fmt.Fprintln(w, divider)
}
