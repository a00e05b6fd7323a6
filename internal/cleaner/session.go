// Package cleaner drives one scan → suggest → confirm → delete cycle and
// owns the confirm-before-destroy gate.
package cleaner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"downsweep/internal/advisor"
	"downsweep/internal/safeio"
	"downsweep/internal/scan"
	"downsweep/internal/suppress"
	"downsweep/internal/types"
	"downsweep/internal/ui"
)

// keepReason is recorded with every operator-driven suppression.
const keepReason = "user explicitly marked as keep"

// Session wires one cleanup pass over one directory. All collaborators are
// injected; the session itself holds no ambient state.
type Session struct {
	FS           *safeio.SafeFS
	Store        *suppress.Store
	Advisor      *advisor.Client
	Prompt       ui.Prompter
	Log          zerolog.Logger
	Out          io.Writer
	ArtifactName string
}

func (s *Session) out() io.Writer {
	if s.Out != nil {
		return s.Out
	}
	return os.Stdout
}

func (s *Session) artifactName() string {
	if s.ArtifactName != "" {
		return s.ArtifactName
	}
	return DefaultArtifactName
}

// Run executes one full session. Scan and advisory failures abort the
// session and bubble up; per-entry failures are collected and reported.
// Suppression write-back happens after, and regardless of, the deletion
// step: an entry both deleted and marked keep is recorded as both, without
// conflict-checking.
func (s *Session) Run(ctx context.Context) error {
	w := s.out()

	records, err := scan.Snapshot(s.FS, s.Log)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(w, "No files found in", s.FS.Root())
		return nil
	}
	Banner(w, s.FS.Root(), records)

	suppressed := s.Store.Load()
	if len(suppressed) > 0 {
		records = suppress.Filter(records, suppressed)
		FilterNotice(w, len(suppressed), len(records))
	}
	if len(records) == 0 {
		fmt.Fprintln(w, "Every entry is marked as keep; nothing to analyze.")
		return nil
	}

	fmt.Fprintf(w, "Analyzing files with %s...\n", s.Advisor.Oracle.Name())
	batch, err := s.Advisor.Suggest(ctx, records)
	if err != nil {
		return err
	}

	if err := WriteArtifact(s.FS, s.artifactName(), batch); err != nil {
		s.Log.Warn().Err(err).Msg("could not write suggestions artifact")
	} else {
		fmt.Fprintf(w, "Suggestions saved to: %s\n", s.artifactName())
	}

	ShowSuggestions(w, batch)
	if len(batch.Suggestions) == 0 {
		return nil
	}

	opts := selectionOptions(batch)
	selected, err := s.Prompt.MultiSelect("Select files to delete (space to toggle, enter to confirm):", opts)
	if err != nil {
		return err
	}

	if len(selected) > 0 {
		ok, err := s.Prompt.Confirm(
			fmt.Sprintf("Are you sure you want to delete %d file(s)? This cannot be undone!", len(selected)), false)
		if err != nil {
			return err
		}
		if ok {
			outcome := Delete(s.FS, selected, s.Log)
			ShowOutcome(w, outcome)
		} else {
			fmt.Fprintln(w, "Deletion cancelled.")
		}
	} else {
		fmt.Fprintln(w, "No files selected for deletion.")
	}

	keeps, err := s.Prompt.MultiSelect("Mark files as 'keep' (they won't be suggested again):", opts)
	if err != nil {
		return err
	}
	marked := 0
	for _, name := range keeps {
		if err := s.Store.Add(name, keepReason); err != nil {
			// Persist failures are reported but never end the session.
			s.Log.Error().Err(err).Str("entry", name).Msg("could not persist keep marking")
			fmt.Fprintf(w, "Warning: could not save keep marking for %s\n", name)
			continue
		}
		marked++
	}
	if marked > 0 {
		fmt.Fprintf(w, "Marked %d file(s) as keep. They won't be suggested in future runs.\n", marked)
	}
	return nil
}

// selectionOptions builds the shared candidate list used by both the
// delete-selection and the keep-selection prompts.
func selectionOptions(batch *types.SuggestionBatch) []ui.Option {
	opts := make([]ui.Option, 0, len(batch.Suggestions))
	for _, sg := range batch.Suggestions {
		reason := sg.Reason
		if len(reason) > 60 {
			reason = reason[:57] + "..."
		}
		opts = append(opts, ui.Option{
			Label: fmt.Sprintf("[%s] %s (%.2f MB) - %s", sg.Confidence, sg.Filename, sg.SizeMB, reason),
			Value: sg.Filename,
		})
	}
	return opts
}
