package cleaner

import (
	"os"

	"github.com/rs/zerolog"

	"downsweep/internal/safeio"
	"downsweep/internal/types"
)

// Delete removes the named entries from the scanned directory, each
// independently: one failure never aborts the rest. Sizes are re-stated at
// deletion time so freed-byte accounting tolerates concurrent external
// changes; an entry that vanished since the scan becomes a "not found"
// failure. Directories are removed recursively. Always returns the full
// outcome, even when every entry fails.
func Delete(fs *safeio.SafeFS, names []string, log zerolog.Logger) types.DeletionOutcome {
	var out types.DeletionOutcome
	for _, name := range names {
		info, err := fs.SafeStat(name)
		if err != nil {
			reason := err.Error()
			if os.IsNotExist(err) {
				reason = "not found"
			}
			out.Failed = append(out.Failed, types.DeletionFailure{Filename: name, Reason: reason})
			continue
		}
		size := info.Size()
		if err := fs.SafeRemoveAll(name); err != nil {
			out.Failed = append(out.Failed, types.DeletionFailure{Filename: name, Reason: err.Error()})
			continue
		}
		log.Info().Str("entry", name).Int64("bytes", size).Msg("deleted")
		out.Deleted = append(out.Deleted, name)
		out.FreedBytes += size
	}
	return out
}
