package scan

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"downsweep/internal/safeio"
	"downsweep/internal/types"
)

// ErrDirectoryUnavailable signals that the target directory itself could not
// be read. Per-entry stat failures are skipped instead (partial snapshots
// are acceptable).
var ErrDirectoryUnavailable = errors.New("scan: directory unavailable")

// Snapshot enumerates the immediate entries of the scanned root into
// EntryRecords. Entries whose metadata cannot be read (permissions, deleted
// mid-scan) are skipped with a warning. Read-only; imposes no ordering.
func Snapshot(fs *safeio.SafeFS, log zerolog.Logger) ([]types.EntryRecord, error) {
	dirents, err := fs.ReadRoot()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDirectoryUnavailable, fs.Root(), err)
	}

	records := make([]types.EntryRecord, 0, len(dirents))
	for _, de := range dirents {
		info, err := de.Info()
		if err != nil {
			log.Warn().Str("entry", de.Name()).Err(err).Msg("could not stat entry, skipping")
			continue
		}
		records = append(records, types.EntryRecord{
			Name:         de.Name(),
			AbsolutePath: filepath.Join(fs.Root(), de.Name()),
			SizeBytes:    info.Size(),
			Modified:     info.ModTime(),
			Ext:          strings.ToLower(filepath.Ext(de.Name())),
			IsDir:        de.IsDir(),
		})
	}
	return records, nil
}
