package cleaner

import (
	"downsweep/internal/jsonutil"
	"downsweep/internal/safeio"
	"downsweep/internal/types"
)

// DefaultArtifactName is the fixed-name audit file written into the scanned
// directory after every advisory call.
const DefaultArtifactName = "cleanup_suggestions.json"

// WriteArtifact persists the session's full suggestion batch, unmodified,
// inside the scanned directory. Pure side effect for inspection; nothing
// reads it back.
func WriteArtifact(fs *safeio.SafeFS, name string, batch *types.SuggestionBatch) error {
	data := batch.Raw
	if len(data) == 0 {
		var err error
		data, err = jsonutil.MarshalNoEscape(batch)
		if err != nil {
			return err
		}
	}
	return fs.SafeWriteFile(name, data, 0o644)
}
