package advisor

import (
	"fmt"
	"sort"
	"strings"

	"downsweep/internal/types"
)

// policyPrompt is the fixed instruction sent with every request. It tells
// the oracle to stay conservative: a missed deletable file is cheaper than
// a wrongly flagged important one.
const policyPrompt = `You are a helpful assistant that analyzes files in a directory and suggests which ones can be safely deleted.

Consider these factors when making suggestions:
1. **File age**: Old files (6+ months) are often safe to delete unless they're important documents
2. **File type**:
   - Old installers (.dmg, .pkg, .exe) are usually safe to delete after installation
   - Duplicate files (same name with numbers like "file (1).pdf")
   - Temporary files (.tmp, .temp, .cache)
   - Old screenshots and images that are likely not needed
3. **File size**: Large files that haven't been accessed recently
4. **Common patterns**: Files with names like "Copy of", "Untitled", or numbered duplicates
5. **Keep**: Recent documents, important file types (.pdf, .docx, .xlsx) that are recent

Return STRICT JSON ONLY with this structure:
{
  "suggestions": [
    {
      "filename": "example.dmg",
      "reason": "Old installer file, likely no longer needed",
      "confidence": "high",
      "size_mb": 150.5,
      "age_days": 180
    }
  ],
  "summary": {
    "total_files_scanned": 50,
    "files_suggested_for_deletion": 10,
    "total_space_to_free_mb": 500.2,
    "keep_recent_days": 30
  }
}

Be conservative - only suggest deletion if you're reasonably confident the file is safe to remove.

Note: The numbers in the example JSON structure above are just examples. You should analyze ALL files and suggest deletion for ALL files that meet the criteria, not limit yourself to any specific number.`

// SortForPrompt orders entries largest-first, with the oldest modification
// winning ties. The ordering is a deliberate signal: big and stale items
// land at the top of the oracle's attention, and it must be reproduced
// exactly so repeated scans get consistent suggestions.
func SortForPrompt(entries []types.EntryRecord) []types.EntryRecord {
	out := make([]types.EntryRecord, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SizeBytes != out[j].SizeBytes {
			return out[i].SizeBytes > out[j].SizeBytes
		}
		return out[i].Modified.Before(out[j].Modified)
	})
	return out
}

// renderEntries produces the one-line-per-entry listing shown to the oracle.
func renderEntries(entries []types.EntryRecord) string {
	sorted := SortForPrompt(entries)
	lines := make([]string, 0, len(sorted))
	for _, e := range sorted {
		kind := "File"
		if e.IsDir {
			kind = "Folder"
		}
		ext := e.Ext
		if ext == "" {
			ext = "none"
		}
		lines = append(lines, fmt.Sprintf("%s: %s | Size: %.2f MB | Modified: %s | Extension: %s",
			kind, e.Name, e.SizeMB(), e.Modified.Format("2006-01-02"), ext))
	}
	return strings.Join(lines, "\n")
}

// requestInput renders the user half of the request: counts, totals, the
// keep-recent hint and the full (unpaginated) entry listing. The oracle
// must see everything at once to reason about duplicates and patterns.
func requestInput(entries []types.EntryRecord, keepRecentDays int) string {
	var totalMB float64
	for _, e := range entries {
		totalMB += e.SizeMB()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "I have %d items in this directory, totaling %.2f MB.\n", len(entries), totalMB)
	if keepRecentDays > 0 {
		fmt.Fprintf(&b, "Treat anything modified within the last %d days as recent.\n", keepRecentDays)
	}
	b.WriteString("\nHere's the list of files and folders:\n\n")
	b.WriteString(renderEntries(entries))
	b.WriteString("\n\nPlease analyze these files and suggest which ones can be safely deleted. Return your response as valid JSON only.")
	return b.String()
}
