package gtlang

import "github.com/ZaguanLabs/gtlang/langfile"

// DiffResult is the difference between two versions of a language file,
// matched by key. Each list follows the order of the file it came from.
type DiffResult struct {
	// Added contains entries whose key is only in the new version.
	Added []langfile.Entry

	// Removed contains entries whose key is only in the old version.
	Removed []langfile.Entry

	// Unchanged contains entries with the same key and value in both.
	Unchanged []langfile.Entry

	// Modified contains entries whose value changed.
	Modified []ModifiedEntry
}

// ModifiedEntry is one key whose value changed.
type ModifiedEntry struct {
	Key string
	Old string
	New string
}

// Stats returns summary statistics for the diff.
func (d *DiffResult) Stats() DiffStats {
	return DiffStats{
		Added:     len(d.Added),
		Removed:   len(d.Removed),
		Unchanged: len(d.Unchanged),
		Modified:  len(d.Modified),
	}
}

// DiffStats contains summary statistics for a diff.
type DiffStats struct {
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Unchanged int `json:"unchanged"`
	Modified  int `json:"modified"`
}

// HasChanges returns true if there are any differences.
func (d *DiffResult) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Modified) > 0
}

// DiffLang compares two versions of a language file by key. When a key
// repeats, its last value counts, as it would when the game loads the file.
func DiffLang(oldEntries, newEntries []langfile.Entry) *DiffResult {
	result := &DiffResult{}
	oldByKey := langfile.ToMap(oldEntries)
	newByKey := langfile.ToMap(newEntries)

	seen := make(map[string]bool, len(newByKey))
	for _, e := range newEntries {
		if seen[e.Key] {
			continue
		}
		seen[e.Key] = true

		value := newByKey[e.Key]
		old, existed := oldByKey[e.Key]
		switch {
		case !existed:
			result.Added = append(result.Added, langfile.Entry{Key: e.Key, Value: value})
		case old != value:
			result.Modified = append(result.Modified, ModifiedEntry{Key: e.Key, Old: old, New: value})
		default:
			result.Unchanged = append(result.Unchanged, langfile.Entry{Key: e.Key, Value: value})
		}
	}

	removed := make(map[string]bool)
	for _, e := range oldEntries {
		if _, ok := newByKey[e.Key]; ok || removed[e.Key] {
			continue
		}
		removed[e.Key] = true
		result.Removed = append(result.Removed, langfile.Entry{Key: e.Key, Value: oldByKey[e.Key]})
	}

	return result
}
