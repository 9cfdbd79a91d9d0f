package cache

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"
)

// ExportVersion is written to every export document.
const ExportVersion = "1.0"

// ExportFormat represents the JSON structure for cache export/import.
type ExportFormat struct {
	Version    string            `json:"version"`
	ExportedAt string            `json:"exported_at"`
	Entries    []ExportEntry     `json:"entries"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// ExportEntry represents a single cache entry.
type ExportEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Exporter writes the contents of a cache as JSON.
type Exporter struct {
	cache ExportableCache
}

// NewExporter creates a new cache exporter.
func NewExporter(cache ExportableCache) *Exporter {
	return &Exporter{cache: cache}
}

// Export writes the cache contents to w, sorted by key.
func (e *Exporter) Export(w io.Writer, metadata map[string]string) error {
	entries, err := e.entries()
	if err != nil {
		return fmt.Errorf("getting cache entries: %w", err)
	}

	export := ExportFormat{
		Version:    ExportVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Entries:    entries,
		Metadata:   metadata,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(export); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ExportToFile exports the cache to a file.
func (e *Exporter) ExportToFile(path string, metadata map[string]string) error {
	f, err := os.Create(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := e.Export(f, metadata); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// entries reads every live key. Keys that expire between listing and
// reading are skipped.
func (e *Exporter) entries() ([]ExportEntry, error) {
	keys, err := e.cache.Keys()
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)

	entries := make([]ExportEntry, 0, len(keys))
	for _, key := range keys {
		value, ok := e.cache.Get(key)
		if !ok {
			continue
		}
		entries = append(entries, ExportEntry{Key: key, Value: value})
	}
	return entries, nil
}

// Importer loads an export document into a cache.
type Importer struct {
	cache  TranslationCache
	locale string
}

// ImportOption configures an Importer.
type ImportOption func(*Importer)

// WithLocale keeps only the entries cached for locale. Keys end in
// ":<locale>"; other entries are counted as skipped.
func WithLocale(locale string) ImportOption {
	return func(i *Importer) {
		i.locale = locale
	}
}

// NewImporter creates an importer writing into cache.
func NewImporter(cache TranslationCache, opts ...ImportOption) *Importer {
	i := &Importer{cache: cache}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Import reads an export document from r. Documents of another major
// version are rejected. Entries with an empty key or value are counted as
// failed.
func (i *Importer) Import(r io.Reader) (*ImportResult, error) {
	var export ExportFormat
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	if major(export.Version) != major(ExportVersion) {
		return nil, fmt.Errorf("unsupported export version %q", export.Version)
	}

	result := &ImportResult{
		Version:  export.Version,
		Metadata: export.Metadata,
	}
	for _, entry := range export.Entries {
		switch {
		case entry.Key == "" || entry.Value == "":
			result.Failed++
		case i.locale != "" && !strings.HasSuffix(entry.Key, ":"+i.locale):
			result.Skipped++
		case i.cache.Set(entry.Key, entry.Value) != nil:
			result.Failed++
		default:
			result.Imported++
		}
	}
	return result, nil
}

func major(version string) string {
	m, _, _ := strings.Cut(version, ".")
	return m
}

// ImportFromFile imports the export document at path.
func (i *Importer) ImportFromFile(path string) (*ImportResult, error) {
	f, err := os.Open(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return i.Import(f)
}

// ImportResult counts what an import did.
type ImportResult struct {
	Version  string
	Metadata map[string]string
	Imported int
	Skipped  int // other locales
	Failed   int
}
