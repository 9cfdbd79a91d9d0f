// Package cache stores machine suggestions keyed by source-text hash and
// target language, so repeated runs do not ask the provider twice.
package cache

// TranslationCache is the interface for suggestion caching.
type TranslationCache interface {
	// Get retrieves a cached suggestion. Returns empty string and false if not found or expired.
	Get(key string) (string, bool)

	// Set stores a suggestion in the cache.
	Set(key string, value string) error
}

// ExportableCache is a cache whose live keys can be enumerated for export.
type ExportableCache interface {
	TranslationCache
	// Keys returns all live keys in the cache, without any storage prefix.
	Keys() ([]string, error)
}
