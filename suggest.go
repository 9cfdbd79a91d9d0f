package gtlang

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ZaguanLabs/gtlang/langfile"
)

// AIProvider is the interface for machine translation backends.
type AIProvider interface {
	Translate(ctx context.Context, req TranslateRequest) ([]string, error)
}

// TranslateRequest contains the parameters for a translation request.
type TranslateRequest struct {
	Texts         []string
	TargetLang    string
	SourceLang    string
	ExcludedTerms []string
	Context       string
	TextContexts  []string // lang keys, one per text
	Glossary      map[string]string
}

// TranslationCache is the interface for suggestion caching.
type TranslationCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// DefaultParallelThreshold is the batch size from which cache lookups run
// concurrently.
const DefaultParallelThreshold = 32

// Suggester proposes translations for entries the generators could not
// resolve. Suggestions are advisory: they are written to their own file and
// never feed back into the target, unresolved or fallback files.
type Suggester struct {
	targetLang        string
	sourceLang        string
	provider          AIProvider
	cache             TranslationCache
	excludedTerms     []string
	context           string
	glossary          map[string]string
	parallelThreshold int
	logger            *slog.Logger
}

// SuggesterOption is a functional option for configuring the Suggester.
type SuggesterOption func(*Suggester)

// WithSourceLang sets the source language.
func WithSourceLang(lang string) SuggesterOption {
	return func(s *Suggester) {
		s.sourceLang = lang
	}
}

// WithCache sets the suggestion cache.
func WithCache(cache TranslationCache) SuggesterOption {
	return func(s *Suggester) {
		s.cache = cache
	}
}

// WithExcludedTerms sets terms that should not be translated.
func WithExcludedTerms(terms []string) SuggesterOption {
	return func(s *Suggester) {
		s.excludedTerms = terms
	}
}

// WithContext sets the global translation context.
func WithContext(ctx string) SuggesterOption {
	return func(s *Suggester) {
		s.context = ctx
	}
}

// WithGlossary sets preferred translations for specific phrases, usually
// the generated dictionary entries that occur in the texts.
func WithGlossary(glossary map[string]string) SuggesterOption {
	return func(s *Suggester) {
		s.glossary = glossary
	}
}

// WithParallelThreshold sets the minimum batch size for parallel cache lookups.
func WithParallelThreshold(n int) SuggesterOption {
	return func(s *Suggester) {
		s.parallelThreshold = n
	}
}

// WithSuggestLogger sets the logger used for debug output.
func WithSuggestLogger(logger *slog.Logger) SuggesterOption {
	return func(s *Suggester) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSuggester creates a Suggester for targetLang backed by provider.
func NewSuggester(targetLang string, provider AIProvider, opts ...SuggesterOption) *Suggester {
	s := &Suggester{
		targetLang:        targetLang,
		sourceLang:        DefaultSourceLang,
		provider:          provider,
		parallelThreshold: DefaultParallelThreshold,
		logger:            discardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SuggestResult holds one suggestion per input entry that received one,
// in input order.
type SuggestResult struct {
	Suggestions []langfile.Entry
	CachedCount int // distinct texts served from the cache
	Requested   int // distinct texts sent to the provider
}

// Suggest returns suggestions for entries. Identical source texts are
// requested once. Entries with blank text are skipped. When the target
// language equals the source language nothing is requested.
func (s *Suggester) Suggest(ctx context.Context, entries []langfile.Entry) (*SuggestResult, error) {
	res := &SuggestResult{Suggestions: []langfile.Entry{}}
	if len(entries) == 0 || s.IsSourceLang() {
		return res, nil
	}

	hashes := make([]string, 0, len(entries))
	textByHash := make(map[string]string)
	keyByHash := make(map[string]string)
	for _, e := range entries {
		if strings.TrimSpace(e.Value) == "" {
			continue
		}
		h := HashText(e.Value)
		if _, ok := textByHash[h]; !ok {
			textByHash[h] = e.Value
			keyByHash[h] = e.Key
		}
		hashes = append(hashes, h)
	}

	var found map[string]string
	var misses []string
	if s.cache != nil && len(hashes) >= s.parallelThreshold {
		found, misses = ParallelCacheLookup(s.cache, hashes, s.targetLang, 0)
	} else {
		found, misses = sequentialCacheLookup(s.cache, hashes, s.targetLang)
	}
	res.CachedCount = len(found)

	if len(misses) > 0 && s.provider != nil {
		texts := make([]string, len(misses))
		keys := make([]string, len(misses))
		for i, h := range misses {
			texts[i] = textByHash[h]
			keys[i] = keyByHash[h]
		}

		results, err := s.provider.Translate(ctx, TranslateRequest{
			Texts:         texts,
			TargetLang:    s.targetLang,
			SourceLang:    s.sourceLang,
			ExcludedTerms: s.excludedTerms,
			Context:       s.context,
			TextContexts:  keys,
			Glossary:      s.glossary,
		})
		if err != nil {
			return nil, err
		}
		if len(results) != len(misses) {
			return nil, &CountMismatchError{Expected: len(misses), Got: len(results)}
		}

		for i, h := range misses {
			found[h] = results[i]
			if s.cache != nil {
				if err := s.cache.Set(CacheKey(h, s.targetLang), results[i]); err != nil {
					s.logger.Debug("cache set failed", "key", keys[i], "error", err)
				}
			}
		}
		res.Requested = len(misses)
	}

	for _, e := range entries {
		if strings.TrimSpace(e.Value) == "" {
			continue
		}
		if text, ok := found[HashText(e.Value)]; ok {
			res.Suggestions = append(res.Suggestions, langfile.Entry{Key: e.Key, Value: oneLine(text)})
		}
	}

	s.logger.Debug("suggestions ready",
		"entries", len(entries),
		"cached", res.CachedCount,
		"requested", res.Requested,
	)
	return res, nil
}

// oneLine folds line breaks in a provider answer into spaces; a language
// file holds one entry per line.
func oneLine(text string) string {
	if !strings.ContainsAny(text, "\r\n") {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.TrimRight(text, "\r")
}

// TargetLang returns the target language.
func (s *Suggester) TargetLang() string {
	return s.targetLang
}

// SourceLang returns the source language.
func (s *Suggester) SourceLang() string {
	return s.sourceLang
}

// IsSourceLang reports whether the target and source share a base language,
// in which case there is nothing to suggest.
func (s *Suggester) IsSourceLang() bool {
	return normalizeBaseLang(s.targetLang) == normalizeBaseLang(s.sourceLang)
}

// normalizeBaseLang extracts the base language code (e.g., "en" from "en_US").
func normalizeBaseLang(lang string) string {
	base, _, _ := strings.Cut(NormalizeLocale(lang), "_")
	return strings.ToLower(base)
}
