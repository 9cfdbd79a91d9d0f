package gtlang

import (
	"log/slog"

	"github.com/ZaguanLabs/gtlang/langfile"
)

// Replacer merges generated translations, a fallback source and the
// original source into a target language file.
type Replacer struct {
	repo       *Repository
	extensions Extensions
	prune      bool
	logger     *slog.Logger
}

// ReplacerOption is a functional option for configuring the Replacer.
type ReplacerOption func(*Replacer)

// WithExtensions sets the active extension tags.
func WithExtensions(tags ...string) ReplacerOption {
	return func(r *Replacer) {
		r.extensions = NewExtensions(tags...)
	}
}

// WithPruneFallback drops fallback entries that the generators now produce.
func WithPruneFallback(prune bool) ReplacerOption {
	return func(r *Replacer) {
		r.prune = prune
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) ReplacerOption {
	return func(r *Replacer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewReplacer creates a Replacer that draws generated translations from repo.
func NewReplacer(repo *Repository, opts ...ReplacerOption) *Replacer {
	r := &Replacer{
		repo:       repo,
		extensions: NewExtensions(),
		logger:     discardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if repo != nil && !repo.ownLogger {
		repo.logger = r.logger
	}
	return r
}

// Replace resolves every source entry, in order.
//
// A generated translation wins over the fallback, and the fallback wins over
// the source text. Entries with neither are unresolved and keep their source
// text. A nil fallback means no fallback source was supplied. Nothing is
// written; the caller persists the returned lists.
func (r *Replacer) Replace(source, fallback []langfile.Entry) (*ReplaceResult, error) {
	generated, err := r.repo.Generate()
	if err != nil {
		return nil, err
	}
	glossary := NewGlossary(generated)

	fallbackByKey := make(map[string]string, len(fallback))
	for _, e := range fallback {
		fallbackByKey[e.Key] = e.Value
	}

	res := &ReplaceResult{
		Target:   make([]langfile.Entry, 0, len(source)),
		Outcomes: make([]Outcome, 0, len(source)),
		Glossary: glossary,
	}
	res.Summary.Generated = glossary.Len()
	redundant := make(map[string]bool)

	for _, entry := range source {
		scope := Meta{Namespace: entry.Key, Extensions: r.extensions}

		dictText, dictHit := glossary.Lookup(entry.Value, scope)
		fallbackText, fallbackHit := fallbackByKey[entry.Key]

		var text string
		var status Status
		switch {
		case dictHit && fallbackHit:
			text, status = dictText, StatusConflict
		case dictHit:
			text, status = dictText, StatusReplaced
		case fallbackHit:
			text, status = fallbackText, StatusFallback
		default:
			text, status = entry.Value, StatusFailed
		}

		out := langfile.Entry{Key: entry.Key, Value: text}
		res.Target = append(res.Target, out)
		if !status.Resolved() {
			res.Unresolved = append(res.Unresolved, out)
		}
		if r.prune && status == StatusConflict {
			redundant[entry.Key] = true
		}

		res.Outcomes = append(res.Outcomes, Outcome{
			Key:    entry.Key,
			Source: entry.Value,
			Text:   text,
			Status: status,
		})
		res.Summary.add(status)
	}

	if r.prune && fallback != nil {
		res.Fallback = make([]langfile.Entry, 0, len(fallback))
		for _, e := range fallback {
			if redundant[e.Key] {
				res.Summary.Pruned++
				continue
			}
			res.Fallback = append(res.Fallback, e)
		}
	}

	r.logger.Debug("replace finished",
		"total", res.Summary.Total,
		"replaced", res.Summary.Replaced,
		"conflict", res.Summary.Conflict,
		"fallback", res.Summary.Fallback,
		"failed", res.Summary.Failed,
		"pruned", res.Summary.Pruned,
	)
	return res, nil
}
