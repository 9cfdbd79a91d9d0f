package gtlang

import "github.com/ZaguanLabs/gtlang/langfile"

// DefaultPlaceholder is the token a rule template uses for its expansion.
const DefaultPlaceholder = "{}"

// Pair is one source→target substitution.
type Pair struct {
	Source string
	Target string
}

// Rule is a template pair whose placeholder is filled from sub-groups.
// Subs[i] names the group supplying candidates for slot i.
type Rule struct {
	Source      string
	Target      string
	Subs        []string
	Placeholder string // DefaultPlaceholder when empty
}

func (r Rule) placeholder() string {
	if r.Placeholder == "" {
		return DefaultPlaceholder
	}
	return r.Placeholder
}

// Result is a list of pairs scoped by one metadata value.
type Result struct {
	Meta  Meta
	Pairs []Pair
}

// Empty reports whether the result can take part in further combination.
func (r Result) Empty() bool {
	return !r.Meta.Valid() || len(r.Pairs) == 0
}

// Status classifies how a language entry was resolved.
type Status int

const (
	// StatusReplaced means only the generated dictionary matched.
	StatusReplaced Status = iota
	// StatusConflict means both the dictionary and the fallback matched; the dictionary won.
	StatusConflict
	// StatusFallback means only the fallback matched.
	StatusFallback
	// StatusFailed means nothing matched and the source text was kept.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusReplaced:
		return "replaced"
	case StatusConflict:
		return "conflict"
	case StatusFallback:
		return "fallback"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Resolved reports whether the entry received a translation.
func (s Status) Resolved() bool {
	return s != StatusFailed
}

// Outcome records the resolution of one primary entry.
type Outcome struct {
	Key    string
	Source string // original text
	Text   string // text written to the target file
	Status Status
}

// Summary counts outcomes by status.
type Summary struct {
	Total     int
	Replaced  int
	Conflict  int
	Fallback  int
	Failed    int
	Pruned    int // fallback entries dropped as redundant
	Generated int // pairs in the generated dictionary
}

// Resolved returns the number of entries that received a translation.
func (s Summary) Resolved() int {
	return s.Total - s.Failed
}

func (s *Summary) add(status Status) {
	s.Total++
	switch status {
	case StatusReplaced:
		s.Replaced++
	case StatusConflict:
		s.Conflict++
	case StatusFallback:
		s.Fallback++
	case StatusFailed:
		s.Failed++
	}
}

// ReplaceResult is everything the merge step produced, held in memory
// until it is written.
type ReplaceResult struct {
	Target     []langfile.Entry
	Unresolved []langfile.Entry
	// Fallback is the rewritten fallback source. It is nil unless pruning
	// was requested and a fallback source was supplied.
	Fallback []langfile.Entry
	Outcomes []Outcome
	Summary  Summary
	// Glossary is the generated dictionary the entries were resolved against.
	Glossary *Glossary
}
