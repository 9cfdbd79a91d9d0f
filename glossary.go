package gtlang

import "strings"

// glossaryEntry is one generated translation with the scope it applies to.
type glossaryEntry struct {
	meta   Meta
	target string
}

// Glossary indexes generated pairs by source text for scoped lookup.
type Glossary struct {
	bySource map[string][]glossaryEntry
	sources  []string // first-seen order
	size     int
}

// NewGlossary indexes the pairs of every non-empty result, in order.
func NewGlossary(results []Result) *Glossary {
	g := &Glossary{bySource: make(map[string][]glossaryEntry)}
	for _, r := range results {
		if r.Empty() {
			continue
		}
		for _, p := range r.Pairs {
			if _, seen := g.bySource[p.Source]; !seen {
				g.sources = append(g.sources, p.Source)
			}
			g.bySource[p.Source] = append(g.bySource[p.Source], glossaryEntry{meta: r.Meta, target: p.Target})
			g.size++
		}
	}
	return g
}

// Lookup returns the generated target for source text applicable to scope.
// When several generated pairs apply, the one generated last wins.
func (g *Glossary) Lookup(source string, scope Meta) (string, bool) {
	entries := g.bySource[source]
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].meta.Matches(scope) {
			return entries[i].target, true
		}
	}
	return "", false
}

// Len returns the number of indexed pairs.
func (g *Glossary) Len() int {
	return g.size
}

// Hints returns up to limit generated translations whose source text occurs
// in any of texts. Sources shorter than three bytes are skipped. The target
// chosen for each source is the last one generated.
func (g *Glossary) Hints(texts []string, limit int) map[string]string {
	hints := make(map[string]string)
	if limit <= 0 {
		return hints
	}
	for _, source := range g.sources {
		if len(source) < 3 {
			continue
		}
		for _, text := range texts {
			if !strings.Contains(text, source) {
				continue
			}
			entries := g.bySource[source]
			hints[source] = entries[len(entries)-1].target
			break
		}
		if len(hints) >= limit {
			break
		}
	}
	return hints
}
