package gtlang

import "strings"

// GeneratorKind tags the variant held by a Generator.
type GeneratorKind int

const (
	// KindDictionary generators contribute a fixed list of pairs.
	KindDictionary GeneratorKind = iota
	// KindRule generators expand a template over referenced groups.
	KindRule
)

func (k GeneratorKind) String() string {
	switch k {
	case KindDictionary:
		return "dict"
	case KindRule:
		return "rule"
	}
	return "unknown"
}

// Generator is either a dictionary or a rule, selected by Kind.
// Generators are compared by identity; the Repository memoizes per pointer.
type Generator struct {
	Kind  GeneratorKind
	Meta  Meta
	Items []Pair // KindDictionary
	Rule  Rule   // KindRule
}

// NewDictGenerator returns a dictionary generator over items.
func NewDictGenerator(meta Meta, items []Pair) *Generator {
	return &Generator{Kind: KindDictionary, Meta: meta, Items: items}
}

// NewRuleGenerator returns a rule generator.
func NewRuleGenerator(meta Meta, rule Rule) *Generator {
	return &Generator{Kind: KindRule, Meta: meta, Rule: rule}
}

// results computes the generator's results, resolving referenced groups
// through repo. Empty results are never returned.
func (g *Generator) results(repo *Repository) ([]Result, error) {
	switch g.Kind {
	case KindDictionary:
		r := Result{Meta: g.Meta, Pairs: g.Items}
		if r.Empty() {
			return nil, nil
		}
		return []Result{r}, nil
	case KindRule:
		return g.expand(repo)
	}
	return nil, nil
}

// candidate is one pair a slot can take, with the scope it came from.
type candidate struct {
	pair Pair
	meta Meta
}

// candidates flattens the non-empty results of a group into slot candidates.
func candidates(results []Result) []candidate {
	var out []candidate
	for _, r := range results {
		if r.Empty() {
			continue
		}
		for _, p := range r.Pairs {
			out = append(out, candidate{pair: p, meta: r.Meta})
		}
	}
	return out
}

// expand produces one result per valid combination of the rule's slots.
func (g *Generator) expand(repo *Repository) ([]Result, error) {
	rule := g.Rule
	if len(rule.Subs) == 0 || !g.Meta.Valid() {
		return nil, nil
	}

	slots := make([][]candidate, 0, len(rule.Subs))
	for _, sub := range rule.Subs {
		results, err := repo.GroupResults(sub)
		if err != nil {
			return nil, err
		}
		c := candidates(results)
		if len(c) == 0 {
			return nil, nil
		}
		slots = append(slots, c)
	}
	if len(slots) != len(rule.Subs) {
		return nil, nil
	}

	sizes := make([]int, len(slots))
	for i, s := range slots {
		sizes[i] = len(s)
	}

	placeholder := rule.placeholder()
	var out []Result
	var src, dst strings.Builder
	odometer(sizes, func(cursor []int) {
		meta := g.Meta.Clone()
		src.Reset()
		dst.Reset()
		for i, c := range cursor {
			chosen := slots[i][c]
			meta.Combine(chosen.meta)
			if !meta.Valid() {
				return
			}
			src.WriteString(chosen.pair.Source)
			dst.WriteString(chosen.pair.Target)
		}
		out = append(out, Result{
			Meta: meta,
			Pairs: []Pair{{
				Source: strings.Replace(rule.Source, placeholder, src.String(), 1),
				Target: strings.Replace(rule.Target, placeholder, dst.String(), 1),
			}},
		})
	})
	return out, nil
}

// odometer calls visit once for every index tuple with cursor[i] < sizes[i].
// Slot 0 advances fastest and the last slot slowest. Nothing is visited if
// sizes is empty or any size is zero. visit must not retain cursor.
func odometer(sizes []int, visit func(cursor []int)) {
	if len(sizes) == 0 {
		return
	}
	for _, n := range sizes {
		if n <= 0 {
			return
		}
	}

	cursor := make([]int, len(sizes))
	for {
		visit(cursor)

		slot := 0
		for ; slot < len(cursor); slot++ {
			cursor[slot]++
			if cursor[slot] < sizes[slot] {
				break
			}
			cursor[slot] = 0
		}
		if slot == len(cursor) {
			return
		}
	}
}
