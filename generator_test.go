package gtlang

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOdometer_ProductAndOrder(t *testing.T) {
	tests := []struct {
		sizes []int
		want  int
	}{
		{[]int{1}, 1},
		{[]int{3}, 3},
		{[]int{2, 3}, 6},
		{[]int{3, 1, 2}, 6},
		{[]int{2, 2, 2, 2}, 16},
		{[]int{5, 4, 3}, 60},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.sizes), func(t *testing.T) {
			seen := make(map[string]bool)
			var order [][]int
			odometer(tt.sizes, func(cursor []int) {
				for i, c := range cursor {
					if c < 0 || c >= tt.sizes[i] {
						t.Fatalf("cursor %v out of range for sizes %v", cursor, tt.sizes)
					}
				}
				key := fmt.Sprint(cursor)
				if seen[key] {
					t.Errorf("combination %v visited twice", cursor)
				}
				seen[key] = true
				order = append(order, append([]int(nil), cursor...))
			})

			if len(order) != tt.want {
				t.Fatalf("visited %d combinations, want %d", len(order), tt.want)
			}

			// Mixed radix with slot 0 least significant.
			for n, cursor := range order {
				rest := n
				for i, size := range tt.sizes {
					if cursor[i] != rest%size {
						t.Fatalf("combination #%d = %v, slot %d should be %d", n, cursor, i, rest%size)
					}
					rest /= size
				}
			}
		})
	}
}

func TestOdometer_EmptyInputs(t *testing.T) {
	for _, sizes := range [][]int{nil, {}, {0}, {2, 0, 3}, {3, 2, 0}} {
		calls := 0
		odometer(sizes, func([]int) { calls++ })
		if calls != 0 {
			t.Errorf("odometer(%v) visited %d combinations, want 0", sizes, calls)
		}
	}
}

func completedMeta(group, namespace string, ext ...string) Meta {
	return Meta{Group: group, Namespace: namespace, Completed: true, Extensions: NewExtensions(ext...)}
}

func allPairs(results []Result) []Pair {
	var out []Pair
	for _, r := range results {
		out = append(out, r.Pairs...)
	}
	return out
}

func TestRuleExpansion_SingleSlot(t *testing.T) {
	materials := NewDictGenerator(completedMeta("material", ""), []Pair{
		{"Copper", "铜"},
		{"Tin", "锡"},
	})
	ingots := NewRuleGenerator(completedMeta("ingot", ""), Rule{
		Source: "{} Ingot",
		Target: "{}锭",
		Subs:   []string{"material"},
	})

	repo := NewRepository([]*Generator{materials, ingots})
	results, err := repo.GeneratorResults(ingots)
	if err != nil {
		t.Fatalf("GeneratorResults failed: %v", err)
	}

	want := []Pair{{"Copper Ingot", "铜锭"}, {"Tin Ingot", "锡锭"}}
	if diff := cmp.Diff(want, allPairs(results)); diff != "" {
		t.Errorf("expansion mismatch (-want +got):\n%s", diff)
	}
}

func TestRuleExpansion_MultiSlotOrder(t *testing.T) {
	adj := NewDictGenerator(completedMeta("adj", ""), []Pair{{"Hot ", "热"}, {"Cold ", "冷"}})
	noun := NewDictGenerator(completedMeta("noun", ""), []Pair{{"Iron", "铁"}, {"Gold", "金"}, {"Lead", "铅"}})
	rule := NewRuleGenerator(completedMeta("item", ""), Rule{
		Source: "{} Plate",
		Target: "{}板",
		Subs:   []string{"adj", "noun"},
	})

	repo := NewRepository([]*Generator{adj, noun, rule})
	results, err := repo.GeneratorResults(rule)
	if err != nil {
		t.Fatalf("GeneratorResults failed: %v", err)
	}

	// Slot 0 varies fastest; pieces are concatenated in slot order.
	want := []Pair{
		{"Hot Iron Plate", "热铁板"},
		{"Cold Iron Plate", "冷铁板"},
		{"Hot Gold Plate", "热金板"},
		{"Cold Gold Plate", "冷金板"},
		{"Hot Lead Plate", "热铅板"},
		{"Cold Lead Plate", "冷铅板"},
	}
	if diff := cmp.Diff(want, allPairs(results)); diff != "" {
		t.Errorf("expansion mismatch (-want +got):\n%s", diff)
	}
	for _, r := range results {
		if r.Meta.Group != "item" {
			t.Errorf("result group = %q, want item", r.Meta.Group)
		}
	}
}

func TestRuleExpansion_EmptySlot(t *testing.T) {
	full := NewDictGenerator(completedMeta("full", ""), []Pair{{"A", "甲"}, {"B", "乙"}})
	empty := NewDictGenerator(completedMeta("empty", ""), nil)
	rule := NewRuleGenerator(completedMeta("out", ""), Rule{
		Source: "{}",
		Target: "{}",
		Subs:   []string{"full", "empty", "full"},
	})
	missing := NewRuleGenerator(completedMeta("out", ""), Rule{
		Source: "{}",
		Target: "{}",
		Subs:   []string{"full", "nobody"},
	})

	repo := NewRepository([]*Generator{full, empty, rule, missing})
	for _, g := range []*Generator{rule, missing} {
		results, err := repo.GeneratorResults(g)
		if err != nil {
			t.Fatalf("GeneratorResults failed: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected no results for rule %v, got %d", g.Rule.Subs, len(results))
		}
	}
}

func TestRuleExpansion_NoSubs(t *testing.T) {
	rule := NewRuleGenerator(completedMeta("out", ""), Rule{Source: "{}", Target: "{}"})
	repo := NewRepository([]*Generator{rule})

	results, err := repo.GeneratorResults(rule)
	if err != nil {
		t.Fatalf("GeneratorResults failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("rule without sub-groups should produce nothing, got %d", len(results))
	}
}

func TestRuleExpansion_NamespaceFiltering(t *testing.T) {
	items := NewDictGenerator(completedMeta("mat", "item"), []Pair{{"Copper", "铜"}})
	blocks := NewDictGenerator(completedMeta("mat", "block"), []Pair{{"Stone", "石"}})
	rule := NewRuleGenerator(completedMeta("dust", "item.dust"), Rule{
		Source: "{} Dust",
		Target: "{}粉",
		Subs:   []string{"mat"},
	})

	repo := NewRepository([]*Generator{items, blocks, rule})
	results, err := repo.GeneratorResults(rule)
	if err != nil {
		t.Fatalf("GeneratorResults failed: %v", err)
	}

	want := []Pair{{"Copper Dust", "铜粉"}}
	if diff := cmp.Diff(want, allPairs(results)); diff != "" {
		t.Errorf("expansion mismatch (-want +got):\n%s", diff)
	}
	if results[0].Meta.Namespace != "item.dust" {
		t.Errorf("namespace = %q, want item.dust", results[0].Meta.Namespace)
	}
}

func TestRuleExpansion_MoreSpecificNamespaceWins(t *testing.T) {
	mats := NewDictGenerator(completedMeta("mat", "gt.metaitem.01"), []Pair{{"Iron", "铁"}})
	rule := NewRuleGenerator(completedMeta("dust", "gt"), Rule{Source: "{} Dust", Target: "{}粉", Subs: []string{"mat"}})

	repo := NewRepository([]*Generator{mats, rule})
	results, err := repo.GeneratorResults(rule)
	if err != nil {
		t.Fatalf("GeneratorResults failed: %v", err)
	}
	if len(results) != 1 || results[0].Meta.Namespace != "gt.metaitem.01" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestRuleExpansion_ExtensionsUnion(t *testing.T) {
	mats := NewDictGenerator(completedMeta("mat", "", "ic2"), []Pair{{"Uranium", "铀"}})
	rule := NewRuleGenerator(completedMeta("rod", "", "gt6"), Rule{Source: "{} Rod", Target: "{}棒", Subs: []string{"mat"}})

	repo := NewRepository([]*Generator{mats, rule})
	results, err := repo.GeneratorResults(rule)
	if err != nil {
		t.Fatalf("GeneratorResults failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if diff := cmp.Diff([]string{"gt6", "ic2"}, results[0].Meta.Extensions.Sorted()); diff != "" {
		t.Errorf("extensions mismatch (-want +got):\n%s", diff)
	}
	if rule.Meta.Extensions.Has("ic2") {
		t.Error("expansion must not modify the rule's own metadata")
	}
}

func TestRuleExpansion_InvalidRuleMeta(t *testing.T) {
	mats := NewDictGenerator(completedMeta("mat", ""), []Pair{{"Iron", "铁"}})
	rule := NewRuleGenerator(Meta{Completed: true}, Rule{Source: "{}", Target: "{}", Subs: []string{"mat"}})

	repo := NewRepository([]*Generator{mats})
	results, err := rule.results(repo)
	if err != nil {
		t.Fatalf("results failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("rule with invalid metadata should produce nothing, got %d", len(results))
	}
}

func TestRuleExpansion_NestedRules(t *testing.T) {
	mats := NewDictGenerator(completedMeta("mat", ""), []Pair{{"Iron", "铁"}, {"Gold", "金"}})
	plates := NewRuleGenerator(completedMeta("plate", ""), Rule{Source: "{} Plate", Target: "{}板", Subs: []string{"mat"}})
	dense := NewRuleGenerator(completedMeta("dense", ""), Rule{Source: "Dense {}", Target: "致密{}", Subs: []string{"plate"}})

	repo := NewRepository([]*Generator{mats, plates, dense})
	results, err := repo.GeneratorResults(dense)
	if err != nil {
		t.Fatalf("GeneratorResults failed: %v", err)
	}

	want := []Pair{{"Dense Iron Plate", "致密铁板"}, {"Dense Gold Plate", "致密金板"}}
	if diff := cmp.Diff(want, allPairs(results)); diff != "" {
		t.Errorf("expansion mismatch (-want +got):\n%s", diff)
	}
}

func TestRuleExpansion_CombinationCount(t *testing.T) {
	sizes := []int{3, 1, 4}
	var gens []*Generator
	var subs []string
	for i, n := range sizes {
		group := fmt.Sprintf("g%d", i)
		var items []Pair
		for j := 0; j < n; j++ {
			items = append(items, Pair{fmt.Sprintf("%s-%d ", group, j), fmt.Sprintf("%d", j)})
		}
		gens = append(gens, NewDictGenerator(completedMeta(group, ""), items))
		subs = append(subs, group)
	}
	rule := NewRuleGenerator(completedMeta("out", ""), Rule{Source: "{}", Target: "{}", Subs: subs})
	gens = append(gens, rule)

	results, err := NewRepository(gens).GeneratorResults(rule)
	if err != nil {
		t.Fatalf("GeneratorResults failed: %v", err)
	}
	if len(results) != 12 {
		t.Fatalf("expected 3*1*4 = 12 results, got %d", len(results))
	}

	seen := make(map[Pair]bool)
	for _, p := range allPairs(results) {
		if seen[p] {
			t.Errorf("duplicate combination %v", p)
		}
		seen[p] = true
	}
}

func TestDictGenerator_Empty(t *testing.T) {
	repo := NewRepository(nil)

	g := NewDictGenerator(completedMeta("mat", ""), nil)
	if results, _ := g.results(repo); len(results) != 0 {
		t.Errorf("empty dictionary should produce no results, got %d", len(results))
	}

	g = NewDictGenerator(Meta{Completed: true}, []Pair{{"a", "b"}})
	if results, _ := g.results(repo); len(results) != 0 {
		t.Errorf("dictionary without group should produce no results, got %d", len(results))
	}
}
