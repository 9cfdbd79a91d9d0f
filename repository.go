package gtlang

import "log/slog"

// Repository resolves group names to the results of their generators.
//
// Results are computed on first request and reused for the rest of the run,
// both per group and per generator. Only completed generators take part.
// A Repository is not safe for concurrent use.
type Repository struct {
	generators []*Generator
	byGroup    map[string][]*Generator

	groupCache  map[string][]Result
	resultCache map[*Generator][]Result
	evaluations map[*Generator]int

	// active groups and generators, for cycle detection; trail holds the
	// group of each generator under evaluation
	trail        []string
	activeGroups map[string]bool
	activeGens   map[*Generator]bool

	logger    *slog.Logger
	ownLogger bool
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithRepositoryLogger sets the logger used for debug output. Without it a
// Repository logs through the Replacer it is handed to.
func WithRepositoryLogger(logger *slog.Logger) RepositoryOption {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
			r.ownLogger = true
		}
	}
}

// NewRepository indexes generators by group. Incomplete generators are
// ignored. The slice order is the evaluation and concatenation order.
func NewRepository(generators []*Generator, opts ...RepositoryOption) *Repository {
	r := &Repository{
		byGroup:      make(map[string][]*Generator),
		groupCache:   make(map[string][]Result),
		resultCache:  make(map[*Generator][]Result),
		evaluations:  make(map[*Generator]int),
		activeGroups: make(map[string]bool),
		activeGens:   make(map[*Generator]bool),
		logger:       discardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, g := range generators {
		if g == nil || !g.Meta.Completed {
			continue
		}
		r.generators = append(r.generators, g)
		r.byGroup[g.Meta.Group] = append(r.byGroup[g.Meta.Group], g)
	}
	return r
}

// GroupResults returns the concatenated results of every completed generator
// in group. The returned slice is shared with the cache and must not be
// modified.
func (r *Repository) GroupResults(group string) ([]Result, error) {
	if cached, ok := r.groupCache[group]; ok {
		return cached, nil
	}
	if r.activeGroups[group] {
		return nil, &CycleError{Path: r.cyclePath(group)}
	}

	r.activeGroups[group] = true
	defer delete(r.activeGroups, group)

	var results []Result
	for _, g := range r.byGroup[group] {
		gr, err := r.GeneratorResults(g)
		if err != nil {
			return nil, err
		}
		results = append(results, gr...)
	}

	r.groupCache[group] = results
	r.logger.Debug("group resolved", "group", group, "results", len(results))
	return results, nil
}

// GeneratorResults returns the memoized results of one generator.
func (r *Repository) GeneratorResults(g *Generator) ([]Result, error) {
	if cached, ok := r.resultCache[g]; ok {
		return cached, nil
	}
	if r.activeGens[g] {
		return nil, &CycleError{Path: r.cyclePath(g.Meta.Group)}
	}

	r.activeGens[g] = true
	r.trail = append(r.trail, g.Meta.Group)
	defer func() {
		delete(r.activeGens, g)
		r.trail = r.trail[:len(r.trail)-1]
	}()

	r.evaluations[g]++
	results, err := g.results(r)
	if err != nil {
		return nil, err
	}

	r.resultCache[g] = results
	return results, nil
}

// Generate returns the results of every completed generator in order.
func (r *Repository) Generate() ([]Result, error) {
	var all []Result
	for _, g := range r.generators {
		results, err := r.GeneratorResults(g)
		if err != nil {
			return nil, err
		}
		all = append(all, results...)
	}
	r.logger.Debug("generation finished", "generators", len(r.generators), "results", len(all))
	return all, nil
}

// Evaluations reports how many times g has been evaluated. With memoization
// this is at most one.
func (r *Repository) Evaluations(g *Generator) int {
	return r.evaluations[g]
}

// Groups returns the number of distinct groups with completed generators.
func (r *Repository) Groups() int {
	return len(r.byGroup)
}

// cyclePath returns the trail from the first generator of group under
// evaluation, closed by group itself.
func (r *Repository) cyclePath(group string) []string {
	start := 0
	for i, g := range r.trail {
		if g == group {
			start = i
			break
		}
	}
	path := append([]string{}, r.trail[start:]...)
	return append(path, group)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
