package gtlang

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultLookupWorkers bounds the goroutines used by ParallelCacheLookup.
const DefaultLookupWorkers = 16

// ParallelCacheLookup looks up every distinct hash in cache concurrently.
// It returns the cached value per hash and the hashes that missed, in
// first-seen order.
func ParallelCacheLookup(cache TranslationCache, hashes []string, targetLang string, workers int) (map[string]string, []string) {
	found := make(map[string]string)
	unique := dedupe(hashes)
	if cache == nil || len(unique) == 0 {
		return found, unique
	}
	if workers <= 0 {
		workers = DefaultLookupWorkers
	}

	hit := make([]bool, len(unique))
	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(workers)
	for i, h := range unique {
		g.Go(func() error {
			val, ok := cache.Get(CacheKey(h, targetLang))
			if !ok {
				return nil
			}
			mu.Lock()
			found[h] = val
			hit[i] = true
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // lookups never fail; misses are reported below

	var misses []string
	for i, h := range unique {
		if !hit[i] {
			misses = append(misses, h)
		}
	}
	return found, misses
}

// sequentialCacheLookup is ParallelCacheLookup on the calling goroutine.
func sequentialCacheLookup(cache TranslationCache, hashes []string, targetLang string) (map[string]string, []string) {
	found := make(map[string]string)
	unique := dedupe(hashes)
	if cache == nil {
		return found, unique
	}

	var misses []string
	for _, h := range unique {
		if val, ok := cache.Get(CacheKey(h, targetLang)); ok {
			found[h] = val
			continue
		}
		misses = append(misses, h)
	}
	return found, misses
}

func dedupe(hashes []string) []string {
	seen := make(map[string]bool, len(hashes))
	out := make([]string, 0, len(hashes))
	for _, h := range hashes {
		if seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	return out
}
