package modules

import (
	"sort"
	"sync"

	"qlang/pkg/errors"
)

// Registry collects parse results by path. It is safe for concurrent use.
type Registry struct {
	results map[string]*ParseResult // Map of path -> parse result
	mutex   sync.RWMutex            // Protects concurrent access
}

// NewRegistry creates an empty result registry
func NewRegistry() *Registry {
	return &Registry{
		results: make(map[string]*ParseResult),
	}
}

// Get retrieves the result for path
func (r *Registry) Get(path string) *ParseResult {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.results[path]
}

// Set stores a result, replacing any earlier one for the same path
func (r *Registry) Set(result *ParseResult) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.results[result.Path] = result
}

// Remove removes a path from the registry
func (r *Registry) Remove(path string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.results, path)
}

// Clear drops all results
func (r *Registry) Clear() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.results = make(map[string]*ParseResult)
}

// List returns all stored paths in sorted order
func (r *Registry) List() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	paths := make([]string, 0, len(r.results))
	for p := range r.results {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Results returns all stored results sorted by path
func (r *Registry) Results() []*ParseResult {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make([]*ParseResult, 0, len(r.results))
	for _, res := range r.results {
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Size returns the number of stored results
func (r *Registry) Size() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.results)
}

// ByState returns the results in a specific state, sorted by path
func (r *Registry) ByState(state FileState) []*ParseResult {
	var out []*ParseResult
	for _, res := range r.Results() {
		if res.State() == state {
			out = append(out, res)
		}
	}
	return out
}

// Importers returns the paths of files importing library, sorted
func (r *Registry) Importers(library string) []string {
	var paths []string
	for _, res := range r.Results() {
		for _, imp := range res.Imports {
			if imp == library {
				paths = append(paths, res.Path)
				break
			}
		}
	}
	return paths
}

// Stats summarizes the stored results
func (r *Registry) Stats() CheckStats {
	stats := CheckStats{ByCode: make(map[errors.Code]int)}
	for _, res := range r.Results() {
		stats.Files++
		if res.Failed() {
			stats.Failed++
		}
		stats.Diagnostics += len(res.Diagnostics)
		for code, n := range errors.CountByCode(res.Diagnostics) {
			stats.ByCode[code] += n
		}
	}
	return stats
}
