package grammar

import (
	"sort"
	"sync"
)

// Registry maps names to Grammar handles. It is the layer at which
// cross-grammar reuse happens: the engine itself only ever sees one flat
// rule map per Grammar, never a composite of several.
type Registry struct {
	mu       sync.RWMutex
	grammars map[string]*Grammar
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{grammars: make(map[string]*Grammar)}
}

// Add registers g under name, replacing any previous grammar with that
// name.
func (r *Registry) Add(name string, g *Grammar) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.grammars[name] = g
}

// Remove deregisters name, if present.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.grammars, name)
}

// List returns the registered grammar names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.grammars))
	for n := range r.grammars {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Get looks up name, returning an *UnknownGrammarError (listing what is
// available) when it is not registered.
func (r *Registry) Get(name string) (*Grammar, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.grammars[name]
	if !ok {
		return nil, &UnknownGrammarError{Requested: name, Available: sortedKeys(r.grammars)}
	}
	return g, nil
}

func sortedKeys(m map[string]*Grammar) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
