// Package grammar implements the generation engine: a tagged-union
// Element AST, the Context it evaluates against, and the Grammar/Registry
// that name and look up rules. Generation is single-threaded and
// synchronous; every top-level Generate call builds a fresh Context that
// is never shared across goroutines.
package grammar

import (
	"sort"
	"sync"

	"github.com/queryforge/rqg/pkg/schema"
)

// Grammar is a named collection of rules plus the table/field catalogues
// element evaluation draws from. Rules may be added at any time before
// Generate is called; rule names are namespaced per Grammar instance, so
// cross-grammar reuse happens at the Registry layer, not inside the
// engine.
type Grammar struct {
	Name string

	mu       sync.RWMutex
	rules    map[string]Element
	tables   map[string]*schema.Table
	fields   []string
	strict   bool
	maxDepth int
}

// New creates an empty, named Grammar.
func New(name string) *Grammar {
	return &Grammar{
		Name:   name,
		rules:  make(map[string]Element),
		tables: make(map[string]*schema.Table),
	}
}

// Rule registers name, wrapping a plain string into a Literal element.
// Returns the grammar so calls can be chained.
func (g *Grammar) Rule(name string, e any) *Grammar {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch v := e.(type) {
	case Element:
		g.rules[name] = v
	case string:
		g.rules[name] = Literal(v)
	default:
		panic(&InvalidConstructionError{Reason: "rule must be an Element or string"})
	}
	return g
}

// DefineTables installs the table catalogue consulted by Table elements
// and schema-aware Lambdas.
func (g *Grammar) DefineTables(tables map[string]*schema.Table) *Grammar {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tables = tables
	return g
}

// DefineFields installs the field-name catalogue consulted by Field
// elements. Fields are a hint catalogue, not tied to any one table.
func (g *Grammar) DefineFields(names ...string) *Grammar {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fields = append([]string(nil), names...)
	return g
}

// WithStrict toggles strict mode: unresolved rule references and template
// placeholders abort generation instead of surviving as visible
// placeholders.
func (g *Grammar) WithStrict(strict bool) *Grammar {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.strict = strict
	return g
}

// WithMaxDepth overrides the RuleRef recursion ceiling (default
// DefaultMaxDepth).
func (g *Grammar) WithMaxDepth(depth int) *Grammar {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.maxDepth = depth
	return g
}

// RuleNames returns the registered rule names, sorted for stable output.
func (g *Grammar) RuleNames() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	names := make([]string, 0, len(g.rules))
	for n := range g.rules {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Generate looks up ruleName and evaluates it against a fresh Context
// seeded with seed (or a non-deterministic seed, if nil). Every call builds
// its own Context via NewContext; no Context is shared between calls.
func (g *Grammar) Generate(ruleName string, seed *int64) (s string, err error) {
	g.mu.RLock()
	rule, ok := g.rules[ruleName]
	g.mu.RUnlock()
	if !ok {
		return "", &UnresolvedRuleError{Name: ruleName}
	}

	ctx := NewContext(g, seed)

	defer func() {
		if r := recover(); r != nil {
			if ue, ok := r.(*UnresolvedRuleError); ok {
				err = ue
				return
			}
			panic(r)
		}
	}()

	return rule.Generate(ctx), nil
}
