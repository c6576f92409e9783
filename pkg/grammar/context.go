package grammar

import (
	"crypto/rand"
	"encoding/binary"
	rnd "math/rand"

	"github.com/queryforge/rqg/pkg/schema"
)

// StateBag is the per-generate-call mutable state carried on Context. It
// models the specification's "typed bag": a handful of typed accessors for
// the common shapes (string, int, string list, map) plus a raw escape
// hatch (Get/Set) for anything a Lambda element wants to stash.
//
// A StateBag belongs to exactly one Context and is therefore never touched
// from more than one goroutine.
type StateBag struct {
	data map[string]any
}

func newStateBag() *StateBag {
	return &StateBag{data: make(map[string]any)}
}

// Get returns the raw value stored under key.
func (b *StateBag) Get(key string) (any, bool) {
	v, ok := b.data[key]
	return v, ok
}

// Set stores value under key, overwriting any previous value.
func (b *StateBag) Set(key string, value any) {
	b.data[key] = value
}

// GetString returns the value under key as a string, or "" if absent or
// of a different type.
func (b *StateBag) GetString(key string) string {
	if v, ok := b.data[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetInt returns the value under key as an int, or 0 if absent or of a
// different type.
func (b *StateBag) GetInt(key string) int {
	if v, ok := b.data[key]; ok {
		if n, ok := v.(int); ok {
			return n
		}
	}
	return 0
}

// GetStringList returns the value under key as a []string, or nil.
func (b *StateBag) GetStringList(key string) []string {
	if v, ok := b.data[key]; ok {
		if s, ok := v.([]string); ok {
			return s
		}
	}
	return nil
}

// GetMap returns the value under key as a map[string]any, or nil.
func (b *StateBag) GetMap(key string) map[string]any {
	if v, ok := b.data[key]; ok {
		if m, ok := v.(map[string]any); ok {
			return m
		}
	}
	return nil
}

// DefaultMaxDepth bounds RuleRef recursion when a grammar does not
// override it.
const DefaultMaxDepth = 64

// Context is the per-generate-call mutable state threaded through element
// evaluation: a seeded RNG, the table/field catalogue, and the state bag.
// A Context is constructed fresh for every top-level Generate call and is
// never shared across goroutines.
type Context struct {
	RNG      *rnd.Rand
	Tables   map[string]*schema.Table
	Fields   []string
	State    *StateBag
	Seed     int64
	Strict   bool
	MaxDepth int

	grammar *Grammar
}

// NewContext builds a Context. If seed is nil, a seed is drawn from a
// non-deterministic source once and recorded on the returned Context so
// callers can still observe (and log) what was used.
func NewContext(g *Grammar, seed *int64) *Context {
	var s int64
	if seed != nil {
		s = *seed
	} else {
		s = randomSeed()
	}

	ctx := &Context{
		RNG:      rnd.New(rnd.NewSource(s)),
		State:    newStateBag(),
		Seed:     s,
		MaxDepth: DefaultMaxDepth,
		grammar:  g,
	}
	if g != nil {
		ctx.Tables = g.tables
		ctx.Fields = g.fields
		ctx.Strict = g.strict
		if g.maxDepth > 0 {
			ctx.MaxDepth = g.maxDepth
		}
	} else {
		ctx.Tables = map[string]*schema.Table{}
	}
	return ctx
}

func randomSeed() int64 {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// tableNames returns the table names in lexicographic order. Go map
// iteration order is randomized, which would make Table() elements
// non-deterministic even under a fixed seed; we sort to keep evaluation
// reproducible while leaving selection itself up to the RNG draw.
func (c *Context) tableNames() []string {
	names := make([]string, 0, len(c.Tables))
	for n := range c.Tables {
		names = append(names, n)
	}
	sortStrings(names)
	return names
}

func sortStrings(s []string) {
	// insertion sort is fine: table catalogues are small, and avoiding an
	// extra import keeps this file focused on Context concerns.
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
