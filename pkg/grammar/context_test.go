package grammar

import (
	"testing"

	"github.com/queryforge/rqg/pkg/schema"
)

func TestNewContextWithExplicitSeed(t *testing.T) {
	g := New("t")
	s := int64(42)
	ctx := NewContext(g, &s)
	if ctx.Seed != 42 {
		t.Fatalf("got seed %d, want 42", ctx.Seed)
	}
}

func TestNewContextDrawsRandomSeedWhenNil(t *testing.T) {
	g := New("t")
	a := NewContext(g, nil)
	b := NewContext(g, nil)
	if a.Seed == b.Seed {
		t.Fatalf("two nil-seeded contexts produced the same seed %d; crypto/rand source may be broken", a.Seed)
	}
}

func TestNewContextPullsGrammarCatalogues(t *testing.T) {
	g := New("t").DefineFields("a", "b")
	g.WithStrict(true).WithMaxDepth(10)
	ctx := NewContext(g, nil)
	if !ctx.Strict {
		t.Fatal("expected Strict to propagate from grammar")
	}
	if ctx.MaxDepth != 10 {
		t.Fatalf("got MaxDepth %d, want 10", ctx.MaxDepth)
	}
	if len(ctx.Fields) != 2 {
		t.Fatalf("got fields %v", ctx.Fields)
	}
}

func TestNewContextNilGrammarUsesDefaults(t *testing.T) {
	ctx := NewContext(nil, nil)
	if ctx.MaxDepth != DefaultMaxDepth {
		t.Fatalf("got MaxDepth %d, want default %d", ctx.MaxDepth, DefaultMaxDepth)
	}
	if ctx.Tables == nil {
		t.Fatal("expected non-nil empty table map")
	}
}

func TestStateBagTypedAccessorsMissKeyReturnsZeroValue(t *testing.T) {
	b := newStateBag()
	if got := b.GetString("missing"); got != "" {
		t.Fatalf("got %q", got)
	}
	if got := b.GetInt("missing"); got != 0 {
		t.Fatalf("got %d", got)
	}
	if got := b.GetStringList("missing"); got != nil {
		t.Fatalf("got %v", got)
	}
	if got := b.GetMap("missing"); got != nil {
		t.Fatalf("got %v", got)
	}
}

func TestStateBagRoundTrip(t *testing.T) {
	b := newStateBag()
	b.Set("s", "hello")
	b.Set("n", 7)
	b.Set("l", []string{"x", "y"})
	b.Set("m", map[string]any{"k": "v"})

	if got := b.GetString("s"); got != "hello" {
		t.Fatalf("got %q", got)
	}
	if got := b.GetInt("n"); got != 7 {
		t.Fatalf("got %d", got)
	}
	if got := b.GetStringList("l"); len(got) != 2 || got[0] != "x" {
		t.Fatalf("got %v", got)
	}
	if got := b.GetMap("m"); got["k"] != "v" {
		t.Fatalf("got %v", got)
	}
}

func TestTableNamesSortedDeterministically(t *testing.T) {
	tables := map[string]*schema.Table{
		"zebra":  schema.NewTable("zebra", nil),
		"apple":  schema.NewTable("apple", nil),
		"mango":  schema.NewTable("mango", nil),
	}
	g := New("t").DefineTables(tables)
	ctx := NewContext(g, nil)

	first := ctx.tableNames()
	for i := 0; i < 10; i++ {
		got := ctx.tableNames()
		if len(got) != len(first) {
			t.Fatalf("unstable table name count")
		}
		for j := range got {
			if got[j] != first[j] {
				t.Fatalf("tableNames order changed across calls: %v vs %v", first, got)
			}
		}
	}
	want := []string{"apple", "mango", "zebra"}
	for i, w := range want {
		if first[i] != w {
			t.Fatalf("got order %v, want %v", first, want)
		}
	}
}
