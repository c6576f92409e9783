package grammar

import (
	"strings"
	"testing"

	"github.com/queryforge/rqg/pkg/schema"
)

func seedPtr(v int64) *int64 { return &v }

func TestLiteralRoundTrip(t *testing.T) {
	g := New("t")
	g.Rule("q", Literal("SELECT 1"))
	got, err := g.Generate("q", seedPtr(0))
	if err != nil {
		t.Fatal(err)
	}
	if got != "SELECT 1" {
		t.Fatalf("got %q", got)
	}
}

func TestDeterminism(t *testing.T) {
	g := New("t")
	g.Rule("q", Choice([]any{Literal("A"), Literal("B"), Literal("C")}))
	a, err := g.Generate("q", seedPtr(12345))
	if err != nil {
		t.Fatal(err)
	}
	b, err := g.Generate("q", seedPtr(12345))
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("non-deterministic: %q vs %q", a, b)
	}
}

func TestSeedSensitivity(t *testing.T) {
	g := New("t")
	g.Rule("q", Choice([]any{Literal("A"), Literal("B"), Literal("C"), Literal("D")}))
	seen := map[string]bool{}
	for s := int64(0); s < 50; s++ {
		out, err := g.Generate("q", seedPtr(s))
		if err != nil {
			t.Fatal(err)
		}
		seen[out] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected multiple distinct outputs across seeds, got %v", seen)
	}
}

func TestWeightedChoiceDistribution(t *testing.T) {
	g := New("t")
	g.Rule("v", Choice([]any{"A", "B", "C"}, 1, 1, 2))

	counts := map[string]int{}
	const trials = 10000
	for s := int64(0); s < trials; s++ {
		out, err := g.Generate("v", seedPtr(s))
		if err != nil {
			t.Fatal(err)
		}
		counts[out]++
	}

	want := map[string]float64{"A": 0.25, "B": 0.25, "C": 0.5}
	for k, frac := range want {
		got := float64(counts[k]) / trials
		if diff := got - frac; diff < -0.05 || diff > 0.05 {
			t.Errorf("option %q frequency %.3f, want ~%.3f", k, got, frac)
		}
	}
}

func TestTemplateWithBinding(t *testing.T) {
	g := New("t")
	g.Rule("ins", Template("INSERT INTO {t} ({c}) VALUES ({v})", map[string]Element{
		"t": Literal("users"),
		"c": Literal("id"),
		"v": Number(1, 1),
	}))
	got, err := g.Generate("ins", seedPtr(0))
	if err != nil {
		t.Fatal(err)
	}
	want := "INSERT INTO users (id) VALUES (1)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTemplateUnresolvedSurvivesNonStrict(t *testing.T) {
	g := New("t")
	g.Rule("q", Template("SELECT {mystery}", nil))
	got, err := g.Generate("q", seedPtr(0))
	if err != nil {
		t.Fatal(err)
	}
	if got != "SELECT {mystery}" {
		t.Fatalf("got %q", got)
	}
}

func TestTemplateStrictAborts(t *testing.T) {
	g := New("t").WithStrict(true)
	g.Rule("q", Template("SELECT {mystery}", nil))
	_, err := g.Generate("q", seedPtr(0))
	if err == nil {
		t.Fatal("expected error in strict mode")
	}
}

func TestTemplateFallsBackToRule(t *testing.T) {
	g := New("t")
	g.Rule("tablename", Literal("orders"))
	g.Rule("q", Template("SELECT * FROM {tablename}", nil))
	got, err := g.Generate("q", seedPtr(0))
	if err != nil {
		t.Fatal(err)
	}
	if got != "SELECT * FROM orders" {
		t.Fatalf("got %q", got)
	}
}

func TestRepeatBounds(t *testing.T) {
	g := New("t")
	g.Rule("q", Repeat(Literal("x"), 3, 3, ","))
	got, err := g.Generate("q", seedPtr(0))
	if err != nil {
		t.Fatal(err)
	}
	if got != "x,x,x" {
		t.Fatalf("got %q", got)
	}
}

func TestRepeatRangeRespectsBounds(t *testing.T) {
	g := New("t")
	g.Rule("q", Repeat(Literal("x"), 1, 4, ""))
	for s := int64(0); s < 500; s++ {
		out, err := g.Generate("q", seedPtr(s))
		if err != nil {
			t.Fatal(err)
		}
		n := len(out)
		if n < 1 || n > 4 {
			t.Fatalf("repeat produced %d copies (seed %d), want 1..4", n, s)
		}
	}
}

func TestOptionalExtremes(t *testing.T) {
	g := New("t")
	g.Rule("never", Optional(Literal("x"), 0))
	g.Rule("always", Optional(Literal("x"), 1))

	for s := int64(0); s < 200; s++ {
		out, err := g.Generate("never", seedPtr(s))
		if err != nil {
			t.Fatal(err)
		}
		if out != "" {
			t.Fatalf("p=0 optional emitted %q", out)
		}
		out, err = g.Generate("always", seedPtr(s))
		if err != nil {
			t.Fatal(err)
		}
		if out != "x" {
			t.Fatalf("p=1 optional emitted %q", out)
		}
	}
}

func TestOptionalConverges(t *testing.T) {
	g := New("t")
	g.Rule("q", Optional(Literal("x"), 0.3))
	hits := 0
	const trials = 10000
	for s := int64(0); s < trials; s++ {
		out, err := g.Generate("q", seedPtr(s))
		if err != nil {
			t.Fatal(err)
		}
		if out == "x" {
			hits++
		}
	}
	frac := float64(hits) / trials
	if diff := frac - 0.3; diff < -0.05 || diff > 0.05 {
		t.Fatalf("observed frequency %.3f, want ~0.3", frac)
	}
}

func TestRecursionDepthFallback(t *testing.T) {
	g := New("t").WithMaxDepth(8)
	g.Rule("loop", Ref("loop"))
	got, err := g.Generate("loop", seedPtr(0))
	if err != nil {
		t.Fatal(err)
	}
	if got != "SELECT 1" {
		t.Fatalf("expected fallback literal, got %q", got)
	}
}

func TestMissingRuleRefNonStrict(t *testing.T) {
	g := New("t")
	g.Rule("q", Ref("does_not_exist"))
	got, err := g.Generate("q", seedPtr(0))
	if err != nil {
		t.Fatal(err)
	}
	if got != "{does_not_exist}" {
		t.Fatalf("got %q", got)
	}
}

func TestEmptyChoicePanicsAtConstruction(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic constructing empty Choice")
		}
	}()
	Choice(nil)
}

func TestTableAndFieldSugar(t *testing.T) {
	g := New("t")
	g.DefineFields("id", "name", "email")
	g.DefineTables(map[string]*schema.Table{
		"orders": schema.NewTable("orders", nil),
		"users":  schema.NewTable("users", nil),
	})
	g.Rule("f", Field())
	g.Rule("tb", Table())
	for s := int64(0); s < 20; s++ {
		out, err := g.Generate("f", seedPtr(s))
		if err != nil {
			t.Fatal(err)
		}
		if out != "id" && out != "name" && out != "email" {
			t.Fatalf("unexpected field output %q", out)
		}
		out, err = g.Generate("tb", seedPtr(s))
		if err != nil {
			t.Fatal(err)
		}
		if out != "orders" && out != "users" {
			t.Fatalf("unexpected table output %q", out)
		}
	}
}

func TestDigitRange(t *testing.T) {
	g := New("t")
	g.Rule("d", Digit())
	for s := int64(0); s < 100; s++ {
		out, err := g.Generate("d", seedPtr(s))
		if err != nil {
			t.Fatal(err)
		}
		if len(out) != 1 || strings.IndexByte("0123456789", out[0]) < 0 {
			t.Fatalf("digit produced %q", out)
		}
	}
}
