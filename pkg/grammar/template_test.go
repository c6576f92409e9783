package grammar

import "testing"

func TestResolvePlaceholderBindingBeatsState(t *testing.T) {
	g := New("t")
	ctx := NewContext(g, seedPtr(0))
	ctx.State.Set("v", "from-state")
	bindings := map[string]Element{"v": Literal("from-binding")}

	got := renderTemplate(ctx, "{v}", bindings)
	if got != "from-binding" {
		t.Fatalf("got %q, want binding to win over state", got)
	}
}

func TestResolvePlaceholderStateBeatsRule(t *testing.T) {
	g := New("t")
	g.Rule("v", Literal("from-rule"))
	ctx := NewContext(g, seedPtr(0))
	ctx.State.Set("v", "from-state")

	got := renderTemplate(ctx, "{v}", nil)
	if got != "from-state" {
		t.Fatalf("got %q, want state to win over grammar rule", got)
	}
}

func TestAliasSharesResolutionSource(t *testing.T) {
	g := New("t")
	ctx := NewContext(g, seedPtr(0))
	bindings := map[string]Element{"shared": Literal("same-value")}

	a := renderTemplate(ctx, "{left:shared}", bindings)
	b := renderTemplate(ctx, "{right:shared}", bindings)
	if a != "same-value" || b != "same-value" {
		t.Fatalf("got %q and %q, want both to resolve via shared alias", a, b)
	}
}

func TestUnterminatedPlaceholderSurvivesVerbatim(t *testing.T) {
	g := New("t")
	ctx := NewContext(g, seedPtr(0))
	got := renderTemplate(ctx, "SELECT * FROM {users", nil)
	if got != "SELECT * FROM {users" {
		t.Fatalf("got %q", got)
	}
}

func TestMultiplePlaceholdersInOnePattern(t *testing.T) {
	g := New("t")
	ctx := NewContext(g, seedPtr(0))
	bindings := map[string]Element{
		"a": Literal("1"),
		"b": Literal("2"),
	}
	got := renderTemplate(ctx, "{a}-{b}-{a}", bindings)
	if got != "1-2-1" {
		t.Fatalf("got %q", got)
	}
}
