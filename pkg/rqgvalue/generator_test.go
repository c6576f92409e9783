package rqgvalue

import (
	"math/rand"
	"strings"
	"testing"
)

func TestGenerateDeterministic(t *testing.T) {
	r1 := rand.New(rand.NewSource(42))
	r2 := rand.New(rand.NewSource(42))
	for _, typ := range []string{"integer", "varchar(50)", "numeric(10,2)", "boolean", "timestamp"} {
		if a, b := Generate(r1, typ), Generate(r2, typ); a != b {
			t.Errorf("Generate(%q) not deterministic: %q vs %q", typ, a, b)
		}
	}
}

func TestGenerateRanges(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		v := Generate(r, "smallint")
		var n int
		if _, err := parseInt(v, &n); err != nil {
			t.Fatalf("smallint literal not numeric: %q", v)
		}
		if n < 1 || n > 100 {
			t.Fatalf("smallint literal out of range: %d", n)
		}
	}
}

func parseInt(s string, out *int) (int, error) {
	n := 0
	neg := false
	for i, c := range s {
		if i == 0 && c == '-' {
			neg = true
			continue
		}
		if c < '0' || c > '9' {
			return 0, &strconvError{s}
		}
		n = n*10 + int(c-'0')
	}
	if neg {
		n = -n
	}
	*out = n
	return n, nil
}

type strconvError struct{ s string }

func (e *strconvError) Error() string { return "not an integer: " + e.s }

func TestGenerateKnownVocabularies(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		v := Generate(r, "varchar(100)")
		found := false
		for _, want := range varcharVocabulary {
			if v == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("varchar literal %q not in closed vocabulary", v)
		}
	}
}

func TestGenerateUnknownTypeIsNull(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	if got := Generate(r, "some_made_up_type"); got != "NULL" {
		t.Fatalf("expected NULL for unknown type, got %q", got)
	}
}

func TestGenerateArraySuffix(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	got := Generate(r, "INT[]")
	if !strings.HasPrefix(got, "ARRAY[") {
		t.Fatalf("expected ARRAY literal, got %q", got)
	}
}

func TestGenerateJSON(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	if got := Generate(r, "json"); got != "'{}'::json" {
		t.Fatalf("unexpected json literal: %q", got)
	}
	if got := Generate(r, "jsonb"); got != "'{}'::jsonb" {
		t.Fatalf("unexpected jsonb literal: %q", got)
	}
}
