package rqg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/queryforge/rqg/pkg/grammar"
)

func TestGenerateUnknownGrammarReturnsError(t *testing.T) {
	reg := NewRegistry()
	_, err := Generate(reg, "missing", "", 1, nil)
	require.Error(t, err)
	require.IsType(t, &grammar.UnknownGrammarError{}, err)
}

func TestGenerateProducesRequestedCount(t *testing.T) {
	g := NewGrammar("simple")
	g.Rule(DefaultRule, grammar.Literal("SELECT 1"))
	reg := NewRegistry()
	reg.Add("simple", g)

	seed := int64(7)
	seq, err := Generate(reg, "simple", "", 5, &seed)
	require.NoError(t, err)

	var got []string
	for s := range seq {
		got = append(got, s)
	}
	require.Len(t, got, 5)
	for _, s := range got {
		require.Equal(t, "SELECT 1", s)
	}
}

func TestGenerateIsDeterministicForSameSeed(t *testing.T) {
	build := func() *grammar.Registry {
		g := NewGrammar("dice")
		g.Rule(DefaultRule, grammar.Choice([]any{"a", "b", "c", "d", "e"}))
		reg := NewRegistry()
		reg.Add("dice", g)
		return reg
	}

	seed := int64(99)
	seqA, err := Generate(build(), "dice", "", 20, &seed)
	require.NoError(t, err)
	seqB, err := Generate(build(), "dice", "", 20, &seed)
	require.NoError(t, err)

	var a, b []string
	for s := range seqA {
		a = append(a, s)
	}
	for s := range seqB {
		b = append(b, s)
	}
	require.Equal(t, a, b)
}

func TestGenerateStopsEarlyWhenConsumerBreaks(t *testing.T) {
	g := NewGrammar("simple")
	g.Rule(DefaultRule, grammar.Literal("x"))
	reg := NewRegistry()
	reg.Add("simple", g)

	seed := int64(1)
	seq, err := Generate(reg, "simple", "", 1000, &seed)
	require.NoError(t, err)

	n := 0
	for range seq {
		n++
		if n == 3 {
			break
		}
	}
	require.Equal(t, 3, n)
}

func TestNewSchemaProviderFromEnvRequiresDSN(t *testing.T) {
	t.Setenv(EnvDSN, "")
	_, err := NewSchemaProviderFromEnv()
	require.Error(t, err)
}

func TestNewSchemaProviderFromEnvUsesSchemaDefault(t *testing.T) {
	t.Setenv(EnvDSN, "postgres://localhost/db")
	t.Setenv(EnvSchema, "")
	p, err := NewSchemaProviderFromEnv()
	require.NoError(t, err)
	require.NotNil(t, p)
}
