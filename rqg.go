// Package rqg is the public entry point: deterministic, schema-aware SQL
// generation (pkg/grammar), schema DDL synthesis (pkg/ddlgen), catalogue
// introspection (pkg/schemadb), and concurrent workload execution against a
// live PostgreSQL-compatible server (pkg/workload). Every constructor here
// is a thin wrapper over its package's own type; the root package exists so
// callers only need one import line.
package rqg

import (
	"context"
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
	"iter"
	"math/rand/v2"
	"os"

	"go.uber.org/zap"

	"github.com/queryforge/rqg/pkg/ddlgen"
	"github.com/queryforge/rqg/pkg/grammar"
	"github.com/queryforge/rqg/pkg/schemadb"
	"github.com/queryforge/rqg/pkg/workload"
)

// Environment variable names read by the convenience constructors below.
// Nothing inside pkg/grammar, pkg/ddlgen, or pkg/workload reads the
// environment directly.
const (
	EnvDSN    = "PYRQG_DSN"
	EnvSchema = "PYRQG_SCHEMA"
)

// NewGrammar returns an empty, named grammar. Alias for grammar.New.
func NewGrammar(name string) *grammar.Grammar {
	return grammar.New(name)
}

// NewRegistry returns an empty grammar registry. Alias for grammar.NewRegistry.
func NewRegistry() *grammar.Registry {
	return grammar.NewRegistry()
}

// DefaultRule is the rule name Generate evaluates when ruleName is empty.
const DefaultRule = "query"

// Generate looks up grammarName in registry and returns a lazy sequence of
// count generated strings, each from a fresh Context seeded deterministically
// from seed (or a non-deterministic seed, if nil). An unknown grammar name
// surfaces a *grammar.UnknownGrammarError immediately, before any string is
// produced.
func Generate(registry *grammar.Registry, grammarName, ruleName string, count int, seed *int64) (iter.Seq[string], error) {
	g, err := registry.Get(grammarName)
	if err != nil {
		return nil, err
	}
	if ruleName == "" {
		ruleName = DefaultRule
	}

	base := resolveSeed(seed)
	// One rand.Rand, seeded once, derives every per-call sub-seed: repeated
	// runs with the same seed produce the same count-long sequence of
	// sub-seeds, regardless of how many items a caller actually consumes.
	sub := rand.New(rand.NewPCG(uint64(base), 0))

	return func(yield func(string) bool) {
		for i := 0; i < count; i++ {
			callSeed := int64(sub.Uint64())
			s, err := g.Generate(ruleName, &callSeed)
			if err != nil {
				// Unresolved rules in non-strict mode never reach here;
				// strict-mode failures end the sequence early rather than
				// panic through the iterator.
				return
			}
			if !yield(s) {
				return
			}
		}
	}, nil
}

func resolveSeed(seed *int64) int64 {
	if seed != nil {
		return *seed
	}
	var b [8]byte
	_, _ = cryptorand.Read(b[:])
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// NewExecutor returns a workload executor. A nil logger disables structured
// logging. Alias for workload.New.
func NewExecutor(cfg workload.Config, log *zap.Logger) *workload.Executor {
	return workload.New(cfg, log)
}

// NewDDLGenerator returns a DDL generator seeded deterministically. Alias
// for ddlgen.New.
func NewDDLGenerator(opts ddlgen.Options, seed int64) *ddlgen.Generator {
	return ddlgen.New(opts, seed)
}

// NewSchemaProvider returns a catalogue introspector targeting dsn. Alias
// for schemadb.New.
func NewSchemaProvider(dsn string, opts ...schemadb.Option) *schemadb.Provider {
	return schemadb.New(dsn, opts...)
}

// NewSchemaProviderFromEnv builds a Provider from PYRQG_DSN/PYRQG_SCHEMA,
// returning an error if PYRQG_DSN is unset. PYRQG_SCHEMA defaults to
// "public", matching schemadb.New's own default.
func NewSchemaProviderFromEnv(opts ...schemadb.Option) (*schemadb.Provider, error) {
	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		return nil, fmt.Errorf("rqg: %s is not set", EnvDSN)
	}
	if schemaName := os.Getenv(EnvSchema); schemaName != "" {
		opts = append(opts, schemadb.WithSchemaName(schemaName))
	}
	return schemadb.New(dsn, opts...), nil
}

// ExecuteFromEnv runs statements with DSN taken from PYRQG_DSN, for callers
// that want the environment-variable convenience spec.md §6 describes
// rather than building a workload.Config by hand.
func ExecuteFromEnv(ctx context.Context, statements iter.Seq[string], threads int, seed int64, log *zap.Logger) (*workload.ExecutionStats, error) {
	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		return nil, fmt.Errorf("rqg: %s is not set", EnvDSN)
	}
	cfg := workload.Config{DSN: dsn, Threads: threads}
	return workload.New(cfg, log).Run(ctx, statements, seed), nil
}
