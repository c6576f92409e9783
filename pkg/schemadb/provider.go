// Package schemadb introspects a live PostgreSQL (or YugabyteDB) catalogue
// into the pkg/schema value model. It is a read-only collaborator: nothing
// here ever mutates the target database.
package schemadb

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/queryforge/rqg/pkg/schema"
)

// Provider introspects a single PostgreSQL-compatible database, identified
// by a connection string, limited to one schema ("public" unless
// WithSchemaName says otherwise). Provider does not read the environment.
type Provider struct {
	dsn    string
	schema string
	log    *zap.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithSchemaName overrides the introspected schema (default "public").
func WithSchemaName(name string) Option {
	return func(p *Provider) { p.schema = name }
}

// WithLogger attaches a logger used to record introspection failures. A nil
// logger (the default) means introspect errors are swallowed silently, per
// the specification's "never raises" contract.
func WithLogger(log *zap.Logger) Option {
	return func(p *Provider) { p.log = log }
}

// New returns a Provider targeting dsn.
func New(dsn string, opts ...Option) *Provider {
	p := &Provider{dsn: dsn, schema: "public"}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Introspect connects to the configured database and returns its tables as
// a name-keyed mapping. On ANY failure — connection refused, query error,
// malformed rows — it logs (if a logger was configured) and returns an
// empty, non-nil mapping. It never returns an error.
func (p *Provider) Introspect(ctx context.Context) map[string]*schema.Table {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, p.dsn)
	if err != nil {
		p.warn("connect failed", err)
		return map[string]*schema.Table{}
	}
	defer conn.Close(ctx)

	tables, err := p.introspectColumns(ctx, conn)
	if err != nil {
		p.warn("column introspection failed", err)
		return map[string]*schema.Table{}
	}

	if err := p.attachConstraints(ctx, conn, tables); err != nil {
		p.warn("constraint introspection failed; returning column-only tables", err)
	}

	out := make(map[string]*schema.Table, len(tables))
	for name, cols := range tables {
		out[name] = schema.NewTable(name, cols)
	}
	return out
}

func (p *Provider) warn(msg string, err error) {
	if p.log == nil {
		return
	}
	p.log.Warn(msg, zap.Error(err), zap.String("schema", p.schema))
}
