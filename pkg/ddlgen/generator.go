package ddlgen

import (
	"fmt"
	"math/rand"

	"github.com/queryforge/rqg/pkg/schema"
)

// Generator synthesizes DDL statements deterministically from a seed. Like
// the grammar engine, a Generator is not safe for concurrent use: callers
// wanting parallel schema generation should construct one Generator per
// goroutine.
type Generator struct {
	options Options
	rng     *rand.Rand
	seed    int64
}

// New returns a Generator configured by opts (zero-valued fields take the
// specification's defaults) seeded by seed.
func New(opts Options, seed int64) *Generator {
	return &Generator{
		options: opts.WithDefaults(),
		rng:     rand.New(rand.NewSource(seed)),
		seed:    seed,
	}
}

// GenerateSchema produces, in order: CREATE TABLE statements for numTables
// tables (the whole curated sample schema followed by randomly generated
// tables if numTables is at least as large as the sample set, otherwise the
// first numTables sample tables), their associated
// CREATE INDEX statements, and finally zero or more cross-table ALTER TABLE
// ADD CONSTRAINT FOREIGN KEY statements.
func (g *Generator) GenerateSchema(numTables int) []string {
	tables := g.planTables(numTables)

	var stmts []string
	for _, t := range tables {
		stmts = append(stmts, RenderCreateTable(t))
	}
	for _, t := range tables {
		indexes := t.Indexes
		if indexes == nil {
			indexes = g.randomIndexes(t)
		}
		for _, idx := range indexes {
			stmts = append(stmts, RenderCreateIndex(t.Name, idx))
		}
	}
	stmts = append(stmts, g.crossTableForeignKeys(tables)...)
	return stmts
}

// planTables decides which tables GenerateSchema will emit, without
// rendering any SQL yet: the curated samples first (if numTables permits),
// then freshly generated tables until numTables is reached.
func (g *Generator) planTables(numTables int) []*schema.Table {
	samples := sampleTables()
	var tables []*schema.Table

	if numTables >= len(samples) {
		tables = append(tables, samples...)
		for i := len(samples); i < numTables; i++ {
			tables = append(tables, g.RandomTable(fmt.Sprintf("table_%d", i), 0, 0))
		}
		return tables
	}

	return samples[:numTables]
}

// GenerateCreateTable is the single-table counterpart of GenerateSchema,
// exposed for callers that already hold a Table (e.g. one returned by
// RandomTable or loaded via a Schema Provider).
func (g *Generator) GenerateCreateTable(t *schema.Table) string {
	return RenderCreateTable(t)
}

// GenerateCreateIndex renders a single CREATE INDEX statement.
func (g *Generator) GenerateCreateIndex(tableName string, idx schema.Index) string {
	return RenderCreateIndex(tableName, idx)
}

// GenerateAlterTableStatements is the exported entry point matching the
// specification's DDLGenerator.generate_alter_table_statements.
func (g *Generator) GenerateAlterTableStatements(t *schema.Table, maxAlters int) []string {
	return g.AlterTableStatements(t, maxAlters)
}

// Seed returns the seed this Generator was constructed with.
func (g *Generator) Seed() int64 { return g.seed }
