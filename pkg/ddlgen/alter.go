package ddlgen

import (
	"fmt"

	"github.com/queryforge/rqg/pkg/schema"
)

// alterKind enumerates the safe ALTER TABLE forms this generator will ever
// emit. Destructive operations (DROP COLUMN, ALTER COLUMN TYPE, DROP
// CONSTRAINT) are intentionally absent.
type alterKind int

const (
	alterAddColumn alterKind = iota
	alterSetDefault
	alterDropDefault
	alterAddCheck
	alterAddUnique
)

var safeAlterKinds = []alterKind{alterAddColumn, alterSetDefault, alterDropDefault, alterAddCheck, alterAddUnique}

// AlterTableStatements emits up to maxAlters safe ALTER TABLE statements
// against t: ADD COLUMN, SET/DROP DEFAULT, ADD CHECK, or ADD UNIQUE. Never
// destructive.
func (g *Generator) AlterTableStatements(t *schema.Table, maxAlters int) []string {
	if maxAlters <= 0 {
		maxAlters = 1 + g.rng.Intn(3)
	}
	n := 1 + g.rng.Intn(maxAlters)

	var out []string
	for i := 0; i < n; i++ {
		kind := safeAlterKinds[g.rng.Intn(len(safeAlterKinds))]
		if stmt, ok := g.renderAlter(t, kind); ok {
			out = append(out, stmt)
		}
	}
	return out
}

func (g *Generator) renderAlter(t *schema.Table, kind alterKind) (string, bool) {
	switch kind {
	case alterAddColumn:
		catalogue := catalogueFor(g.options.Profile)
		dt := pickType(g.rng, catalogue)
		name := fmt.Sprintf("extra_%d", g.rng.Intn(1000))
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", t.Name, name, dt)
		if def, ok := defaultFor(dt, g.rng); ok && g.rng.Intn(2) == 0 {
			stmt += fmt.Sprintf(" DEFAULT %s", def)
		}
		return stmt, true

	case alterSetDefault:
		col := g.pickColumn(t)
		if col == nil {
			return "", false
		}
		def, ok := defaultFor(col.DataType, g.rng)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET DEFAULT %s", t.Name, col.Name, def), true

	case alterDropDefault:
		col := g.pickColumn(t)
		if col == nil {
			return "", false
		}
		return fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s DROP DEFAULT", t.Name, col.Name), true

	case alterAddCheck:
		expr, col, ok := g.randomCheckExpression(t)
		if !ok {
			return "", false
		}
		return fmt.Sprintf(
			"ALTER TABLE %s ADD CONSTRAINT %s_%s_check2 CHECK (%s)",
			t.Name, t.Name, col, expr,
		), true

	case alterAddUnique:
		names := t.ColumnNames()
		n := 1
		if len(names) > 1 && g.rng.Intn(2) == 0 {
			n = 2
		}
		cols := g.sampleColumns(names, n)
		return fmt.Sprintf(
			"ALTER TABLE %s ADD CONSTRAINT %s_%s_ukey UNIQUE (%s)",
			t.Name, t.Name, joinUnderscore(cols), joinCommaSpace(cols),
		), true
	}
	return "", false
}

func (g *Generator) pickColumn(t *schema.Table) *schema.Column {
	cols := t.Columns()
	if len(cols) == 0 {
		return nil
	}
	c := cols[g.rng.Intn(len(cols))]
	return &c
}

func joinCommaSpace(cols []string) string {
	out := cols[0]
	for _, c := range cols[1:] {
		out += ", " + c
	}
	return out
}
