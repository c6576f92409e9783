package ddlgen

import (
	"fmt"

	"github.com/queryforge/rqg/pkg/schema"
)

var onDeleteChoices = []string{"RESTRICT", "SET NULL", "CASCADE"}

// crossTableForeignKeys adds 1 or 2 ALTER TABLE ... ADD CONSTRAINT FOREIGN
// KEY statements per eligible table, per the FKRatio probability, after all
// CREATE TABLEs have been planned. tables is the full ordered set so that
// "references another table's id" only ever points at a table that was
// already emitted, satisfying the DDL-validity property.
func (g *Generator) crossTableForeignKeys(tables []*schema.Table) []string {
	var stmts []string
	used := map[string]bool{}

	for i, t := range tables {
		if i == 0 || g.rng.Float64() >= g.options.FKRatio {
			continue
		}
		n := 1
		if g.rng.Float64() < 0.3 {
			n = 2
		}
		taken := map[string]bool{}
		for k := 0; k < n; k++ {
			target := tables[g.rng.Intn(i)]
			col, addColumnStmt := g.foreignKeyColumnFor(t, target, taken)
			if addColumnStmt != "" {
				stmts = append(stmts, addColumnStmt)
			}

			name := uniqueConstraintName(used, fmt.Sprintf("%s_%s_fkey", t.Name, col))
			onDelete := onDeleteChoices[g.rng.Intn(len(onDeleteChoices))]
			stmts = append(stmts, fmt.Sprintf(
				"ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s(id) ON DELETE %s",
				t.Name, name, col, target.Name, onDelete,
			))
		}
	}
	return stmts
}

// foreignKeyColumnFor finds an existing integer column on t with no
// foreign key yet, or synthesizes an ADD COLUMN statement for a new
// nullable one named after target. taken holds the columns of t already
// used by an earlier foreign key of this pass; the chosen column is added
// to it.
func (g *Generator) foreignKeyColumnFor(t, target *schema.Table, taken map[string]bool) (col string, addColumnStmt string) {
	for _, c := range t.Columns() {
		if c.Name != "id" && c.DataType == "integer" && c.ForeignKey == "" && !taken[c.Name] {
			taken[c.Name] = true
			return c.Name, ""
		}
	}
	col = fmt.Sprintf("%s_id", target.Name)
	for n := 2; taken[col]; n++ {
		col = fmt.Sprintf("%s_id_%d", target.Name, n)
	}
	taken[col] = true
	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s integer", t.Name, col)
	return col, stmt
}

func uniqueConstraintName(used map[string]bool, base string) string {
	name := base
	n := 2
	for used[name] {
		name = fmt.Sprintf("%s_%d", base, n)
		n++
	}
	used[name] = true
	return name
}
