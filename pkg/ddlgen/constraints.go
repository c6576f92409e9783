package ddlgen

import (
	"fmt"

	"github.com/queryforge/rqg/pkg/rqgtype"
	"github.com/queryforge/rqg/pkg/schema"
)

// randomConstraints assembles a table's constraint list: the mandatory
// primary key (explicit when composite, implicit via the id column's flag
// otherwise), up to two UNIQUE constraints, and up to two CHECK
// constraints, respecting a total budget of nconstraints beyond the PK.
func (g *Generator) randomConstraints(t *schema.Table, nconstraints int, pk *schema.TableConstraint) []schema.TableConstraint {
	var out []schema.TableConstraint
	if pk != nil {
		out = append(out, *pk)
	}

	budget := nconstraints
	names := t.ColumnNames()

	uniqueCount := min(2, budget)
	for i := 0; i < uniqueCount && budget > 0; i++ {
		col := names[g.rng.Intn(len(names))]
		out = append(out, schema.TableConstraint{
			Kind:             schema.ConstraintUnique,
			Name:             fmt.Sprintf("%s_%s_key", t.Name, col),
			Columns:          []string{col},
			NullsNotDistinct: g.rng.Float64() < 0.5,
		})
		budget--
	}

	checkCount := min(2, budget)
	for i := 0; i < checkCount && budget > 0; i++ {
		expr, col, ok := g.randomCheckExpression(t)
		if !ok {
			continue
		}
		out = append(out, schema.TableConstraint{
			Kind:       schema.ConstraintCheck,
			Name:       fmt.Sprintf("%s_%s_check", t.Name, col),
			Columns:    []string{col},
			Expression: expr,
		})
		budget--
	}

	return out
}

// randomCheckExpression picks either a single numeric column's "col >= 0"
// form or a "num1 <= num2" comparison between two numeric columns.
func (g *Generator) randomCheckExpression(t *schema.Table) (expr string, col string, ok bool) {
	var numeric []string
	for _, c := range t.Columns() {
		if rqgtype.IsNumeric(c.DataType) && !rqgtype.IsArray(c.DataType) {
			numeric = append(numeric, c.Name)
		}
	}
	if len(numeric) == 0 {
		return "", "", false
	}
	if len(numeric) >= 2 && g.rng.Intn(2) == 0 {
		a := numeric[g.rng.Intn(len(numeric))]
		b := numeric[g.rng.Intn(len(numeric))]
		if a == b {
			return fmt.Sprintf("%s >= 0", a), a, true
		}
		return fmt.Sprintf("%s <= %s", a, b), a, true
	}
	c := numeric[g.rng.Intn(len(numeric))]
	return fmt.Sprintf("%s >= 0", c), c, true
}
