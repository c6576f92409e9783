package ddlgen

import (
	"fmt"
	"math/rand"

	"github.com/queryforge/rqg/pkg/schema"
)

// RandomTable synthesizes a schema.Table with ncols columns (or a value in
// [5,15] when ncols <= 0) and up to nconstraints constraints beyond the
// mandatory primary key (0 or a negative value means "use the
// specification's defaults").
func (g *Generator) RandomTable(name string, ncols, nconstraints int) *schema.Table {
	if ncols <= 0 {
		ncols = 5 + g.rng.Intn(11) // [5,15]
	}
	if nconstraints <= 0 {
		nconstraints = 1 + g.rng.Intn(4) // [1,4], exclusive of the mandatory PK
	}

	singlePK := g.rng.Float64() < 0.80

	columns := make([]schema.Column, 0, ncols+1)
	columns = append(columns, schema.Column{
		Name:         "id",
		DataType:     "INTEGER GENERATED BY DEFAULT AS IDENTITY",
		IsNullable:   false,
		IsPrimaryKey: singlePK,
	})

	catalogue := catalogueFor(g.options.Profile)
	for i := 1; i < ncols; i++ {
		columns = append(columns, g.randomColumn(fmt.Sprintf("col_%d", i), catalogue))
	}

	if g.rng.Float64() < 0.30 {
		columns = append(columns, schema.Column{
			Name:       "parent_id",
			DataType:   "integer",
			IsNullable: true,
			ForeignKey: name + ".id",
			OnDelete:   "SET NULL",
		})
	}

	t := schema.NewTable(name, columns)

	var pkConstraint *schema.TableConstraint
	if !singlePK {
		cols := compositeKeyColumns(t)
		pkConstraint = &schema.TableConstraint{
			Kind:    schema.ConstraintPrimaryKey,
			Name:    name + "_pkey",
			Columns: cols,
		}
	}
	t.Constraints = g.randomConstraints(t, nconstraints, pkConstraint)
	return t
}

// compositeKeyColumns returns up to the first five column names, used as the
// composite primary key when the single-column id PK was not chosen.
func compositeKeyColumns(t *schema.Table) []string {
	names := t.ColumnNames()
	if len(names) > 5 {
		names = names[:5]
	}
	return append([]string(nil), names...)
}

// randomColumn draws a type from catalogue and applies the nullability,
// uniqueness, default, and check biases from the specification.
func (g *Generator) randomColumn(name string, catalogue []weightedType) schema.Column {
	dt := pickType(g.rng, catalogue)
	c := schema.Column{
		Name:       name,
		DataType:   dt,
		IsNullable: g.rng.Float64() < (2.0 / 3.0),
	}
	if g.rng.Float64() < 0.10 {
		c.IsUnique = true
	}
	if g.rng.Float64() < 0.30 {
		if d, ok := defaultFor(dt, g.rng); ok {
			c.HasDefault = true
			c.Default = d
		}
	}
	if g.rng.Float64() < 0.20 {
		if expr, ok := checkHintFor(name, dt); ok {
			c.Check = expr
		}
	}
	return c
}

// weightedBool reports true with probability p, consuming exactly one RNG
// draw regardless of p.
func weightedBool(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}
