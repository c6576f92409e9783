package ddlgen

import (
	"fmt"

	"github.com/queryforge/rqg/pkg/rqgtype"
	"github.com/queryforge/rqg/pkg/schema"
)

// randomIndexes generates between 0 and round(1 + 4*IndexRatio) indexes for
// t, applying the composite/unique/partial probabilities from the
// specification.
func (g *Generator) randomIndexes(t *schema.Table) []schema.Index {
	maxCount := int(1 + 4*g.options.IndexRatio + 0.5)
	count := g.rng.Intn(maxCount + 1)

	names := t.ColumnNames()
	out := make([]schema.Index, 0, count)
	for i := 0; i < count; i++ {
		cols := []string{names[g.rng.Intn(len(names))]}
		if g.rng.Float64() < g.options.CompositeIndexRatio && len(names) > 1 {
			n := 2
			if len(names) > 2 && g.rng.Intn(2) == 0 {
				n = 3
			}
			cols = g.sampleColumns(names, n)
		}

		idx := schema.Index{
			Name:    fmt.Sprintf("%s_%s_idx", t.Name, joinUnderscore(cols)),
			Columns: cols,
			Unique:  g.rng.Float64() < 0.1,
			Method:  schema.IndexBTree,
		}

		if method, ok := g.ginOrGistFor(t, cols); ok {
			idx.Method = method
		}

		if g.rng.Float64() < g.options.PartialIndexRatio {
			if where, ok := g.randomPartialClause(t); ok {
				idx.WhereClause = where
			}
		}

		out = append(out, idx)
	}
	return out
}

// ginOrGistFor promotes an index to GIN when its sole column is JSON(B),
// matching the "GIN on JSONB" pattern used by the curated sample schema.
func (g *Generator) ginOrGistFor(t *schema.Table, cols []string) (schema.IndexMethod, bool) {
	if len(cols) != 1 {
		return "", false
	}
	c, ok := t.Column(cols[0])
	if !ok {
		return "", false
	}
	if rqgtype.IsJSON(c.DataType) {
		return schema.IndexGIN, true
	}
	return "", false
}

// randomPartialClause synthesizes a WHERE clause: a boolean column being
// true, a string column being NOT NULL, or a JSON column IS NOT NULL.
func (g *Generator) randomPartialClause(t *schema.Table) (string, bool) {
	var booleans, strings_, jsons []string
	for _, c := range t.Columns() {
		switch {
		case rqgtype.IsBoolean(c.DataType):
			booleans = append(booleans, c.Name)
		case rqgtype.IsString(c.DataType):
			strings_ = append(strings_, c.Name)
		case rqgtype.IsJSON(c.DataType):
			jsons = append(jsons, c.Name)
		}
	}
	type candidate struct {
		name string
		tmpl string
	}
	var candidates []candidate
	for _, n := range booleans {
		candidates = append(candidates, candidate{n, "%s = true"})
	}
	for _, n := range strings_ {
		candidates = append(candidates, candidate{n, "%s IS NOT NULL"})
	}
	for _, n := range jsons {
		candidates = append(candidates, candidate{n, "%s IS NOT NULL"})
	}
	if len(candidates) == 0 {
		return "", false
	}
	c := candidates[g.rng.Intn(len(candidates))]
	return fmt.Sprintf(c.tmpl, c.name), true
}

// sampleColumns draws n distinct column names from names without
// replacement.
func (g *Generator) sampleColumns(names []string, n int) []string {
	if n > len(names) {
		n = len(names)
	}
	pool := append([]string(nil), names...)
	g.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool[:n]
}

func joinUnderscore(cols []string) string {
	out := cols[0]
	for _, c := range cols[1:] {
		out += "_" + c
	}
	return out
}
