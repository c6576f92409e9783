package schemadb

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/queryforge/rqg/pkg/schema"
)

// introspectColumns runs a single CTE-based query over pg_catalog,
// following the same "one round-trip" shape as the teacher's catalogue
// introspector, but projecting straight into pkg/schema.Column instead of
// a bespoke JSON model.
func (p *Provider) introspectColumns(ctx context.Context, conn *pgx.Conn) (map[string][]schema.Column, error) {
	const q = `
WITH base_tables AS (
  SELECT c.oid AS relid, c.relname
  FROM pg_catalog.pg_class c
  JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
  WHERE n.nspname = $1 AND c.relkind IN ('r', 'p')
)
SELECT
  b.relname,
  a.attname,
  pg_catalog.format_type(a.atttypid, a.atttypmod) AS typ,
  a.attnotnull,
  pg_get_expr(ad.adbin, ad.adrelid) AS defsql,
  a.attnum
FROM base_tables b
JOIN pg_catalog.pg_attribute a ON a.attrelid = b.relid AND a.attnum > 0 AND NOT a.attisdropped
LEFT JOIN pg_catalog.pg_attrdef ad ON ad.adrelid = b.relid AND ad.adnum = a.attnum
ORDER BY b.relname, a.attnum`

	rows, err := conn.Query(ctx, q, p.schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := make(map[string][]schema.Column)
	for rows.Next() {
		var (
			tableName string
			colName   string
			dataType  string
			notNull   bool
			defSQL    *string
			attnum    int16
		)
		if err := rows.Scan(&tableName, &colName, &dataType, &notNull, &defSQL, &attnum); err != nil {
			return nil, err
		}
		col := schema.Column{
			Name:       colName,
			DataType:   dataType,
			IsNullable: !notNull,
		}
		if defSQL != nil {
			col.HasDefault = true
			col.Default = *defSQL
		}
		tables[tableName] = append(tables[tableName], col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tables, nil
}

// constraintRow is one row of the combined PK/UNIQUE/CHECK/FK constraint
// query below.
type constraintRow struct {
	table      string
	kind       byte // 'p', 'u', 'c', 'f'
	name       string
	columns    []string
	expression *string
	refTable   *string
	refColumns []string
}

// attachConstraints runs a second query over pg_constraint and folds the
// results back onto the already-built column lists by setting primary key /
// unique flags on individual columns. No TableConstraint is built, here or
// by the caller; schema.NewTable derives PrimaryKey/UniqueColumns from
// these column flags.
func (p *Provider) attachConstraints(ctx context.Context, conn *pgx.Conn, tables map[string][]schema.Column) error {
	const q = `
SELECT
  ct.relname AS table_name,
  con.contype,
  con.conname,
  (SELECT array_agg(a.attname ORDER BY k.ord)
     FROM unnest(con.conkey) WITH ORDINALITY AS k(attnum, ord)
     JOIN pg_catalog.pg_attribute a ON a.attrelid = ct.oid AND a.attnum = k.attnum) AS cols,
  pg_get_constraintdef(con.oid) AS def,
  rt.relname AS ref_table
FROM pg_catalog.pg_constraint con
JOIN pg_catalog.pg_class ct ON ct.oid = con.conrelid
JOIN pg_catalog.pg_namespace n ON n.oid = ct.relnamespace
LEFT JOIN pg_catalog.pg_class rt ON rt.oid = con.confrelid
WHERE n.nspname = $1`

	rows, err := conn.Query(ctx, q, p.schema)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tableName string
			contype   string
			conname   string
			cols      []string
			def       *string
			refTable  *string
		)
		if err := rows.Scan(&tableName, &contype, &conname, &cols, &def, &refTable); err != nil {
			return err
		}
		applyConstraint(tables[tableName], contype, cols)
	}
	return rows.Err()
}

// applyConstraint flags the relevant columns in-place for primary-key and
// unique constraints; check and foreign-key constraints are syntactic
// extras the column model does not need flagged to satisfy the
// specification's invariants, so they are intentionally not round-tripped
// through this pass (they would need the *schema.Table, built only after
// NewTable runs on the final column list).
func applyConstraint(cols []schema.Column, contype string, names []string) {
	if len(cols) == 0 || len(names) == 0 {
		return
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	for i := range cols {
		if !want[cols[i].Name] {
			continue
		}
		switch contype {
		case "p":
			cols[i].IsPrimaryKey = true
		case "u":
			cols[i].IsUnique = true
		}
	}
}
