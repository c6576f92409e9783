package ddlgen

import (
	"fmt"
	"strings"

	"github.com/queryforge/rqg/pkg/schema"
)

// RenderCreateTable emits a single CREATE TABLE statement for t, including
// inline PRIMARY KEY on a single identity column, table-level constraints,
// and (if set) a PARTITION BY clause.
func RenderCreateTable(t *schema.Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", t.Name)

	var lines []string
	for _, c := range t.Columns() {
		lines = append(lines, "  "+renderColumn(c))
	}
	for _, tc := range t.Constraints {
		if line := renderTableConstraint(tc); line != "" {
			lines = append(lines, "  "+line)
		}
	}
	b.WriteString(strings.Join(lines, ",\n"))
	b.WriteString("\n)")

	if t.PartitionedBy != "" {
		fmt.Fprintf(&b, " PARTITION BY %s", t.PartitionedBy)
	}
	return b.String()
}

func renderColumn(c schema.Column) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", c.Name, c.DataType)
	if c.IsPrimaryKey && c.DataType != "" && strings.Contains(strings.ToUpper(c.DataType), "IDENTITY") {
		b.WriteString(" PRIMARY KEY")
	} else if !c.IsNullable {
		b.WriteString(" NOT NULL")
	}
	if c.HasDefault {
		fmt.Fprintf(&b, " DEFAULT %s", c.Default)
	}
	if c.Check != "" {
		fmt.Fprintf(&b, " CHECK (%s)", c.Check)
	}
	if c.IsUnique {
		b.WriteString(" UNIQUE")
	}
	if c.ForeignKey != "" {
		table, refCol := splitForeignKey(c.ForeignKey)
		fmt.Fprintf(&b, " REFERENCES %s(%s)", table, refCol)
		if c.OnDelete != "" {
			fmt.Fprintf(&b, " ON DELETE %s", c.OnDelete)
		}
		if c.OnUpdate != "" {
			fmt.Fprintf(&b, " ON UPDATE %s", c.OnUpdate)
		}
	}
	return b.String()
}

// splitForeignKey splits a Column.ForeignKey value of the form
// "table.column" into its two parts. A malformed value (no dot) is treated
// as a bare table name referencing "id".
func splitForeignKey(ref string) (table, column string) {
	if i := strings.LastIndexByte(ref, '.'); i >= 0 {
		return ref[:i], ref[i+1:]
	}
	return ref, "id"
}

func renderTableConstraint(tc schema.TableConstraint) string {
	switch tc.Kind {
	case schema.ConstraintPrimaryKey:
		return fmt.Sprintf("CONSTRAINT %s PRIMARY KEY (%s)", tc.Name, strings.Join(tc.Columns, ", "))
	case schema.ConstraintUnique:
		nnd := ""
		if tc.NullsNotDistinct {
			nnd = " NULLS NOT DISTINCT"
		}
		return fmt.Sprintf("CONSTRAINT %s UNIQUE%s (%s)", tc.Name, nnd, strings.Join(tc.Columns, ", "))
	case schema.ConstraintCheck:
		return fmt.Sprintf("CONSTRAINT %s CHECK (%s)", tc.Name, tc.Expression)
	case schema.ConstraintForeignKey:
		return fmt.Sprintf(
			"CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s(%s)",
			tc.Name, strings.Join(tc.Columns, ", "), tc.ReferencesTable, strings.Join(tc.ReferencesColumns, ", "),
		)
	}
	return ""
}

// RenderCreateIndex emits a single CREATE INDEX statement for idx on
// tableName.
func RenderCreateIndex(tableName string, idx schema.Index) string {
	var b strings.Builder
	b.WriteString("CREATE ")
	if idx.Unique {
		b.WriteString("UNIQUE ")
	}
	fmt.Fprintf(&b, "INDEX %s ON %s", idx.Name, tableName)
	if idx.Method != "" && idx.Method != schema.IndexBTree {
		fmt.Fprintf(&b, " USING %s", idx.Method)
	}
	fmt.Fprintf(&b, " (%s)", strings.Join(idx.Columns, ", "))
	if len(idx.IncludeColumns) > 0 {
		fmt.Fprintf(&b, " INCLUDE (%s)", strings.Join(idx.IncludeColumns, ", "))
	}
	if idx.WhereClause != "" {
		fmt.Fprintf(&b, " WHERE %s", idx.WhereClause)
	}
	return b.String()
}
