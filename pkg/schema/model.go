// Package schema holds the value objects that describe a relational
// schema: columns, tables, constraints, and indexes. Values are immutable
// after construction; "altering" a table means building a new Table.
package schema

import "github.com/queryforge/rqg/pkg/rqgtype"

// Column describes a single table column. DataType is a free-form SQL type
// string (e.g. "integer", "VARCHAR(50)", "NUMERIC(10,2)", "INT[]").
type Column struct {
	Name          string
	DataType      string
	IsNullable    bool
	IsPrimaryKey  bool
	IsUnique      bool
	HasDefault    bool
	Default       string
	Check         string
	ForeignKey    string // "table.column", empty if none
	OnDelete      string
	OnUpdate      string
}

// MatchesCategory reports whether the column's DataType belongs to (or
// is a synonym of) the given semantic category or base type.
func (c Column) MatchesCategory(target string) bool {
	return rqgtype.MatchesTypeCategory(c.DataType, target)
}

// ConstraintKind tags the payload carried by a TableConstraint.
type ConstraintKind int

const (
	ConstraintPrimaryKey ConstraintKind = iota
	ConstraintUnique
	ConstraintCheck
	ConstraintForeignKey
)

// TableConstraint is a tagged record over a column list. Only the fields
// relevant to Kind are meaningful; the rest are zero-valued.
type TableConstraint struct {
	Kind    ConstraintKind
	Name    string
	Columns []string

	// ConstraintUnique
	NullsNotDistinct bool

	// ConstraintCheck
	Expression string

	// ConstraintForeignKey
	ReferencesTable   string
	ReferencesColumns []string
	OnDelete          string
	OnUpdate          string
	Deferrable        bool
	InitiallyDeferred bool
}

// IndexMethod enumerates the access methods the DDL generator may emit.
type IndexMethod string

const (
	IndexBTree IndexMethod = "btree"
	IndexHash  IndexMethod = "hash"
	IndexGIN   IndexMethod = "gin"
	IndexGIST  IndexMethod = "gist"
)

// Index describes a CREATE INDEX statement's target.
type Index struct {
	Name            string
	Columns         []string
	Unique          bool
	Method          IndexMethod
	WhereClause     string
	IncludeColumns  []string
}

// Table is an ordered, immutable description of a relational table.
type Table struct {
	Name           string
	columnOrder    []string
	columns        map[string]Column
	PrimaryKey     string // column name, empty if none
	UniqueColumns  []string
	ForeignKeys    map[string]string // column -> "table.column"
	RowCount       int
	Constraints    []TableConstraint
	Indexes        []Index
	Tablespace     string
	Comment        string
	PartitionedBy  string
	Inherits       string
}

// NewTable builds a Table from columns given in the order they should be
// emitted. PrimaryKey (the last column flagged IsPrimaryKey),
// UniqueColumns (every column flagged IsUnique) and ForeignKeys are derived
// from the column flags, so they always name flagged columns. NewTable
// validates nothing and never panics; Constraints and Indexes are set by
// the caller afterwards and their column names are not checked.
func NewTable(name string, columns []Column) *Table {
	t := &Table{
		Name:        name,
		columnOrder: make([]string, 0, len(columns)),
		columns:     make(map[string]Column, len(columns)),
		ForeignKeys: make(map[string]string),
	}
	for _, c := range columns {
		t.columnOrder = append(t.columnOrder, c.Name)
		t.columns[c.Name] = c
		if c.IsPrimaryKey {
			t.PrimaryKey = c.Name
		}
		if c.IsUnique {
			t.UniqueColumns = append(t.UniqueColumns, c.Name)
		}
		if c.ForeignKey != "" {
			t.ForeignKeys[c.Name] = c.ForeignKey
		}
	}
	return t
}

// FromLegacyMaps builds a Table from the "list of dicts" shape produced by
// ad-hoc schema descriptions: each map has "name" and either "data_type" or
// "type", plus optional "is_primary_key", "is_unique", "is_nullable".
func FromLegacyMaps(name string, rows []map[string]any) *Table {
	cols := make([]Column, 0, len(rows))
	for _, row := range rows {
		c := Column{IsNullable: true}
		if v, ok := row["name"].(string); ok {
			c.Name = v
		}
		if v, ok := row["data_type"].(string); ok {
			c.DataType = v
		} else if v, ok := row["type"].(string); ok {
			c.DataType = v
		}
		if v, ok := row["is_primary_key"].(bool); ok {
			c.IsPrimaryKey = v
		}
		if v, ok := row["is_unique"].(bool); ok {
			c.IsUnique = v
		}
		if v, ok := row["is_nullable"].(bool); ok {
			c.IsNullable = v
		}
		cols = append(cols, c)
	}
	return NewTable(name, cols)
}

// Column looks up a column by name.
func (t *Table) Column(name string) (Column, bool) {
	c, ok := t.columns[name]
	return c, ok
}

// Columns returns the columns in insertion order.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columnOrder))
	for i, name := range t.columnOrder {
		out[i] = t.columns[name]
	}
	return out
}

// ColumnNames returns column names in insertion order.
func (t *Table) ColumnNames() []string {
	return append([]string(nil), t.columnOrder...)
}

// NumericColumns returns the names of columns whose type is numeric.
func (t *Table) NumericColumns() []string {
	var out []string
	for _, name := range t.columnOrder {
		if t.columns[name].MatchesCategory("numeric") {
			out = append(out, name)
		}
	}
	return out
}

// StringColumns returns the names of columns whose type is string-like.
func (t *Table) StringColumns() []string {
	var out []string
	for _, name := range t.columnOrder {
		if t.columns[name].MatchesCategory("string") {
			out = append(out, name)
		}
	}
	return out
}

// ColumnsList is an alias used by callers that want the positional slice
// rather than a map-backed lookup (mirrors the legacy accessor name).
func (t *Table) ColumnsList() []Column {
	return t.Columns()
}

// WithColumn returns a new Table with the column appended, modeling an
// ALTER TABLE ADD COLUMN without mutating the receiver.
func (t *Table) WithColumn(c Column) *Table {
	cols := append(t.Columns(), c)
	nt := NewTable(t.Name, cols)
	nt.RowCount = t.RowCount
	nt.Constraints = append([]TableConstraint(nil), t.Constraints...)
	nt.Indexes = append([]Index(nil), t.Indexes...)
	nt.Tablespace = t.Tablespace
	nt.Comment = t.Comment
	nt.PartitionedBy = t.PartitionedBy
	nt.Inherits = t.Inherits
	// preserve foreign keys/unique columns from the constraint list already
	// derived for t beyond what the new column itself contributes.
	for col, ref := range t.ForeignKeys {
		nt.ForeignKeys[col] = ref
	}
	return nt
}
