//go:build integration

package schemadb

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/queryforge/rqg/internal/testsupport"
	"github.com/queryforge/rqg/pkg/schema"
)

func TestMain(m *testing.M) {
	ctx := context.Background()
	if err := testsupport.Boot(ctx, testsupport.WithMigrations(testsupport.Migrations())); err != nil {
		panic(err)
	}
	code := m.Run()
	_ = testsupport.Shutdown()
	os.Exit(code)
}

func TestIntrospectFindsMigratedTables(t *testing.T) {
	sbx := testsupport.NewSandbox(t)

	db, err := sql.Open("pgx", sbx.DSN)
	if err != nil {
		t.Fatalf("open sandbox db: %v", err)
	}
	defer db.Close()

	// The sandbox schema is empty; apply the sample schema's DDL directly so
	// introspection has something to find under this sandbox's search_path.
	if _, err := db.ExecContext(context.Background(), `
		CREATE TABLE customers (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			full_name TEXT NOT NULL
		)`); err != nil {
		t.Fatalf("create customers: %v", err)
	}

	p := New(sbx.DSN, WithSchemaName(sbx.Schema))
	tables := p.Introspect(context.Background())

	tbl, ok := tables["customers"]
	if !ok {
		t.Fatalf("customers table not found, got %v", tableNames(tables))
	}
	if tbl.PrimaryKey != "id" {
		t.Fatalf("PrimaryKey = %q, want id", tbl.PrimaryKey)
	}

	var emailCol, fullNameCol bool
	for _, c := range tbl.Columns() {
		switch c.Name {
		case "email":
			emailCol = true
			if !c.IsUnique {
				t.Error("email should be flagged unique")
			}
		case "full_name":
			fullNameCol = true
		}
	}
	if !emailCol || !fullNameCol {
		t.Fatalf("missing expected columns, got %+v", tbl.Columns())
	}
}

func TestIntrospectOnUnknownSchemaReturnsEmpty(t *testing.T) {
	sbx := testsupport.NewSandbox(t)
	p := New(sbx.DSN, WithSchemaName("schema_that_does_not_exist"))
	tables := p.Introspect(context.Background())
	if len(tables) != 0 {
		t.Fatalf("expected empty map, got %d tables", len(tables))
	}
}

func tableNames(tables map[string]*schema.Table) []string {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	return names
}
