//go:build integration

package workload

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/queryforge/rqg/internal/testsupport"
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

// TestRunAccountingAgainstLiveDatabase exercises the executor's DDL barrier
// and outcome classification end to end: a CREATE TABLE fence followed by a
// mix of valid and deliberately malformed statements.
func TestRunAccountingAgainstLiveDatabase(t *testing.T) {
	sbx := testsupport.NewSandbox(t)

	db, err := sql.Open("pgx", sbx.DSN)
	if err != nil {
		t.Fatalf("open sandbox db: %v", err)
	}
	defer db.Close()

	statements := []string{
		"CREATE TABLE widgets (id INT PRIMARY KEY, name TEXT)",
		"INSERT INTO widgets (id, name) VALUES (1, 'a')",
		"INSERT INTO widgets (id, name) VALUES (2, 'b')",
		"SELECT * FROM widgets",
		"SELECT * FROM nonexistent_table",
		"THIS IS NOT SQL",
	}

	exec := New(Config{DSN: sbx.DSN, Threads: 2, ProgressInterval: 1000}, nil)
	stats := exec.Run(context.Background(), func(yield func(string) bool) {
		for _, s := range statements {
			if !yield(s) {
				return
			}
		}
	}, sbx.Seed)

	if stats.Total != len(statements) {
		t.Fatalf("Total = %d, want %d", stats.Total, len(statements))
	}
	if stats.Success+stats.Failed != stats.Total {
		t.Fatalf("Success(%d)+Failed(%d) != Total(%d)", stats.Success, stats.Failed, stats.Total)
	}
	if stats.Failed < 2 {
		t.Fatalf("expected at least 2 failures (bad table + bad syntax), got %d", stats.Failed)
	}
	if stats.BySymbol[SymbolSyntax] == 0 {
		t.Error("expected at least one syntax-classified failure")
	}
}
