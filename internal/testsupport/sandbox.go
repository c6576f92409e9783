package testsupport

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/binary"
	"fmt"
	"net/url"
	"testing"
	"time"
)

// Sandbox is a disposable, schema-isolated slice of the shared container.
// Every test gets its own schema so parallel tests never see each other's
// tables.
type Sandbox struct {
	DSN    string
	Schema string
	Seed   int64
}

// NewSandbox creates a fresh schema inside the container booted by Boot and
// registers its teardown with t.Cleanup. Fails the test if Boot was never
// called.
func NewSandbox(t *testing.T) *Sandbox {
	t.Helper()
	base := DSN()
	if base == "" {
		t.Fatal("testsupport: Boot was not called before NewSandbox")
	}

	admin, err := sql.Open("pgx", base)
	if err != nil {
		t.Fatalf("testsupport: open admin connection: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	schema := fmt.Sprintf("sbx_%x", randomSeed())
	if _, err := admin.ExecContext(ctx, `CREATE SCHEMA "`+schema+`"`); err != nil {
		admin.Close()
		t.Fatalf("testsupport: create schema: %v", err)
	}

	sbx := &Sandbox{
		DSN:    withSearchPath(base, schema),
		Schema: schema,
		Seed:   randomSeed(),
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_, _ = admin.ExecContext(ctx, `DROP SCHEMA IF EXISTS "`+schema+`" CASCADE`)
		_ = admin.Close()
	})
	return sbx
}

func withSearchPath(base, schema string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set("options", fmt.Sprintf("-csearch_path=%s,public", schema))
	u.RawQuery = q.Encode()
	return u.String()
}

func randomSeed() int64 {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return int64(binary.LittleEndian.Uint64(b[:]))
}
