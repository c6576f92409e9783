package testsupport

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"math/rand"
	"reflect"
	"strings"

	faker "github.com/go-faker/faker/v4"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations returns the filesystem of the module's own sample-schema
// migrations, rooted so goose can read it directly.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// Customer mirrors the migrations' customers table, tagged for both faker
// generation and SQL insertion.
type Customer struct {
	ID       int64  `db:"id,pk,autoinc" faker:"-"`
	Email    string `db:"email"         faker:"email"`
	FullName string `db:"full_name"     faker:"name"`
}

// SeedCustomers inserts n deterministically-generated customer rows, seeded
// from seed so repeated runs with the same seed produce the same fixture
// data. Returns the assigned ids in insertion order.
func SeedCustomers(ctx context.Context, db *sql.DB, seed int64, n int) ([]int64, error) {
	faker.SetCryptoSource(rand.New(rand.NewSource(seed)))

	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		var c Customer
		if err := faker.FakeData(&c); err != nil {
			return nil, fmt.Errorf("testsupport: generate customer fixture: %w", err)
		}
		stmt, args := insertSQL("customers", c)
		var id int64
		if err := db.QueryRowContext(ctx, stmt, args...).Scan(&id); err != nil {
			return nil, fmt.Errorf("testsupport: insert customer fixture: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func insertSQL(table string, row any) (string, []any) {
	cols, vals := columnsAndValues(row)
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", ")), vals
}

func columnsAndValues(row any) (cols []string, vals []any) {
	v := reflect.ValueOf(row)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		dbTag := f.Tag.Get("db")
		if dbTag == "" || dbTag == "-" {
			continue
		}
		parts := strings.Split(dbTag, ",")
		if parts[0] == "-" || strings.Contains(dbTag, "autoinc") {
			continue
		}
		cols = append(cols, parts[0])
		vals = append(vals, v.Field(i).Interface())
	}
	return cols, vals
}
