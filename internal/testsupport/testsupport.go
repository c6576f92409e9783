// Package testsupport boots a disposable PostgreSQL container and hands out
// per-test schemas for integration tests in pkg/schemadb and pkg/workload.
package testsupport

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

type config struct {
	image    string
	dbName   string
	user     string
	password string
	gooseFS  fs.FS
}

// Option configures Boot.
type Option func(*config)

func WithImage(image string) Option { return func(c *config) { c.image = image } }
func WithDBName(name string) Option { return func(c *config) { c.dbName = name } }

// WithMigrations points goose at the filesystem holding the sandbox's
// migration files (see Migrations for the module's own embedded set).
func WithMigrations(migFS fs.FS) Option { return func(c *config) { c.gooseFS = migFS } }

var (
	once       sync.Once
	container  *postgres.PostgresContainer
	mu         sync.Mutex
	connString string
	bootErr    error
)

// Boot starts the shared container and applies migrations, if any. Safe to
// call from multiple TestMain functions: only the first call does work.
func Boot(ctx context.Context, opts ...Option) error {
	once.Do(func() {
		cfg := &config{image: "docker.io/postgres:16-alpine", dbName: "rqg", user: "postgres", password: "rqgpass"}
		for _, o := range opts {
			o(cfg)
		}

		c, err := postgres.Run(ctx, cfg.image,
			postgres.WithDatabase(cfg.dbName),
			postgres.WithUsername(cfg.user),
			postgres.WithPassword(cfg.password),
			postgres.BasicWaitStrategies(),
		)
		if err != nil {
			bootErr = fmt.Errorf("testsupport: start container: %w", err)
			return
		}
		container = c

		host, err := c.Host(ctx)
		if err != nil {
			bootErr = fmt.Errorf("testsupport: container host: %w", err)
			return
		}
		port, err := c.MappedPort(ctx, "5432/tcp")
		if err != nil {
			bootErr = fmt.Errorf("testsupport: container port: %w", err)
			return
		}
		connString = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			cfg.user, cfg.password, host, port.Port(), cfg.dbName)

		if cfg.gooseFS != nil {
			db, err := sql.Open("pgx", connString)
			if err != nil {
				bootErr = fmt.Errorf("testsupport: open for migrations: %w", err)
				return
			}
			defer db.Close()

			goose.SetBaseFS(cfg.gooseFS)
			if err := goose.SetDialect("postgres"); err != nil {
				bootErr = fmt.Errorf("testsupport: goose dialect: %w", err)
				return
			}
			if err := goose.Up(db, "."); err != nil {
				bootErr = fmt.Errorf("testsupport: goose up: %w", err)
				return
			}
		}
	})
	return bootErr
}

// DSN returns the admin connection string for the booted container. Callers
// needing test isolation should use NewSandbox instead of connecting
// directly, so concurrent tests never collide on the same tables.
func DSN() string {
	mu.Lock()
	defer mu.Unlock()
	return connString
}

// Shutdown terminates the shared container. Intended for TestMain's cleanup
// after m.Run() returns.
func Shutdown() error {
	mu.Lock()
	defer mu.Unlock()
	if container == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return container.Terminate(ctx)
}
