package workload

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
)

// workerConn lazily opens a connection on first use and drops it on any
// connection-level failure so the next call reconnects. It is owned by
// exactly one worker goroutine and never shared.
type workerConn struct {
	dsn  string
	conn *pgx.Conn
}

func newWorkerConn(dsn string) *workerConn {
	return &workerConn{dsn: dsn}
}

// exec runs sql to completion, returning the classified Outcome. Connection
// failures drop the underlying connection so the next exec reconnects.
func (w *workerConn) exec(ctx context.Context, statementTimeout string, sql string) Outcome {
	if w.conn == nil {
		conn, err := pgx.Connect(ctx, w.dsn)
		if err != nil {
			return Outcome{Symbol: SymbolCrash, Tag: symbolTag[SymbolCrash], Shape: Canonicalize(sql)}
		}
		w.conn = conn
		if statementTimeout != "" {
			_, _ = w.conn.Exec(ctx, "SET statement_timeout = "+statementTimeout)
		}
	}

	_, err := w.conn.Exec(ctx, sql)
	sym, tag := classify(err)
	if sym == SymbolCrash {
		_ = w.conn.Close(ctx)
		w.conn = nil
	}
	return Outcome{Symbol: sym, Tag: tag, Shape: Canonicalize(sql)}
}

func (w *workerConn) close(ctx context.Context) {
	if w.conn != nil {
		_ = w.conn.Close(ctx)
		w.conn = nil
	}
}

// isDDLFence reports whether sql's leading keyword requires the DDL
// barrier: CREATE, ALTER, DROP, or TRUNCATE.
func isDDLFence(sql string) bool {
	trimmed := strings.TrimSpace(sql)
	upper := strings.ToUpper(trimmed)
	for _, kw := range []string{"CREATE", "ALTER", "DROP", "TRUNCATE"} {
		if strings.HasPrefix(upper, kw) {
			return true
		}
	}
	return false
}
