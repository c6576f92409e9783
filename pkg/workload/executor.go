package workload

import (
	"context"
	"fmt"
	"iter"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/queryforge/rqg/internal/logutil"
	"github.com/queryforge/rqg/pkg/prng"
)

// Executor runs a stream of SQL statements against a PostgreSQL-compatible
// database with a bounded worker pool, a DDL serialization barrier, and
// real-time outcome classification. Each worker goroutine owns its own lazy
// connection; only the goroutine calling Run updates the statistics.
type Executor struct {
	cfg Config
	log *zap.Logger
	out progressWriter
}

// New returns an Executor. A nil logger disables structured logging (the
// per-character progress stream is unaffected).
func New(cfg Config, log *zap.Logger) *Executor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Executor{cfg: cfg.WithDefaults(), log: log, out: newProgressWriter()}
}

// Run drives statements to completion, returning accumulated statistics.
// seed only identifies the run for logging/correlation (pkg/prng.RunID);
// it has no bearing on execution order.
func (e *Executor) Run(ctx context.Context, statements iter.Seq[string], seed int64) *ExecutionStats {
	runID := prng.RunID(seed)
	stats := newStats(runID, time.Now())
	shapes := make(map[string]struct{})

	statementTimeoutMS := fmt.Sprintf("%d", e.cfg.StatementTimeout.Milliseconds())

	jobs := make(chan string, e.cfg.maxInFlight())
	results := make(chan Outcome, e.cfg.maxInFlight())

	// One errgroup-managed goroutine per worker thread. SetLimit pins the
	// pool at exactly Threads goroutines, each owning one lazy connection
	// for the run's lifetime. Backpressure comes from the producer loop
	// below, which stops submitting once pending reaches maxInFlight and
	// absorbs results until a slot frees up.
	workers, workerCtx := errgroup.WithContext(ctx)
	workers.SetLimit(e.cfg.Threads)
	for i := 0; i < e.cfg.Threads; i++ {
		workers.Go(func() error {
			wc := newWorkerConn(e.cfg.DSN)
			defer wc.close(context.Background())
			for sql := range jobs {
				results <- wc.exec(workerCtx, statementTimeoutMS, sql)
			}
			return nil
		})
	}

	ddlConn := newWorkerConn(e.cfg.DSN)
	defer ddlConn.close(context.Background())

	pending := 0
	drain := func() {
		for pending > 0 {
			o := <-results
			e.absorb(stats, shapes, o)
			pending--
		}
	}

	e.log.Info("workload run started", zap.String("run_id", runID.String()), logutil.Values(
		zap.Int("threads", e.cfg.Threads),
	))

loop:
	for sql := range statements {
		select {
		case <-ctx.Done():
			break loop
		default:
		}

		if isDDLFence(sql) {
			drain()
			e.executeDDLWithRetry(ctx, ddlConn, statementTimeoutMS, sql, stats, shapes)
			continue
		}

		for pending >= e.cfg.maxInFlight() {
			o := <-results
			e.absorb(stats, shapes, o)
			pending--
		}

		select {
		case jobs <- sql:
			pending++
		case <-ctx.Done():
			break loop
		}
	}

	drain()
	close(jobs)
	_ = workers.Wait() // worker goroutines never return a non-nil error
	close(results)

	stats.UniqueShapes = len(shapes)
	e.out.finalSummary(stats)
	e.log.Info("workload run finished", zap.String("run_id", runID.String()), logutil.Values(
		zap.Int("total", stats.Total),
		zap.Int("success", stats.Success),
		zap.Int("failed", stats.Failed),
		zap.Int("unique_shapes", stats.UniqueShapes),
	))
	return stats
}

// absorb records o into stats/shapes and emits one progress character,
// printing a periodic summary every ProgressInterval statements.
func (e *Executor) absorb(stats *ExecutionStats, shapes map[string]struct{}, o Outcome) {
	stats.record(o)
	if o.Shape != "" {
		shapes[o.Shape] = struct{}{}
	}
	e.out.char(byte(o.Symbol))
	if stats.Total%e.cfg.ProgressInterval == 0 {
		stats.UniqueShapes = len(shapes)
		e.out.summary(stats)
	}
}

// executeDDLWithRetry runs a DDL fence statement on the producer's own
// dedicated connection, retrying outcomes classified as crash
// (connection/operational) or timeout up to ddlRetries times with a pause
// between attempts. Serialization failures (SQLSTATE class 40) classify as
// exceptions and are not retried.
func (e *Executor) executeDDLWithRetry(ctx context.Context, conn *workerConn, statementTimeoutMS, sql string, stats *ExecutionStats, shapes map[string]struct{}) {
	var o Outcome
	for attempt := 0; attempt <= ddlRetries; attempt++ {
		o = conn.exec(ctx, statementTimeoutMS, sql)
		if o.Symbol == SymbolOK {
			break
		}
		if o.Symbol != SymbolCrash && o.Symbol != SymbolTimeout {
			break
		}
		if attempt < ddlRetries {
			e.log.Warn("ddl fence retrying", zap.String("sql", sql), zap.Int("attempt", attempt+1))
			time.Sleep(ddlRetryPause)
		}
	}
	e.absorb(stats, shapes, o)
}
