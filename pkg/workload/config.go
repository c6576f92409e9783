package workload

import "time"

// Config configures an Executor. Zero-valued fields take the
// specification's defaults via WithDefaults.
type Config struct {
	DSN              string
	Threads          int
	StatementTimeout time.Duration
	ProgressInterval int
}

// WithDefaults returns a copy of c with zero fields replaced: Threads=10,
// StatementTimeout=30s, ProgressInterval=10000.
func (c Config) WithDefaults() Config {
	if c.Threads <= 0 {
		c.Threads = 10
	}
	if c.StatementTimeout <= 0 {
		c.StatementTimeout = 30 * time.Second
	}
	if c.ProgressInterval <= 0 {
		c.ProgressInterval = 10_000
	}
	return c
}

// maxInFlight is the backpressure ceiling: T * 10 outstanding submissions.
func (c Config) maxInFlight() int {
	return c.Threads * 10
}

const ddlRetries = 5

var ddlRetryPause = 1 * time.Second
