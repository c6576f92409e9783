// Package workload executes a stream of SQL statements concurrently
// against a PostgreSQL-compatible database, classifies each outcome, and
// accumulates statistics while keeping bounded memory.
package workload

import (
	"time"

	"github.com/google/uuid"
)

// Symbol is a one-character outcome classification.
type Symbol byte

const (
	SymbolOK        Symbol = '.'
	SymbolSyntax    Symbol = 'S'
	SymbolTimeout   Symbol = 't'
	SymbolCrash     Symbol = 'C'
	SymbolException Symbol = 'e'
)

// Outcome is the result of executing a single statement.
type Outcome struct {
	Symbol Symbol
	Tag    string
	Shape  string
}

// ExecutionStats is a plain value record summarizing a completed (or
// interrupted) run. Safe to print or serialize.
type ExecutionStats struct {
	RunID        uuid.UUID
	StartedAt    time.Time
	Total        int
	Success      int
	Failed       int
	BySymbol     map[Symbol]int
	ByTag        map[string]int
	UniqueShapes int
}

// newStats returns a zero-valued ExecutionStats stamped with runID and the
// current time.
func newStats(runID uuid.UUID, startedAt time.Time) *ExecutionStats {
	return &ExecutionStats{
		RunID:     runID,
		StartedAt: startedAt,
		BySymbol:  make(map[Symbol]int),
		ByTag:     make(map[string]int),
	}
}

// record folds one Outcome into the running totals. Must only be called
// from the producer goroutine.
func (s *ExecutionStats) record(o Outcome) {
	s.Total++
	if o.Symbol == SymbolOK {
		s.Success++
	} else {
		s.Failed++
	}
	s.BySymbol[o.Symbol]++
	if o.Tag != "" {
		s.ByTag[o.Tag]++
	}
}

// topTags returns up to n (tag, count) pairs sorted by count descending,
// ties broken by tag name for determinism.
func (s *ExecutionStats) topTags(n int) []tagCount {
	out := make([]tagCount, 0, len(s.ByTag))
	for tag, count := range s.ByTag {
		out = append(out, tagCount{tag, count})
	}
	sortTagCounts(out)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

type tagCount struct {
	Tag   string
	Count int
}

func sortTagCounts(tcs []tagCount) {
	for i := 1; i < len(tcs); i++ {
		for j := i; j > 0; j-- {
			a, b := tcs[j-1], tcs[j]
			if a.Count > b.Count || (a.Count == b.Count && a.Tag <= b.Tag) {
				break
			}
			tcs[j-1], tcs[j] = tcs[j], tcs[j-1]
		}
	}
}
