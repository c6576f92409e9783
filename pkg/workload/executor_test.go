package workload

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestConfigWithDefaultsFillsZeroFields(t *testing.T) {
	c := Config{}.WithDefaults()
	require.Equal(t, 10, c.Threads)
	require.Equal(t, 30*time.Second, c.StatementTimeout)
	require.Equal(t, 10_000, c.ProgressInterval)
}

func TestConfigWithDefaultsPreservesSetFields(t *testing.T) {
	c := Config{Threads: 4, StatementTimeout: 5 * time.Second, ProgressInterval: 100}.WithDefaults()
	require.Equal(t, 4, c.Threads)
	require.Equal(t, 5*time.Second, c.StatementTimeout)
	require.Equal(t, 100, c.ProgressInterval)
}

func TestMaxInFlightIsTenTimesThreads(t *testing.T) {
	c := Config{Threads: 7}
	require.Equal(t, 70, c.maxInFlight())
}

func TestIsDDLFenceRecognizesKeywords(t *testing.T) {
	cases := []struct {
		sql  string
		want bool
	}{
		{"CREATE TABLE t (id int)", true},
		{"  alter table t add column x int", true},
		{"DROP TABLE t", true},
		{"truncate t", true},
		{"SELECT * FROM t", false},
		{"INSERT INTO t VALUES (1)", false},
		{"", false},
	}
	for _, c := range cases {
		require.Equalf(t, c.want, isDDLFence(c.sql), "isDDLFence(%q)", c.sql)
	}
}

// TestAbsorbAccountingInvariant exercises Executor.absorb directly, without
// any network connection, to check the specification's core accounting
// invariant: Total always equals Success+Failed, and the sum of BySymbol
// equals Total.
func TestAbsorbAccountingInvariant(t *testing.T) {
	e := New(Config{ProgressInterval: 1_000_000}, nil)
	stats := newStats(uuid.New(), time.Now())
	shapes := make(map[string]struct{})

	outcomes := []Outcome{
		{Symbol: SymbolOK, Shape: "SELECT ?"},
		{Symbol: SymbolOK, Shape: "SELECT ?"},
		{Symbol: SymbolSyntax, Tag: "42601", Shape: "BAD SQL"},
		{Symbol: SymbolTimeout, Tag: "DeadlineExceeded", Shape: "SELECT ?"},
		{Symbol: SymbolCrash, Tag: "ConnectFailed", Shape: ""},
	}
	for _, o := range outcomes {
		e.absorb(stats, shapes, o)
	}

	require.Equal(t, len(outcomes), stats.Total)
	require.Equal(t, stats.Total, stats.Success+stats.Failed)
	require.Equal(t, 2, stats.Success)

	sum := 0
	for _, n := range stats.BySymbol {
		sum += n
	}
	require.Equal(t, stats.Total, sum)
	require.Len(t, shapes, 2, "empty shape must be excluded")
}

func TestTopTagsOrderedByCountThenName(t *testing.T) {
	stats := newStats(uuid.New(), time.Now())
	for _, tag := range []string{"a", "b", "b", "c", "c", "c"} {
		stats.ByTag[tag]++
	}
	got := stats.topTags(2)
	require.Len(t, got, 2)
	require.Equal(t, tagCount{"c", 3}, got[0])
	require.Equal(t, tagCount{"b", 2}, got[1])
}
