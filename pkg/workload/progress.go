package workload

import (
	"fmt"
	"os"
	"sync"
)

const lineWidth = 80

// progressWriter renders the executor's real-time stdout protocol: one
// character per completed statement (wrapped at lineWidth), interleaved
// with periodic multi-line summaries delimited by a line of 80 dashes.
type progressWriter struct {
	mu     sync.Mutex
	column int
}

func newProgressWriter() progressWriter {
	return progressWriter{}
}

func (p *progressWriter) char(c byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(os.Stdout, "%c", c)
	p.column++
	if p.column >= lineWidth {
		fmt.Fprintln(os.Stdout)
		p.column = 0
	}
}

func (p *progressWriter) summary(stats *ExecutionStats) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.column != 0 {
		fmt.Fprintln(os.Stdout)
		p.column = 0
	}
	p.printSummaryLocked(stats)
}

func (p *progressWriter) finalSummary(stats *ExecutionStats) {
	p.summary(stats)
}

func (p *progressWriter) printSummaryLocked(stats *ExecutionStats) {
	dashes := make([]byte, lineWidth)
	for i := range dashes {
		dashes[i] = '-'
	}
	fmt.Fprintln(os.Stdout, string(dashes))
	fmt.Fprintf(os.Stdout, "total=%d success=%d failed=%d unique_shapes=%d\n",
		stats.Total, stats.Success, stats.Failed, stats.UniqueShapes)
	for sym, count := range stats.BySymbol {
		fmt.Fprintf(os.Stdout, "  %c: %d\n", sym, count)
	}
	for _, tc := range stats.topTags(5) {
		fmt.Fprintf(os.Stdout, "  %s: %d\n", tc.Tag, tc.Count)
	}
	fmt.Fprintln(os.Stdout)
}
