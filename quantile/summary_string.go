package quantile

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// String renders a compact per-buffer summary, the same shape as the
// teacher's BySlices debug view: level, weight, and element count per
// buffer, one line each.
func (s *Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "quantile.Summary{n=%d unbuffered=%d buffers=%d}\n", s.approximateCount(), len(s.unbuffered), s.buffers.Len())
	for _, buf := range s.buffers.items {
		fmt.Fprintf(&b, "  level=%d weight=%d len=%d\n", buf.Level, buf.Weight, len(buf.Elements))
	}
	return b.String()
}

// DebugDump returns a full structural dump of s via go-spew, useful in test
// failure messages that need to see exact buffer contents rather than just
// shapes.
func (s *Summary) DebugDump() string {
	return spew.Sdump(s)
}

func (s *Summary) approximateCount() uint64 {
	total := uint64(len(s.unbuffered))
	for _, buf := range s.buffers.items {
		total += s.params.bufferSize * buf.Weight
	}
	return total
}
