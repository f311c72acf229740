package lyrics

import (
	"fmt"
	"time"
)

// Entry is a single timed lyric line, active from Start until the next
// entry's Start (or indefinitely for the last entry of a timeline).
type Entry struct {
	Start time.Duration
	Text  string
}

// Diagnostics carries the non-fatal findings of a parse: malformed
// lines that were skipped and any warnings (for example, re-sorted
// out-of-order input). It accompanies successful results and is never
// an error by itself.
type Diagnostics struct {
	SkippedLines int
	Warnings     []string
}

// ParseError is returned when an LRC input yields no valid entries at all.
type ParseError struct {
	TotalLines   int
	SkippedLines int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf(
		"no valid lyric entries found (%d lines, %d skipped)",
		e.TotalLines, e.SkippedLines,
	)
}

// InvalidTimelineError is returned when timeline construction is handed
// entries that violate a timeline invariant.
type InvalidTimelineError struct {
	Reason string
}

func (e *InvalidTimelineError) Error() string {
	return "invalid timeline: " + e.Reason
}
