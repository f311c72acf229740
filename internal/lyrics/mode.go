package lyrics

import (
	"time"

	"github.com/tyuan87/lrcmv/internal/layout"
	"github.com/tyuan87/lrcmv/internal/metrics"
)

// FadeRamp is the transition window at the edges of an entry's active
// interval. Intervals shorter than twice the ramp shrink it to half the
// interval so opacity still peaks at 1.
const FadeRamp = 300 * time.Millisecond

// Line is one displayable text line resolved for a query time. YOffset
// is relative to the vertical center of the timeline's assigned region.
type Line struct {
	Entry       Entry
	Index       int
	YOffset     int
	Opacity     float64
	Highlighted bool
}

// DisplayState is the result of a time-indexed query: which line(s)
// are visible and how. Both fields may be nil.
type DisplayState struct {
	Primary   *Line
	Secondary *Line
}

// DisplayMode decides which entries are shown at a query time and what
// vertical band a timeline needs. New modes are added by implementing
// this interface; timeline internals stay untouched.
type DisplayMode interface {
	// Name identifies the mode for logs and summaries.
	Name() string

	// Resolve maps the active entry index (-1 when the query time
	// precedes the first entry) to a display state. Pure function of
	// its arguments.
	Resolve(entries []Entry, active int, t time.Duration) DisplayState

	// RequiredRect reports the band the mode may occupy across all
	// time. When m is nil a conservative full-width band is returned.
	RequiredRect(entries []Entry, style Style, m metrics.Measurer, videoWidth, videoHeight int) layout.Rect
}

// fadeWeight computes the opacity for time t within [start, end).
// A negative end means the interval is unbounded (last entry): the
// line fades in and then holds.
func fadeWeight(t, start, end time.Duration) float64 {
	if t < start {
		return 0
	}

	ramp := FadeRamp
	if end >= 0 {
		interval := end - start
		if interval <= 0 {
			return 0
		}
		if interval < 2*ramp {
			ramp = interval / 2
		}
	}
	if ramp <= 0 {
		return 1
	}

	if rel := t - start; rel < ramp {
		return float64(rel) / float64(ramp)
	}
	if end >= 0 {
		if remaining := end - t; remaining < ramp {
			if remaining < 0 {
				return 0
			}
			return float64(remaining) / float64(ramp)
		}
	}
	return 1
}

// effectiveEnd returns the end of entry i's active interval, or -1 for
// the last entry.
func effectiveEnd(entries []Entry, i int) time.Duration {
	if i+1 < len(entries) {
		return entries[i+1].Start
	}
	return -1
}

// horizontalBand computes the X extent of a band: the worst-case
// measured text width, centered, or the full video width when no
// measurer is available.
func horizontalBand(entries []Entry, style Style, m metrics.Measurer, videoWidth int) (x, w int) {
	if m == nil {
		return 0, videoWidth
	}
	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Text
	}
	maxW := metrics.MaxWidth(m, texts, style.FontSize)
	if maxW <= 0 || maxW >= videoWidth {
		return 0, videoWidth
	}
	return (videoWidth - maxW) / 2, maxW
}

// SimpleFade shows the single active line with fade transitions.
// YPosition is the line's vertical center in video space; zero means
// the middle of the video.
type SimpleFade struct {
	YPosition   int
	Highlighted bool
}

func (s SimpleFade) Name() string { return "simple_fade" }

func (s SimpleFade) Resolve(entries []Entry, active int, t time.Duration) DisplayState {
	if active < 0 || active >= len(entries) {
		return DisplayState{}
	}
	entry := entries[active]
	return DisplayState{
		Primary: &Line{
			Entry:       entry,
			Index:       active,
			Opacity:     fadeWeight(t, entry.Start, effectiveEnd(entries, active)),
			Highlighted: s.Highlighted,
		},
	}
}

func (s SimpleFade) RequiredRect(entries []Entry, style Style, m metrics.Measurer, videoWidth, videoHeight int) layout.Rect {
	yPos := s.YPosition
	if yPos == 0 {
		yPos = videoHeight / 2
	}
	textHeight := metrics.LineHeight(style.FontSize)
	x, w := horizontalBand(entries, style, m, videoWidth)
	return layout.Rect{
		X:      x,
		Y:      yPos - textHeight/2,
		Width:  w,
		Height: textHeight,
	}
}

// EnhancedPreview shows the active line plus a non-highlighted preview
// of the next line. Offsets are relative to the band center.
type EnhancedPreview struct {
	CurrentYOffset int
	PreviewYOffset int
}

// DefaultEnhancedPreview returns the stock current/preview offsets.
func DefaultEnhancedPreview() EnhancedPreview {
	return EnhancedPreview{CurrentYOffset: -50, PreviewYOffset: 80}
}

func (e EnhancedPreview) Name() string { return "enhanced_preview" }

func (e EnhancedPreview) Resolve(entries []Entry, active int, t time.Duration) DisplayState {
	if active < 0 || active >= len(entries) {
		return DisplayState{}
	}

	entry := entries[active]
	end := effectiveEnd(entries, active)
	opacity := fadeWeight(t, entry.Start, end)

	state := DisplayState{
		Primary: &Line{
			Entry:       entry,
			Index:       active,
			YOffset:     e.CurrentYOffset,
			Opacity:     opacity,
			Highlighted: true,
		},
	}

	// No preview after the terminal entry, and never preview the
	// active line as its own successor.
	next := active + 1
	if next < len(entries) && entries[next].Text != entry.Text {
		state.Secondary = &Line{
			Entry:       entries[next],
			Index:       next,
			YOffset:     e.PreviewYOffset,
			Opacity:     opacity,
			Highlighted: false,
		}
	}

	return state
}

func (e EnhancedPreview) RequiredRect(entries []Entry, style Style, m metrics.Measurer, videoWidth, videoHeight int) layout.Rect {
	textHeight := metrics.LineHeight(style.FontSize)
	totalHeight := abs(e.CurrentYOffset) + abs(e.PreviewYOffset) + textHeight*2
	centerY := videoHeight / 2
	x, w := horizontalBand(entries, style, m, videoWidth)
	return layout.Rect{
		X:      x,
		Y:      centerY - totalHeight/2,
		Width:  w,
		Height: totalHeight,
	}
}

// BilingualSync places one of a main/aux timeline pair. Both timelines
// carry the same offsets; Aux selects which band this one occupies and
// drops the highlight.
type BilingualSync struct {
	MainYOffset int
	AuxYOffset  int
	Aux         bool
}

// DefaultBilingualSync returns the stock main/aux offsets.
func DefaultBilingualSync(aux bool) BilingualSync {
	return BilingualSync{MainYOffset: -80, AuxYOffset: 60, Aux: aux}
}

func (b BilingualSync) Name() string { return "bilingual_sync" }

func (b BilingualSync) Resolve(entries []Entry, active int, t time.Duration) DisplayState {
	if active < 0 || active >= len(entries) {
		return DisplayState{}
	}

	offset := b.MainYOffset
	if b.Aux {
		offset = b.AuxYOffset
	}

	entry := entries[active]
	return DisplayState{
		Primary: &Line{
			Entry:       entry,
			Index:       active,
			YOffset:     offset,
			Opacity:     fadeWeight(t, entry.Start, effectiveEnd(entries, active)),
			Highlighted: !b.Aux,
		},
	}
}

func (b BilingualSync) RequiredRect(entries []Entry, style Style, m metrics.Measurer, videoWidth, videoHeight int) layout.Rect {
	textHeight := metrics.LineHeight(style.FontSize)
	totalHeight := abs(b.MainYOffset) + abs(b.AuxYOffset) + textHeight*2
	centerY := videoHeight / 2
	x, w := horizontalBand(entries, style, m, videoWidth)
	return layout.Rect{
		X:      x,
		Y:      centerY - totalHeight/2,
		Width:  w,
		Height: totalHeight,
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
