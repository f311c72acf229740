// Package clip turns timeline queries into draw descriptors for the
// external renderer: timestamped text, position and opacity, with no
// rendering of its own.
package clip

import (
	"sort"
	"time"

	"github.com/tyuan87/lrcmv/internal/layout"
	"github.com/tyuan87/lrcmv/internal/lyrics"
)

// DefaultTail is the display duration granted to the last entry of a
// track, which has no successor to bound it.
const DefaultTail = 3 * time.Second

// previewFontShrink is how much smaller non-highlighted lines render.
const previewFontShrink = 20

// Line is one positioned text line within a descriptor. X and Y are
// the anchor point (horizontal center, vertical middle) in video space.
type Line struct {
	Text        string
	X           int
	Y           int
	Opacity     float64
	Highlighted bool
	FontSize    int
	Color       string
}

// Descriptor is a timestamped draw instruction. The renderer holds each
// descriptor until the next one's time.
type Descriptor struct {
	Time  time.Duration
	Lines []Line
}

// Generator produces descriptors for one timeline placed at a fixed
// region. It holds no generation state: regenerating any time range is
// independent of prior calls.
type Generator struct {
	timeline  *lyrics.Timeline
	placement layout.Rect
	tail      time.Duration
}

// NewGenerator builds a generator for a timeline placed at the given
// region (typically a layout engine assignment or the timeline's own
// required rect).
func NewGenerator(tl *lyrics.Timeline, placement layout.Rect) *Generator {
	return &Generator{
		timeline:  tl,
		placement: placement,
		tail:      DefaultTail,
	}
}

// SetTail overrides the display duration of the terminal entry.
func (g *Generator) SetTail(tail time.Duration) {
	if tail > 0 {
		g.tail = tail
	}
}

// At produces one descriptor per sample time, in the order given.
func (g *Generator) At(times []time.Duration) []Descriptor {
	descriptors := make([]Descriptor, 0, len(times))
	for _, t := range times {
		descriptors = append(descriptors, g.describe(t))
	}
	return descriptors
}

// Boundaries samples at entry transitions plus fade sub-samples inside
// each transition ramp, clamped to total. Output size depends on the
// number of entries, not the output frame rate; the renderer
// interpolates between descriptors.
func (g *Generator) Boundaries(total time.Duration, fadeSteps int) []Descriptor {
	if fadeSteps < 1 {
		fadeSteps = 1
	}

	entries := g.timeline.Entries()
	seen := make(map[time.Duration]struct{})
	var times []time.Duration

	add := func(t time.Duration) {
		if t < 0 || t > total {
			return
		}
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		times = append(times, t)
	}

	add(0)
	for i, entry := range entries {
		if entry.Start >= total {
			break
		}

		end := total
		if i+1 < len(entries) && entries[i+1].Start < total {
			end = entries[i+1].Start
		} else if i+1 == len(entries) && entry.Start+g.tail < total {
			end = entry.Start + g.tail
		}

		ramp := lyrics.FadeRamp
		if interval := end - entry.Start; interval < 2*ramp {
			ramp = interval / 2
		}

		add(entry.Start)
		for k := 1; k <= fadeSteps; k++ {
			step := ramp * time.Duration(k) / time.Duration(fadeSteps)
			add(entry.Start + step)
			add(end - step)
		}
		add(end)
	}

	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
	return g.At(times)
}

func (g *Generator) describe(t time.Duration) Descriptor {
	state := g.timeline.QueryAt(t)
	style := g.timeline.Style()
	centerX, centerY := g.placement.Center()

	descriptor := Descriptor{Time: t}
	lastIdx := g.timeline.Len() - 1
	for _, line := range []*lyrics.Line{state.Primary, state.Secondary} {
		if line == nil {
			continue
		}
		// The timeline holds the terminal entry forever; the tail
		// bounds how long it actually renders.
		if line.Index == lastIdx && t >= line.Entry.Start+g.tail {
			continue
		}

		fontSize := style.FontSize
		color := style.HighlightColor
		if !line.Highlighted {
			fontSize -= previewFontShrink
			color = style.FontColor
		}
		if fontSize < 1 {
			fontSize = 1
		}

		descriptor.Lines = append(descriptor.Lines, Line{
			Text:        line.Entry.Text,
			X:           centerX,
			Y:           centerY + line.YOffset,
			Opacity:     line.Opacity,
			Highlighted: line.Highlighted,
			FontSize:    fontSize,
			Color:       color,
		})
	}

	return descriptor
}
