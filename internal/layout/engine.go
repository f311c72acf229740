package layout

import (
	"fmt"
	"sort"
)

// Element is a visual element that can take part in layout. Implemented
// by lyric timelines, but the engine only sees this interface.
type Element interface {
	// RequiredRect reports the screen region the element may occupy
	// under its current configuration, for the given video size.
	RequiredRect(videoWidth, videoHeight int) Rect

	// ElementID uniquely identifies the element within an engine.
	ElementID() string

	// Priority orders elements during arrangement; lower is placed first.
	Priority() int

	// Flexible reports whether the element may be repositioned.
	Flexible() bool
}

// Conflict records an advisory overlap between two elements' required regions.
type Conflict struct {
	IDA string
	IDB string
}

func (c Conflict) String() string {
	return fmt.Sprintf("elements %q and %q overlap", c.IDA, c.IDB)
}

// Result holds a proposed arrangement: element ID to assigned region.
type Result struct {
	Positions map[string]Rect
}

// Strategy arranges elements in video space.
type Strategy interface {
	Arrange(elements []Element, videoWidth, videoHeight int) Result
}

// Engine manages the 2D space allocation for a set of elements. It is
// advisory only: it reports conflicts and proposes arrangements, and
// never repositions elements itself.
type Engine struct {
	strategy Strategy
	elements []Element
}

func NewEngine(strategy Strategy) *Engine {
	return &Engine{strategy: strategy}
}

// AddElement registers an element; duplicate IDs are rejected.
func (e *Engine) AddElement(el Element) error {
	for _, existing := range e.elements {
		if existing.ElementID() == el.ElementID() {
			return fmt.Errorf("element ID %q already registered", el.ElementID())
		}
	}
	e.elements = append(e.elements, el)
	return nil
}

// Elements returns the registered elements in insertion order.
func (e *Engine) Elements() []Element {
	out := make([]Element, len(e.elements))
	copy(out, e.elements)
	return out
}

// ClearElements drops all registered elements.
func (e *Engine) ClearElements() {
	e.elements = nil
}

// DetectConflicts checks the elements' self-reported regions (before any
// arrangement) for pairwise overlap and returns one Conflict per
// unordered pair.
func (e *Engine) DetectConflicts(videoWidth, videoHeight int) []Conflict {
	if len(e.elements) < 2 {
		return nil
	}

	rects := make([]Rect, len(e.elements))
	for i, el := range e.elements {
		rects[i] = el.RequiredRect(videoWidth, videoHeight)
	}

	var conflicts []Conflict
	for _, pair := range CheckAll(rects) {
		conflicts = append(conflicts, Conflict{
			IDA: e.elements[pair.A].ElementID(),
			IDB: e.elements[pair.B].ElementID(),
		})
	}
	return conflicts
}

// Arrange computes a non-overlapping arrangement proposal using the
// engine's strategy. Callers decide whether to apply it.
func (e *Engine) Arrange(videoWidth, videoHeight int) Result {
	return e.strategy.Arrange(e.elements, videoWidth, videoHeight)
}

// VerticalStack arranges elements top to bottom by priority, separated
// by Spacing pixels. When StartY is negative the stack is centered
// vertically in the video.
type VerticalStack struct {
	Spacing int
	StartY  int
}

func NewVerticalStack(spacing int) *VerticalStack {
	return &VerticalStack{Spacing: spacing, StartY: -1}
}

func (s *VerticalStack) Arrange(elements []Element, videoWidth, videoHeight int) Result {
	result := Result{Positions: make(map[string]Rect, len(elements))}
	if len(elements) == 0 {
		return result
	}

	ordered := make([]Element, len(elements))
	copy(ordered, elements)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority() < ordered[j].Priority()
	})

	rects := make([]Rect, len(ordered))
	totalHeight := s.Spacing * (len(ordered) - 1)
	for i, el := range ordered {
		rects[i] = el.RequiredRect(videoWidth, videoHeight)
		totalHeight += rects[i].Height
	}

	currentY := s.StartY
	if currentY < 0 {
		currentY = (videoHeight - totalHeight) / 2
	}

	for i, el := range ordered {
		r := rects[i]
		result.Positions[el.ElementID()] = Rect{
			X:      r.X,
			Y:      currentY,
			Width:  r.Width,
			Height: r.Height,
		}
		currentY += r.Height + s.Spacing
	}

	return result
}
