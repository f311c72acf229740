package layout

import (
	"testing"
)

type stubElement struct {
	id       string
	rect     Rect
	priority int
	flexible bool
}

func (s *stubElement) RequiredRect(videoWidth, videoHeight int) Rect { return s.rect }
func (s *stubElement) ElementID() string                             { return s.id }
func (s *stubElement) Priority() int                                 { return s.priority }
func (s *stubElement) Flexible() bool                                { return s.flexible }

func TestEngineRejectsDuplicateIDs(t *testing.T) {
	engine := NewEngine(NewVerticalStack(20))

	if err := engine.AddElement(&stubElement{id: "main"}); err != nil {
		t.Fatalf("first AddElement error: %v", err)
	}
	if err := engine.AddElement(&stubElement{id: "main"}); err == nil {
		t.Error("expected error for duplicate element ID")
	}
	if got := len(engine.Elements()); got != 1 {
		t.Errorf("engine holds %d elements, want 1", got)
	}
}

func TestEngineDetectConflicts(t *testing.T) {
	engine := NewEngine(NewVerticalStack(20))

	_ = engine.AddElement(&stubElement{
		id:       "main",
		rect:     Rect{X: 0, Y: 500, Width: 720, Height: 200},
		priority: 1,
	})
	_ = engine.AddElement(&stubElement{
		id:       "aux",
		rect:     Rect{X: 0, Y: 600, Width: 720, Height: 200},
		priority: 2,
	})

	conflicts := engine.DetectConflicts(720, 1280)
	if len(conflicts) != 1 {
		t.Fatalf("got %d conflicts, want 1", len(conflicts))
	}
	if conflicts[0].IDA != "main" || conflicts[0].IDB != "aux" {
		t.Errorf("unexpected conflict: %+v", conflicts[0])
	}
}

func TestEngineNoConflictWhenSeparated(t *testing.T) {
	engine := NewEngine(NewVerticalStack(20))

	_ = engine.AddElement(&stubElement{
		id:   "main",
		rect: Rect{X: 0, Y: 100, Width: 720, Height: 200},
	})
	_ = engine.AddElement(&stubElement{
		id:   "aux",
		rect: Rect{X: 0, Y: 300, Width: 720, Height: 200},
	})

	// Rects touch at y=300 but share no area.
	if conflicts := engine.DetectConflicts(720, 1280); len(conflicts) != 0 {
		t.Errorf("unexpected conflicts: %v", conflicts)
	}
}

func TestVerticalStackArrangeSeparatesElements(t *testing.T) {
	engine := NewEngine(NewVerticalStack(30))

	_ = engine.AddElement(&stubElement{
		id:       "aux",
		rect:     Rect{X: 100, Y: 600, Width: 500, Height: 150},
		priority: 2,
	})
	_ = engine.AddElement(&stubElement{
		id:       "main",
		rect:     Rect{X: 50, Y: 550, Width: 600, Height: 250},
		priority: 1,
	})

	result := engine.Arrange(720, 1280)

	main, ok := result.Positions["main"]
	if !ok {
		t.Fatal("no position assigned to main")
	}
	aux, ok := result.Positions["aux"]
	if !ok {
		t.Fatal("no position assigned to aux")
	}

	// Priority 1 stacks above priority 2.
	if main.Y+main.Height+30 != aux.Y {
		t.Errorf("stack spacing violated: main %+v, aux %+v", main, aux)
	}
	if main.Overlaps(aux) {
		t.Errorf("arranged rects overlap: main %+v, aux %+v", main, aux)
	}

	// Sizes and horizontal placement are preserved.
	if main.Width != 600 || main.Height != 250 || main.X != 50 {
		t.Errorf("main geometry changed: %+v", main)
	}
	if aux.Width != 500 || aux.Height != 150 || aux.X != 100 {
		t.Errorf("aux geometry changed: %+v", aux)
	}

	// Centered: as much room above the stack as below.
	total := main.Height + 30 + aux.Height
	wantY := (1280 - total) / 2
	if main.Y != wantY {
		t.Errorf("stack top = %d, want %d", main.Y, wantY)
	}
}

func TestVerticalStackExplicitStartY(t *testing.T) {
	stack := &VerticalStack{Spacing: 10, StartY: 40}
	elements := []Element{
		&stubElement{id: "a", rect: Rect{Width: 100, Height: 50}},
	}

	result := stack.Arrange(elements, 720, 1280)
	if got := result.Positions["a"].Y; got != 40 {
		t.Errorf("Y = %d, want 40", got)
	}
}

func TestArrangeEmptyEngine(t *testing.T) {
	engine := NewEngine(NewVerticalStack(20))
	result := engine.Arrange(720, 1280)
	if len(result.Positions) != 0 {
		t.Errorf("expected no positions, got %v", result.Positions)
	}
}
