package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tyuan87/lrcmv/internal/clip"
	"github.com/tyuan87/lrcmv/internal/lyrics"
)

func TestEventScriptWrite(t *testing.T) {
	style := lyrics.DefaultStyle()
	script := EventScript{
		Title:  "test video",
		Width:  720,
		Height: 1280,
		Total:  20 * time.Second,
		Tracks: []EventTrack{
			{
				Name:  "main",
				Style: style,
				Descriptors: []clip.Descriptor{
					{
						Time: 5 * time.Second,
						Lines: []clip.Line{
							{
								Text:        "first line",
								X:           360,
								Y:           590,
								Opacity:     1,
								Highlighted: true,
								FontSize:    80,
								Color:       style.HighlightColor,
							},
						},
					},
					{
						Time: 10 * time.Second,
						Lines: []clip.Line{
							{
								Text:     "second line",
								X:        360,
								Y:        590,
								Opacity:  0.5,
								FontSize: 80,
								Color:    "white",
							},
						},
					},
				},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "events.ass")
	if err := script.Write(path); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	for _, want := range []string{
		"Title: test video",
		"PlayResX: 720",
		"PlayResY: 1280",
		"Style: main,Arial,80,",
		// First descriptor holds until the second one's time.
		"Dialogue: 0,0:00:05.00,0:00:10.00,main,,0,0,0,,{\\an5\\pos(360,590)\\fs80",
		// Last descriptor holds until the script total.
		"Dialogue: 0,0:00:10.00,0:00:20.00,main,",
		// Gold highlight in BGR order.
		"\\c&H00D7FF&",
		// Full opacity is alpha zero; half is 0x7F.
		"\\alpha&H00&",
		"\\alpha&H7F&",
		"first line",
		"second line",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("script missing %q:\n%s", want, content)
		}
	}
}

func TestEventScriptSkipsInvisibleLines(t *testing.T) {
	script := EventScript{
		Width:  720,
		Height: 1280,
		Total:  10 * time.Second,
		Tracks: []EventTrack{
			{
				Name:  "main",
				Style: lyrics.DefaultStyle(),
				Descriptors: []clip.Descriptor{
					{Time: 0}, // no lines at all
					{
						Time: 2 * time.Second,
						Lines: []clip.Line{
							{Text: "hidden", Opacity: 0, FontSize: 80, Color: "white"},
						},
					},
					{
						Time: 4 * time.Second,
						Lines: []clip.Line{
							{Text: "visible", Opacity: 1, FontSize: 80, Color: "white"},
						},
					},
				},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "events.ass")
	if err := script.Write(path); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	data, _ := os.ReadFile(path)
	content := string(data)

	if strings.Contains(content, "hidden") {
		t.Error("fully transparent line should not be emitted")
	}
	if !strings.Contains(content, "visible") {
		t.Error("visible line missing from script")
	}
}

func TestOpacityToAlpha(t *testing.T) {
	tests := []struct {
		opacity float64
		want    int
	}{
		{1, 0},
		{0, 255},
		{0.5, 127},
		{2, 0},    // clamped
		{-1, 255}, // clamped
	}

	for _, tt := range tests {
		if got := opacityToAlpha(tt.opacity); got != tt.want {
			t.Errorf("opacityToAlpha(%v) = %d, want %d", tt.opacity, got, tt.want)
		}
	}
}

func TestColorConversion(t *testing.T) {
	tests := []struct {
		color string
		style string
	}{
		{"white", "&H00FFFFFF"},
		{"gold", "&H0000D7FF"},
		{"#FFD700", "&H0000D7FF"},
		{"#112233", "&H00332211"},
		{"not-a-color", "&H00FFFFFF"},
	}

	for _, tt := range tests {
		if got := assStyleColor(tt.color); got != tt.style {
			t.Errorf("assStyleColor(%q) = %q, want %q", tt.color, got, tt.style)
		}
	}

	if got := assOverrideColor("gold"); got != "&H00D7FF&" {
		t.Errorf("assOverrideColor(gold) = %q", got)
	}
}
