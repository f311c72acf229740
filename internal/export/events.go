package export

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tyuan87/lrcmv/internal/clip"
	"github.com/tyuan87/lrcmv/internal/lyrics"
)

// EventTrack pairs one timeline's descriptors with its style for
// burn-in rendering.
type EventTrack struct {
	Name        string
	Style       lyrics.Style
	Descriptors []clip.Descriptor
}

// EventScript renders clip descriptors as a positioned ASS script: one
// dialogue event per descriptor interval and line, with explicit
// \pos/\fs/\c/\alpha override tags. The ffmpeg subtitles filter then
// reproduces the engine's placement and fade exactly.
type EventScript struct {
	Title  string
	Width  int
	Height int
	Total  time.Duration
	Tracks []EventTrack
}

func (s *EventScript) Write(path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	var sb strings.Builder

	sb.WriteString("[Script Info]\n")
	title := s.Title
	if title == "" {
		title = "lrcmv lyric events"
	}
	sb.WriteString(fmt.Sprintf("Title: %s\n", title))
	sb.WriteString("ScriptType: v4.00+\n")
	sb.WriteString(fmt.Sprintf("PlayResX: %d\n", s.Width))
	sb.WriteString(fmt.Sprintf("PlayResY: %d\n", s.Height))
	sb.WriteString("WrapStyle: 2\n")
	sb.WriteString("Collisions: Normal\n\n")

	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	for _, track := range s.Tracks {
		outline := 2
		if track.Style.GlowEnabled {
			outline = 4
		}
		sb.WriteString(fmt.Sprintf(
			"Style: %s,Arial,%d,%s,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,%d,1,5,10,10,10,1\n",
			track.Name,
			track.Style.FontSize,
			assStyleColor(track.Style.FontColor),
			outline,
		))
	}
	sb.WriteString("\n[Events]\n")
	sb.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	for _, track := range s.Tracks {
		s.writeTrackEvents(&sb, track)
	}

	return os.WriteFile(path, []byte(sb.String()), 0644)
}

func (s *EventScript) writeTrackEvents(sb *strings.Builder, track EventTrack) {
	for i, desc := range track.Descriptors {
		if len(desc.Lines) == 0 {
			continue
		}

		end := s.Total
		if i+1 < len(track.Descriptors) {
			end = track.Descriptors[i+1].Time
		}
		if end <= desc.Time {
			continue
		}

		for _, line := range desc.Lines {
			if line.Opacity <= 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf(
				"Dialogue: 0,%s,%s,%s,,0,0,0,,{\\an5\\pos(%d,%d)\\fs%d\\c%s\\alpha&H%02X&}%s\n",
				formatASSTime(desc.Time),
				formatASSTime(end),
				track.Name,
				line.X,
				line.Y,
				line.FontSize,
				assOverrideColor(line.Color),
				opacityToAlpha(line.Opacity),
				escapeASSText(line.Text),
			))
		}
	}
}

func opacityToAlpha(opacity float64) int {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return int((1 - opacity) * 255)
}

var namedColors = map[string]string{
	"white":  "FFFFFF",
	"black":  "000000",
	"gold":   "FFD700",
	"yellow": "FFFF00",
	"red":    "DC143C",
	"silver": "C0C0C0",
}

// rgbHex normalizes a color ("#RRGGBB" or a known name) to RRGGBB hex.
func rgbHex(color string) string {
	c := strings.TrimSpace(strings.ToLower(color))
	if hex, ok := namedColors[c]; ok {
		return hex
	}
	c = strings.TrimPrefix(c, "#")
	if len(c) == 6 && isHex(c) {
		return strings.ToUpper(c)
	}
	return "FFFFFF"
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// ASS colors are BGR ordered.
func assStyleColor(color string) string {
	rgb := rgbHex(color)
	return "&H00" + rgb[4:6] + rgb[2:4] + rgb[0:2]
}

func assOverrideColor(color string) string {
	rgb := rgbHex(color)
	return "&H" + rgb[4:6] + rgb[2:4] + rgb[0:2] + "&"
}
