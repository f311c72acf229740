package metrics

import (
	"strings"
	"sync"

	"golang.org/x/text/width"
)

// Measurer estimates the rendered pixel size of a single-line text at a
// given font size. Real rasterization lives outside this tool; these
// estimates only need to be good enough for layout bands and overlap
// checks.
type Measurer interface {
	Measure(text string, fontSize int) (w, h int)
}

// lineHeightFactor matches the 1.2x line height the renderer applies.
const lineHeightFactor = 1.2

// Heuristic measures text using East Asian width classes: wide and
// fullwidth runes advance one em, everything else roughly half.
type Heuristic struct {
	mu    sync.Mutex
	cache map[cacheKey][2]int
}

type cacheKey struct {
	text string
	size int
}

func NewHeuristic() *Heuristic {
	return &Heuristic{cache: make(map[cacheKey][2]int)}
}

func (m *Heuristic) Measure(text string, fontSize int) (int, int) {
	key := cacheKey{text: text, size: fontSize}

	m.mu.Lock()
	if size, ok := m.cache[key]; ok {
		m.mu.Unlock()
		return size[0], size[1]
	}
	m.mu.Unlock()

	w := measureWidth(text, fontSize)
	h := LineHeight(fontSize)

	m.mu.Lock()
	m.cache[key] = [2]int{w, h}
	m.mu.Unlock()

	return w, h
}

func measureWidth(text string, fontSize int) int {
	var ems float64
	for _, r := range text {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			ems += 1.0
		case width.EastAsianAmbiguous:
			ems += 0.8
		default:
			ems += 0.55
		}
	}
	return int(ems * float64(fontSize))
}

// LineHeight returns the band height for one text line at fontSize.
func LineHeight(fontSize int) int {
	return int(float64(fontSize) * lineHeightFactor)
}

// MaxWidth returns the widest estimate across lines.
func MaxWidth(m Measurer, lines []string, fontSize int) int {
	maxW := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		w, _ := m.Measure(line, fontSize)
		if w > maxW {
			maxW = w
		}
	}
	return maxW
}
