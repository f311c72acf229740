package lyrics

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tyuan87/lrcmv/internal/layout"
	"github.com/tyuan87/lrcmv/internal/metrics"
)

// Timeline owns one ordered lyric track plus its style and display
// mode, and answers time-indexed queries. Queries are pure functions
// of (timeline state, t): the timeline keeps no playback cursor, so
// concurrent queries on an unchanging timeline need no locking. Mode,
// style and measurer changes follow a single-writer discipline and
// must not race with in-flight queries.
type Timeline struct {
	entries   []Entry
	language  string
	style     Style
	mode      DisplayMode
	measurer  metrics.Measurer
	elementID string
	priority  int
	flexible  bool
}

// New builds a timeline from already-parsed entries. The entries must
// be non-empty and sorted ascending by start time; violations return
// an *InvalidTimelineError rather than silently re-sorting, so that
// authoring mistakes surface at construction.
func New(entries []Entry, language string, style Style, mode DisplayMode) (*Timeline, error) {
	if len(entries) == 0 {
		return nil, &InvalidTimelineError{Reason: "no entries"}
	}
	if mode == nil {
		return nil, &InvalidTimelineError{Reason: "no display mode"}
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Start < entries[i-1].Start {
			return nil, &InvalidTimelineError{Reason: "entries not sorted by start time"}
		}
	}
	for i, e := range entries {
		if e.Text == "" {
			return nil, &InvalidTimelineError{
				Reason: "empty text at entry " + FormatLRCTimestamp(entries[i].Start),
			}
		}
	}

	owned := make([]Entry, len(entries))
	copy(owned, entries)

	return &Timeline{
		entries:   owned,
		language:  language,
		style:     style,
		mode:      mode,
		elementID: defaultElementID(language),
		priority:  1,
		flexible:  true,
	}, nil
}

// FromLRCFile parses the LRC file at path and builds a timeline from it.
func FromLRCFile(path, language string, style Style, mode DisplayMode) (*Timeline, Diagnostics, error) {
	entries, diag, err := ParseLRCFile(path)
	if err != nil {
		return nil, diag, err
	}
	tl, err := New(entries, language, style, mode)
	if err != nil {
		return nil, diag, err
	}
	return tl, diag, nil
}

func defaultElementID(language string) string {
	prefix := language
	if prefix == "" {
		prefix = "timeline"
	}
	return prefix + "-" + uuid.NewString()[:8]
}

// QueryAt resolves the display state for playback time t. Deterministic
// and side-effect free; any t is valid, including times before the
// first entry (empty state) and past the last (last entry active).
func (tl *Timeline) QueryAt(t time.Duration) DisplayState {
	return tl.mode.Resolve(tl.entries, tl.ActiveIndex(t), t)
}

// ActiveIndex returns the index of the entry whose interval contains t,
// or -1 when t precedes the first entry.
func (tl *Timeline) ActiveIndex(t time.Duration) int {
	if t < 0 {
		return -1
	}
	// First index with Start > t; the active entry sits just before it.
	idx := sort.Search(len(tl.entries), func(i int) bool {
		return tl.entries[i].Start > t
	})
	return idx - 1
}

// RequiredRect reports the screen band this timeline may occupy under
// its current mode and style, independent of time.
func (tl *Timeline) RequiredRect(videoWidth, videoHeight int) layout.Rect {
	return tl.mode.RequiredRect(tl.entries, tl.style, tl.measurer, videoWidth, videoHeight)
}

// SetMode replaces the display mode. Takes effect on the next query.
func (tl *Timeline) SetMode(mode DisplayMode) {
	if mode != nil {
		tl.mode = mode
	}
}

// SetStyle replaces the style descriptor.
func (tl *Timeline) SetStyle(style Style) {
	tl.style = style
}

// SetMeasurer installs a text metrics service used to tighten
// RequiredRect. A nil measurer falls back to full-width bands.
func (tl *Timeline) SetMeasurer(m metrics.Measurer) {
	tl.measurer = m
}

func (tl *Timeline) SetElementID(id string) {
	if id != "" {
		tl.elementID = id
	}
}

func (tl *Timeline) SetPriority(p int) {
	tl.priority = p
}

func (tl *Timeline) SetFlexible(flexible bool) {
	tl.flexible = flexible
}

// ElementID implements layout.Element.
func (tl *Timeline) ElementID() string { return tl.elementID }

// Priority implements layout.Element; lower is placed first.
func (tl *Timeline) Priority() int { return tl.priority }

// Flexible implements layout.Element.
func (tl *Timeline) Flexible() bool { return tl.flexible }

// Entries returns a copy of the track; the timeline's own entries are
// replace-only and never edited in place.
func (tl *Timeline) Entries() []Entry {
	out := make([]Entry, len(tl.entries))
	copy(out, tl.entries)
	return out
}

// EntriesBefore returns the entries starting strictly before max.
func (tl *Timeline) EntriesBefore(max time.Duration) []Entry {
	var out []Entry
	for _, e := range tl.entries {
		if e.Start < max {
			out = append(out, e)
		}
	}
	return out
}

func (tl *Timeline) Language() string { return tl.language }

func (tl *Timeline) Style() Style { return tl.style }

func (tl *Timeline) Mode() DisplayMode { return tl.mode }

// Len returns the number of entries.
func (tl *Timeline) Len() int { return len(tl.entries) }

// Duration returns the start time of the last entry.
func (tl *Timeline) Duration() time.Duration {
	return tl.entries[len(tl.entries)-1].Start
}

// Info is a loggable summary of a timeline.
type Info struct {
	ElementID  string
	Language   string
	TotalLines int
	Duration   time.Duration
	Mode       string
	FontSize   int
}

func (tl *Timeline) Info() Info {
	return Info{
		ElementID:  tl.elementID,
		Language:   tl.language,
		TotalLines: len(tl.entries),
		Duration:   tl.Duration(),
		Mode:       tl.mode.Name(),
		FontSize:   tl.style.FontSize,
	}
}
