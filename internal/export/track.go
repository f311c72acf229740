// Package export serializes lyric timelines and clip descriptors into
// subtitle files consumed by players and by the ffmpeg burn-in filter.
package export

import (
	"time"

	"github.com/tyuan87/lrcmv/internal/lyrics"
)

// TrackEntry is a lyric line with an explicit end time, resolved for
// serialization. LRC entries carry only starts; the end comes from the
// next entry (or the tail duration for the last one).
type TrackEntry struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// Track is a serializable lyric track.
type Track struct {
	Entries  []TrackEntry
	Language string
}

// FromTimeline resolves a timeline into a track with explicit ends.
// tail bounds the terminal entry; non-positive means the clip default.
func FromTimeline(tl *lyrics.Timeline, tail time.Duration) *Track {
	if tail <= 0 {
		tail = 3 * time.Second
	}

	entries := tl.Entries()
	track := &Track{
		Entries:  make([]TrackEntry, 0, len(entries)),
		Language: tl.Language(),
	}

	for i, entry := range entries {
		end := entry.Start + tail
		if i+1 < len(entries) {
			end = entries[i+1].Start
		}
		track.Entries = append(track.Entries, TrackEntry{
			Start: entry.Start,
			End:   end,
			Text:  entry.Text,
		})
	}

	return track
}
