package lyrics

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var lrcLineRegex = regexp.MustCompile(`^\[(\d{2,}):(\d{2})\.(\d{2})\](.*)$`)

// ParseLRC reads line-oriented LRC text. Recognized lines match
// [mm:ss.cc]text; everything else is skipped and counted in the
// diagnostics. Out-of-order timestamps are re-sorted (stable, so
// duplicate timestamps keep input order) with a warning rather than
// failing, to tolerate hand-edited files. Only an input with zero
// valid entries is fatal.
func ParseLRC(r io.Reader) ([]Entry, Diagnostics, error) {
	var (
		entries []Entry
		diag    Diagnostics
	)

	scanner := bufio.NewScanner(r)
	lineNum := 0
	ordered := true

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		start, text, err := parseLRCLine(line)
		if err != nil {
			diag.SkippedLines++
			continue
		}

		if len(entries) > 0 && start < entries[len(entries)-1].Start {
			ordered = false
		}
		entries = append(entries, Entry{Start: start, Text: text})
	}

	if err := scanner.Err(); err != nil {
		return nil, diag, fmt.Errorf("error reading LRC input: %w", err)
	}

	if len(entries) == 0 {
		return nil, diag, &ParseError{
			TotalLines:   lineNum,
			SkippedLines: diag.SkippedLines,
		}
	}

	if !ordered {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Start < entries[j].Start
		})
		diag.Warnings = append(diag.Warnings,
			"timestamps out of order; entries were re-sorted")
	}

	return entries, diag, nil
}

// ParseLRCFile parses the LRC file at path.
func ParseLRCFile(path string) ([]Entry, Diagnostics, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Diagnostics{}, fmt.Errorf("failed to open LRC file: %w", err)
	}
	defer file.Close()

	entries, diag, err := ParseLRC(file)
	if err != nil {
		return nil, diag, fmt.Errorf("%s: %w", path, err)
	}
	return entries, diag, nil
}

func parseLRCLine(line string) (time.Duration, string, error) {
	matches := lrcLineRegex.FindStringSubmatch(strings.TrimSpace(line))
	if len(matches) != 5 {
		return 0, "", fmt.Errorf("line does not match [mm:ss.cc]text")
	}

	minutes, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, "", err
	}
	seconds, err := strconv.Atoi(matches[2])
	if err != nil {
		return 0, "", err
	}
	centis, err := strconv.Atoi(matches[3])
	if err != nil {
		return 0, "", err
	}

	if seconds >= 60 {
		return 0, "", fmt.Errorf("seconds out of range: %d", seconds)
	}

	text := strings.TrimSpace(matches[4])
	if text == "" {
		return 0, "", fmt.Errorf("empty lyric text")
	}

	start := time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(centis)*10*time.Millisecond

	return start, text, nil
}

// FormatLRCTimestamp renders a duration as an LRC [mm:ss.cc] tag.
func FormatLRCTimestamp(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	centis := (int(d.Milliseconds()) % 1000) / 10
	return fmt.Sprintf("[%02d:%02d.%02d]", minutes, seconds, centis)
}

// WriteLRC serializes entries as LRC text, one tagged line per entry.
func WriteLRC(w io.Writer, entries []Entry) error {
	var sb strings.Builder
	for _, entry := range entries {
		sb.WriteString(FormatLRCTimestamp(entry.Start))
		sb.WriteString(entry.Text)
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteLRCFile writes entries to an LRC file at path.
func WriteLRCFile(path string, entries []Entry) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create LRC file: %w", err)
	}
	defer file.Close()

	if err := WriteLRC(file, entries); err != nil {
		return fmt.Errorf("failed to write LRC file: %w", err)
	}
	return nil
}
