// Package render turns a background image, an audio track and a
// positioned subtitle script into the final lyric video via ffmpeg.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/tyuan87/lrcmv/internal/ffmpeg"
)

// Options controls encoding of the output video.
type Options struct {
	Width  int
	Height int
	FPS    int
	// Draft trades quality for speed (ultrafast preset, higher CRF).
	Draft bool
	// Limit caps the output duration; zero means full audio length.
	Limit time.Duration
}

// JSON output from ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// ProbeDuration returns the duration of an audio or video file.
func ProbeDuration(path string) (time.Duration, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return 0, fmt.Errorf("file not found: %s", path)
	}

	ffprobePath, err := ffmpegbin.FFprobePath()
	if err != nil {
		return 0, err
	}

	cmd := exec.Command(ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(out.Bytes(), &probe); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	var seconds float64
	if _, err := fmt.Sscanf(probe.Format.Duration, "%f", &seconds); err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}

// Render composites the looping background, burned-in subtitles and
// audio into outputPath.
func Render(
	ctx context.Context,
	backgroundPath, audioPath, subtitlePath, outputPath string,
	opts Options,
) error {
	for _, path := range []string{backgroundPath, audioPath, subtitlePath} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("input file not found: %s", path)
		}
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("invalid output dimensions %dx%d", opts.Width, opts.Height)
	}
	if opts.FPS <= 0 {
		opts.FPS = 30
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	duration, err := ProbeDuration(audioPath)
	if err != nil {
		return fmt.Errorf("failed to probe audio duration: %w", err)
	}
	if opts.Limit > 0 && opts.Limit < duration {
		duration = opts.Limit
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	video := ffmpeg.Input(backgroundPath, ffmpeg.KwArgs{
		"loop":      1,
		"framerate": opts.FPS,
	}).
		Filter("scale", ffmpeg.Args{
			fmt.Sprintf("%d:%d:force_original_aspect_ratio=increase", opts.Width, opts.Height),
		}).
		Filter("crop", ffmpeg.Args{
			fmt.Sprintf("%d:%d", opts.Width, opts.Height),
		}).
		Filter("subtitles", ffmpeg.Args{escapeFilterPath(subtitlePath)})

	audio := ffmpeg.Input(audioPath)

	preset := "medium"
	crf := 18
	if opts.Draft {
		preset = "ultrafast"
		crf = 28
	}

	kwargs := ffmpeg.KwArgs{
		"c:v":     "libx264",
		"preset":  preset,
		"crf":     crf,
		"c:a":     "aac",
		"b:a":     "192k",
		"pix_fmt": "yuv420p",
		"t":       fmt.Sprintf("%.3f", duration.Seconds()),
	}

	err = ffmpeg.Output([]*ffmpeg.Stream{video, audio}, outputPath, kwargs).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		Run()
	if err != nil {
		return fmt.Errorf("rendering failed: %w", err)
	}

	return nil
}

// escapeFilterPath quotes a path for use inside an ffmpeg filter
// argument, where colons and backslashes are meta characters.
func escapeFilterPath(path string) string {
	escaped := strings.ReplaceAll(path, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, ":", `\:`)
	escaped = strings.ReplaceAll(escaped, "'", `\'`)
	return escaped
}
