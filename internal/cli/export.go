package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tyuan87/lrcmv/internal/clip"
	"github.com/tyuan87/lrcmv/internal/export"
	"github.com/tyuan87/lrcmv/internal/lyrics"
)

var exportCmd = &cobra.Command{
	Use:   "export [lrc_file]",
	Short: "Convert an LRC file to SRT, VTT, or ASS subtitles",
	Long: `Convert a timed LRC lyric file into a standard subtitle format.

LRC entries carry only start times; each entry ends where the next one
begins, and the final entry is held for a configurable tail.

Examples:
  lrcmv export song.lrc
  lrcmv export song.lrc --format vtt
  lrcmv export song.lrc -f ass -o lyrics.ass`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().
		StringP("format", "f", "srt", "Output subtitle format (srt, vtt, ass)")
	exportCmd.Flags().
		Float64("tail", clip.DefaultTail.Seconds(), "Seconds the last lyric stays visible")
}

func runExport(cmd *cobra.Command, args []string) error {
	lrcPath := args[0]

	formatStr, _ := cmd.Flags().GetString("format")
	tailSecs, _ := cmd.Flags().GetFloat64("tail")
	outputPath, _ := cmd.Flags().GetString("output")
	language, _ := cmd.Flags().GetString("language")

	if _, err := os.Stat(lrcPath); os.IsNotExist(err) {
		return fmt.Errorf("lyric file not found: %s", lrcPath)
	}

	var format export.Format
	switch strings.ToLower(formatStr) {
	case "srt":
		format = export.FormatSRT
	case "vtt":
		format = export.FormatVTT
	case "ass":
		format = export.FormatASS
	default:
		return fmt.Errorf("unsupported format %q: use srt, vtt, or ass", formatStr)
	}

	if outputPath == "" {
		baseName := strings.TrimSuffix(lrcPath, filepath.Ext(lrcPath))
		outputPath = baseName + export.ExtensionForFormat(format)
	}

	tl, diags, err := lyrics.FromLRCFile(
		lrcPath,
		language,
		lyrics.DefaultStyle(),
		lyrics.SimpleFade{Highlighted: true},
	)
	if err != nil {
		return err
	}
	logDiagnostics(lrcPath, diags)

	tail := time.Duration(tailSecs * float64(time.Second))
	track := export.FromTimeline(tl, tail)

	writer, err := export.NewWriter(format)
	if err != nil {
		return err
	}
	if err := writer.Write(track, outputPath); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Subtitles exported successfully: %s\n", absOutput)
	fmt.Printf("  Entries: %d\n", len(track.Entries))

	return nil
}
