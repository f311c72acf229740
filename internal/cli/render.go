package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tyuan87/lrcmv/internal/clip"
	"github.com/tyuan87/lrcmv/internal/config"
	"github.com/tyuan87/lrcmv/internal/export"
	"github.com/tyuan87/lrcmv/internal/layout"
	"github.com/tyuan87/lrcmv/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render [config_file]",
	Short: "Render a lyric video from a project config",
	Long: `Render a lyric video described by a YAML project config.

The config names the audio track, background image, one or two LRC
lyric files, video geometry and the output path. Lyrics are laid out,
converted to a positioned subtitle script and burned into the video.

Examples:
  lrcmv render project.yaml
  lrcmv render project.yaml --draft
  lrcmv render project.yaml --limit 30 --keep-script`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().
		Bool("draft", false, "Fast low-quality encode for previewing")
	renderCmd.Flags().
		Float64("limit", 0, "Limit output duration in seconds (0 = full audio)")
	renderCmd.Flags().
		Int("fade-steps", 4, "Extra samples per fade ramp")
	renderCmd.Flags().
		Bool("keep-script", false, "Keep the generated .ass script next to the output")
	renderCmd.Flags().
		Float64("tail", clip.DefaultTail.Seconds(), "Seconds the last lyric stays visible")
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	draft, _ := cmd.Flags().GetBool("draft")
	limitSecs, _ := cmd.Flags().GetFloat64("limit")
	fadeSteps, _ := cmd.Flags().GetInt("fade-steps")
	keepScript, _ := cmd.Flags().GetBool("keep-script")
	tailSecs, _ := cmd.Flags().GetFloat64("tail")
	outputOverride, _ := cmd.Flags().GetString("output")

	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}
	if err := cfg.ValidateFiles(); err != nil {
		return err
	}

	outputPath := cfg.OutputPath()
	if outputOverride != "" {
		outputPath = outputOverride
	}

	logger.Infow("Starting lyric video render",
		"config", args[0],
		"output", outputPath,
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"fps", cfg.FPS,
		"draft", draft,
	)

	duration, err := render.ProbeDuration(cfg.AudioPath())
	if err != nil {
		return fmt.Errorf("failed to probe audio duration: %w", err)
	}
	if limitSecs > 0 {
		limit := time.Duration(limitSecs * float64(time.Second))
		if limit < duration {
			duration = limit
		}
	}

	logger.Infow("Audio probed", "duration", duration.String())

	timelines, err := buildTimelines(cfg)
	if err != nil {
		return err
	}

	engine := layout.NewEngine(layout.NewVerticalStack(cfg.Spacing))
	for _, tl := range timelines {
		if err := engine.AddElement(tl); err != nil {
			return fmt.Errorf("failed to register lyric element: %w", err)
		}
	}

	for _, conflict := range engine.DetectConflicts(cfg.Width, cfg.Height) {
		logger.Warnw("Lyric elements overlap at their preferred positions",
			"conflict", conflict.String(),
		)
	}

	arranged := engine.Arrange(cfg.Width, cfg.Height)

	tail := time.Duration(tailSecs * float64(time.Second))
	tracks := make([]export.EventTrack, 0, len(timelines))
	for _, tl := range timelines {
		placement, ok := arranged.Positions[tl.ElementID()]
		if !ok {
			placement = tl.RequiredRect(cfg.Width, cfg.Height)
		}

		gen := clip.NewGenerator(tl, placement)
		gen.SetTail(tail)
		descriptors := gen.Boundaries(duration, fadeSteps)

		logger.Infow("Generated clip descriptors",
			"track", tl.ElementID(),
			"entries", tl.Len(),
			"descriptors", len(descriptors),
		)

		tracks = append(tracks, export.EventTrack{
			Name:        tl.ElementID(),
			Style:       tl.Style(),
			Descriptors: descriptors,
		})
	}

	scriptPath, cleanup, err := scriptLocation(outputPath, keepScript)
	if err != nil {
		return err
	}
	defer cleanup()

	script := export.EventScript{
		Title:  strings.TrimSuffix(filepath.Base(outputPath), filepath.Ext(outputPath)),
		Width:  cfg.Width,
		Height: cfg.Height,
		Total:  duration,
		Tracks: tracks,
	}
	if err := script.Write(scriptPath); err != nil {
		return fmt.Errorf("failed to write subtitle script: %w", err)
	}

	logger.Infow("Wrote subtitle script", "path", scriptPath)

	opts := render.Options{
		Width:  cfg.Width,
		Height: cfg.Height,
		FPS:    cfg.FPS,
		Draft:  draft,
		Limit:  duration,
	}
	if err := render.Render(
		ctx,
		cfg.BackgroundPath(),
		cfg.AudioPath(),
		scriptPath,
		outputPath,
		opts,
	); err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Lyric video rendered successfully: %s\n", absOutput)
	fmt.Printf("  Tracks: %d\n", len(tracks))
	fmt.Printf("  Duration: %s\n", duration.String())

	return nil
}

// scriptLocation picks where the intermediate .ass script lives: next
// to the output when kept, otherwise in a temp dir removed afterwards.
func scriptLocation(outputPath string, keep bool) (string, func(), error) {
	if keep {
		if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
			return "", nil, fmt.Errorf("failed to create output directory: %w", err)
		}
		base := strings.TrimSuffix(outputPath, filepath.Ext(outputPath))
		return base + ".ass", func() {}, nil
	}

	tempDir, err := os.MkdirTemp("", "lrcmv-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	return filepath.Join(tempDir, "lyrics.ass"), func() { _ = os.RemoveAll(tempDir) }, nil
}
