package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tyuan87/lrcmv/internal/config"
	"github.com/tyuan87/lrcmv/internal/layout"
)

var checkCmd = &cobra.Command{
	Use:   "check [config_file]",
	Short: "Validate a project config and report lyric layout conflicts",
	Long: `Validate a project config without rendering.

Checks that all input files exist, parses the LRC tracks, and reports
whether the lyric elements overlap at their preferred positions. When
they do, a non-overlapping vertical arrangement is printed.

Examples:
  lrcmv check project.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}
	if err := cfg.ValidateFiles(); err != nil {
		return err
	}

	timelines, err := buildTimelines(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Config OK: %s\n", args[0])
	fmt.Printf("  Video: %dx%d @ %d fps\n", cfg.Width, cfg.Height, cfg.FPS)

	engine := layout.NewEngine(layout.NewVerticalStack(cfg.Spacing))
	for _, tl := range timelines {
		if err := engine.AddElement(tl); err != nil {
			return fmt.Errorf("failed to register lyric element: %w", err)
		}

		info := tl.Info()
		rect := tl.RequiredRect(cfg.Width, cfg.Height)
		fmt.Printf("  Track %s: %d entries, %s, mode %s, rect %dx%d at (%d,%d)\n",
			tl.ElementID(),
			info.TotalLines,
			info.Duration,
			info.Mode,
			rect.Width, rect.Height, rect.X, rect.Y,
		)
	}

	conflicts := engine.DetectConflicts(cfg.Width, cfg.Height)
	if len(conflicts) == 0 {
		fmt.Println("No layout conflicts detected.")
		return nil
	}

	fmt.Printf("Detected %d layout conflict(s):\n", len(conflicts))
	for _, conflict := range conflicts {
		fmt.Printf("  %s\n", conflict.String())
	}

	fmt.Println("Proposed vertical arrangement:")
	arranged := engine.Arrange(cfg.Width, cfg.Height)
	for _, tl := range engine.Elements() {
		rect, ok := arranged.Positions[tl.ElementID()]
		if !ok {
			continue
		}
		fmt.Printf("  %s: %dx%d at (%d,%d)\n",
			tl.ElementID(), rect.Width, rect.Height, rect.X, rect.Y)
	}

	return nil
}
