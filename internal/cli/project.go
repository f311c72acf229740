package cli

import (
	"fmt"

	"github.com/tyuan87/lrcmv/internal/config"
	"github.com/tyuan87/lrcmv/internal/lyrics"
	"github.com/tyuan87/lrcmv/internal/metrics"
)

const defaultAuxFontSize = 56

// buildTimelines loads the configured LRC tracks into timelines. With
// an aux track both timelines use the bilingual paired mode; a lone
// main track gets the current-plus-preview mode.
func buildTimelines(cfg *config.Config) ([]*lyrics.Timeline, error) {
	measurer := metrics.NewHeuristic()

	mainStyle := lyrics.DefaultStyle()
	if cfg.MainLRC.FontSize > 0 {
		mainStyle.FontSize = cfg.MainLRC.FontSize
	}

	var mainMode lyrics.DisplayMode
	if cfg.AuxLRC != nil {
		mainMode = lyrics.DefaultBilingualSync(false)
	} else {
		mainMode = lyrics.DefaultEnhancedPreview()
	}

	mainTL, diags, err := lyrics.FromLRCFile(
		cfg.MainLRCPath(),
		cfg.MainLRC.Lang,
		mainStyle,
		mainMode,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load main lyrics: %w", err)
	}
	logDiagnostics(cfg.MainLRCPath(), diags)
	mainTL.SetMeasurer(measurer)
	mainTL.SetPriority(1)

	timelines := []*lyrics.Timeline{mainTL}

	if cfg.AuxLRC != nil {
		auxStyle := lyrics.DefaultStyle()
		auxStyle.FontSize = defaultAuxFontSize
		if cfg.AuxLRC.FontSize > 0 {
			auxStyle.FontSize = cfg.AuxLRC.FontSize
		}

		auxTL, auxDiags, err := lyrics.FromLRCFile(
			cfg.AuxLRCPath(),
			cfg.AuxLRC.Lang,
			auxStyle,
			lyrics.DefaultBilingualSync(true),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load aux lyrics: %w", err)
		}
		logDiagnostics(cfg.AuxLRCPath(), auxDiags)
		auxTL.SetMeasurer(measurer)
		auxTL.SetPriority(2)

		timelines = append(timelines, auxTL)
	}

	return timelines, nil
}

func logDiagnostics(path string, diags lyrics.Diagnostics) {
	if diags.SkippedLines > 0 {
		logger.Warnw("Skipped malformed lyric lines",
			"file", path,
			"skipped", diags.SkippedLines,
		)
	}
	for _, warning := range diags.Warnings {
		logger.Warnw("Lyric file warning",
			"file", path,
			"warning", warning,
		)
	}
}
