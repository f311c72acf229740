package cli

import (
	"github.com/spf13/cobra"
	"github.com/tyuan87/lrcmv/internal/logging"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lrcmv",
	Short: "Lyric video generator driven by timed LRC files",
	Long: `Lrcmv builds lyric videos from a static background image, an audio
track and one or two timed LRC lyric files.

Lyrics are timed against the audio, laid out on the frame, and burned
in via ffmpeg. A second LRC track produces a bilingual video.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("language", "l", "", "Lyric language name (e.g., english, chinese)")
}
