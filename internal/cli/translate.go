package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tyuan87/lrcmv/internal/lyrics"
	"github.com/tyuan87/lrcmv/internal/translate"
)

var translateCmd = &cobra.Command{
	Use:   "translate [lrc_file]",
	Short: "Translate an LRC file to another language using AI",
	Long: `Translate a timed LRC lyric file to another language using AI.

Timestamps are preserved line for line, so the translated file can be
used directly as the aux track of a bilingual lyric video.

Examples:
  lrcmv translate song.lrc --target-language english
  lrcmv translate song.lrc -t japanese --provider openai
  lrcmv translate song.lrc -l chinese -t english -o song.en.lrc`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().
		StringP("target-language", "t", "", "Target language for translation (required)")
	translateCmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY/OPENAI_API_KEY/ANTHROPIC_API_KEY env var)")
	translateCmd.Flags().
		String("model", "", "Model to use for translation (provider-specific, uses sensible defaults)")
	translateCmd.Flags().
		Bool("model-override", false, "Allow any custom model, bypassing provider model validation")
	translateCmd.Flags().
		String("provider", "gemini", "Translation provider (gemini, openai, anthropic)")
	translateCmd.Flags().
		Int("concurrency", 3, "Number of parallel translation workers")
	translateCmd.Flags().
		Int("batch-size", 50, "Number of lyric lines per API request")

	_ = translateCmd.MarkFlagRequired("target-language")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	lrcPath := args[0]
	ctx := context.Background()

	targetLang, _ := cmd.Flags().GetString("target-language")
	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	modelOverride, _ := cmd.Flags().GetBool("model-override")
	providerStr, _ := cmd.Flags().GetString("provider")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	outputPath, _ := cmd.Flags().GetString("output")
	sourceLang, _ := cmd.Flags().GetString("language")

	if _, err := os.Stat(lrcPath); os.IsNotExist(err) {
		return fmt.Errorf("lyric file not found: %s", lrcPath)
	}

	if sourceLang != "" &&
		strings.EqualFold(
			strings.TrimSpace(sourceLang),
			strings.TrimSpace(targetLang),
		) {
		return fmt.Errorf(
			"source language %q and target language %q cannot be the same",
			sourceLang,
			targetLang,
		)
	}

	provider := translate.Provider(providerStr)

	if apiKey == "" {
		apiKey = os.Getenv(apiKeyEnvVar(provider))
	}
	if apiKey == "" {
		return fmt.Errorf(
			"API key is required: use --api-key flag or set %s environment variable",
			apiKeyEnvVar(provider),
		)
	}

	if model != "" && !modelOverride {
		if err := validateModel(provider, model); err != nil {
			return err
		}
	}

	if concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", concurrency)
	}
	if batchSize <= 0 {
		return fmt.Errorf("batch-size must be positive, got %d", batchSize)
	}

	if outputPath == "" {
		baseName := strings.TrimSuffix(lrcPath, filepath.Ext(lrcPath))
		outputPath = fmt.Sprintf("%s.%s.lrc", baseName, targetLang)
	}

	logger.Infow("Starting lyric translation",
		"input", lrcPath,
		"output", outputPath,
		"target_language", targetLang,
		"source_language", sourceLang,
		"provider", providerStr,
		"model", model,
	)

	entries, diags, err := lyrics.ParseLRCFile(lrcPath)
	if err != nil {
		return err
	}
	logDiagnostics(lrcPath, diags)

	logger.Infow("Parsed lyric file", "entries", len(entries))

	opts := translate.Options{
		SourceLanguage: sourceLang,
		TargetLanguage: targetLang,
		Model:          model,
		BatchSize:      batchSize,
	}

	translator, err := translate.Factory(ctx, provider, apiKey, opts)
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}

	items := make([]translate.Item, len(entries))
	for i, entry := range entries {
		items[i] = translate.Item{
			Index: i,
			Text:  entry.Text,
		}
	}

	logger.Infow("Translating lyrics",
		"items", len(items),
		"concurrency", concurrency,
	)

	var results []translate.Result
	if concurrentTranslator, ok := translator.(translate.ConcurrentTranslator); ok {
		results, err = concurrentTranslator.TranslateWithConcurrency(
			ctx,
			items,
			concurrency,
		)
	} else {
		results, err = translator.Translate(ctx, items)
	}
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}

	logger.Infow("Translation complete", "results", len(results))

	translated := make([]lyrics.Entry, len(entries))
	copy(translated, entries)
	for _, result := range results {
		if result.Index < 0 || result.Index >= len(translated) {
			logger.Warnw("Skipping invalid result index",
				"index", result.Index,
				"max", len(translated)-1,
			)
			continue
		}
		translated[result.Index].Text = result.Text
	}

	if err := lyrics.WriteLRCFile(outputPath, translated); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Lyrics translated successfully: %s\n", absOutput)
	fmt.Printf("  Entries: %d\n", len(translated))
	fmt.Printf("  Target language: %s\n", targetLang)

	return nil
}

func apiKeyEnvVar(provider translate.Provider) string {
	switch provider {
	case translate.ProviderGemini:
		return "GEMINI_API_KEY"
	case translate.ProviderOpenAI:
		return "OPENAI_API_KEY"
	case translate.ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return "API_KEY"
	}
}

var knownModels = map[translate.Provider][]string{
	translate.ProviderGemini: {
		"gemini-3-pro-preview",
		"gemini-3-flash-preview",
		"gemini-2.5-pro",
		"gemini-2.5-flash",
		"gemini-2.5-flash-lite",
	},
	translate.ProviderOpenAI: {
		"o1", "o3-mini", "o1-pro", "o3",
		"gpt-5", "gpt-5-nano", "gpt-5-mini", "gpt-5-pro",
		"gpt-5.1", "gpt-5.2", "gpt-5.2-pro",
	},
	translate.ProviderAnthropic: {
		"claude-haiku-4-5",
		"claude-sonnet-4-5",
		"claude-opus-4-1",
	},
}

func validateModel(provider translate.Provider, model string) error {
	models, ok := knownModels[provider]
	if !ok {
		return nil
	}
	for _, known := range models {
		if model == known {
			return nil
		}
	}
	return fmt.Errorf(
		"unsupported %s model %q: valid models are %s (use --model-override to bypass)",
		provider,
		model,
		strings.Join(models, ", "),
	)
}
