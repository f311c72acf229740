package translate

import (
	"context"
	"os"
	"strings"
	"testing"
)

func TestFactoryReturnsGeminiTranslator(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "japanese"}
	translator, err := Factory(ctx, ProviderGemini, "fake-key", opts)
	if err != nil {
		t.Fatalf("Factory(ProviderGemini) returned error: %v", err)
	}
	if _, ok := translator.(*GeminiTranslator); !ok {
		t.Errorf("expected *GeminiTranslator, got %T", translator)
	}
}

func TestFactoryReturnsOpenAITranslator(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "spanish"}
	translator, err := Factory(ctx, ProviderOpenAI, "fake-key", opts)
	if err != nil {
		t.Fatalf("Factory(ProviderOpenAI) returned error: %v", err)
	}
	if _, ok := translator.(*OpenAITranslator); !ok {
		t.Errorf("expected *OpenAITranslator, got %T", translator)
	}
}

func TestFactoryReturnsAnthropicTranslator(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "english"}
	translator, err := Factory(ctx, ProviderAnthropic, "fake-key", opts)
	if err != nil {
		t.Fatalf("Factory(ProviderAnthropic) returned error: %v", err)
	}
	if _, ok := translator.(*AnthropicTranslator); !ok {
		t.Errorf("expected *AnthropicTranslator, got %T", translator)
	}
}

func TestFactoryRequiresTargetLanguage(t *testing.T) {
	ctx := context.Background()
	opts := Options{} // no TargetLanguage
	_, err := Factory(ctx, ProviderGemini, "fake-key", opts)
	if err == nil {
		t.Error("expected error for missing target language")
	}
}

func TestFactoryRejectsUnknownProvider(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "french"}
	_, err := Factory(ctx, Provider("unknown"), "fake-key", opts)
	if err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestTranslatorsImplementConcurrentTranslator(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "korean"}

	for _, provider := range []Provider{ProviderGemini, ProviderOpenAI, ProviderAnthropic} {
		translator, err := Factory(ctx, provider, "fake-key", opts)
		if err != nil {
			t.Fatalf("Factory(%s) error: %v", provider, err)
		}
		if _, ok := translator.(ConcurrentTranslator); !ok {
			t.Errorf("%s translator should implement ConcurrentTranslator", provider)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	opts := Options{
		SourceLanguage: "chinese",
		TargetLanguage: "english",
	}

	items := []Item{
		{Index: 0, Text: "月亮代表我的心"},
		{Index: 1, Text: "你问我爱你有多深"},
	}

	prompt := BuildPrompt(opts, items)

	if !strings.Contains(prompt, "chinese song lyric lines") {
		t.Error("prompt should name the source language")
	}
	if !strings.Contains(prompt, "to english") {
		t.Error("prompt should name the target language")
	}
	if !strings.Contains(prompt, "月亮代表我的心") {
		t.Error("prompt should contain the input text")
	}
	if !strings.Contains(prompt, `"index": 0`) {
		t.Error("prompt should contain the index")
	}
}

func TestBuildPromptWithoutSourceLanguage(t *testing.T) {
	opts := Options{TargetLanguage: "spanish"}

	prompt := BuildPrompt(opts, []Item{{Index: 0, Text: "Hello"}})

	if strings.Contains(prompt, "from ") {
		t.Error("prompt should not mention a source language when not specified")
	}
	if !strings.Contains(prompt, "to spanish") {
		t.Error("prompt should contain the target language")
	}
}

// Integration test: only runs if OPENAI_API_KEY is set
func TestOpenAITranslatorIntegration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("OPENAI_API_KEY not set; skipping integration test")
	}

	ctx := context.Background()
	opts := Options{TargetLanguage: "spanish"}
	translator, err := NewOpenAITranslator(ctx, apiKey, opts)
	if err != nil {
		t.Fatalf("NewOpenAITranslator error: %v", err)
	}

	items := []Item{
		{Index: 0, Text: "Hello"},
		{Index: 1, Text: "Goodbye"},
	}

	results, err := translator.Translate(ctx, items)
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Text == "" {
			t.Errorf("result index %d has empty text", r.Index)
		}
	}
}
