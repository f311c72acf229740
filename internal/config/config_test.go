package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "project.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

const fullConfig = `audio: song.mp3
main-lrc:
  path: song.lrc
  lang: chinese
  font-size: 72
aux-lrc:
  path: song.en.lrc
  lang: english
background: bg.jpg
width: 1080
height: 1920
fps: 24
spacing: 40
output: out/video.mp4
`

func TestLoadFullConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, fullConfig)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Width != 1080 || cfg.Height != 1920 || cfg.FPS != 24 || cfg.Spacing != 40 {
		t.Errorf("geometry not loaded: %+v", cfg)
	}
	if cfg.MainLRC.Lang != "chinese" || cfg.MainLRC.FontSize != 72 {
		t.Errorf("main-lrc not loaded: %+v", cfg.MainLRC)
	}
	if cfg.AuxLRC == nil || cfg.AuxLRC.Lang != "english" {
		t.Errorf("aux-lrc not loaded: %+v", cfg.AuxLRC)
	}

	if got := cfg.AudioPath(); got != filepath.Join(dir, "song.mp3") {
		t.Errorf("AudioPath() = %q", got)
	}
	if got := cfg.OutputPath(); got != filepath.Join(dir, "out", "video.mp4") {
		t.Errorf("OutputPath() = %q", got)
	}
	if got := cfg.AuxLRCPath(); got != filepath.Join(dir, "song.en.lrc") {
		t.Errorf("AuxLRCPath() = %q", got)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `audio: song.mp3
main-lrc:
  path: song.lrc
  lang: english
background: bg.jpg
output: out.mp4
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Width != 720 || cfg.Height != 1280 {
		t.Errorf("default dimensions = %dx%d, want 720x1280", cfg.Width, cfg.Height)
	}
	if cfg.FPS != 30 {
		t.Errorf("default fps = %d, want 30", cfg.FPS)
	}
	if cfg.Spacing != 30 {
		t.Errorf("default spacing = %d, want 30", cfg.Spacing)
	}
	if cfg.AuxLRC != nil {
		t.Error("aux-lrc should be nil when omitted")
	}
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("LRCMV_WIDTH", "640")
	t.Setenv("LRCMV_FPS", "60")

	dir := t.TempDir()
	path := writeConfig(t, dir, `audio: song.mp3
main-lrc:
  path: song.lrc
  lang: english
background: bg.jpg
output: out.mp4
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Width != 640 {
		t.Errorf("width = %d, want env override 640", cfg.Width)
	}
	if cfg.FPS != 60 {
		t.Errorf("fps = %d, want env override 60", cfg.FPS)
	}
}

func TestLoadConfigWinsOverEnv(t *testing.T) {
	t.Setenv("LRCMV_WIDTH", "640")

	dir := t.TempDir()
	path := writeConfig(t, dir, `audio: song.mp3
main-lrc:
  path: song.lrc
  lang: english
background: bg.jpg
width: 1080
height: 1920
output: out.mp4
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Width != 1080 {
		t.Errorf("width = %d, config file should win over env", cfg.Width)
	}
}

func TestLoadMissingRequiredFields(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `main-lrc:
  path: song.lrc
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for missing required fields")
	}
	for _, want := range []string{"audio", "main-lrc.lang", "background", "output"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should name %q: %v", want, err)
		}
	}
}

func TestLoadIncompleteAux(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `audio: song.mp3
main-lrc:
  path: song.lrc
  lang: english
aux-lrc:
  path: song.ja.lrc
background: bg.jpg
output: out.mp4
`)

	if _, err := Load(path); err == nil {
		t.Error("expected error for aux-lrc without lang")
	}
}

func TestLoadRejectsNegativeFontSize(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `audio: song.mp3
main-lrc:
  path: song.lrc
  lang: english
  font-size: -12
background: bg.jpg
output: out.mp4
`)

	if _, err := Load(path); err == nil {
		t.Error("expected error for negative font size")
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "audio: [unclosed")

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestAbsolutePathsPassThrough(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "elsewhere", "song.mp3")
	path := writeConfig(t, dir, `audio: `+abs+`
main-lrc:
  path: song.lrc
  lang: english
background: bg.jpg
output: out.mp4
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got := cfg.AudioPath(); got != abs {
		t.Errorf("AudioPath() = %q, want %q", got, abs)
	}
}

func TestCheckAndValidateFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `audio: song.mp3
main-lrc:
  path: song.lrc
  lang: english
background: bg.jpg
output: out.mp4
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if err := cfg.ValidateFiles(); err == nil {
		t.Error("expected error while input files are missing")
	}

	touch(t, dir, "song.mp3")
	touch(t, dir, "song.lrc")

	results := cfg.CheckFiles()
	if !results["audio"] || !results["main-lrc"] || results["background"] {
		t.Errorf("unexpected CheckFiles results: %v", results)
	}

	touch(t, dir, "bg.jpg")
	if err := cfg.ValidateFiles(); err != nil {
		t.Errorf("ValidateFiles error after creating inputs: %v", err)
	}
}
