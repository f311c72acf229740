// Package config loads the YAML project file describing one lyric
// video: audio, lyric tracks, background, geometry and output path.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// LRCInfo locates one lyric track in the project.
type LRCInfo struct {
	Path     string `yaml:"path"`
	Lang     string `yaml:"lang"`
	FontSize int    `yaml:"font-size"`
}

// Config is a loaded lyric-video project. Relative paths resolve
// against the directory containing the config file.
type Config struct {
	Audio      string   `yaml:"audio"`
	MainLRC    LRCInfo  `yaml:"main-lrc"`
	AuxLRC     *LRCInfo `yaml:"aux-lrc"`
	Background string   `yaml:"background"`
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	FPS        int      `yaml:"fps"`
	Spacing    int      `yaml:"spacing"`
	Output     string   `yaml:"output"`

	dir string
}

// defaults fill fields the YAML omits; overridable via LRCMV_* env vars.
type defaults struct {
	Width   int `envconfig:"WIDTH" default:"720"`
	Height  int `envconfig:"HEIGHT" default:"1280"`
	FPS     int `envconfig:"FPS" default:"30"`
	Spacing int `envconfig:"SPACING" default:"30"`
}

// Load reads and validates a project config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	var def defaults
	if err := envconfig.Process("lrcmv", &def); err != nil {
		return nil, fmt.Errorf("failed to read environment defaults: %w", err)
	}
	if cfg.Width == 0 {
		cfg.Width = def.Width
	}
	if cfg.Height == 0 {
		cfg.Height = def.Height
	}
	if cfg.FPS == 0 {
		cfg.FPS = def.FPS
	}
	if cfg.Spacing == 0 {
		cfg.Spacing = def.Spacing
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	cfg.dir = filepath.Dir(absPath)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.Audio == "" {
		missing = append(missing, "audio")
	}
	if c.MainLRC.Path == "" {
		missing = append(missing, "main-lrc.path")
	}
	if c.MainLRC.Lang == "" {
		missing = append(missing, "main-lrc.lang")
	}
	if c.Background == "" {
		missing = append(missing, "background")
	}
	if c.Output == "" {
		missing = append(missing, "output")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config fields: %s", strings.Join(missing, ", "))
	}

	if c.AuxLRC != nil && (c.AuxLRC.Path == "" || c.AuxLRC.Lang == "") {
		return fmt.Errorf("aux-lrc must set both path and lang")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("video dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.MainLRC.FontSize < 0 || (c.AuxLRC != nil && c.AuxLRC.FontSize < 0) {
		return fmt.Errorf("font sizes must not be negative")
	}

	return nil
}

func (c *Config) resolve(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.dir, rel)
}

func (c *Config) AudioPath() string      { return c.resolve(c.Audio) }
func (c *Config) MainLRCPath() string    { return c.resolve(c.MainLRC.Path) }
func (c *Config) BackgroundPath() string { return c.resolve(c.Background) }
func (c *Config) OutputPath() string     { return c.resolve(c.Output) }

// AuxLRCPath returns the resolved aux track path, or "" when unset.
func (c *Config) AuxLRCPath() string {
	if c.AuxLRC == nil {
		return ""
	}
	return c.resolve(c.AuxLRC.Path)
}

// CheckFiles reports the existence of every input file.
func (c *Config) CheckFiles() map[string]bool {
	results := map[string]bool{
		"audio":      fileExists(c.AudioPath()),
		"main-lrc":   fileExists(c.MainLRCPath()),
		"background": fileExists(c.BackgroundPath()),
	}
	if c.AuxLRC != nil {
		results["aux-lrc"] = fileExists(c.AuxLRCPath())
	}
	return results
}

// ValidateFiles fails when any required input file is missing.
func (c *Config) ValidateFiles() error {
	var missing []string
	for name, exists := range c.CheckFiles() {
		if !exists {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing input files: %s", strings.Join(missing, ", "))
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
