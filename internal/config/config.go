package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/framemix/internal/source"
	"github.com/ivlev/framemix/internal/transition"
)

type contextKey string

const configKey contextKey = "config"

// Config holds the dataset generation settings.
type Config struct {
	Seed    int64 `yaml:"seed"`
	Workers int   `yaml:"workers"` // 0 = number of physical cores
	Samples int   `yaml:"samples"`

	// Every input window is ClipLength frames, resized to Width x Height.
	ClipLength int `yaml:"clip_length"`
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`

	Inputs    []string `yaml:"inputs,omitempty"`
	OutputDir string   `yaml:"output_dir"`
	// PDFDPI is the resolution PDF inputs are rasterized at before resizing.
	PDFDPI float64 `yaml:"pdf_dpi"`

	// Weights for none, gradual, push, wipe and crop split.
	Probabilities []float64 `yaml:"probabilities"`

	Transition TransitionConfig `yaml:"transition"`
	Crop       CropConfig       `yaml:"crop"`
	Augment    AugmentConfig    `yaml:"augment"`
	Preview    PreviewConfig    `yaml:"preview"`
}

type TransitionConfig struct {
	FrameCount transition.Choice `yaml:"frame_count"`
	Gradual    transition.Choice `yaml:"gradual"`
	Push       transition.Choice `yaml:"push"`
	Wipe       transition.Choice `yaml:"wipe"`
}

type CropConfig struct {
	Location transition.Choice `yaml:"location"`
	Ratio    float64           `yaml:"ratio"`
}

// AugmentConfig gives the probability of applying each augmentation to an input clip.
type AugmentConfig struct {
	Darken     float64 `yaml:"darken"`
	Glare      float64 `yaml:"glare"`
	Crop       float64 `yaml:"crop"` // window from crop.ratio at a random location
	ExtractGap int     `yaml:"extract_gap"` // 0 or 1 disables frame decimation
}

type PreviewConfig struct {
	Enabled bool   `yaml:"enabled"`
	FPS     int    `yaml:"fps"`
	Encoder string `yaml:"encoder"` // empty = detect
}

// Load reads configuration from file or returns defaults. Keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first setting that generation cannot run with.
func (c *Config) Validate() error {
	if c.Samples < 0 {
		return fmt.Errorf("samples must not be negative, got %d", c.Samples)
	}
	if c.ClipLength < 2 {
		return fmt.Errorf("clip_length must be at least 2, got %d", c.ClipLength)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("frame size %dx%d must be positive", c.Width, c.Height)
	}
	if _, err := transition.Normalized(c.Probabilities); err != nil {
		return fmt.Errorf("probabilities: %w", err)
	}
	if n, fixed := c.Transition.FrameCount.Value(); fixed && (n < 1 || n > c.ClipLength) {
		return fmt.Errorf("transition.frame_count %d out of range [1,%d]", n, c.ClipLength)
	}
	if !(c.Crop.Ratio > 0 && c.Crop.Ratio <= 1) {
		return fmt.Errorf("crop.ratio %v out of range (0,1]", c.Crop.Ratio)
	}
	if c.PDFDPI < 1 {
		return fmt.Errorf("pdf_dpi must be at least 1, got %v", c.PDFDPI)
	}
	for name, p := range map[string]float64{
		"augment.darken": c.Augment.Darken,
		"augment.glare":  c.Augment.Glare,
		"augment.crop":   c.Augment.Crop,
	} {
		if !(p >= 0 && p <= 1) {
			return fmt.Errorf("%s probability %v out of range [0,1]", name, p)
		}
	}
	if c.Augment.ExtractGap < 0 {
		return fmt.Errorf("augment.extract_gap must not be negative, got %d", c.Augment.ExtractGap)
	}
	if c.Preview.Enabled && c.Preview.FPS <= 0 {
		return fmt.Errorf("preview.fps must be positive, got %d", c.Preview.FPS)
	}
	return nil
}

// Sampler builds the transition sampler described by the configuration.
func (c *Config) Sampler() *transition.Sampler {
	s := transition.NewSampler()
	s.Probabilities = append([]float64(nil), c.Probabilities...)
	s.FrameCount = c.Transition.FrameCount
	s.Gradual = c.Transition.Gradual
	s.Push = c.Transition.Push
	s.Wipe = c.Transition.Wipe
	s.CropLocation = c.Crop.Location
	s.CropRatio = c.Crop.Ratio
	return s
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Seed:          1,
		Samples:       100,
		ClipLength:    50,
		Width:         320,
		Height:        240,
		OutputDir:     "./dataset",
		PDFDPI:        source.DefaultDPI,
		Probabilities: append([]float64(nil), transition.DefaultProbabilities...),
		Crop: CropConfig{
			Location: transition.Random,
			Ratio:    transition.DefaultCropRatio,
		},
		Preview: PreviewConfig{
			FPS: 25,
		},
	}
}

func findConfigFile() string {
	candidates := []string{
		"./framemix.yaml",
		"./framemix.yml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".framemix", "config.yaml"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// WithConfig stores config in context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context, falling back to Default.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return Default()
}
