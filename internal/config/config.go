package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/pyramid/internal/dataset"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDataset = "sample"
	DefaultDir     = "data"
	DefaultSpeed   = 4.0
	DefaultTheme   = "census"
	DefaultLocale  = "es-MX"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Datasets []string       `yaml:"datasets"`
	Playback PlaybackConfig `yaml:"playback"`
	Dialect  DialectConfig  `yaml:"dialect"`
	Source   SourceConfig   `yaml:"source"`
	View     ViewConfig     `yaml:"view"`
}

type PlaybackConfig struct {
	Speed  float64 `yaml:"speed"`
	Repeat bool    `yaml:"repeat"`
}

type DialectConfig struct {
	Sentinel string         `yaml:"sentinel"`
	Labels   dataset.Labels `yaml:"labels"`
}

// SourceConfig selects where dataset names are resolved. BaseURL wins over
// Dir for everything except spreadsheets.
type SourceConfig struct {
	Dir     string `yaml:"dir"`
	BaseURL string `yaml:"base_url"`
	Sheet   string `yaml:"sheet"`
}

type ViewConfig struct {
	Theme  string `yaml:"theme"`
	Locale string `yaml:"locale"`
}

func DefaultConfig() *Config {
	return &Config{
		Datasets: []string{DefaultDataset},
		Playback: PlaybackConfig{Speed: DefaultSpeed},
		Dialect: DialectConfig{
			Sentinel: dataset.DefaultSentinel,
			Labels:   dataset.DefaultLabels(),
		},
		Source: SourceConfig{Dir: DefaultDir},
		View:   ViewConfig{Theme: DefaultTheme, Locale: DefaultLocale},
	}
}

// Load reads path over the defaults, so a file only needs the keys it
// changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case len(c.Datasets) == 0:
		return fmt.Errorf("%w: no datasets", ErrInvalidConfig)
	case !(c.Playback.Speed > 0):
		return fmt.Errorf("%w: playback speed %v must be positive", ErrInvalidConfig, c.Playback.Speed)
	case c.Dialect.Sentinel == "":
		return fmt.Errorf("%w: empty sentinel", ErrInvalidConfig)
	}
	for i, name := range c.Datasets {
		if name == "" {
			return fmt.Errorf("%w: dataset %d has no name", ErrInvalidConfig, i)
		}
	}
	return nil
}

// DatasetDialect returns the builder dialect, filling unset labels from
// the defaults.
func (c *Config) DatasetDialect() dataset.Dialect {
	labels := c.Dialect.Labels
	def := dataset.DefaultLabels()
	if labels.Units == "" {
		labels.Units = def.Units
	}
	if labels.Thousands == "" {
		labels.Thousands = def.Thousands
	}
	if labels.Millions == "" {
		labels.Millions = def.Millions
	}
	if labels.Billions == "" {
		labels.Billions = def.Billions
	}
	return dataset.Dialect{Sentinel: c.Dialect.Sentinel, Labels: labels}
}
