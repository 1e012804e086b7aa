package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override. A double underscore
// descends into a section: GALLERY_SNOW__INTERVAL -> snow.interval.
const EnvPrefix = "GALLERY_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (GALLERY_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	// Lists replace the defaults rather than merging into them index by index.
	if k.Exists("assets") {
		cfg.Assets = nil
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	if c.ContentDir == "" && c.ContentBaseURL == "" {
		return fmt.Errorf("one of content_dir or content_base_url is required")
	}
	if c.ContentBaseURL != "" {
		u, err := url.Parse(c.ContentBaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid content_base_url %q", c.ContentBaseURL)
		}
	}

	if c.ArtworkInfoPath == "" {
		return fmt.Errorf("artwork_info_path is required")
	}
	if c.CuratorNarrationPath == "" {
		return fmt.Errorf("curator_narration_path is required")
	}

	for _, pattern := range c.Assets {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid asset pattern %q", pattern)
		}
	}

	if c.FetchTimeout < 0 {
		return fmt.Errorf("fetch_timeout must be non-negative")
	}

	if c.Snow.Interval <= 0 {
		return fmt.Errorf("snow.interval must be positive")
	}
	if c.Snow.Lifetime <= 0 {
		return fmt.Errorf("snow.lifetime must be positive")
	}

	if c.Audio.BackgroundVolume < 0 || c.Audio.BackgroundVolume > 1 {
		return fmt.Errorf("audio.background_volume must be within [0, 1]")
	}
	if c.Audio.NarrationVolume < 0 || c.Audio.NarrationVolume > 1 {
		return fmt.Errorf("audio.narration_volume must be within [0, 1]")
	}

	return nil
}
