package config

import "time"

// Config is the top-level gallery configuration, corresponding to .gallery.yml.
type Config struct {
	Title                string        `yaml:"title" koanf:"title"`
	Port                 int           `yaml:"port" koanf:"port"`
	AllowAllOrigins      bool          `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	ContentDir           string        `yaml:"content_dir" koanf:"content_dir"`
	ContentBaseURL       string        `yaml:"content_base_url" koanf:"content_base_url"`
	ArtworkInfoPath      string        `yaml:"artwork_info_path" koanf:"artwork_info_path"`
	CuratorNarrationPath string        `yaml:"curator_narration_path" koanf:"curator_narration_path"`
	ArtworkPage          string        `yaml:"artwork_page" koanf:"artwork_page"`
	Assets               []string      `yaml:"assets" koanf:"assets"`
	FetchTimeout         time.Duration `yaml:"fetch_timeout" koanf:"fetch_timeout"`
	Snow                 SnowConfig    `yaml:"snow" koanf:"snow"`
	Audio                AudioConfig   `yaml:"audio" koanf:"audio"`
}

// SnowConfig controls the snowfall generator.
type SnowConfig struct {
	Interval time.Duration `yaml:"interval" koanf:"interval"`
	Lifetime time.Duration `yaml:"lifetime" koanf:"lifetime"`
}

// AudioConfig names the placeholder tracks and their volumes.
// The sources are labels only; nothing is decoded.
type AudioConfig struct {
	BackgroundSource string  `yaml:"background_source" koanf:"background_source"`
	BackgroundVolume float64 `yaml:"background_volume" koanf:"background_volume"`
	NarrationSource  string  `yaml:"narration_source" koanf:"narration_source"`
	NarrationVolume  float64 `yaml:"narration_volume" koanf:"narration_volume"`
}
