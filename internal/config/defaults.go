package config

import "time"

// DefaultConfigPath is where `gallery init` writes and other commands read.
const DefaultConfigPath = ".gallery.yml"

// DefaultAssets are the globs, relative to the content directory, that the
// server exposes as static files.
var DefaultAssets = []string{
	"*.txt",
	"*.html",
	"**/*.{png,jpg,jpeg,gif,webp,svg,css,js,mp3}",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Title:                "Winter Gallery",
		Port:                 8080,
		ContentDir:           "public",
		ArtworkInfoPath:      "/artwork_info.txt",
		CuratorNarrationPath: "/curator_narration.txt",
		ArtworkPage:          "/art1.html",
		Assets:               append([]string(nil), DefaultAssets...),
		FetchTimeout:         5 * time.Second,
		Snow: SnowConfig{
			Interval: 300 * time.Millisecond,
			Lifetime: 5 * time.Second,
		},
		Audio: AudioConfig{
			BackgroundSource: "background.mp3",
			BackgroundVolume: 0.3,
			NarrationSource:  "Explain.mp3",
			NarrationVolume:  0.7,
		},
	}
}
