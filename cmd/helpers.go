package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/ziadkadry99/winter-gallery/internal/config"
	"github.com/ziadkadry99/winter-gallery/internal/content"
	"github.com/ziadkadry99/winter-gallery/internal/playback"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `gallery init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	if verbose {
		log.Printf("config: loaded %s (content_dir=%q content_base_url=%q)", cfgFile, cfg.ContentDir, cfg.ContentBaseURL)
	}
	return cfg, nil
}

// newFetcher picks the remote origin when one is configured, otherwise the
// local content directory.
func newFetcher(cfg *config.Config) content.Fetcher {
	if cfg.ContentBaseURL != "" {
		return content.NewHTTPFetcher(cfg.ContentBaseURL, cfg.FetchTimeout)
	}
	return &content.DirFetcher{FS: os.DirFS(cfg.ContentDir)}
}

// newLoader creates the content loader shared by the server and inspect.
func newLoader(cfg *config.Config) *content.Loader {
	return content.NewLoader(newFetcher(cfg), cfg.ArtworkInfoPath, cfg.CuratorNarrationPath, cfg.FetchTimeout)
}

// playbackSources maps the audio config onto the two placeholder tracks.
func playbackSources(cfg *config.Config) (background, narration playback.Source) {
	background = playback.Source{
		Label:  "background music",
		File:   cfg.Audio.BackgroundSource,
		Volume: cfg.Audio.BackgroundVolume,
	}
	narration = playback.Source{
		Label:  "curator narration",
		File:   cfg.Audio.NarrationSource,
		Volume: cfg.Audio.NarrationVolume,
	}
	return background, narration
}
