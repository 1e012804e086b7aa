package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// contentMarkers are files that identify a directory as gallery content.
var contentMarkers = []string{"artwork_info.txt", "curator_narration.txt"}

// detectContentDir returns the first candidate directory holding any of the
// content markers, or the default when none does.
func detectContentDir() string {
	for _, dir := range []string{"public", "static", "content", "."} {
		for _, marker := range contentMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir
			}
		}
	}
	return DefaultConfig().ContentDir
}

// RunWizard runs an interactive configuration wizard and saves the result
// to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to the Winter Gallery! Let's configure your exhibition.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Page title.
	titlePrompt := promptui.Prompt{
		Label:   "Gallery title",
		Default: cfg.Title,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}
	cfg.Title = strings.TrimSpace(title)

	// 2. Content source.
	sourcePrompt := promptui.Select{
		Label: "Where do the text resources live",
		Items: []string{
			"local directory (served by this process)",
			"remote origin (fetched over HTTP)",
		},
	}
	sourceIdx, _, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("content source: %w", err)
	}

	if sourceIdx == 0 {
		dirPrompt := promptui.Prompt{
			Label:   "Content directory",
			Default: detectContentDir(),
		}
		dir, err := dirPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("content dir: %w", err)
		}
		cfg.ContentDir = dir
	} else {
		urlPrompt := promptui.Prompt{
			Label: "Content base URL",
			Validate: func(s string) error {
				if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
					return fmt.Errorf("must start with http:// or https://")
				}
				return nil
			},
		}
		base, err := urlPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("content base url: %w", err)
		}
		cfg.ContentBaseURL = strings.TrimRight(base, "/")
	}

	// 3. Port.
	portPrompt := promptui.Prompt{
		Label:   "Port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 || n > 65535 {
				return fmt.Errorf("not a port number")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
