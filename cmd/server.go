package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/winter-gallery/internal/config"
	"github.com/ziadkadry99/winter-gallery/internal/gallery"
	"github.com/ziadkadry99/winter-gallery/internal/server"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gallery web server",
	Long:  `Serves the gallery page, its content API, static assets and the live snowfall socket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = serverPort
		}

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAllOrigins,
		})

		gal := newGallery(cfg)
		gal.RegisterRoutes(srv.Router())

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "gallery server v%s starting on port %d\n", Version, cfg.Port)
		if cfg.ContentBaseURL != "" {
			fmt.Fprintf(os.Stderr, "  Content: %s\n", cfg.ContentBaseURL)
		} else {
			fmt.Fprintf(os.Stderr, "  Content: %s\n", cfg.ContentDir)
		}
		fmt.Fprintf(os.Stderr, "  Snow: every %s, lifetime %s\n", cfg.Snow.Interval, cfg.Snow.Lifetime)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

// newGallery wires the gallery surface from config.
func newGallery(cfg *config.Config) *gallery.Gallery {
	background, narration := playbackSources(cfg)

	var assets fs.FS
	if cfg.ContentDir != "" {
		assets = os.DirFS(cfg.ContentDir)
	}

	return gallery.New(newLoader(cfg), gallery.Options{
		Title:         cfg.Title,
		ArtworkPage:   cfg.ArtworkPage,
		SnowInterval:  cfg.Snow.Interval,
		SnowLifetime:  cfg.Snow.Lifetime,
		Background:    background,
		Narration:     narration,
		Assets:        assets,
		AssetPatterns: cfg.Assets,
	})
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serverCmd)
}
