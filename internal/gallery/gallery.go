// Package gallery serves the Winter Gallery page, its JSON API, its static
// assets and the per-page WebSocket that drives snowfall and playback.
package gallery

import (
	"io/fs"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ziadkadry99/winter-gallery/internal/content"
	"github.com/ziadkadry99/winter-gallery/internal/playback"
	"github.com/ziadkadry99/winter-gallery/internal/snow"
)

// Options configures a Gallery.
type Options struct {
	Title        string
	ArtworkPage  string // opened in a new window from the preview
	SnowInterval time.Duration
	SnowLifetime time.Duration
	Background   playback.Source
	Narration    playback.Source

	// Assets is the content directory served as static files; nil serves
	// nothing. Only paths matching AssetPatterns are exposed.
	Assets        fs.FS
	AssetPatterns []string
}

// Gallery provides the page and its live session endpoint.
type Gallery struct {
	loader   *content.Loader
	opts     Options
	sessions atomic.Int64
}

// New creates a Gallery. Zero snow timings fall back to the generator
// defaults.
func New(loader *content.Loader, opts Options) *Gallery {
	if opts.SnowInterval <= 0 {
		opts.SnowInterval = snow.DefaultInterval
	}
	if opts.SnowLifetime <= 0 {
		opts.SnowLifetime = snow.DefaultLifetime
	}
	return &Gallery{loader: loader, opts: opts}
}

// RegisterRoutes mounts all gallery routes onto the given router.
func (g *Gallery) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		r.Get("/", g.handleIndex)
		r.Get("/api/content", g.handleContent)
		r.Get("/api/status", g.handleStatus)
	})
	r.Get("/ws/gallery", g.handleWebSocket)
	r.Get("/*", g.handleAsset)
}

// ActiveSessions returns the number of mounted pages.
func (g *Gallery) ActiveSessions() int64 { return g.sessions.Load() }
