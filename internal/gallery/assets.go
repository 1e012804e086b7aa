package gallery

import (
	"net/http"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-chi/chi/v5"
)

// handleAsset serves a file from the content directory when its path
// matches one of the asset patterns. Everything else is a 404.
func (g *Gallery) handleAsset(w http.ResponseWriter, r *http.Request) {
	if g.opts.Assets == nil {
		http.NotFound(w, r)
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+chi.URLParam(r, "*")), "/")
	if name == "" || !matchesAny(name, g.opts.AssetPatterns) {
		http.NotFound(w, r)
		return
	}

	http.ServeFileFS(w, r, g.opts.Assets, name)
}

// matchesAny checks if the slash-separated relPath matches any pattern.
// Patterns without "**" only match at their own depth.
func matchesAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, relPath); err == nil && matched {
			return true
		}
	}
	return false
}
