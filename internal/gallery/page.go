package gallery

import (
	"bytes"
	_ "embed"
	"html/template"
	"log"
	"net/http"

	"github.com/ziadkadry99/winter-gallery/internal/content"
)

//go:embed index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

// pageData is what the index template renders.
type pageData struct {
	Title            string
	ArtworkPage      string
	ArtworkInfo      []content.Block
	CuratorNarration []content.Block
}

// handleIndex mounts the page: both resources are loaded once for this view
// and rendered into display blocks.
func (g *Gallery) handleIndex(w http.ResponseWriter, r *http.Request) {
	c := g.loader.Load(r.Context())
	rendered := c.Render()

	data := pageData{
		Title:            g.opts.Title,
		ArtworkPage:      g.opts.ArtworkPage,
		ArtworkInfo:      rendered.ArtworkInfo,
		CuratorNarration: rendered.CuratorNarration,
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		log.Printf("gallery: rendering index: %v", err)
		http.Error(w, "rendering page failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
