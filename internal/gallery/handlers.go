package gallery

import (
	"encoding/json"
	"net/http"

	"github.com/ziadkadry99/winter-gallery/internal/content"
	"github.com/ziadkadry99/winter-gallery/internal/snow"
)

// contentResponse is the JSON response for the content endpoint.
type contentResponse struct {
	content.Rendered
	Errors map[content.Resource]string `json:"errors,omitempty"`
}

// statusResponse is the JSON response for the status endpoint.
type statusResponse struct {
	Sessions int64      `json:"sessions"`
	Snow     snowStatus `json:"snow"`
}

type snowStatus struct {
	IntervalMS       int64 `json:"interval_ms"`
	LifetimeMS       int64 `json:"lifetime_ms"`
	SteadyStateBound int   `json:"steady_state_bound"`
}

func (g *Gallery) handleContent(w http.ResponseWriter, r *http.Request) {
	c := g.loader.Load(r.Context())

	resp := contentResponse{Rendered: c.Render()}
	if len(c.Failures) > 0 {
		resp.Errors = make(map[content.Resource]string, len(c.Failures))
		for res, err := range c.Failures {
			resp.Errors[res] = err.Error()
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (g *Gallery) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Sessions: g.ActiveSessions(),
		Snow: snowStatus{
			IntervalMS:       g.opts.SnowInterval.Milliseconds(),
			LifetimeMS:       g.opts.SnowLifetime.Milliseconds(),
			SteadyStateBound: snow.SteadyStateBound(g.opts.SnowInterval, g.opts.SnowLifetime),
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
