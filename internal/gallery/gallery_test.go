package gallery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/winter-gallery/internal/content"
	"github.com/ziadkadry99/winter-gallery/internal/playback"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"artwork_info.txt":      {Data: []byte("Title: Winter Dream\n\nArtist: A. Frost\nMedium: Oil: on canvas\nA study of <light>.")},
		"curator_narration.txt": {Data: []byte("Para one.\n\nPara two line1\nPara two line2")},
		"art1.html":             {Data: []byte("<html><body>art</body></html>")},
		"images/frost.png":      {Data: []byte("\x89PNG")},
		"notes/draft.txt":       {Data: []byte("not public")},
		".gallery.yml":          {Data: []byte("port: 8080")},
	}
}

func setupTest(t *testing.T, fsys fstest.MapFS) (*Gallery, chi.Router) {
	t.Helper()

	loader := content.NewLoader(&content.DirFetcher{FS: fsys}, "/artwork_info.txt", "/curator_narration.txt", time.Second)
	g := New(loader, Options{
		Title:        "Winter Gallery",
		ArtworkPage:  "/art1.html",
		SnowInterval: 20 * time.Millisecond,
		SnowLifetime: 60 * time.Millisecond,
		Background:   playback.Source{Label: "background music", File: "background.mp3", Volume: 0.3},
		Narration:    playback.Source{Label: "curator narration", File: "Explain.mp3", Volume: 0.7},
		Assets:       fsys,
		AssetPatterns: []string{
			"*.txt",
			"*.html",
			"**/*.{png,jpg}",
		},
	})

	r := chi.NewRouter()
	g.RegisterRoutes(r)
	return g, r
}

func TestIndexRendersBlocks(t *testing.T) {
	_, r := setupTest(t, testFS())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("unexpected content type %q", ct)
	}

	body := w.Body.String()
	for _, want := range []string{
		`<span class="label">Title:</span><span class="value">Winter Dream</span>`,
		`<span class="label">Medium:</span><span class="value">Oil: on canvas</span>`,
		`<p>A study of &lt;light&gt;.</p>`,
		`<p>Para one.</p>`,
		"<p>Para two line1\nPara two line2</p>",
		"<br>",
		"<title>Winter Gallery</title>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestIndexSurvivesMissingResource(t *testing.T) {
	fsys := testFS()
	delete(fsys, "artwork_info.txt")
	_, r := setupTest(t, fsys)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, "Winter Dream") {
		t.Error("artwork info rendered although the resource is missing")
	}
	if !strings.Contains(body, "<p>Para one.</p>") {
		t.Error("curator narration should still render")
	}
}

func TestContentEndpoint(t *testing.T) {
	fsys := testFS()
	delete(fsys, "curator_narration.txt")
	_, r := setupTest(t, fsys)

	req := httptest.NewRequest(http.MethodGet, "/api/content", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		ArtworkInfo      []content.Block   `json:"artwork_info"`
		CuratorNarration []content.Block   `json:"curator_narration"`
		Errors           map[string]string `json:"errors"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding content: %v", err)
	}

	if len(resp.ArtworkInfo) != 5 {
		t.Errorf("expected 5 artwork blocks, got %d", len(resp.ArtworkInfo))
	}
	if resp.ArtworkInfo[1].Kind != content.BlockSpacer {
		t.Errorf("expected spacer at index 1, got %q", resp.ArtworkInfo[1].Kind)
	}
	if len(resp.CuratorNarration) != 1 || resp.CuratorNarration[0].Text != "" {
		t.Errorf("missing narration should parse as one empty paragraph, got %+v", resp.CuratorNarration)
	}
	if _, ok := resp.Errors["curator_narration"]; !ok || len(resp.Errors) != 1 {
		t.Errorf("expected a single curator_narration error, got %v", resp.Errors)
	}
}

func TestStatusEndpoint(t *testing.T) {
	_, r := setupTest(t, testFS())

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp statusResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding status: %v", err)
	}
	if resp.Sessions != 0 {
		t.Errorf("expected 0 sessions, got %d", resp.Sessions)
	}
	if resp.Snow.IntervalMS != 20 || resp.Snow.LifetimeMS != 60 || resp.Snow.SteadyStateBound != 3 {
		t.Errorf("unexpected snow status %+v", resp.Snow)
	}
}

func TestAssets(t *testing.T) {
	_, r := setupTest(t, testFS())

	tests := []struct {
		path string
		want int
	}{
		{"/artwork_info.txt", http.StatusOK},
		{"/art1.html", http.StatusOK},
		{"/images/frost.png", http.StatusOK},
		{"/notes/draft.txt", http.StatusNotFound},
		{"/.gallery.yml", http.StatusNotFound},
		{"/missing.txt", http.StatusNotFound},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tt.want {
			t.Errorf("GET %s: got %d, want %d", tt.path, w.Code, tt.want)
		}
	}
}

func TestMatchesAny(t *testing.T) {
	patterns := []string{"*.txt", "**/*.png"}
	tests := []struct {
		path string
		want bool
	}{
		{"artwork_info.txt", true},
		{"deep/artwork_info.txt", false},
		{"a.png", true},
		{"a/b/c.png", true},
		{"a/b/c.gif", false},
	}
	for _, tt := range tests {
		if got := matchesAny(tt.path, patterns); got != tt.want {
			t.Errorf("matchesAny(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func dialSession(t *testing.T, r chi.Router) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/gallery"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads messages until one of the given type arrives.
func readUntil(t *testing.T, conn *websocket.Conn, msgType string, match func(serverMessage) bool) serverMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		var msg serverMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("waiting for %q: %v", msgType, err)
		}
		if msg.Type == msgType && (match == nil || match(msg)) {
			return msg
		}
	}
}

func TestSessionInitialPlaybackState(t *testing.T) {
	_, r := setupTest(t, testFS())
	conn := dialSession(t, r)

	msg := readUntil(t, conn, "playback", nil)
	if msg.State == nil || msg.State.Background || msg.State.Narration {
		t.Errorf("expected both tracks stopped, got %+v", msg.State)
	}
}

func TestSessionSpawnThenExpire(t *testing.T) {
	_, r := setupTest(t, testFS())
	conn := dialSession(t, r)

	spawn := readUntil(t, conn, "spawn", nil)
	if spawn.Particle == nil || spawn.Particle.ID == "" {
		t.Fatalf("spawn without particle: %+v", spawn)
	}
	id := spawn.Particle.ID

	readUntil(t, conn, "expire", func(m serverMessage) bool { return m.ID == id })
}

func TestSessionToggle(t *testing.T) {
	_, r := setupTest(t, testFS())
	conn := dialSession(t, r)
	readUntil(t, conn, "playback", nil)

	if err := conn.WriteJSON(clientMessage{Type: "toggle", Track: "background"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	msg := readUntil(t, conn, "playback", nil)
	if !msg.State.Background || msg.State.Narration {
		t.Errorf("after background toggle: %+v", msg.State)
	}

	if err := conn.WriteJSON(clientMessage{Type: "toggle", Track: "narration"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	msg = readUntil(t, conn, "playback", nil)
	if !msg.State.Background || !msg.State.Narration {
		t.Errorf("after narration toggle: %+v", msg.State)
	}

	if err := conn.WriteJSON(clientMessage{Type: "toggle", Track: "background"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	msg = readUntil(t, conn, "playback", nil)
	if msg.State.Background || !msg.State.Narration {
		t.Errorf("after second background toggle: %+v", msg.State)
	}
}

func TestSessionErrors(t *testing.T) {
	_, r := setupTest(t, testFS())
	conn := dialSession(t, r)

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bad json", "{not json", "invalid message format"},
		{"unknown track", `{"type":"toggle","track":"drums"}`, "unknown track"},
		{"unknown type", `{"type":"dance"}`, "unknown message type: dance"},
	}
	for _, tt := range tests {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(tt.raw)); err != nil {
			t.Fatalf("%s: write: %v", tt.name, err)
		}
		msg := readUntil(t, conn, "error", nil)
		if !strings.Contains(msg.Message, tt.want) {
			t.Errorf("%s: got error %q, want it to contain %q", tt.name, msg.Message, tt.want)
		}
	}
}

func TestSessionSync(t *testing.T) {
	_, r := setupTest(t, testFS())
	conn := dialSession(t, r)
	readUntil(t, conn, "spawn", nil)

	if err := conn.WriteJSON(clientMessage{Type: "sync"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	msg := readUntil(t, conn, "snapshot", nil)
	// Bound is 3; allow timer jitter at the expiry boundary.
	if len(msg.Particles) > 5 {
		t.Errorf("snapshot holds %d particles, far above the steady-state bound", len(msg.Particles))
	}
	for _, p := range msg.Particles {
		if p.ID == "" {
			t.Error("snapshot particle without id")
		}
	}
}

func TestSessionUnmount(t *testing.T) {
	g, r := setupTest(t, testFS())
	conn := dialSession(t, r)
	readUntil(t, conn, "spawn", nil)

	if g.ActiveSessions() != 1 {
		t.Fatalf("expected 1 active session, got %d", g.ActiveSessions())
	}

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for g.ActiveSessions() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("session did not unmount after close")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
