package gallery

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/winter-gallery/internal/playback"
	"github.com/ziadkadry99/winter-gallery/internal/snow"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientMessage is the incoming WebSocket message format.
type clientMessage struct {
	Type  string `json:"type"`            // "toggle" or "sync"
	Track string `json:"track,omitempty"` // for "toggle"
}

// serverMessage is the outgoing WebSocket message format.
type serverMessage struct {
	Type      string          `json:"type"` // "spawn", "expire", "snapshot", "playback" or "error"
	Particle  *snow.Particle  `json:"particle,omitempty"`
	Particles []snow.Particle `json:"particles,omitempty"`
	ID        string          `json:"id,omitempty"`
	State     *playback.State `json:"state,omitempty"`
	Message   string          `json:"message,omitempty"`
}

// session is one mounted page: its own snowfall and playback toggle.
type session struct {
	conn   *websocket.Conn
	gen    *snow.Generator
	toggle *playback.Toggle
	out    chan serverMessage
	done   chan struct{}
}

func (g *Gallery) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("gallery: websocket upgrade: %v", err)
		return
	}

	g.sessions.Add(1)
	defer g.sessions.Add(-1)

	s := g.newSession(conn)
	s.run()
}

func (g *Gallery) newSession(conn *websocket.Conn) *session {
	s := &session{
		conn: conn,
		out:  make(chan serverMessage, 64),
		done: make(chan struct{}),
	}
	deck := playback.NewDeck(g.opts.Background, g.opts.Narration)
	s.toggle = playback.NewToggle(deck.Players())
	s.gen = snow.New(
		snow.WithInterval(g.opts.SnowInterval),
		snow.WithLifetime(g.opts.SnowLifetime),
		snow.WithListener(s),
	)
	return s
}

// run mounts the page, serves it until the client goes away, then unmounts.
func (s *session) run() {
	defer s.conn.Close()

	writerDone := make(chan struct{})
	go s.writeLoop(writerDone)

	st := s.toggle.State()
	s.send(serverMessage{Type: "playback", State: &st})
	s.gen.Start()

	s.readLoop()

	s.gen.Stop()
	s.toggle.Close()
	close(s.done)
	<-writerDone
}

// Spawned implements snow.Listener.
func (s *session) Spawned(p snow.Particle) {
	s.send(serverMessage{Type: "spawn", Particle: &p})
}

// Expired implements snow.Listener.
func (s *session) Expired(p snow.Particle) {
	s.send(serverMessage{Type: "expire", ID: p.ID})
}

// send queues a message for the writer, or drops it once the page is gone.
func (s *session) send(msg serverMessage) {
	select {
	case s.out <- msg:
	case <-s.done:
	}
}

func (s *session) sendError(message string) {
	s.send(serverMessage{Type: "error", Message: message})
}

// writeLoop is the only goroutine writing to the connection. After a write
// failure it closes the connection, which ends readLoop, and keeps draining
// so senders never block.
func (s *session) writeLoop(done chan struct{}) {
	defer close(done)

	failed := false
	for {
		select {
		case msg := <-s.out:
			if failed {
				continue
			}
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(msg); err != nil {
				log.Printf("gallery: websocket write: %v", err)
				failed = true
				s.conn.Close()
			}
		case <-s.done:
			return
		}
	}
}

func (s *session) readLoop() {
	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("gallery: websocket read: %v", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.sendError("invalid message format")
			continue
		}

		switch msg.Type {
		case "toggle":
			track, err := playback.ParseTrack(msg.Track)
			if err != nil {
				s.sendError(err.Error())
				continue
			}
			st, err := s.toggle.Flip(track)
			if err != nil {
				s.sendError(err.Error())
				continue
			}
			s.send(serverMessage{Type: "playback", State: &st})
		case "sync":
			s.send(serverMessage{Type: "snapshot", Particles: s.gen.Live()})
		default:
			s.sendError("unknown message type: " + msg.Type)
		}
	}
}
