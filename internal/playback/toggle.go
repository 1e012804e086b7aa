package playback

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownTrack is returned for a track name the toggle does not own.
var ErrUnknownTrack = errors.New("unknown track")

// Track identifies one of the toggleable tracks.
type Track string

const (
	TrackBackground Track = "background"
	TrackNarration  Track = "narration"
)

// ParseTrack validates a track name.
func ParseTrack(s string) (Track, error) {
	switch t := Track(s); t {
	case TrackBackground, TrackNarration:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTrack, s)
	}
}

// State is the visible play/pause state of both tracks.
type State struct {
	Background bool `json:"background"`
	Narration  bool `json:"narration"`
}

// Toggle flips independent playing flags and drives the matching players.
type Toggle struct {
	mu      sync.Mutex
	players map[Track]Player
	playing map[Track]bool
}

// NewToggle creates a toggle with every track stopped.
func NewToggle(players map[Track]Player) *Toggle {
	return &Toggle{
		players: players,
		playing: make(map[Track]bool, len(players)),
	}
}

// Flip switches one track between playing and paused and returns the new
// state of both tracks.
func (t *Toggle) Flip(track Track) (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.players[track]
	if !ok {
		return t.stateLocked(), fmt.Errorf("%w: %q", ErrUnknownTrack, track)
	}

	if t.playing[track] {
		p.Pause()
	} else {
		p.Play()
	}
	t.playing[track] = !t.playing[track]

	return t.stateLocked(), nil
}

// State returns the current flags.
func (t *Toggle) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stateLocked()
}

func (t *Toggle) stateLocked() State {
	return State{
		Background: t.playing[TrackBackground],
		Narration:  t.playing[TrackNarration],
	}
}

// Close pauses every player and clears the flags.
func (t *Toggle) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for track, p := range t.players {
		p.Pause()
		t.playing[track] = false
	}
}
