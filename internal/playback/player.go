// Package playback holds the play/pause state of the gallery's two audio
// tracks. No media is decoded: each track is an endless silent stream, so a
// track can report "playing" while nothing is audible.
package playback

import (
	"log"
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate of the silent streams.
const SampleRate = beep.SampleRate(44100)

// Player is the playback capability a toggle drives.
type Player interface {
	Play()
	Pause()
}

// Source describes a placeholder track.
type Source struct {
	Label  string  // human name used in logs
	File   string  // media file the track stands in for
	Volume float64 // linear, 0..1
}

// SilentPlayer plays silence through a pausable beep stream.
type SilentPlayer struct {
	mu     *sync.Mutex
	source Source
	ctrl   *beep.Ctrl
	volume *effects.Volume
}

func newSilentPlayer(mu *sync.Mutex, src Source) *SilentPlayer {
	vol := &effects.Volume{
		Streamer: beep.Silence(-1),
		Base:     2,
		Volume:   linearToBase2(src.Volume),
		Silent:   src.Volume <= 0,
	}
	return &SilentPlayer{
		mu:     mu,
		source: src,
		ctrl:   &beep.Ctrl{Streamer: vol, Paused: true},
		volume: vol,
	}
}

// Play stands in for real playback: it logs what would play and unpauses
// the silent stream.
func (p *SilentPlayer) Play() {
	log.Printf("playback: %s play (%s)", p.source.Label, p.source.File)
	p.mu.Lock()
	p.ctrl.Paused = false
	p.mu.Unlock()
}

// Pause pauses the silent stream.
func (p *SilentPlayer) Pause() {
	p.mu.Lock()
	p.ctrl.Paused = true
	p.mu.Unlock()
}

// Paused reports whether the stream is paused.
func (p *SilentPlayer) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctrl.Paused
}

// Source returns the track description.
func (p *SilentPlayer) Source() Source { return p.source }

func linearToBase2(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Log2(v)
}

// Deck mixes the background and narration players. It is never attached to
// a speaker.
type Deck struct {
	mu         sync.Mutex
	mixer      *beep.Mixer
	background *SilentPlayer
	narration  *SilentPlayer
}

// NewDeck creates a deck with both tracks paused.
func NewDeck(background, narration Source) *Deck {
	d := &Deck{mixer: &beep.Mixer{}}
	d.background = newSilentPlayer(&d.mu, background)
	d.narration = newSilentPlayer(&d.mu, narration)
	d.mixer.Add(d.background.ctrl, d.narration.ctrl)
	return d
}

// Background returns the background-music player.
func (d *Deck) Background() *SilentPlayer { return d.background }

// Narration returns the narration player.
func (d *Deck) Narration() *SilentPlayer { return d.narration }

// Players returns both players keyed by track, ready for a Toggle.
func (d *Deck) Players() map[Track]Player {
	return map[Track]Player{
		TrackBackground: d.background,
		TrackNarration:  d.narration,
	}
}

// Stream pulls mixed samples from the deck.
func (d *Deck) Stream(samples [][2]float64) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n, _ := d.mixer.Stream(samples)
	return n
}
