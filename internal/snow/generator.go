package snow

import (
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Listener observes the particle lifecycle. Calls are made without any
// generator lock held, from the ticker goroutine or a removal timer.
type Listener interface {
	Spawned(p Particle)
	Expired(p Particle)
}

// Clock supplies time to the generator. Tests substitute a manual clock.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func())
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }

// Option configures a Generator.
type Option func(*Generator)

// WithInterval sets the creation interval.
func WithInterval(d time.Duration) Option {
	return func(g *Generator) { g.interval = d }
}

// WithLifetime sets how long each particle lives.
func WithLifetime(d time.Duration) Option {
	return func(g *Generator) { g.lifetime = d }
}

// WithRand sets the random source used for particle attributes.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rng = r }
}

// WithListener registers the lifecycle listener.
func WithListener(l Listener) Option {
	return func(g *Generator) { g.listener = l }
}

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(g *Generator) { g.clock = c }
}

type entry struct {
	seq uint64
	p   Particle
}

// Generator owns the live particle arena for one page.
type Generator struct {
	interval time.Duration
	lifetime time.Duration
	clock    Clock
	listener Listener

	mu      sync.Mutex
	rng     *rand.Rand
	live    map[string]entry
	seq     uint64
	running bool
	stopped bool
	quit    chan struct{}
	done    chan struct{}
}

// New creates a stopped Generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		interval: DefaultInterval,
		lifetime: DefaultLifetime,
		clock:    realClock{},
		live:     make(map[string]entry),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g
}

// Interval returns the creation interval.
func (g *Generator) Interval() time.Duration { return g.interval }

// Lifetime returns the particle lifetime.
func (g *Generator) Lifetime() time.Duration { return g.lifetime }

// Start begins creating a particle every interval. It is a no-op while the
// generator is already running.
func (g *Generator) Start() {
	g.mu.Lock()
	if g.running {
		g.mu.Unlock()
		return
	}
	g.running = true
	g.stopped = false
	g.quit = make(chan struct{})
	g.done = make(chan struct{})
	quit, done := g.quit, g.done
	g.mu.Unlock()

	go g.loop(quit, done)
}

func (g *Generator) loop(quit, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
			g.tick(true)
		}
	}
}

// Stop cancels the interval and returns once no tick is in flight. Pending
// removals still run, but the listener hears nothing more. Calling Stop
// again is a no-op.
func (g *Generator) Stop() {
	g.mu.Lock()
	g.stopped = true
	if !g.running {
		g.mu.Unlock()
		return
	}
	g.running = false
	close(g.quit)
	done := g.done
	g.mu.Unlock()

	<-done
}

// Tick creates one particle, adds it to the live set and schedules its
// removal lifetime after creation.
func (g *Generator) Tick() Particle {
	p, _ := g.tick(false)
	return p
}

func (g *Generator) tick(fromLoop bool) (Particle, bool) {
	g.mu.Lock()
	if fromLoop && g.stopped {
		g.mu.Unlock()
		return Particle{}, false
	}

	now := g.clock.Now()
	p := Particle{
		ID:        uuid.NewString(),
		Left:      MinLeft + g.rng.Float64()*(MaxLeft-MinLeft),
		Duration:  MinDuration + g.rng.Float64()*(MaxDuration-MinDuration),
		Opacity:   MinOpacity + g.rng.Float64()*(MaxOpacity-MinOpacity),
		Size:      MinSize + g.rng.Float64()*(MaxSize-MinSize),
		CreatedAt: now,
		ExpiresAt: now.Add(g.lifetime),
	}
	g.seq++
	g.live[p.ID] = entry{seq: g.seq, p: p}
	notify := !g.stopped
	g.mu.Unlock()

	if notify && g.listener != nil {
		g.listener.Spawned(p)
	}

	id := p.ID
	g.clock.AfterFunc(p.ExpiresAt.Sub(g.clock.Now()), func() { g.remove(id) })
	return p, true
}

// remove deletes the particle if it is still live.
func (g *Generator) remove(id string) {
	g.mu.Lock()
	e, ok := g.live[id]
	if ok {
		delete(g.live, id)
	}
	notify := ok && !g.stopped
	g.mu.Unlock()

	if notify && g.listener != nil {
		g.listener.Expired(e.p)
	}
}

// Len returns the number of live particles.
func (g *Generator) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.live)
}

// Live returns a snapshot of the live particles, oldest first.
func (g *Generator) Live() []Particle {
	g.mu.Lock()
	entries := make([]entry, 0, len(g.live))
	for _, e := range g.live {
		entries = append(entries, e)
	}
	g.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	out := make([]Particle, len(entries))
	for i, e := range entries {
		out[i] = e.p
	}
	return out
}
