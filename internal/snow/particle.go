// Package snow generates the ephemeral snowflake particles drawn over the
// gallery page.
//
// A Generator creates one particle per interval and removes each particle
// once its lifetime has passed. The live set is bounded by lifetime/interval
// without an explicit cap: expiry is the only backpressure.
package snow

import (
	"math"
	"time"
)

// Attribute ranges. Each bound is [min, max): drawn uniformly.
const (
	MinLeft     = 0.0
	MaxLeft     = 100.0
	MinDuration = 2.0
	MaxDuration = 5.0
	MinOpacity  = 0.3
	MaxOpacity  = 0.8
	MinSize     = 10.0
	MaxSize     = 20.0
)

const (
	DefaultInterval = 300 * time.Millisecond
	DefaultLifetime = 5 * time.Second
)

// Particle is one falling snowflake.
type Particle struct {
	ID        string    `json:"id"`
	Left      float64   `json:"left"`     // percent of viewport width
	Duration  float64   `json:"duration"` // fall animation, seconds
	Opacity   float64   `json:"opacity"`
	Size      float64   `json:"size"` // font size, pixels
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SteadyStateBound returns the most particles that can be live at once
// when one is created every interval and each lives for lifetime.
func SteadyStateBound(interval, lifetime time.Duration) int {
	if interval <= 0 {
		return 0
	}
	return int(math.Ceil(float64(lifetime) / float64(interval)))
}
