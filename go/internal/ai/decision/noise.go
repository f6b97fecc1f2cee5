package decision

import (
	rand "math/rand/v2"
	"sync"
)

// NoiseAmplitude bounds the human-like perturbation applied to every score.
const NoiseAmplitude = 0.05

// NoiseSource yields the relative perturbation applied to a score total.
type NoiseSource interface {
	Noise() float64
}

// ZeroNoise makes scoring fully deterministic.
type ZeroNoise struct{}

func (ZeroNoise) Noise() float64 { return 0 }

// lockedRand serialises access to a *rand.Rand shared by concurrent drafts.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()
}

// UniformNoise draws uniformly from [-NoiseAmplitude, +NoiseAmplitude).
type UniformNoise struct {
	src *lockedRand
}

// NewUniformNoise wraps rng; the returned source is safe for concurrent use.
func NewUniformNoise(rng *rand.Rand) *UniformNoise {
	return &UniformNoise{src: &lockedRand{rng: rng}}
}

func (u *UniformNoise) Noise() float64 {
	return (u.src.Float64()*2 - 1) * NoiseAmplitude
}
