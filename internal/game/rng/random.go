// Package rng provides the seeded generator that drives conquest priorities.
// Draws depend only on the seed and the call sequence, so a recorded attack
// replays identically.
package rng

const (
	modulus    = 1 << 31
	multiplier = 1103515245
	increment  = 12345
)

// PseudoRandom is a linear congruential generator. It is not safe for
// concurrent use.
type PseudoRandom struct {
	seed  int64
	state uint64
	draws int
}

// New creates a generator from seed. Negative seeds are folded into range.
func New(seed int64) *PseudoRandom {
	p := &PseudoRandom{seed: seed}
	p.Reset()
	return p
}

// Reset rewinds the generator to its initial seed.
func (p *PseudoRandom) Reset() {
	s := p.seed % modulus
	if s < 0 {
		s += modulus
	}
	p.state = uint64(s)
	p.draws = 0
}

func (p *PseudoRandom) Seed() int64 { return p.seed }

// Draws reports how many values have been produced since the last reset.
func (p *PseudoRandom) Draws() int { return p.draws }

// Next returns a value in [0, 1).
func (p *PseudoRandom) Next() float64 {
	p.state = (multiplier*p.state + increment) % modulus
	p.draws++
	return float64(p.state) / modulus
}

// NextInt returns an integer in [lo, hi], both inclusive. When hi <= lo it
// returns lo and still advances the state.
func (p *PseudoRandom) NextInt(lo, hi int) int {
	f := p.Next()
	if hi <= lo {
		return lo
	}
	return lo + int(f*float64(hi-lo+1))
}
