package composer

import (
	"math"
	"math/rand/v2"
)

const sixteenth = TicksPerBeat / 4

// RandomSource yields uniform values in [0, 1).
type RandomSource interface {
	Float64() float64
}

// NewRandomSource returns a PCG source seeded with seed, or a randomly seeded
// one when seed is nil.
func NewRandomSource(seed *uint64) RandomSource {
	if seed == nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(*seed, *seed^0x9E3779B97F4A7C15))
}

// Timing applies swing and humanization to note placement and velocity.
type Timing struct {
	rng      RandomSource
	swing    float64
	humanize float64
}

// NewTiming takes swing and humanization as 0-100 amounts.
func NewTiming(rng RandomSource, swing, humanization int) Timing {
	return Timing{rng: rng, swing: float64(swing) / 100, humanize: float64(humanization) / 100}
}

// Jitter returns round((r - 0.5) * amount * humanization).
func (t Timing) Jitter(amount float64) int {
	return roundHalfUp((t.rng.Float64() - 0.5) * amount * t.humanize)
}

// Swing delays ticks that fall in an odd sixteenth of the bar.
func (t Timing) Swing(tick float64) float64 {
	inBar := math.Mod(tick, TicksPerBar)
	if t.swing > 0 && int(math.Floor(inBar/sixteenth))%2 == 1 {
		tick += sixteenth * t.swing * 0.3
	}
	return tick
}

// Place swings tick and adds timing jitter of the given amount. The result is never negative.
func (t Timing) Place(tick float64, jitter float64) int {
	return max(roundHalfUp(t.Swing(tick))+t.Jitter(jitter), 0)
}

// Velocity rounds base plus the already rounded jitter of the given amount.
func (t Timing) Velocity(base float64, jitter float64) int {
	return roundHalfUp(base + float64(t.Jitter(jitter)))
}

// roundHalfUp rounds .5 toward positive infinity.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
