package internal

import (
	"math/rand/v2"
)

// Color is an opaque category marker assigned when a subscription is created
type Color string

const (
	ColorBlue   Color = "blue"
	ColorRed    Color = "red"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorPurple Color = "purple"
	ColorPink   Color = "pink"
)

// Palette is the fixed set of colors new subscriptions are tagged with
var Palette = []Color{ColorBlue, ColorRed, ColorGreen, ColorYellow, ColorPurple, ColorPink}

// IsPaletteColor returns true if c is one of the palette colors
func IsPaletteColor(c Color) bool {
	for _, p := range Palette {
		if p == c {
			return true
		}
	}
	return false
}

// ColorChooser picks an index in [0, n)
type ColorChooser interface {
	Choose(n int) int
}

// RandomChooser picks uniformly at random
type RandomChooser struct {
	rng *rand.Rand
}

// NewRandomChooser returns a chooser seeded from the runtime's random source
func NewRandomChooser() *RandomChooser {
	return &RandomChooser{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededChooser returns a deterministic chooser
func NewSeededChooser(seed uint64) *RandomChooser {
	return &RandomChooser{rng: rand.New(rand.NewPCG(seed, seed))}
}

func (r *RandomChooser) Choose(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.IntN(n)
}

// FixedChooser always returns the same index (wrapped into range)
type FixedChooser int

func (f FixedChooser) Choose(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(f) % n
	if i < 0 {
		i += n
	}
	return i
}

// PickColor returns the palette color selected by the chooser
func PickColor(c ColorChooser) Color {
	return Palette[c.Choose(len(Palette))]
}
