package life

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"decay-ca/pkg/core"
)

// Seed pattern names.
const (
	PatternEmpty   = "empty"
	PatternBlinker = "blinker"
	PatternGlider  = "glider"
	PatternRandom  = "random"
)

// ErrUnknownPattern is returned for pattern names SeedPattern does not know.
var ErrUnknownPattern = errors.New("life: unknown pattern")

var (
	blinkerCells = [][2]int{{25, 25}, {26, 25}, {27, 25}}
	gliderCells  = [][2]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}
)

// IsPattern reports whether name is a known seed pattern.
func IsPattern(name string) bool {
	switch name {
	case PatternEmpty, PatternBlinker, PatternGlider, PatternRandom:
		return true
	}
	return false
}

// PatternNames lists the known seed patterns.
func PatternNames() []string {
	return []string{PatternBlinker, PatternEmpty, PatternGlider, PatternRandom}
}

// SeedPattern clears cells and writes the named pattern. Coordinates wrap, so
// the blinker lands on small boards too.
func SeedPattern(cells []uint8, w, h int, pattern string, density float64, rng *rand.Rand) error {
	g := core.ViewByteGrid(cells, w, h)
	g.Clear()
	switch pattern {
	case PatternEmpty:
	case PatternBlinker:
		stamp(g, blinkerCells, 0, 0)
	case PatternGlider:
		stamp(g, gliderCells, w/2-1, h/2-1)
	case PatternRandom:
		core.FillDensity(rng, cells, density)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPattern, pattern)
	}
	return nil
}

func stamp(g *core.ByteGrid, pts [][2]int, ox, oy int) {
	for _, p := range pts {
		g.Set(p[0]+ox, p[1]+oy, 1)
	}
}
