package core

// Wrap reduces v into [0, bound) using true modulo, so -1 maps to bound-1.
func Wrap(v, bound int) int {
	return ((v % bound) + bound) % bound
}

// Index maps (x, y) to a row-major slice index, wrapping both axes. Any
// integer coordinate is accepted.
func Index(x, y, w, h int) int {
	return Wrap(x, w) + Wrap(y, h)*w
}

// Coord is the inverse of Index for indices in [0, w*h).
func Coord(i, w int) (int, int) {
	return i % w, i / w
}

// ByteGrid stores a 2D toroidal grid of byte-sized cell values in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// ViewByteGrid wraps an existing row-major slice of length w*h without copying.
func ViewByteGrid(data []uint8, w, h int) *ByteGrid {
	return &ByteGrid{W: w, H: h, data: data}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y) after wrapping.
func (g *ByteGrid) Index(x, y int) int { return Index(x, y, g.W, g.H) }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *ByteGrid) Wrap(x, y int) (int, int) {
	return Wrap(x, g.W), Wrap(y, g.H)
}

// At returns the value stored at (x, y).
func (g *ByteGrid) At(x, y int) uint8 { return g.data[g.Index(x, y)] }

// Set stores v at (x, y).
func (g *ByteGrid) Set(x, y int, v uint8) { g.data[g.Index(x, y)] = v }

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() { clear(g.data) }
