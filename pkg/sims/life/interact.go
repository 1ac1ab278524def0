package life

import (
	"math"

	"decay-ca/pkg/core"
)

// Interaction holds operator state that is independent of the grid and rule:
// the pause flag and the last pointer position in simulation space.
type Interaction struct {
	Paused   bool
	PointerX float64
	PointerY float64
}

// SetPaused sets the pause flag and nothing else.
func (in *Interaction) SetPaused(paused bool) { in.Paused = paused }

// TogglePaused flips the pause flag and returns the new value.
func (in *Interaction) TogglePaused() bool {
	in.Paused = !in.Paused
	return in.Paused
}

// MovePointer records a pointer position already translated into simulation space.
func (in *Interaction) MovePointer(x, y float64) {
	in.PointerX, in.PointerY = x, y
}

// Toggle flips the cell at (x, y) between 0 and 1 and returns its index. A
// decaying cell becomes alive. While running this is a no-op.
func (in *Interaction) Toggle(cells []uint8, x, y, w, h int) (int, bool) {
	if !in.Paused {
		return 0, false
	}
	idx := core.Index(x, y, w, h)
	if cells[idx] == 1 {
		cells[idx] = 0
	} else {
		cells[idx] = 1
	}
	return idx, true
}

// PointerCell returns the grid coordinate under the stored pointer for a w×h
// grid drawn with cellSize units per cell. The result may be out of range;
// callers pass it through core.Index.
func (in *Interaction) PointerCell(w, h int, cellSize float64) (int, int) {
	halfW := float64(w) * cellSize / 2
	halfH := float64(h) * cellSize / 2
	return PointerAxis(in.PointerX, halfW, cellSize), PointerAxis(in.PointerY, halfH, cellSize)
}

// PointerAxis maps one simulation-space axis to a cell coordinate:
// ceil((p + halfExtent) / cellSize).
func PointerAxis(p, halfExtent, cellSize float64) int {
	return int(math.Ceil((p + halfExtent) / cellSize))
}

// ScreenToSim converts a window pixel into simulation space for a grid drawn
// from the top-left corner at cellSize pixels per cell. In simulation space
// the grid is centred on the origin with cell x centred at
// (x - (w+1)/2) * cellSize, which is the layout PointerAxis inverts.
func ScreenToSim(px, py float64, w, h int, cellSize float64) (float64, float64) {
	halfW := float64(w) * cellSize / 2
	halfH := float64(h) * cellSize / 2
	return px + 0.5 - halfW - cellSize, py + 0.5 - halfH - cellSize
}
