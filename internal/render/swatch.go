package render

import (
	"errors"
	"fmt"
	"image/color"

	"decay-ca/pkg/sims/life"
)

// ErrMissingHandle is returned when a transition refers to a cell the swatch
// has no colour slot for. The slots are built once per board, so this always
// indicates a wiring bug.
var ErrMissingHandle = errors.New("render: missing cell handle")

// Palette chooses display colours for cell states.
type Palette struct {
	Alive color.RGBA
	Dead  color.RGBA
	Decay color.RGBA
}

// DefaultPalette returns magenta live cells on black with green fading corpses.
func DefaultPalette() Palette {
	return Palette{
		Alive: color.RGBA{R: 255, G: 0, B: 204, A: 255},
		Dead:  color.RGBA{A: 255},
		Decay: color.RGBA{G: 255, A: 255},
	}
}

// Color returns the colour for a cell holding state under a rule with the
// given decay length. Decaying cells scale Decay by state/decayStates.
func (p Palette) Color(state, decayStates uint8) color.RGBA {
	switch {
	case state == 0:
		return p.Dead
	case state == 1:
		return p.Alive
	case decayStates == 0:
		return p.Decay
	}
	f := float64(state) / float64(decayStates)
	if f > 1 {
		f = 1
	}
	return color.RGBA{
		R: uint8(float64(p.Decay.R)*f + 0.5),
		G: uint8(float64(p.Decay.G)*f + 0.5),
		B: uint8(float64(p.Decay.B)*f + 0.5),
		A: p.Decay.A,
	}
}

// Swatch holds one display colour per cell, addressed by the cell's flat index.
type Swatch struct {
	palette Palette
	colors  []color.RGBA
}

// NewSwatch allocates n colour slots, all dead.
func NewSwatch(n int, palette Palette) *Swatch {
	s := &Swatch{palette: palette, colors: make([]color.RGBA, n)}
	for i := range s.colors {
		s.colors[i] = palette.Dead
	}
	return s
}

// Colors exposes the colour slots.
func (s *Swatch) Colors() []color.RGBA { return s.colors }

// Palette returns the palette in use.
func (s *Swatch) Palette() Palette { return s.palette }

// Present recolours every cell whose transition is not Unchanged.
func (s *Swatch) Present(tr []life.Transition, r life.Rule) error {
	if len(tr) > len(s.colors) {
		return fmt.Errorf("%w: index %d of %d", ErrMissingHandle, len(s.colors), len(tr))
	}
	for i, t := range tr {
		if t.Kind == life.Unchanged {
			continue
		}
		s.colors[i] = s.palette.Color(t.State, r.DecayStates)
	}
	return nil
}

// PresentEdit recolours a single manually edited cell.
func (s *Swatch) PresentEdit(e life.Edit, r life.Rule) error {
	if e.Index < 0 || e.Index >= len(s.colors) {
		return fmt.Errorf("%w: index %d of %d", ErrMissingHandle, e.Index, len(s.colors))
	}
	s.colors[e.Index] = s.palette.Color(e.Transition.State, r.DecayStates)
	return nil
}

// Sync rebuilds every slot from raw cell values, used after a reset.
func (s *Swatch) Sync(cells []uint8, r life.Rule) error {
	if len(cells) != len(s.colors) {
		return fmt.Errorf("%w: board has %d cells, swatch has %d", ErrMissingHandle, len(cells), len(s.colors))
	}
	for i, v := range cells {
		s.colors[i] = s.palette.Color(v, r.DecayStates)
	}
	return nil
}
