package life

import (
	"strconv"

	"decay-ca/pkg/core"
)

// TransitionKind classifies what happened to a cell during one generation.
type TransitionKind uint8

const (
	// Unchanged means the cell kept its value.
	Unchanged TransitionKind = iota
	// Born means a dead cell became alive.
	Born
	// Died means a live cell went straight to dead (no decay configured).
	Died
	// Dying means a live cell entered the first decay state.
	Dying
	// Decaying means a decaying cell counted down and is still visible.
	Decaying
	// Faded means a decaying cell reached dead.
	Faded
)

func (k TransitionKind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Born:
		return "born"
	case Died:
		return "died"
	case Dying:
		return "dying"
	case Decaying:
		return "decaying"
	case Faded:
		return "faded"
	default:
		return "unknown"
	}
}

// Transition is the per-cell result of a step. State is the new cell value,
// which for Dying and Decaying is the remaining decay magnitude.
type Transition struct {
	Kind  TransitionKind
	State uint8
}

// Edit reports a manual change to a single cell.
type Edit struct {
	Index      int
	Transition Transition
}

func classify(prev, next uint8) TransitionKind {
	switch {
	case prev == next:
		return Unchanged
	case next == 1:
		return Born
	case prev == 1 && next == 0:
		return Died
	case prev == 1:
		return Dying
	case next == 0:
		return Faded
	default:
		return Decaying
	}
}

// Next computes the generation after src into dst. Both slices must hold w*h
// cells and must not alias. When paused, dead and live cells are carried over
// unchanged while decaying cells keep counting down. tr may be nil; otherwise
// it receives one Transition per cell.
func Next(dst, src []uint8, w, h int, r Rule, paused bool, tr []Transition) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			v := src[idx]
			var nv uint8
			switch {
			case v > 1:
				// A value of 2 skips 1, which would read as alive.
				if v != 2 {
					nv = v - 1
				}
			case paused:
				nv = v
			default:
				n := liveNeighbors(src, x, y, w, h)
				if v == 1 {
					nv = r.DecayStates
					if r.Survive.Has(n) {
						nv = 1
					}
				} else if r.Birth.Has(n) {
					nv = 1
				}
			}
			dst[idx] = nv
			if tr != nil {
				tr[idx] = Transition{Kind: classify(v, nv), State: nv}
			}
		}
	}
}

func liveNeighbors(cells []uint8, x, y, w, h int) int {
	neighbors := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if cells[core.Index(x+dx, y+dy, w, h)] == 1 {
				neighbors++
			}
		}
	}
	return neighbors
}

// Life is a generalized life-like automaton with decay on a toroidal grid.
type Life struct {
	cfg  Config
	w, h int
	cur  []uint8
	nxt  []uint8

	trans      []Transition
	rule       Rule
	input      Interaction
	generation uint64
}

// New returns a Life simulation with the provided dimensions and the default rule.
func New(w, h int) *Life {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Pattern = PatternEmpty
	return NewWithConfig(cfg)
}

// NewWithConfig returns a Life simulation configured from cfg. The grid is
// left empty until Reset is called.
func NewWithConfig(cfg Config) *Life {
	if cfg.Width <= 0 {
		cfg.Width = 1
	}
	if cfg.Height <= 0 {
		cfg.Height = 1
	}
	total := cfg.Width * cfg.Height
	return &Life{
		cfg:   cfg,
		w:     cfg.Width,
		h:     cfg.Height,
		cur:   make([]uint8, total),
		nxt:   make([]uint8, total),
		trans: make([]Transition, total),
		rule:  cfg.Rule,
	}
}

// Name returns the simulation identifier.
func (l *Life) Name() string {
	if l.cfg.Name != "" {
		return l.cfg.Name
	}
	return "life"
}

// Config returns the configuration the board was built from.
func (l *Life) Config() Config { return l.cfg }

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return core.Size{W: l.w, H: l.h} }

// Cells exposes the current grid values.
func (l *Life) Cells() []uint8 { return l.cur }

// Transitions exposes the per-cell result of the most recent Step.
func (l *Life) Transitions() []Transition { return l.trans }

// Generation returns the number of steps taken since the last Reset.
func (l *Life) Generation() uint64 { return l.generation }

// Rule returns the active rule.
func (l *Life) Rule() Rule { return l.rule }

// SetRule replaces the active rule. Call it between steps only.
func (l *Life) SetRule(r Rule) { l.rule = r }

// ApplyRuleText parses raw against the active rule and swaps it in on success.
func (l *Life) ApplyRuleText(raw string) error {
	return l.rule.Apply(raw)
}

// Paused reports whether live/dead evolution is frozen.
func (l *Life) Paused() bool { return l.input.Paused }

// SetPaused sets the pause flag.
func (l *Life) SetPaused(paused bool) { l.input.SetPaused(paused) }

// Interaction exposes the pointer and pause state.
func (l *Life) Interaction() *Interaction { return &l.input }

// Toggle flips the cell at (x, y) between dead and alive. It only has an
// effect while paused.
func (l *Life) Toggle(x, y int) (Edit, bool) {
	idx, ok := l.input.Toggle(l.cur, x, y, l.w, l.h)
	if !ok {
		return Edit{}, false
	}
	v := l.cur[idx]
	kind := Born
	if v == 0 {
		kind = Died
	}
	return Edit{Index: idx, Transition: Transition{Kind: kind, State: v}}, true
}

// ToggleAtPointer toggles the cell under the last known pointer position.
func (l *Life) ToggleAtPointer(cellSize float64) (Edit, bool) {
	x, y := l.input.PointerCell(l.w, l.h, cellSize)
	return l.Toggle(x, y)
}

// Reset reseeds the board from the configured pattern. Only the random
// pattern uses seed.
func (l *Life) Reset(seed int64) {
	rng := core.NewRNG(seed).Source()
	if err := SeedPattern(l.cur, l.w, l.h, l.cfg.Pattern, l.cfg.Density, rng); err != nil {
		clear(l.cur)
	}
	clear(l.nxt)
	for i := range l.trans {
		l.trans[i] = Transition{Kind: Unchanged, State: l.cur[i]}
	}
	l.generation = 0
}

// Step advances the simulation by one generation.
func (l *Life) Step() {
	Next(l.nxt, l.cur, l.w, l.h, l.rule, l.input.Paused, l.trans)
	l.cur, l.nxt = l.nxt, l.cur
	l.generation++
}

// Population counts live and decaying cells.
func (l *Life) Population() (alive, decaying int) {
	for _, v := range l.cur {
		switch {
		case v == 1:
			alive++
		case v > 1:
			decaying++
		}
	}
	return alive, decaying
}

// Parameters returns a display snapshot of the rule and grid.
func (l *Life) Parameters() core.ParameterSnapshot {
	alive, decaying := l.Population()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", l.w),
				intParam("h", "Height", l.h),
				{Key: "generation", Label: "Generation", Type: core.ParamTypeInt, Value: strconv.FormatUint(l.generation, 10)},
				intParam("alive", "Alive", alive),
				intParam("decaying", "Decaying", decaying),
			},
		},
		{
			Name: "Rule",
			Params: []core.Parameter{
				textParam("rule", "Rule", l.rule.String()),
				textParam("birth", "Birth", l.rule.Birth.String()),
				textParam("survive", "Survive", l.rule.Survive.String()),
				intParam("decay", "Decay states", int(l.rule.DecayStates)),
				{Key: "paused", Label: "Paused", Type: core.ParamTypeBool, Value: strconv.FormatBool(l.input.Paused)},
			},
		},
	}}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func textParam(key, label, value string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeText, Value: value}
}

func init() {
	for _, name := range PresetNames() {
		core.Register(name, func(cfg map[string]string) core.Sim {
			c := DefaultConfig()
			c.Rule, _ = Preset(name)
			c.Name = name
			return NewWithConfig(c.WithMap(cfg))
		})
	}
}
