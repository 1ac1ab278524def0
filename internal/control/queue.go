// Package control carries operator input to the simulation between ticks.
package control

// Kind identifies an operator command.
type Kind int

const (
	// TogglePause flips the pause flag.
	TogglePause Kind = iota
	// SetPaused sets the pause flag to Command.Paused.
	SetPaused
	// ToggleCell flips the cell at Command.X, Command.Y.
	ToggleCell
	// TogglePointer flips the cell under the stored pointer.
	TogglePointer
	// MovePointer records Command.PX, Command.PY in simulation space.
	MovePointer
	// EditRule submits Command.Text as a new rule.
	EditRule
	// StepOnce advances a single generation while paused.
	StepOnce
	// Reset reseeds the board with Command.Seed.
	Reset
	// Quit ends the session.
	Quit
)

func (k Kind) String() string {
	switch k {
	case TogglePause:
		return "toggle-pause"
	case SetPaused:
		return "set-paused"
	case ToggleCell:
		return "toggle-cell"
	case TogglePointer:
		return "toggle-pointer"
	case MovePointer:
		return "move-pointer"
	case EditRule:
		return "edit-rule"
	case StepOnce:
		return "step-once"
	case Reset:
		return "reset"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is a single operator request.
type Command struct {
	Kind   Kind
	X, Y   int
	PX, PY float64
	Paused bool
	Text   string
	Seed   int64
}

// Queue is a bounded FIFO of commands. Producers may run on any goroutine;
// the tick loop drains it between generations.
type Queue struct {
	ch chan Command
}

// NewQueue returns a queue holding at most size pending commands.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 64
	}
	return &Queue{ch: make(chan Command, size)}
}

// Push enqueues c without blocking. It reports false when the queue is full.
func (q *Queue) Push(c Command) bool {
	select {
	case q.ch <- c:
		return true
	default:
		return false
	}
}

// Drain hands every pending command to fn in arrival order and returns how
// many were handled. It never blocks.
func (q *Queue) Drain(fn func(Command)) int {
	n := 0
	for {
		select {
		case c := <-q.ch:
			fn(c)
			n++
		default:
			return n
		}
	}
}

// Len reports the number of pending commands.
func (q *Queue) Len() int { return len(q.ch) }
