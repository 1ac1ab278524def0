// Package session wires the automaton, operator commands, presentation and
// telemetry together for one tick loop.
package session

import (
	"fmt"

	"github.com/charmbracelet/log"

	"decay-ca/internal/control"
	"decay-ca/internal/telemetry"
	"decay-ca/pkg/sims/life"
)

// Presenter updates a display from engine output without reading the grid.
type Presenter interface {
	Present(tr []life.Transition, r life.Rule) error
	PresentEdit(e life.Edit, r life.Rule) error
	Sync(cells []uint8, r life.Rule) error
}

// Session owns a Life board and applies queued commands between generations.
type Session struct {
	sim       *life.Life
	queue     *control.Queue
	logger    *log.Logger
	presenter Presenter
	collector *telemetry.Collector

	cellSize float64
	seed     int64
	stepOnce bool
	quit     bool
	status   string
	lastErr  error
}

// Option customises a Session.
type Option func(*Session)

// WithPresenter attaches a display.
func WithPresenter(p Presenter) Option {
	return func(s *Session) { s.presenter = p }
}

// WithCollector records a telemetry sample after every step.
func WithCollector(c *telemetry.Collector) Option {
	return func(s *Session) { s.collector = c }
}

// WithCellSize sets the simulation-space size of a cell used for pointer hits.
func WithCellSize(size float64) Option {
	return func(s *Session) { s.cellSize = size }
}

// New builds a session around sim. The board is reseeded with seed.
func New(sim *life.Life, q *control.Queue, logger *log.Logger, seed int64, opts ...Option) (*Session, error) {
	if q == nil {
		q = control.NewQueue(0)
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Session{sim: sim, queue: q, logger: logger, seed: seed, cellSize: 1}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.reset(seed); err != nil {
		return nil, err
	}
	return s, nil
}

// Sim exposes the board.
func (s *Session) Sim() *life.Life { return s.sim }

// Queue exposes the command queue for producers.
func (s *Session) Queue() *control.Queue { return s.queue }

// Collector returns the telemetry collector, if any.
func (s *Session) Collector() *telemetry.Collector { return s.collector }

// Done reports whether a Quit command was handled.
func (s *Session) Done() bool { return s.quit }

// Status returns the last operator-facing message.
func (s *Session) Status() string { return s.status }

// LastError returns the most recent recoverable error, such as a rejected rule.
func (s *Session) LastError() error { return s.lastErr }

// Tick drains pending commands and then advances one generation. Decaying
// cells keep fading while paused; live and dead cells only change when
// running or when a single step was requested. The returned error is only
// ever a presentation failure.
func (s *Session) Tick() error {
	var err error
	s.queue.Drain(func(c control.Command) {
		if herr := s.Handle(c); herr != nil && err == nil {
			err = herr
		}
	})
	if err != nil || s.quit {
		return err
	}

	if s.stepOnce && s.sim.Paused() {
		s.sim.SetPaused(false)
		s.sim.Step()
		s.sim.SetPaused(true)
	} else {
		s.sim.Step()
	}
	s.stepOnce = false

	r := s.sim.Rule()
	if s.collector != nil {
		s.collector.Observe(telemetry.Count(s.sim.Generation(), s.sim.Cells(), s.sim.Transitions(), r, s.sim.Paused()))
	}
	if s.presenter != nil {
		if err := s.presenter.Present(s.sim.Transitions(), r); err != nil {
			return fmt.Errorf("session: present generation %d: %w", s.sim.Generation(), err)
		}
	}
	return nil
}

// Handle applies one command immediately. Callers outside the tick loop
// should push onto the queue instead.
func (s *Session) Handle(c control.Command) error {
	switch c.Kind {
	case control.TogglePause:
		paused := s.sim.Interaction().TogglePaused()
		s.announcePause(paused)
	case control.SetPaused:
		s.sim.SetPaused(c.Paused)
		s.announcePause(c.Paused)
	case control.MovePointer:
		s.sim.Interaction().MovePointer(c.PX, c.PY)
	case control.ToggleCell:
		edit, ok := s.sim.Toggle(c.X, c.Y)
		return s.presentEdit(edit, ok)
	case control.TogglePointer:
		edit, ok := s.sim.ToggleAtPointer(s.cellSize)
		return s.presentEdit(edit, ok)
	case control.EditRule:
		s.applyRule(c.Text)
	case control.StepOnce:
		s.stepOnce = true
	case control.Reset:
		return s.reset(c.Seed)
	case control.Quit:
		s.quit = true
	default:
		s.logger.Warn("ignoring unknown command", "kind", c.Kind)
	}
	return nil
}

func (s *Session) announcePause(paused bool) {
	if paused {
		s.status = "paused, rule " + s.sim.Rule().String()
	} else {
		s.status = "running, rule " + s.sim.Rule().String()
	}
	s.logger.Info("pause toggled", "paused", paused, "rule", s.sim.Rule().String())
}

func (s *Session) applyRule(text string) {
	before := s.sim.Rule()
	if err := s.sim.ApplyRuleText(text); err != nil {
		s.lastErr = err
		s.status = "rule rejected: " + err.Error()
		s.logger.Warn("rule rejected", "text", text, "err", err, "rule", before.String())
		return
	}
	s.lastErr = nil
	s.status = "rule " + s.sim.Rule().String()
	s.logger.Info("rule applied", "text", text, "from", before.String(), "to", s.sim.Rule().String())
}

func (s *Session) presentEdit(edit life.Edit, ok bool) error {
	if !ok {
		s.logger.Debug("cell edit ignored while running")
		return nil
	}
	if s.presenter == nil {
		return nil
	}
	if err := s.presenter.PresentEdit(edit, s.sim.Rule()); err != nil {
		return fmt.Errorf("session: present edit: %w", err)
	}
	return nil
}

func (s *Session) reset(seed int64) error {
	s.seed = seed
	s.sim.Reset(seed)
	s.stepOnce = false
	s.logger.Debug("board reset", "seed", seed, "rule", s.sim.Rule().String())
	if s.presenter != nil {
		if err := s.presenter.Sync(s.sim.Cells(), s.sim.Rule()); err != nil {
			return fmt.Errorf("session: sync after reset: %w", err)
		}
	}
	return nil
}

// Seed returns the seed used by the last reset.
func (s *Session) Seed() int64 { return s.seed }
