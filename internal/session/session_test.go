package session

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"decay-ca/internal/control"
	"decay-ca/internal/render"
	"decay-ca/internal/telemetry"
	"decay-ca/pkg/core"
	"decay-ca/pkg/sims/life"
)

func newSession(t *testing.T, w, h int, opts ...Option) *Session {
	t.Helper()
	cfg := life.DefaultConfig()
	cfg.Width, cfg.Height = w, h
	s, err := New(life.NewWithConfig(cfg), control.NewQueue(16), log.New(io.Discard), 1, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestRuleEditAppliedBetweenTicks(t *testing.T) {
	s := newSession(t, 30, 30)
	s.Queue().Push(control.Command{Kind: control.EditRule, Text: "3/23/4/"})
	if s.Sim().Rule().DecayStates != 0 {
		t.Fatal("rule changed before the tick drained the queue")
	}
	if err := s.Tick(); err != nil {
		t.Fatal(err)
	}
	if got := s.Sim().Rule().String(); got != "3/23/4/" {
		t.Fatalf("rule = %s", got)
	}
	// The blinker ends dropped into decay state 4 under the new rule.
	if got := s.Sim().Cells()[core.Index(25, 25, 30, 30)]; got != 4 {
		t.Fatalf("blinker end = %d, want 4", got)
	}
}

func TestRejectedRuleKeepsRunning(t *testing.T) {
	s := newSession(t, 30, 30)
	s.Queue().Push(control.Command{Kind: control.EditRule, Text: "36/23/999/"})
	if err := s.Tick(); err != nil {
		t.Fatalf("a bad rule must not fail the tick: %v", err)
	}
	var perr *life.RuleParseError
	if !errors.As(s.LastError(), &perr) {
		t.Fatalf("expected RuleParseError, got %v", s.LastError())
	}
	if s.Sim().Rule() != life.DefaultRule() {
		t.Fatalf("rule changed to %s", s.Sim().Rule())
	}
	if s.Sim().Generation() != 1 {
		t.Fatalf("generation = %d", s.Sim().Generation())
	}
}

func TestPauseToggleAndSingleStep(t *testing.T) {
	s := newSession(t, 30, 30)
	s.Queue().Push(control.Command{Kind: control.TogglePause})
	if err := s.Tick(); err != nil {
		t.Fatal(err)
	}
	before := append([]uint8(nil), s.Sim().Cells()...)
	if err := s.Tick(); err != nil {
		t.Fatal(err)
	}
	for i, v := range before {
		if s.Sim().Cells()[i] != v {
			t.Fatalf("cell %d changed while paused", i)
		}
	}

	s.Queue().Push(control.Command{Kind: control.StepOnce})
	if err := s.Tick(); err != nil {
		t.Fatal(err)
	}
	if !s.Sim().Paused() {
		t.Fatal("single step should leave the session paused")
	}
	if s.Sim().Cells()[core.Index(26, 24, 30, 30)] != 1 {
		t.Fatal("single step did not advance the blinker")
	}
}

func TestToggleCommandsRespectPause(t *testing.T) {
	sw := render.NewSwatch(100, render.DefaultPalette())
	s := newSession(t, 10, 10, WithPresenter(sw), WithCellSize(10))
	idx := core.Index(2, 3, 10, 10)

	if err := s.Handle(control.Command{Kind: control.ToggleCell, X: 2, Y: 3}); err != nil {
		t.Fatal(err)
	}
	if s.Sim().Cells()[idx] != 0 {
		t.Fatal("toggle while running should be ignored")
	}

	s.Handle(control.Command{Kind: control.SetPaused, Paused: true})
	if err := s.Handle(control.Command{Kind: control.ToggleCell, X: 2, Y: 3}); err != nil {
		t.Fatal(err)
	}
	if s.Sim().Cells()[idx] != 1 || sw.Colors()[idx] != sw.Palette().Alive {
		t.Fatal("paused toggle should set the cell and recolour it")
	}

	px, py := life.ScreenToSim(25, 35, 10, 10, 10)
	s.Handle(control.Command{Kind: control.MovePointer, PX: px, PY: py})
	if err := s.Handle(control.Command{Kind: control.TogglePointer}); err != nil {
		t.Fatal(err)
	}
	if s.Sim().Cells()[idx] != 0 || sw.Colors()[idx] != sw.Palette().Dead {
		t.Fatal("pointer toggle should clear the same cell")
	}
}

func TestPresenterAndCollectorFollowSteps(t *testing.T) {
	cfg := life.DefaultConfig()
	cfg.Width, cfg.Height = 30, 30
	sw := render.NewSwatch(30*30, render.DefaultPalette())
	col := telemetry.NewCollector(0)
	s, err := New(life.NewWithConfig(cfg), nil, log.New(io.Discard), 0, WithPresenter(sw), WithCollector(col))
	if err != nil {
		t.Fatal(err)
	}
	if sw.Colors()[core.Index(25, 25, 30, 30)] != sw.Palette().Alive {
		t.Fatal("reset should sync the swatch")
	}
	if err := s.Tick(); err != nil {
		t.Fatal(err)
	}
	if sw.Colors()[core.Index(25, 25, 30, 30)] != sw.Palette().Dead {
		t.Fatal("blinker end should be recoloured dead")
	}
	if sw.Colors()[core.Index(26, 24, 30, 30)] != sw.Palette().Alive {
		t.Fatal("new blinker cell should be recoloured alive")
	}
	samples := col.Samples()
	if len(samples) != 1 || samples[0].Alive != 3 || samples[0].Born != 2 || samples[0].Died != 2 {
		t.Fatalf("unexpected samples %+v", samples)
	}
}

func TestMissingHandleSurfaces(t *testing.T) {
	cfg := life.DefaultConfig()
	cfg.Width, cfg.Height = 4, 4
	_, err := New(life.NewWithConfig(cfg), nil, log.New(io.Discard), 0, WithPresenter(render.NewSwatch(3, render.DefaultPalette())))
	if !errors.Is(err, render.ErrMissingHandle) {
		t.Fatalf("expected ErrMissingHandle, got %v", err)
	}
}

func TestQuitStopsStepping(t *testing.T) {
	s := newSession(t, 30, 30)
	s.Queue().Push(control.Command{Kind: control.Quit})
	if err := s.Tick(); err != nil {
		t.Fatal(err)
	}
	if !s.Done() || s.Sim().Generation() != 0 {
		t.Fatalf("done=%v generation=%d", s.Done(), s.Sim().Generation())
	}
}

func TestResetCommand(t *testing.T) {
	s := newSession(t, 30, 30)
	s.Tick()
	s.Tick()
	s.Queue().Push(control.Command{Kind: control.Reset, Seed: 5})
	s.Tick()
	if s.Seed() != 5 || s.Sim().Generation() != 1 {
		t.Fatalf("seed=%d generation=%d", s.Seed(), s.Sim().Generation())
	}
}
