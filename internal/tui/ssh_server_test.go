package tui

import (
	"strings"
	"testing"

	"decay-ca/pkg/sims/life"
)

func TestBoardForCommandWords(t *testing.T) {
	base := life.DefaultConfig()
	base.Pattern = life.PatternRandom
	base.Density = 0.5
	s := &SSHServer{config: SSHServerConfig{Board: base}}

	sim, err := s.boardFor([]string{"fade", "pattern=glider"}, 20, 10)
	if err != nil {
		t.Fatalf("boardFor: %v", err)
	}
	if sim.Name() != "fade" || sim.Rule().DecayStates != 6 {
		t.Fatalf("expected fade preset, got %s %s", sim.Name(), sim.Rule())
	}
	if size := sim.Size(); size.W != 20 || size.H != 10 {
		t.Fatalf("size should follow the PTY: %+v", size)
	}
	if sim.Config().Pattern != life.PatternGlider {
		t.Fatalf("pattern override lost: %s", sim.Config().Pattern)
	}

	sim, err = s.boardFor([]string{"brain"}, 20, 10)
	if err != nil {
		t.Fatal(err)
	}
	if sim.Config().Pattern != life.PatternRandom || sim.Config().Density != 0.5 {
		t.Fatalf("server pattern should apply when not overridden: %+v", sim.Config())
	}
}

func TestBoardForDefaultsAndRejects(t *testing.T) {
	s := &SSHServer{config: SSHServerConfig{Board: life.DefaultConfig()}}
	sim, err := s.boardFor(nil, 30, 30)
	if err != nil {
		t.Fatal(err)
	}
	if sim.Rule() != life.DefaultRule() || sim.Size().W != 30 {
		t.Fatalf("unexpected default board: %s %+v", sim.Rule(), sim.Size())
	}
	sim, err = s.boardFor([]string{"rule=3/23/4/", "w=500"}, 30, 30)
	if err != nil {
		t.Fatal(err)
	}
	if sim.Rule().String() != "3/23/4/" || sim.Size().W != 30 {
		t.Fatalf("rule override or size clamp wrong: %s %+v", sim.Rule(), sim.Size())
	}

	_, err = s.boardFor([]string{"gosper"}, 30, 30)
	if err == nil || !strings.Contains(err.Error(), "highlife") {
		t.Fatalf("expected unknown board error listing names, got %v", err)
	}
}
