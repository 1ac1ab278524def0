package render

import (
	"errors"
	"image/color"
	"testing"

	"decay-ca/pkg/sims/life"
)

func TestPaletteColor(t *testing.T) {
	p := DefaultPalette()
	if p.Color(0, 4) != p.Dead || p.Color(1, 4) != p.Alive {
		t.Fatal("dead/alive colours wrong")
	}
	if got := p.Color(4, 4); got.G != 255 {
		t.Fatalf("full decay should be full green, got %+v", got)
	}
	if got := p.Color(2, 4); got.G != 128 {
		t.Fatalf("half decay should be half green, got %+v", got)
	}
	if got := p.Color(9, 4); got.G != 255 {
		t.Fatalf("stale decay value should clamp, got %+v", got)
	}
}

func TestSwatchPresentFromTransitionsOnly(t *testing.T) {
	s := NewSwatch(4, DefaultPalette())
	r := life.Rule{DecayStates: 4}
	tr := []life.Transition{
		{Kind: life.Born, State: 1},
		{Kind: life.Unchanged, State: 1},
		{Kind: life.Dying, State: 4},
		{Kind: life.Faded, State: 0},
	}
	if err := s.Present(tr, r); err != nil {
		t.Fatal(err)
	}
	p := s.Palette()
	want := []color.RGBA{p.Alive, p.Dead, p.Color(4, 4), p.Dead}
	for i, c := range s.Colors() {
		if c != want[i] {
			t.Fatalf("slot %d = %+v, want %+v", i, c, want[i])
		}
	}
}

func TestSwatchMissingHandle(t *testing.T) {
	s := NewSwatch(2, DefaultPalette())
	err := s.Present(make([]life.Transition, 3), life.Rule{})
	if !errors.Is(err, ErrMissingHandle) {
		t.Fatalf("expected ErrMissingHandle, got %v", err)
	}
	err = s.PresentEdit(life.Edit{Index: 5}, life.Rule{})
	if !errors.Is(err, ErrMissingHandle) {
		t.Fatalf("expected ErrMissingHandle for edit, got %v", err)
	}
	if err := s.Sync([]uint8{1}, life.Rule{}); !errors.Is(err, ErrMissingHandle) {
		t.Fatalf("expected ErrMissingHandle for sync, got %v", err)
	}
}

func TestFillSwatchRGBA(t *testing.T) {
	buf := make([]byte, 8)
	fillSwatchRGBA(buf, []color.RGBA{{R: 1, G: 2, B: 3, A: 4}, {R: 5, G: 6, B: 7, A: 8}})
	for i, v := range buf {
		if v != byte(i+1) {
			t.Fatalf("byte %d = %d", i, v)
		}
	}
}
