package core

import (
	"context"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestFixedStepAccumulates(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	fs := NewFixedStep(10)
	fs.now = clock.now

	if !fs.ShouldStep() {
		t.Fatal("first tick should be immediate")
	}
	if fs.ShouldStep() {
		t.Fatal("no time passed, no tick due")
	}
	clock.t = clock.t.Add(250 * time.Millisecond)
	steps := 0
	for fs.ShouldStep() {
		steps++
	}
	if steps != 2 {
		t.Fatalf("expected 2 ticks in 250ms at 10 TPS, got %d", steps)
	}
}

func TestFixedStepDefaultsAndInterval(t *testing.T) {
	fs := NewFixedStep(0)
	if fs.Interval() != time.Second/60 {
		t.Fatalf("expected 60 TPS default, got %v", fs.Interval())
	}
	fs.SetTPS(4)
	if fs.Interval() != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %v", fs.Interval())
	}
}

func TestFixedStepWaitHonoursContext(t *testing.T) {
	fs := NewFixedStep(1)
	ctx := context.Background()
	if err := fs.Wait(ctx); err != nil {
		t.Fatalf("first wait should return at once: %v", err)
	}
	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if err := fs.Wait(cctx); err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestFixedStepWaitPaces(t *testing.T) {
	fs := NewFixedStep(200)
	start := time.Now()
	for range 3 {
		if err := fs.Wait(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if elapsed := time.Since(start); elapsed < 2*fs.Interval() {
		t.Fatalf("three ticks took %v, want at least %v", elapsed, 2*fs.Interval())
	}
}
