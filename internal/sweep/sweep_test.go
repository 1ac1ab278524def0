package sweep

import (
	"context"
	"testing"

	"decay-ca/pkg/sims/life"
)

func mustRule(t *testing.T, text string) life.Rule {
	t.Helper()
	r, err := life.ParseRule(text, life.Rule{})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestGrid(t *testing.T) {
	rules := []life.Rule{mustRule(t, "3/23/0/"), mustRule(t, "36/23/0/")}
	got := Grid(rules, []uint8{0, 4}, []int64{1, 2, 3})
	if len(got) != 12 {
		t.Fatalf("expected 12 scenarios, got %d", len(got))
	}
	if got[3].Rule.DecayStates != 4 || got[3].Seed != 1 {
		t.Fatalf("unexpected ordering: %+v", got[3])
	}
	if kept := Grid(rules[:1], nil, []int64{1}); kept[0].Rule != rules[0] {
		t.Fatal("empty decays should keep the rule")
	}
}

func TestRunScenarioBlinker(t *testing.T) {
	opts := Options{Width: 30, Height: 30, Pattern: life.PatternBlinker, Generations: 10}
	res := RunScenario(opts, Scenario{Rule: life.DefaultRule(), Seed: 1})
	if res.Generations != 10 || res.MeanAlive != 3 || res.PeakAlive != 3 || res.ExtinctAt != 0 {
		t.Fatalf("blinker should hold 3 cells for 10 generations: %+v", res)
	}
}

func TestRunScenarioExtinction(t *testing.T) {
	opts := Options{Width: 30, Height: 30, Pattern: life.PatternBlinker, Generations: 50}
	// survive never, birth never: the blinker dies at once, then decays 3 -> 2 -> 0
	res := RunScenario(opts, Scenario{Rule: mustRule(t, "//3/"), Seed: 1})
	if res.ExtinctAt != 3 {
		t.Fatalf("expected extinction at generation 3, got %+v", res)
	}
	if res.Generations != 3 || res.FinalAlive != 0 || res.FinalDecay != 0 {
		t.Fatalf("run should stop at extinction: %+v", res)
	}
}

func TestRunMatchesSerial(t *testing.T) {
	opts := Options{Width: 24, Height: 24, Pattern: life.PatternRandom, Density: 0.3, Generations: 20, Workers: 3}
	scenarios := Grid([]life.Rule{life.DefaultRule(), mustRule(t, "3/23/5/")}, nil, []int64{1, 2, 3})
	results, err := Run(context.Background(), opts, scenarios)
	if err != nil {
		t.Fatal(err)
	}
	for i, sc := range scenarios {
		want := RunScenario(opts, sc)
		if results[i] != want {
			t.Fatalf("scenario %d: parallel %+v != serial %+v", i, results[i], want)
		}
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts := Options{Width: 10, Height: 10, Pattern: life.PatternEmpty, Generations: 1, Workers: 1}
	scenarios := Grid([]life.Rule{life.DefaultRule()}, nil, []int64{1, 2, 3, 4})
	if _, err := Run(ctx, opts, scenarios); err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestRank(t *testing.T) {
	rs := []Result{{Rule: "a", MeanAlive: 1}, {Rule: "b", MeanAlive: 5}, {Rule: "c", MeanAlive: 3}}
	Rank(rs)
	if rs[0].Rule != "b" || rs[1].Rule != "c" || rs[2].Rule != "a" {
		t.Fatalf("unexpected order: %v", rs)
	}
}
