// Package sweep runs many headless boards across rules, decay lengths and
// seeds on a worker pool and ranks them by population.
package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"decay-ca/internal/telemetry"
	"decay-ca/pkg/sims/life"
)

// Scenario is one board to simulate.
type Scenario struct {
	Rule life.Rule
	Seed int64
}

// Result summarises one scenario.
type Result struct {
	Rule        string  `csv:"rule"`
	Seed        int64   `csv:"seed"`
	Generations int     `csv:"generations"`
	MeanAlive   float64 `csv:"mean_alive"`
	StdAlive    float64 `csv:"std_alive"`
	PeakAlive   int     `csv:"peak_alive"`
	FinalAlive  int     `csv:"final_alive"`
	FinalDecay  int     `csv:"final_decaying"`
	ExtinctAt   int     `csv:"extinct_at"`
}

func (r Result) String() string {
	extinct := "alive"
	if r.ExtinctAt > 0 {
		extinct = fmt.Sprintf("extinct@%d", r.ExtinctAt)
	}
	return fmt.Sprintf("rule=%s seed=%d mean=%.1f std=%.1f peak=%d final=%d decaying=%d %s",
		r.Rule, r.Seed, r.MeanAlive, r.StdAlive, r.PeakAlive, r.FinalAlive, r.FinalDecay, extinct)
}

// Options sets the board shared by every scenario.
type Options struct {
	Width       int
	Height      int
	Pattern     string
	Density     float64
	Generations int
	Workers     int
}

// Grid builds the cross product of rules, decay lengths and seeds. Each rule
// is combined with every decay length; an empty decays slice keeps the
// rule's own.
func Grid(rules []life.Rule, decays []uint8, seeds []int64) []Scenario {
	var out []Scenario
	for _, r := range rules {
		variants := []life.Rule{r}
		if len(decays) > 0 {
			variants = variants[:0]
			for _, d := range decays {
				v := r
				v.DecayStates = d
				variants = append(variants, v)
			}
		}
		for _, v := range variants {
			for _, seed := range seeds {
				out = append(out, Scenario{Rule: v, Seed: seed})
			}
		}
	}
	return out
}

// RunScenario simulates one board. The run stops early once the board has
// no live or decaying cells left.
func RunScenario(opts Options, sc Scenario) Result {
	cfg := life.DefaultConfig()
	cfg.Width, cfg.Height = opts.Width, opts.Height
	cfg.Rule = sc.Rule
	cfg.Pattern = opts.Pattern
	cfg.Density = opts.Density
	board := life.NewWithConfig(cfg)
	board.Reset(sc.Seed)

	collector := telemetry.NewCollector(0)
	res := Result{Rule: sc.Rule.String(), Seed: sc.Seed}
	for range opts.Generations {
		board.Step()
		s := telemetry.Count(board.Generation(), board.Cells(), board.Transitions(), board.Rule(), false)
		collector.Observe(s)
		if s.Alive == 0 && s.Decaying == 0 {
			res.ExtinctAt = int(board.Generation())
			break
		}
	}

	sum := collector.Summary()
	res.Generations = int(board.Generation())
	res.MeanAlive = sum.MeanAlive
	res.StdAlive = sum.StdAlive
	res.PeakAlive = sum.PeakAlive
	res.FinalAlive, res.FinalDecay = board.Population()
	return res
}

// Run simulates every scenario on opts.Workers goroutines. Results come back
// in scenario order. Cancelling ctx stops handing out new scenarios.
func Run(ctx context.Context, opts Options, scenarios []Scenario) ([]Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	type job struct {
		idx int
		sc  Scenario
	}
	jobs := make(chan job)
	results := make([]Result, len(scenarios))
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.idx] = RunScenario(opts, j.sc)
			}
		}()
	}

	var err error
feed:
	for i, sc := range scenarios {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case jobs <- job{idx: i, sc: sc}:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	return results, err
}

// Rank sorts results by mean live population, highest first.
func Rank(results []Result) {
	sort.SliceStable(results, func(i, j int) bool { return results[i].MeanAlive > results[j].MeanAlive })
}
