// Package telemetry records per-generation population statistics.
package telemetry

import (
	"gonum.org/v1/gonum/stat"

	"decay-ca/pkg/sims/life"
)

// Sample is one generation's population record.
type Sample struct {
	Generation uint64 `csv:"generation"`
	Alive      int    `csv:"alive"`
	Decaying   int    `csv:"decaying"`
	Born       int    `csv:"born"`
	Died       int    `csv:"died"`
	Faded      int    `csv:"faded"`
	Rule       string `csv:"rule"`
	Paused     bool   `csv:"paused"`
}

// Count builds a Sample from a board and the transitions that produced it.
func Count(gen uint64, cells []uint8, tr []life.Transition, r life.Rule, paused bool) Sample {
	s := Sample{Generation: gen, Rule: r.String(), Paused: paused}
	for _, v := range cells {
		switch {
		case v == 1:
			s.Alive++
		case v > 1:
			s.Decaying++
		}
	}
	for _, t := range tr {
		switch t.Kind {
		case life.Born:
			s.Born++
		case life.Died, life.Dying:
			s.Died++
		case life.Faded:
			s.Faded++
		}
	}
	return s
}

// Summary aggregates a run.
type Summary struct {
	Generations int
	MeanAlive   float64
	StdAlive    float64
	PeakAlive   int
	FinalAlive  int
}

// Collector keeps the most recent samples in memory.
type Collector struct {
	limit   int
	samples []Sample
}

// NewCollector keeps up to limit samples; limit <= 0 keeps everything.
func NewCollector(limit int) *Collector {
	return &Collector{limit: limit}
}

// Observe appends a sample, dropping the oldest when full.
func (c *Collector) Observe(s Sample) {
	c.samples = append(c.samples, s)
	if c.limit > 0 && len(c.samples) > c.limit {
		c.samples = c.samples[len(c.samples)-c.limit:]
	}
}

// Samples exposes the retained samples, oldest first.
func (c *Collector) Samples() []Sample { return c.samples }

// AliveSeries returns the live-cell counts as float64 for plotting.
func (c *Collector) AliveSeries() []float64 {
	out := make([]float64, len(c.samples))
	for i, s := range c.samples {
		out[i] = float64(s.Alive)
	}
	return out
}

// Summary computes aggregate statistics over the retained samples.
func (c *Collector) Summary() Summary {
	if len(c.samples) == 0 {
		return Summary{}
	}
	series := c.AliveSeries()
	mean, std := stat.MeanStdDev(series, nil)
	peak := 0
	for _, s := range c.samples {
		peak = max(peak, s.Alive)
	}
	return Summary{
		Generations: len(c.samples),
		MeanAlive:   mean,
		StdAlive:    std,
		PeakAlive:   peak,
		FinalAlive:  c.samples[len(c.samples)-1].Alive,
	}
}
