package app

import (
	"io"
	"os"

	"decay-ca/internal/telemetry"
)

// Options configures the windowed host.
type Options struct {
	Title     string
	Scale     int
	HUDWidth  int
	TPS       int
	Seed      int64
	Collector *telemetry.Collector

	// In and Out carry the rule prompt; they default to stdin and stdout.
	In  io.Reader
	Out io.Writer
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "decay-ca"
	}
	if o.Scale <= 0 {
		o.Scale = 8
	}
	if o.HUDWidth < 0 {
		o.HUDWidth = 0
	}
	if o.TPS <= 0 {
		o.TPS = 10
	}
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	return o
}
