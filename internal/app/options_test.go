package app

import (
	"os"
	"testing"
)

func TestOptionsDefaults(t *testing.T) {
	o := Options{HUDWidth: -5}.withDefaults()
	if o.Title != "decay-ca" || o.Scale != 8 || o.TPS != 10 || o.HUDWidth != 0 {
		t.Fatalf("unexpected defaults: %+v", o)
	}
	if o.In != os.Stdin || o.Out != os.Stdout {
		t.Fatal("prompt should default to stdio")
	}
	kept := Options{Title: "x", Scale: 3, TPS: 60, HUDWidth: 200}.withDefaults()
	if kept.Title != "x" || kept.Scale != 3 || kept.TPS != 60 || kept.HUDWidth != 200 {
		t.Fatalf("explicit values overwritten: %+v", kept)
	}
}
