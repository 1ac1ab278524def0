package ui

import (
	"image"
	"slices"
	"testing"

	"decay-ca/pkg/core"
	"decay-ca/pkg/sims/life"
)

func TestPanelLines(t *testing.T) {
	snap := core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "World", Params: []core.Parameter{{Key: "w", Label: "Width", Value: "30"}}},
		{Name: "Rule", Params: []core.Parameter{{Key: "rule", Label: "Rule", Value: "3/23/0/"}}},
	}}
	got := panelLines(snap)
	want := []string{"WORLD", "Width: 30", "", "RULE", "Rule: 3/23/0/"}
	if !slices.Equal(got, want) {
		t.Fatalf("panelLines = %q, want %q", got, want)
	}
}

func TestPanelLinesFromLife(t *testing.T) {
	sim := life.New(10, 10)
	lines := panelLines(sim.Parameters())
	if !slices.Contains(lines, "Rule: 3/23/0/") {
		t.Fatalf("rule row missing: %q", lines)
	}
}

func TestDecayStep(t *testing.T) {
	r, err := life.ParseRule("3/23/4/", life.Rule{})
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		rule life.Rule
		dir  int
		want string
		ok   bool
	}{
		{r, 1, "3/23/5/", true},
		{r, -1, "3/23/3/", true},
		{life.DefaultRule(), -1, "", false},
		{life.Rule{DecayStates: 255}, 1, "", false},
		{r, 0, "", false},
	}
	for _, tc := range cases {
		got, ok := decayStep(tc.rule, tc.dir)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("decayStep(%s, %d) = %q, %v; want %q, %v", tc.rule, tc.dir, got, ok, tc.want, tc.ok)
		}
	}
	// the emitted text must round-trip through the parser
	text, _ := decayStep(r, 1)
	next, err := life.ParseRule(text, r)
	if err != nil || next.DecayStates != 5 || next.Birth != r.Birth || next.Survive != r.Survive {
		t.Fatalf("round trip: %v %v", next, err)
	}
}

func TestButtonRects(t *testing.T) {
	minus, plus := buttonRects(200, 40)
	if plus.Max.X != 200-panelPadding {
		t.Fatalf("plus not right-aligned: %v", plus)
	}
	if minus.Max.X+buttonGap != plus.Min.X {
		t.Fatalf("gap wrong: %v %v", minus, plus)
	}
	if !pointInRect(plus.Min.X, plus.Min.Y, plus) || pointInRect(plus.Max.X, plus.Min.Y, plus) {
		t.Fatal("pointInRect bounds wrong")
	}
	if pointInRect(0, 0, image.Rectangle{}) {
		t.Fatal("empty rect contains nothing")
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("rule rejected: bad decay value", 14)
	want := []string{"rule rejected:", "bad decay", "value"}
	if !slices.Equal(got, want) {
		t.Fatalf("wrapText = %q, want %q", got, want)
	}
	if wrapText("", 10) != nil {
		t.Fatal("empty input should give no rows")
	}
}
