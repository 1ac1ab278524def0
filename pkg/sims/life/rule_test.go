package life

import (
	"errors"
	"slices"
	"strconv"
	"testing"
)

func TestParseRuleSegments(t *testing.T) {
	r, err := ParseRule("3/23/4/", DefaultRule())
	if err != nil {
		t.Fatalf("ParseRule: %v", err)
	}
	if !slices.Equal(r.Birth.Counts(), []int{3}) {
		t.Fatalf("birth = %v, want [3]", r.Birth.Counts())
	}
	if !slices.Equal(r.Survive.Counts(), []int{2, 3}) {
		t.Fatalf("survive = %v, want [2 3]", r.Survive.Counts())
	}
	if r.DecayStates != 4 {
		t.Fatalf("decay = %d, want 4", r.DecayStates)
	}
}

func TestApplyReplacesSetsButKeepsDecay(t *testing.T) {
	r := DefaultRule()
	if err := r.Apply("3/23/4/"); err != nil {
		t.Fatal(err)
	}
	if err := r.Apply("36/125"); err != nil {
		t.Fatal(err)
	}
	if r.Birth.String() != "36" || r.Survive.String() != "125" {
		t.Fatalf("sets not replaced: %s", r)
	}
	if r.DecayStates != 4 {
		t.Fatalf("missing decay segment reset decay to %d", r.DecayStates)
	}
	if err := r.Apply("1/1//"); err != nil {
		t.Fatal(err)
	}
	if r.DecayStates != 4 {
		t.Fatalf("empty decay segment reset decay to %d", r.DecayStates)
	}
}

func TestApplyIsAtomicOnDecayError(t *testing.T) {
	cases := []string{"3/23/300/", "5/5/x/", "5/5/4a/"}
	for _, raw := range cases {
		r := Rule{Birth: NewNeighborSet(3), Survive: NewNeighborSet(2, 3), DecayStates: 7}
		before := r
		err := r.Apply(raw)
		var perr *RuleParseError
		if !errors.As(err, &perr) {
			t.Fatalf("%q: expected RuleParseError, got %v", raw, err)
		}
		if r != before {
			t.Fatalf("%q: failed apply mutated rule to %s", raw, r)
		}
	}

	r := DefaultRule()
	err := r.Apply("3/23/256/")
	if !errors.Is(err, strconv.ErrRange) {
		t.Fatalf("overflow should wrap strconv.ErrRange, got %v", err)
	}
}

func TestParseRulePermissive(t *testing.T) {
	r, err := ParseRule("B3/S23/ 5 \n", DefaultRule())
	if err != nil {
		t.Fatalf("ParseRule: %v", err)
	}
	if r.String() != "3/23/5/" {
		t.Fatalf("got %s, want 3/23/5/", r)
	}

	r, err = ParseRule("3/23/4/99/junk", DefaultRule())
	if err != nil {
		t.Fatalf("extra segments should be ignored: %v", err)
	}
	if r.String() != "3/23/4/" {
		t.Fatalf("got %s", r)
	}

	r, err = ParseRule("39/9", DefaultRule())
	if err != nil {
		t.Fatal(err)
	}
	if r.Birth.String() != "3" || r.Survive.String() != "" {
		t.Fatalf("digit 9 should be dropped, got %s", r)
	}
}

func TestParseRuleEmptyClearsSets(t *testing.T) {
	r := Rule{Birth: NewNeighborSet(1, 2), Survive: NewNeighborSet(4), DecayStates: 3}
	if err := r.Apply(""); err != nil {
		t.Fatal(err)
	}
	if r.Birth != 0 || r.Survive != 0 || r.DecayStates != 3 {
		t.Fatalf("empty text should clear sets and keep decay: %s", r)
	}
}

func TestRuleStringRoundTrip(t *testing.T) {
	for _, name := range PresetNames() {
		text, _ := PresetText(name)
		r, err := Preset(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if r.String() != text {
			t.Fatalf("%s: String()=%s, want %s", name, r, text)
		}
	}
}

func TestPresetUnknown(t *testing.T) {
	if _, err := Preset("nope"); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestNeighborSetBounds(t *testing.T) {
	s := NewNeighborSet(-1, 0, 8, 9)
	if !s.Has(0) || !s.Has(8) || s.Has(9) || s.Has(-1) {
		t.Fatalf("unexpected membership %v", s.Counts())
	}
}
