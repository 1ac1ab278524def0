package life

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// NeighborSet is a bitset over live-neighbor counts 0..8.
type NeighborSet uint16

// NewNeighborSet builds a set from the provided counts. Counts outside 0..8 are ignored.
func NewNeighborSet(counts ...int) NeighborSet {
	var s NeighborSet
	for _, n := range counts {
		s.Add(n)
	}
	return s
}

// Add inserts n into the set. A Moore neighborhood never has more than eight
// live neighbors, so larger values are dropped.
func (s *NeighborSet) Add(n int) {
	if n < 0 || n > 8 {
		return
	}
	*s |= 1 << n
}

// Has reports whether n is a member.
func (s NeighborSet) Has(n int) bool {
	return n >= 0 && n <= 8 && s&(1<<n) != 0
}

// Counts lists the members in ascending order.
func (s NeighborSet) Counts() []int {
	var out []int
	for n := 0; n <= 8; n++ {
		if s.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

// String renders the members as a run of digits, e.g. "23".
func (s NeighborSet) String() string {
	var b strings.Builder
	for _, n := range s.Counts() {
		b.WriteByte(byte('0' + n))
	}
	return b.String()
}

// Rule is the active birth/survival rule plus the decay length used for fading.
type Rule struct {
	Birth       NeighborSet
	Survive     NeighborSet
	DecayStates uint8
}

// DefaultRule returns Conway's rule: birth on 3, survive on 2 or 3, no decay.
func DefaultRule() Rule {
	return Rule{
		Birth:   NewNeighborSet(3),
		Survive: NewNeighborSet(2, 3),
	}
}

// String renders the rule in the same birth/survive/decay form accepted by ParseRule.
func (r Rule) String() string {
	return fmt.Sprintf("%s/%s/%d/", r.Birth, r.Survive, r.DecayStates)
}

// MaxState is the largest value a cell may hold under this rule.
func (r Rule) MaxState() uint8 {
	return max(1, r.DecayStates)
}

// Apply replaces the rule with the one described by raw. On error the rule is
// left exactly as it was.
func (r *Rule) Apply(raw string) error {
	next, err := ParseRule(raw, *r)
	if err != nil {
		return err
	}
	*r = next
	return nil
}

// RuleParseError reports a decay segment that is not a valid cell state.
type RuleParseError struct {
	Text string
	Err  error
}

func (e *RuleParseError) Error() string {
	return fmt.Sprintf("life: invalid decay length %q: %v", e.Text, e.Err)
}

func (e *RuleParseError) Unwrap() error { return e.Err }

// ParseRule reads "birth/survive/decay" text. Birth and survive digits
// replace those of base; an empty or missing decay segment keeps
// base.DecayStates. Segments after the third are ignored, and characters other
// than digits and '/' are skipped in the birth and survive segments. Whitespace
// is stripped from the decay segment before it is parsed as a number.
func ParseRule(raw string, base Rule) (Rule, error) {
	next := Rule{DecayStates: base.DecayStates}
	var decay strings.Builder
	segment := 0
	for _, ch := range raw {
		if ch == '/' {
			segment++
			continue
		}
		if segment > 2 {
			break
		}
		if segment == 2 {
			if !unicode.IsSpace(ch) {
				decay.WriteRune(ch)
			}
			continue
		}
		if ch < '0' || ch > '9' {
			continue
		}
		if segment == 0 {
			next.Birth.Add(int(ch - '0'))
		} else {
			next.Survive.Add(int(ch - '0'))
		}
	}
	if decay.Len() > 0 {
		v, err := strconv.ParseUint(decay.String(), 10, 8)
		if err != nil {
			return base, &RuleParseError{Text: decay.String(), Err: err}
		}
		next.DecayStates = uint8(v)
	}
	return next, nil
}
