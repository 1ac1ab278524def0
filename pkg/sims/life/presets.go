package life

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownPreset is returned when a preset name is not registered.
var ErrUnknownPreset = errors.New("life: unknown preset")

var presets = map[string]string{
	"life":     "3/23/0/",
	"highlife": "36/23/0/",
	"seeds":    "2//0/",
	"brain":    "2//2/",
	"daynight": "3678/34678/0/",
	"starwars": "2/345/4/",
	"fade":     "3/23/6/",
}

// Preset returns the named rule.
func Preset(name string) (Rule, error) {
	text, ok := presets[name]
	if !ok {
		return Rule{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return ParseRule(text, Rule{})
}

// PresetText returns the rule text for a preset.
func PresetText(name string) (string, bool) {
	text, ok := presets[name]
	return text, ok
}

// PresetNames lists the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
