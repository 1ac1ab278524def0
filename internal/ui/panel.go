package ui

import (
	"fmt"
	"image"
	"strings"

	"decay-ca/pkg/core"
	"decay-ca/pkg/sims/life"
)

const (
	panelPadding   = 12
	lineHeight     = 16
	buttonSize     = 20
	buttonGap      = 6
	headerBaseline = 18
	sectionGap     = 8
)

// panelLines flattens a parameter snapshot into HUD rows: a group header
// followed by "Label: value" lines.
func panelLines(snap core.ParameterSnapshot) []string {
	var lines []string
	for i, group := range snap.Groups {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, strings.ToUpper(group.Name))
		for _, p := range group.Params {
			lines = append(lines, fmt.Sprintf("%s: %s", p.Label, p.Value))
		}
	}
	return lines
}

// decayStep returns rule text that moves the decay length by dir, or false
// when the result would leave 0..255.
func decayStep(r life.Rule, dir int) (string, bool) {
	next := int(r.DecayStates) + dir
	if dir == 0 || next < 0 || next > 255 {
		return "", false
	}
	return fmt.Sprintf("%s/%s/%d/", r.Birth, r.Survive, next), true
}

// buttonRects lays out the decay -/+ buttons on a row starting at top.
func buttonRects(width, top int) (minus, plus image.Rectangle) {
	plus = image.Rect(width-panelPadding-buttonSize, top, width-panelPadding, top+buttonSize)
	minus = image.Rect(plus.Min.X-buttonGap-buttonSize, top, plus.Min.X-buttonGap, top+buttonSize)
	return minus, plus
}

// wrapText breaks s into rows of at most cols characters on spaces.
func wrapText(s string, cols int) []string {
	if cols <= 0 || s == "" {
		return nil
	}
	var rows []string
	var line strings.Builder
	for _, word := range strings.Fields(s) {
		if line.Len() > 0 && line.Len()+1+len(word) > cols {
			rows = append(rows, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		rows = append(rows, line.String())
	}
	return rows
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}
