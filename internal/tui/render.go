package tui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	cellGlyph   = "██"
	emptyGlyph  = "  "
	cursorGlyph = "[]"
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// styleCache memoises one lipgloss style per swatch colour.
type styleCache map[color.RGBA]lipgloss.Style

func (c styleCache) get(col color.RGBA) lipgloss.Style {
	if st, ok := c[col]; ok {
		return st
	}
	st := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(col)))
	c[col] = st
	return st
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// renderBoard draws the swatch colours two columns per cell. Adjacent cells of
// the same colour share one styled run to keep escape sequences down.
func renderBoard(colors []color.RGBA, dead color.RGBA, w, h, cx, cy int, styles styleCache) string {
	var sb strings.Builder
	sb.Grow(w*h*2 + h)

	for y := range h {
		if y > 0 {
			sb.WriteRune('\n')
		}
		x := 0
		for x < w {
			if x == cx && y == cy {
				sb.WriteString(cursorStyle.Render(cursorGlyph))
				x++
				continue
			}
			start := colors[y*w+x]
			var run strings.Builder
			for x < w && colors[y*w+x] == start && !(x == cx && y == cy) {
				if start == dead {
					run.WriteString(emptyGlyph)
				} else {
					run.WriteString(cellGlyph)
				}
				x++
			}
			if start == dead {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(styles.get(start).Render(run.String()))
			}
		}
	}
	return sb.String()
}
