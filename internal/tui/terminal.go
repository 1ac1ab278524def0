package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"decay-ca/pkg/sims/life"
)

// chromeRows is the number of terminal rows used below the board.
const chromeRows = 4

// BoardSize converts a terminal size to the largest board that fits with
// two columns per cell, capped at maxW by maxH when those are positive.
func BoardSize(termW, termH, maxW, maxH int) (int, int) {
	w := termW / 2
	h := termH - chromeRows
	if maxW > 0 {
		w = min(w, maxW)
	}
	if maxH > 0 {
		h = min(h, maxH)
	}
	return max(w, 3), max(h, 3)
}

// TerminalSize reports the size of stdout, or 80x24 when it is not a terminal.
func TerminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

// Run plays sim in the local terminal until the user quits.
func Run(sim *life.Life, logger *log.Logger, opts Options) (Model, error) {
	m, err := NewModel(sim, logger, opts)
	if err != nil {
		return Model{}, err
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return m, err
	}
	fm, ok := final.(Model)
	if !ok {
		return m, nil
	}
	return fm, fm.Err()
}
