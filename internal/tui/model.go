// Package tui runs the automaton in a terminal with Bubble Tea, locally or per
// SSH session.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"decay-ca/internal/control"
	"decay-ca/internal/render"
	"decay-ca/internal/session"
	"decay-ca/internal/telemetry"
	"decay-ca/pkg/sims/life"
)

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 1
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Options tunes a Model.
type Options struct {
	TPS       int
	Seed      int64
	Collector *telemetry.Collector
}

// Model is the Bubble Tea model for a single board.
type Model struct {
	sess   *session.Session
	swatch *render.Swatch
	styles styleCache

	keys  KeyMap
	help  help.Model
	input textinput.Model

	tps      int
	cx, cy   int
	editing  bool
	quitting bool
	err      error
}

// NewModel wires sim to a fresh command queue, swatch and session.
func NewModel(sim *life.Life, logger *log.Logger, opts Options) (Model, error) {
	size := sim.Size()
	swatch := render.NewSwatch(size.W*size.H, render.DefaultPalette())
	sessOpts := []session.Option{session.WithPresenter(swatch)}
	if opts.Collector != nil {
		sessOpts = append(sessOpts, session.WithCollector(opts.Collector))
	}
	sess, err := session.New(sim, control.NewQueue(64), logger, opts.Seed, sessOpts...)
	if err != nil {
		return Model{}, err
	}

	in := textinput.New()
	in.Prompt = "rule> "
	in.Placeholder = "birth/survive/decay"
	in.CharLimit = 64

	h := help.New()
	h.ShowAll = false

	return Model{
		sess:   sess,
		swatch: swatch,
		styles: make(styleCache),
		keys:   DefaultKeyMap(),
		help:   h,
		input:  in,
		tps:    opts.TPS,
		cx:     size.W / 2,
		cy:     size.H / 2,
	}, nil
}

// Session exposes the underlying session.
func (m Model) Session() *session.Session { return m.sess }

// Cursor returns the cursor cell.
func (m Model) Cursor() (int, int) { return m.cx, m.cy }

// Editing reports whether the rule input is open.
func (m Model) Editing() bool { return m.editing }

// Err returns the error that stopped the model, if any.
func (m Model) Err() error { return m.err }

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tps)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		return m.handleTick()
	case tea.KeyMsg:
		if m.editing {
			return m.handleEditKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	if err := m.sess.Tick(); err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	if m.sess.Done() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.tps)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	size := m.sess.Sim().Size()
	q := m.sess.Queue()

	switch {
	case key.Matches(msg, m.keys.Quit):
		q.Push(control.Command{Kind: control.Quit})
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.cy = (m.cy - 1 + size.H) % size.H
	case key.Matches(msg, m.keys.Down):
		m.cy = (m.cy + 1) % size.H
	case key.Matches(msg, m.keys.Left):
		m.cx = (m.cx - 1 + size.W) % size.W
	case key.Matches(msg, m.keys.Right):
		m.cx = (m.cx + 1) % size.W
	case key.Matches(msg, m.keys.Toggle):
		q.Push(control.Command{Kind: control.ToggleCell, X: m.cx, Y: m.cy})
	case key.Matches(msg, m.keys.Pause):
		q.Push(control.Command{Kind: control.TogglePause})
	case key.Matches(msg, m.keys.Step):
		q.Push(control.Command{Kind: control.StepOnce})
	case key.Matches(msg, m.keys.Reset):
		q.Push(control.Command{Kind: control.Reset, Seed: m.sess.Seed()})
	case key.Matches(msg, m.keys.Reseed):
		q.Push(control.Command{Kind: control.Reset, Seed: m.sess.Seed() + 1})
	case key.Matches(msg, m.keys.Rule):
		m.editing = true
		m.input.SetValue(m.sess.Sim().Rule().String())
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.sess.Queue().Push(control.Command{Kind: control.EditRule, Text: m.input.Value()})
		m.closeInput()
		return m, nil
	case tea.KeyEsc:
		m.closeInput()
		return m, nil
	case tea.KeyCtrlC:
		m.sess.Queue().Push(control.Command{Kind: control.Quit})
		m.quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.editing = false
	m.input.Blur()
	m.input.Reset()
}

// View renders the board, status line, rule input and help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	sim := m.sess.Sim()
	size := sim.Size()

	var b strings.Builder
	b.WriteString(renderBoard(m.swatch.Colors(), m.swatch.Palette().Dead, size.W, size.H, m.cx, m.cy, m.styles))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	if m.editing {
		b.WriteString(m.input.View())
	} else if status := m.sess.Status(); status != "" {
		if m.sess.LastError() != nil {
			b.WriteString(errorStyle.Render(status))
		} else {
			b.WriteString(noticeStyle.Render(status))
		}
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) statusLine() string {
	sim := m.sess.Sim()
	alive, decaying := sim.Population()
	line := fmt.Sprintf("%s  gen %d  rule %s  alive %d  decaying %d  cursor %d,%d",
		sim.Name(), sim.Generation(), sim.Rule(), alive, decaying, m.cx, m.cy)
	if sim.Paused() {
		return statusStyle.Render(line) + "  " + pausedStyle.Render("PAUSED")
	}
	return statusStyle.Render(line)
}
