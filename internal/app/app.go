//go:build ebiten

package app

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"decay-ca/internal/control"
	"decay-ca/internal/render"
	"decay-ca/internal/session"
	"decay-ca/internal/ui"
	"decay-ca/pkg/sims/life"
)

// Game adapts a session to the ebiten.Game interface.
type Game struct {
	sess     *session.Session
	swatch   *render.Swatch
	painter  *render.GridPainter
	hud      *ui.HUD
	prompter *control.Prompter
	logger   *log.Logger

	scale    int
	hudWidth int
}

// New constructs a Game for sim with a fresh queue, swatch and session.
func New(sim *life.Life, logger *log.Logger, opts Options) (*Game, error) {
	opts = opts.withDefaults()
	size := sim.Size()
	swatch := render.NewSwatch(size.W*size.H, render.DefaultPalette())
	q := control.NewQueue(64)

	sessOpts := []session.Option{
		session.WithPresenter(swatch),
		session.WithCellSize(float64(opts.Scale)),
	}
	if opts.Collector != nil {
		sessOpts = append(sessOpts, session.WithCollector(opts.Collector))
	}
	sess, err := session.New(sim, q, logger, opts.Seed, sessOpts...)
	if err != nil {
		return nil, err
	}
	return &Game{
		sess:     sess,
		swatch:   swatch,
		painter:  render.NewGridPainter(size.W, size.H),
		hud:      ui.NewHUD(sess, opts.HUDWidth),
		prompter: control.NewPrompter(opts.In, opts.Out, q),
		logger:   logger,
		scale:    opts.Scale,
		hudWidth: opts.HUDWidth,
	}, nil
}

// Session exposes the session driving the window.
func (g *Game) Session() *session.Session { return g.sess }

// Update handles per-frame input and advances the simulation one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	q := g.sess.Queue()
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		q.Push(control.Command{Kind: control.TogglePause})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySlash) {
		g.requestRule()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		q.Push(control.Command{Kind: control.StepOnce})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		q.Push(control.Command{Kind: control.Reset, Seed: g.sess.Seed()})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		q.Push(control.Command{Kind: control.Reset, Seed: time.Now().UnixNano()})
	}
	g.handlePointer()

	size := g.sess.Sim().Size()
	g.hud.Update(size.W * g.scale)

	if err := g.sess.Tick(); err != nil {
		return err
	}
	if g.sess.Done() {
		return ebiten.Termination
	}
	return nil
}

// requestRule opens the stdin prompt unless one is already waiting.
func (g *Game) requestRule() {
	ok := g.prompter.Request(func(err error) {
		if err != nil {
			g.logger.Warn("rule prompt closed", "err", err)
		}
	})
	if !ok {
		g.logger.Debug("rule prompt already open")
	}
}

func (g *Game) handlePointer() {
	size := g.sess.Sim().Size()
	mx, my := ebiten.CursorPosition()
	if mx < 0 || my < 0 || mx >= size.W*g.scale || my >= size.H*g.scale {
		return
	}
	px, py := life.ScreenToSim(float64(mx), float64(my), size.W, size.H, float64(g.scale))
	q := g.sess.Queue()
	q.Push(control.Command{Kind: control.MovePointer, PX: px, PY: py})
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		q.Push(control.Command{Kind: control.TogglePointer})
	}
}

// Draw renders the current swatch and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.swatch.Colors(), g.scale)
	size := g.sess.Sim().Size()
	g.hud.Draw(screen, size.W*g.scale, size.H*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sess.Sim().Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}

// Run opens a window for sim and blocks until it closes.
func Run(sim *life.Life, logger *log.Logger, opts Options) (*session.Session, error) {
	opts = opts.withDefaults()
	game, err := New(sim, logger, opts)
	if err != nil {
		return nil, err
	}
	size := sim.Size()
	ebiten.SetWindowTitle(opts.Title + " - " + sim.Name())
	ebiten.SetTPS(opts.TPS)
	ebiten.SetWindowSize(size.W*opts.Scale+opts.HUDWidth, size.H*opts.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return game.Session(), err
	}
	return game.Session(), nil
}
