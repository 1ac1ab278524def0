//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"decay-ca/internal/control"
	"decay-ca/internal/session"
)

// HUD renders the parameter panel to the right of the board. Its decay
// buttons submit rule edits through the session queue like any other edit.
type HUD struct {
	sess       *session.Session
	width      int
	panel      *ebiten.Image
	lastHeight int
	pixel      *ebiten.Image

	lines        []string
	status       []string
	paused       bool
	decayTop     int
	minusRect    image.Rectangle
	plusRect     image.Rectangle
	panelOffsetX int
}

// NewHUD constructs a HUD for the session and panel width.
func NewHUD(sess *session.Session, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sess: sess, width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	return h
}

// Update refreshes the cached lines and handles button clicks.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	sim := h.sess.Sim()
	h.lines = panelLines(sim.Parameters())
	h.paused = sim.Paused()
	cols := (h.width - 2*panelPadding) / basicfont.Face7x13.Advance
	h.status = wrapText(h.sess.Status(), cols)

	h.decayTop = panelPadding + headerBaseline + sectionGap + len(h.lines)*lineHeight
	h.minusRect, h.plusRect = buttonRects(h.width, h.decayTop)
	h.handleInput()
}

func (h *HUD) handleInput() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	dir := 0
	switch {
	case pointInRect(px, my, h.minusRect):
		dir = -1
	case pointInRect(px, my, h.plusRect):
		dir = 1
	default:
		return
	}
	if text, ok := decayStep(h.sess.Sim().Rule(), dir); ok {
		h.sess.Queue().Push(control.Command{Kind: control.EditRule, Text: text})
	}
}

// Draw paints the HUD panel anchored to the right edge of the board.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	title := "decay-ca " + h.sess.Sim().Name()
	text.Draw(h.panel, title, face, panelPadding, panelPadding+headerBaseline, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	if h.paused {
		text.Draw(h.panel, "PAUSED", face, h.width-panelPadding-6*face.Advance, panelPadding+headerBaseline, color.RGBA{R: 255, G: 170, B: 0, A: 255})
	}

	y := panelPadding + headerBaseline + sectionGap
	for _, line := range h.lines {
		y += lineHeight
		text.Draw(h.panel, line, face, panelPadding, y, color.RGBA{R: 220, G: 220, B: 230, A: 255})
	}

	text.Draw(h.panel, "Decay", face, panelPadding, h.decayTop+buttonSize-6, color.RGBA{R: 220, G: 220, B: 230, A: 255})
	rule := h.sess.Sim().Rule()
	_, canDown := decayStep(rule, -1)
	_, canUp := decayStep(rule, 1)
	h.drawButton(h.minusRect, "-", canDown)
	h.drawButton(h.plusRect, "+", canUp)

	y = h.decayTop + buttonSize + sectionGap
	for _, line := range h.status {
		y += lineHeight
		text.Draw(h.panel, line, face, panelPadding, y, color.RGBA{R: 160, G: 160, B: 170, A: 255})
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.Scale(float32(bg.R)/255, float32(bg.G)/255, float32(bg.B)/255, float32(bg.A)/255)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}
