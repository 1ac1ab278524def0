//go:build !ebiten

package app

import (
	"errors"

	"github.com/charmbracelet/log"

	"decay-ca/internal/session"
	"decay-ca/pkg/sims/life"
)

// ErrNoGUI is returned by Run in builds without the ebiten tag.
var ErrNoGUI = errors.New("app: the window requires building with -tags ebiten")

// Run reports that the GUI is unavailable in this build.
func Run(*life.Life, *log.Logger, Options) (*session.Session, error) {
	return nil, ErrNoGUI
}
