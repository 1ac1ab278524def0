package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"decay-ca/internal/session"
	"decay-ca/internal/storage"
	"decay-ca/internal/telemetry"
	"decay-ca/pkg/core"
	"decay-ca/pkg/sims/life"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., "localhost:2323").
	Address string

	// HostKeyPath is the path to the host key file. Generated when missing.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TPS is the tick rate of every board.
	TPS int

	// MaxW and MaxH cap the board built from each PTY size.
	MaxW, MaxH int

	// Board is the template for each session's board; Width and Height are
	// replaced by the PTY-derived size.
	Board life.Config
}

// SSHServer serves one board per SSH session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger

	mu     sync.Mutex
	active map[ssh.Session]*session.Session
}

// NewSSHServer creates a new SSH server. store may be nil to skip run history.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "decay-ca-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
		active: make(map[ssh.Session]*session.Session),
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".decay-ca", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.recordingMiddleware,
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}
	srv.server = server
	return srv, nil
}

// teaHandler creates a board for each SSH session sized to its PTY.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	w, h := BoardSize(pty.Window.Width, pty.Window.Height, s.config.MaxW, s.config.MaxH)
	sim, err := s.boardFor(sshSession.Command(), w, h)
	if err != nil {
		s.logger.Warn("rejected board request", "user", sshSession.User(), "error", err)
		wish.Fatalln(sshSession, err.Error())
		return nil, nil
	}

	logger := s.logger.With("user", sshSession.User())
	model, err := NewModel(sim, logger, Options{
		TPS:       s.config.TPS,
		Seed:      time.Now().UnixNano(),
		Collector: telemetry.NewCollector(0),
	})
	if err != nil {
		s.logger.Error("cannot start board", "user", sshSession.User(), "error", err)
		return nil, nil
	}

	s.mu.Lock()
	s.active[sshSession] = model.Session()
	s.mu.Unlock()

	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// boardFor builds the board for one connection. Command words select a
// registered board and override config keys, e.g. "ssh host -- fade
// pattern=random"; the size always follows the PTY.
func (s *SSHServer) boardFor(args []string, w, h int) (*life.Life, error) {
	m := life.ParseArgs(args)
	m["w"], m["h"] = strconv.Itoa(w), strconv.Itoa(h)

	base := s.config.Board
	name, ok := m["sim"]
	if !ok {
		return life.NewWithConfig(base.WithMap(m)), nil
	}
	factory, ok := core.Sims()[name]
	if !ok {
		return nil, fmt.Errorf("unknown board %q, choose one of: %s", name, strings.Join(core.Names(), ", "))
	}
	if _, set := m["pattern"]; !set {
		m["pattern"] = base.Pattern
	}
	if _, set := m["density"]; !set {
		m["density"] = strconv.FormatFloat(base.Density, 'g', -1, 64)
	}
	sim, ok := factory(m).(*life.Life)
	if !ok {
		return nil, fmt.Errorf("board %q is not a life board", name)
	}
	return sim, nil
}

// recordingMiddleware saves a run row when a session's program ends.
func (s *SSHServer) recordingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		next(sshSession)

		s.mu.Lock()
		sess, ok := s.active[sshSession]
		delete(s.active, sshSession)
		s.mu.Unlock()

		if !ok || s.store == nil || sess.Collector() == nil {
			return
		}
		run := storage.RecordOf(sess.Sim(), sess.Seed(), sess.Collector().Summary())
		if _, err := s.store.SaveRun(run); err != nil {
			s.logger.Warn("could not record run", "user", sshSession.User(), "error", err)
		}
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until interrupted.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-done:
	case err := <-errc:
		s.logger.Error("server error", "error", err)
		return err
	}
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
