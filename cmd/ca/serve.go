package main

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"decay-ca/internal/storage"
	"decay-ca/internal/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeTPS    int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve boards over SSH",
	Long: `Start an SSH server. Every connection gets its own board sized to the
client terminal and driven by the terminal controls (see 'ca tui --help').
Finished sessions are recorded in the run history.

Examples:
  ca serve
  ca serve --ssh :2222 --rule fade
  ca serve --host-key ./host_key

Connect with:
  ssh localhost -p 2323`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagServeTPS, "tps", 0, "Generations per second (0 = config value)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, sim, err := setup(cmd)
	if err != nil {
		return err
	}
	logger = logger.WithPrefix("decay-ca-ssh")

	addr := net.JoinHostPort(cfg.Serve.Host, strconv.Itoa(cfg.Serve.Port))
	if flagSSHAddr != "" {
		addr = flagSSHAddr
	}
	hostKey := cfg.Serve.HostKey
	if flagHostKey != "" {
		hostKey = flagHostKey
	}
	tps := cfg.TUI.TPS
	if flagServeTPS > 0 {
		tps = flagServeTPS
	}

	var store *storage.Store
	if cfg.Storage.Enabled {
		store, err = storage.Open(cfg.Storage.Path)
		if err != nil {
			logger.Warn("could not open run history", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     addr,
		HostKeyPath: hostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TPS:         tps,
		MaxW:        cfg.Serve.Width,
		MaxH:        cfg.Serve.Height,
		Board:       sim.Config(),
	}, store, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Serving decay-ca on %s (rule %s)\n", server.Addr(), sim.Rule())
	fmt.Println("Press Ctrl+C to stop")
	return server.ListenAndServe()
}
