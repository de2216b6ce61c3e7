package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/btd6-randomizer/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the randomizer SSH server",
	Long: `Start an SSH server that lets users connect and roll setups.

Each SSH connection gets its own session with the restriction picker.
Rolls are stored per-server with the SSH user name attached.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.randomizer/host_key

Examples:
  randomizer serve                           # Listen on :23235 with auto-generated key
  randomizer serve --ssh :2222               # Listen on port 2222
  randomizer serve --host-key ./my_host_key  # Use specific host key
  randomizer serve --db ./history.db         # Use specific database

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) {
	a := loadApp("randomizer-ssh")
	defer a.Close()

	initial, err := a.cfg.Roll.Restriction(a.cat)
	if err != nil {
		a.Close()
		fatalf("Error in config roll section: %v", err)
	}

	sshCfg := a.cfg.SSH
	if cmd.Flags().Changed("ssh") {
		sshCfg.Address = flagSSHAddr
	}
	if cmd.Flags().Changed("host-key") {
		sshCfg.HostKey = flagHostKey
	}
	if cmd.Flags().Changed("idle-timeout") {
		sshCfg.IdleTimeoutMinutes = flagIdleTimeout
	}

	cfg := tui.SSHServerConfig{
		Address:     sshCfg.Address,
		HostKeyPath: sshCfg.HostKey,
		DBPath:      a.cfg.Storage.DBPath,
		IdleTimeout: time.Duration(sshCfg.IdleTimeoutMinutes) * time.Minute,
		Catalog:     a.cat,
		Initial:     initial,
		Images:      a.images,
		Logger:      a.logger,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		a.Close()
		fatalf("Error creating server: %v", err)
	}

	fmt.Printf("Starting randomizer SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		a.Close()
		fatalf("Server error: %v", err)
	}
}
