package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-battleship/internal/games/battleship"
	"github.com/vovakirdan/tui-battleship/internal/platform/tui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the battleship SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with a variant picker and plays a
hot-seat match on that terminal. Finished matches go to one shared history
database, so all users share the leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.battleship/host_key

Examples:
  battleship serve                           # Listen on :23234 with auto-generated key
  battleship serve --ssh :2222               # Listen on port 2222
  battleship serve --host-key ./my_host_key  # Use specific host key
  battleship serve --db ./history.db         # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String(keySSHAddr, ":23234", "SSH server address (host:port)")
	serveCmd.Flags().String(keyHostKey, "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().Int(keyIdleTimeout, 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	battleship.SetConfigPath(settings.GetString(keyConfig))

	cfg := tui.SSHServerConfig{
		Address:     settings.GetString(keySSHAddr),
		HostKeyPath: settings.GetString(keyHostKey),
		DBPath:      settings.GetString(keyDB),
		IdleTimeout: time.Duration(settings.GetInt(keyIdleTimeout)) * time.Minute,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting battleship SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
