// battleship is a hot-seat naval combat game for the terminal.
//
// Usage:
//
//	battleship list                 - List game variants
//	battleship play [variant]       - Play a match (classic or quick)
//	battleship menu                 - Pick variants interactively
//	battleship serve                - Start SSH server for remote play
//	battleship history              - Show recent matches and the leaderboard
//	battleship show <match-id>      - Replay the record of one match
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible auto-placement
//	--db <path>          - Set database path (default: ~/.battleship/history.db)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Log destination while the UI owns the terminal
//
// Every flag can also be set as BATTLESHIP_<FLAG> or in ~/.battleship/settings.yaml.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-battleship/internal/games/battleship"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "battleship",
	Short: "Battleship - hot-seat naval combat in your terminal",
	Long: `Battleship is a two-player naval combat game played on one terminal.

Each admiral places a fleet on a hidden grid, then both take turns firing
at the other's waters until one fleet is sunk. A curtain hides the boards
while the keyboard changes hands.

Available commands:
  list     - Show all game variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  history  - Show recent matches and the leaderboard
  show     - Show the full record of one match

Examples:
  battleship play
  battleship play quick
  battleship menu
  battleship serve --ssh :2222
  battleship history --player Ann
  battleship show match-K3QF7A`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadSettings(cmd); err != nil {
			return err
		}
		return setupLogging(cmd.Name() == serveCmd.Name())
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int(keyFPS, 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64(keySeed, 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().String(keyDB, "~/.battleship/history.db", "Path to match history database")
	rootCmd.PersistentFlags().String(keyConfig, "", "Path to custom rules YAML")
	rootCmd.PersistentFlags().String(keyLogLevel, "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String(keyLogFile, "~/.battleship/battleship.log", "Log file for interactive commands (empty = discard)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
}
