package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-battleship/internal/config"
	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/games/battleship"
	"github.com/vovakirdan/tui-battleship/internal/platform/tui"
	"github.com/vovakirdan/tui-battleship/internal/registry"
	"github.com/vovakirdan/tui-battleship/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a match",
	Long: `Start a hot-seat match on the given variant (default: classic).

Variants are "classic" (10x10, five classes) and "quick" (8x8, small
fleet); both are defined in the rules YAML and can be changed there.

Controls:
  Arrows/WASD  - Move vessel or aim
  R            - Rotate vessel
  Tab          - Select next vessel
  F            - Auto-place remaining vessels
  Enter/Space  - Place, lock fleet, fire, continue
  P            - Pause
  N            - New match (after game over)
  B/Esc        - Back (after game over or while paused)
  Q/Ctrl+C     - Quit

Examples:
  battleship play
  battleship play quick
  battleship play --config ./my-rules.yaml
  battleship play --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	variant := ""
	if len(args) > 0 {
		variant = args[0]
	}
	gameID, err := resolveGameID(variant)
	if err != nil {
		return err
	}

	battleship.SetConfigPath(settings.GetString(keyConfig))

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("error creating game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, runtimeConfig()); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

// resolveGameID maps a variant name or game ID to a registered game ID.
func resolveGameID(variant string) (string, error) {
	switch variant {
	case "", config.VariantClassic:
		return "battleship", nil
	case config.VariantQuick:
		return "battleship_quick", nil
	}
	if registry.Exists(variant) {
		return variant, nil
	}
	return "", fmt.Errorf("unknown variant %q (run 'battleship list' to see variants)", variant)
}

// runtimeConfig builds the runtime config from the terminal size and settings.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: settings.GetInt(keyFPS),
		Seed:     settings.GetInt64(keySeed),
	}
}

// openStore opens the history database. Matches still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(settings.GetString(keyDB))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open match history: %v\n", err)
		log.Warn("could not open match history", "err", err)
		return nil
	}
	return store
}
