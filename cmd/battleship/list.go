package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-battleship/internal/config"
	"github.com/vovakirdan/tui-battleship/internal/fleet"
	"github.com/vovakirdan/tui-battleship/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all game variants",
	Long:  `Shows the registered variants with their board size and fleet.`,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No variants available.")
		return nil
	}

	cfg, err := config.LoadBattleship(settings.GetString(keyConfig))
	if err != nil {
		return err
	}

	fmt.Println("Available variants:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "ID", "Board", "Fleet")
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "--", "-----", "-----")

	for _, g := range games {
		variant := config.VariantClassic
		if strings.HasSuffix(g.ID, "_"+config.VariantQuick) {
			variant = config.VariantQuick
		}
		mc, err := cfg.MatchConfig(variant)
		if err != nil {
			fmt.Printf("  %-*s  %v\n", maxIDLen, g.ID, err)
			continue
		}
		board := fmt.Sprintf("%dx%d", mc.Bounds.W, mc.Bounds.H)
		fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, g.ID, board, describeFleet(mc.Composition))
	}

	fmt.Println()
	fmt.Println("Run 'battleship play <variant>' to play.")
	return nil
}

// describeFleet formats a composition as "1 carrier (5), 2 destroyer (2)".
func describeFleet(comp fleet.Composition) string {
	classes := make([]fleet.Class, 0, len(comp))
	for c, n := range comp {
		if n > 0 {
			classes = append(classes, c)
		}
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })

	parts := make([]string, 0, len(classes))
	for _, c := range classes {
		k, _ := fleet.KindOf(c)
		parts = append(parts, fmt.Sprintf("%d %s (%d)", comp[c], c, k.Length))
	}
	return strings.Join(parts, ", ")
}
