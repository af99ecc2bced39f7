package config

import (
	_ "embed"
)

//go:embed defaults/battleship.yaml
var defaultBattleshipYAML []byte

// DefaultBattleshipConfig returns the built-in rules used when no YAML
// file can be loaded.
func DefaultBattleshipConfig() BattleshipConfig {
	return BattleshipConfig{
		Players: []PlayerConfig{
			{Name: "Player 1"},
			{Name: "Player 2"},
		},
		AutoPlace:   false,
		FirstPlayer: 1,
		Variants: map[string]VariantConfig{
			VariantClassic: {
				Title: "Battleship",
				Board: BoardConfig{Width: 10, Height: 10},
				Fleet: map[string]int{
					"carrier":    1,
					"battleship": 1,
					"cruiser":    1,
					"destroyer":  2,
					"submarine":  2,
				},
			},
			VariantQuick: {
				Title: "Battleship (Quick)",
				Board: BoardConfig{Width: 8, Height: 8},
				Fleet: map[string]int{
					"cruiser":   1,
					"destroyer": 2,
					"submarine": 2,
				},
			},
		},
	}
}
