// Package config provides YAML-based rules configuration for battleship:
// board sizes, fleet compositions per variant, player names and turn order.
package config

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/fleet"
	"github.com/vovakirdan/tui-battleship/internal/match"
)

// MaxBoardSize is the widest and tallest field; columns are labelled A to Z.
const MaxBoardSize = 26

// Variant keys used by the built-in games.
const (
	VariantClassic = "classic"
	VariantQuick   = "quick"
)

// BattleshipConfig contains all configuration for battleship matches.
type BattleshipConfig struct {
	Players     []PlayerConfig           `yaml:"players"`
	AutoPlace   bool                     `yaml:"auto_place"`   // Start placement with a random fleet
	FirstPlayer int                      `yaml:"first_player"` // 1 or 2
	Variants    map[string]VariantConfig `yaml:"variants"`
}

// PlayerConfig defines one seat at the table.
type PlayerConfig struct {
	Name string `yaml:"name"`
}

// VariantConfig defines the field and fleet for one game variant.
type VariantConfig struct {
	Title string         `yaml:"title"`
	Board BoardConfig    `yaml:"board"`
	Fleet map[string]int `yaml:"fleet"` // class name -> quantity
}

// BoardConfig defines the playing field size in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Names returns the two player names, falling back to "Player N".
func (c BattleshipConfig) Names() [2]string {
	names := [2]string{"Player 1", "Player 2"}
	for i := 0; i < len(names) && i < len(c.Players); i++ {
		if c.Players[i].Name != "" {
			names[i] = c.Players[i].Name
		}
	}
	return names
}

// Starter returns the player who fires first.
func (c BattleshipConfig) Starter() core.PlayerID {
	if id := core.PlayerID(c.FirstPlayer); id.Valid() {
		return id
	}
	return core.Player1
}

// Variant looks up a variant by key.
func (c BattleshipConfig) Variant(key string) (VariantConfig, bool) {
	v, ok := c.Variants[key]
	return v, ok
}

// VariantKeys returns the configured variant keys in sorted order.
func (c BattleshipConfig) VariantKeys() []string {
	keys := make([]string, 0, len(c.Variants))
	for k := range c.Variants {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MatchConfig builds the match configuration for a variant.
func (c BattleshipConfig) MatchConfig(key string) (match.Config, error) {
	v, ok := c.Variant(key)
	if !ok {
		return match.Config{}, fmt.Errorf("config: unknown variant %q", key)
	}
	return v.MatchConfig(c.Names(), c.Starter())
}

// Composition converts the fleet table into a fleet composition.
func (v VariantConfig) Composition() (fleet.Composition, error) {
	comp := make(fleet.Composition, len(v.Fleet))
	for name, n := range v.Fleet {
		class, ok := fleet.ParseClass(name)
		if !ok {
			return nil, fmt.Errorf("config: unknown vessel class %q", name)
		}
		if n < 0 {
			return nil, fmt.Errorf("config: negative quantity for %s", name)
		}
		if n > 0 {
			comp[class] += n
		}
	}
	return comp, nil
}

// MatchConfig converts the variant into a validated match configuration.
func (v VariantConfig) MatchConfig(names [2]string, first core.PlayerID) (match.Config, error) {
	if v.Board.Width > MaxBoardSize || v.Board.Height > MaxBoardSize {
		return match.Config{}, fmt.Errorf("config: variant %q: board %dx%d exceeds %dx%d",
			v.Title, v.Board.Width, v.Board.Height, MaxBoardSize, MaxBoardSize)
	}
	comp, err := v.Composition()
	if err != nil {
		return match.Config{}, err
	}
	cfg := match.Config{
		Bounds:      core.NewRect(0, 0, v.Board.Width, v.Board.Height),
		Composition: comp,
		Names:       names,
		FirstPlayer: first,
	}
	if err := cfg.Validate(); err != nil {
		return match.Config{}, fmt.Errorf("config: variant %q: %w", v.Title, err)
	}
	return cfg, nil
}
