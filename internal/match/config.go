package match

import (
	"fmt"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/fleet"
)

// Config holds everything a match needs at construction time. Nothing is
// read from package-level state, so independent matches never interfere.
type Config struct {
	Bounds      core.Rect
	Composition fleet.Composition
	Names       [2]string
	FirstPlayer core.PlayerID
}

// DefaultConfig returns the classic 10x10 game with the standard fleet.
func DefaultConfig() Config {
	return Config{
		Bounds:      core.NewRect(0, 0, 10, 10),
		Composition: fleet.StandardComposition(),
		Names:       [2]string{"Player 1", "Player 2"},
		FirstPlayer: core.Player1,
	}
}

// Validate checks that the field can hold the requested fleet.
func (c Config) Validate() error {
	if c.Bounds.W <= 0 || c.Bounds.H <= 0 {
		return fmt.Errorf("%w: empty field %v", ErrInvalidConfig, c.Bounds)
	}
	if err := c.Composition.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	longest := core.Max(c.Bounds.W, c.Bounds.H)
	for class, n := range c.Composition {
		k, _ := fleet.KindOf(class)
		if n > 0 && k.Length > longest {
			return fmt.Errorf("%w: %s (length %d) does not fit a %dx%d field",
				ErrInvalidConfig, class, k.Length, c.Bounds.W, c.Bounds.H)
		}
	}
	if cells := c.Composition.Cells(); cells > c.Bounds.W*c.Bounds.H {
		return fmt.Errorf("%w: fleet needs %d cells, field has %d",
			ErrInvalidConfig, cells, c.Bounds.W*c.Bounds.H)
	}
	if c.FirstPlayer != 0 && !c.FirstPlayer.Valid() {
		return fmt.Errorf("%w: first player %d", ErrInvalidConfig, c.FirstPlayer)
	}
	return nil
}

// withDefaults fills unset names and the first player.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	for i := range c.Names {
		if c.Names[i] == "" {
			c.Names[i] = def.Names[i]
		}
	}
	if c.FirstPlayer == 0 {
		c.FirstPlayer = def.FirstPlayer
	}
	return c
}
