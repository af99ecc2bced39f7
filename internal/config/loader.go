package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBattleship loads battleship configuration.
// Search order: customPath -> ~/.battleship/configs/battleship.yaml -> ./configs/battleship.yaml -> embedded default
func LoadBattleship(customPath string) (BattleshipConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BattleshipConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseBattleship(data)
		if err != nil {
			return BattleshipConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("battleship.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseBattleship(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "battleship.yaml")); err == nil {
		if cfg, err := parseBattleship(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseBattleship(defaultBattleshipYAML)
	if err != nil {
		return DefaultBattleshipConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseBattleship decodes YAML on top of the built-in defaults, so a file
// only needs the keys it changes. Every variant must convert to a valid
// match configuration.
func parseBattleship(data []byte) (BattleshipConfig, error) {
	def := DefaultBattleshipConfig()
	cfg := def
	cfg.Variants = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BattleshipConfig{}, err
	}
	if len(cfg.Variants) == 0 {
		cfg.Variants = def.Variants
	}
	for key := range cfg.Variants {
		if _, err := cfg.MatchConfig(key); err != nil {
			return BattleshipConfig{}, err
		}
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".battleship", "configs", filename)
}
