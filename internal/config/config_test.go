package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/fleet"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "battleship.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	cfg, err := parseBattleship(defaultBattleshipYAML)
	if err != nil {
		t.Fatalf("embedded config does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultBattleshipConfig()) {
		t.Errorf("embedded YAML = %+v, expected %+v", cfg, DefaultBattleshipConfig())
	}
}

func TestClassicVariant(t *testing.T) {
	mc, err := DefaultBattleshipConfig().MatchConfig(VariantClassic)
	if err != nil {
		t.Fatalf("MatchConfig() error: %v", err)
	}
	if mc.Bounds != core.NewRect(0, 0, 10, 10) {
		t.Errorf("Bounds = %v", mc.Bounds)
	}
	if !reflect.DeepEqual(mc.Composition, fleet.StandardComposition()) {
		t.Errorf("Composition = %v, expected standard fleet", mc.Composition)
	}
	if mc.FirstPlayer != core.Player1 || mc.Names[1] != "Player 2" {
		t.Errorf("FirstPlayer=%d Names=%v", mc.FirstPlayer, mc.Names)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := writeConfig(t, `
players:
  - name: Ahab
first_player: 2
variants:
  tiny:
    title: Tiny
    board: {width: 4, height: 4}
    fleet: {submarines: 3}
`)
	cfg, err := LoadBattleship(path)
	if err != nil {
		t.Fatalf("LoadBattleship() error: %v", err)
	}
	if names := cfg.Names(); names != [2]string{"Ahab", "Player 2"} {
		t.Errorf("Names() = %v", names)
	}
	if cfg.Starter() != core.Player2 {
		t.Errorf("Starter() = %d, expected Player2", cfg.Starter())
	}
	if keys := cfg.VariantKeys(); !reflect.DeepEqual(keys, []string{"tiny"}) {
		t.Errorf("VariantKeys() = %v", keys)
	}
	mc, err := cfg.MatchConfig("tiny")
	if err != nil {
		t.Fatal(err)
	}
	if mc.Composition[fleet.Submarine] != 3 || mc.Bounds.W != 4 {
		t.Errorf("tiny match config = %+v", mc)
	}
}

func TestLoadKeepsDefaultVariants(t *testing.T) {
	cfg, err := LoadBattleship(writeConfig(t, "auto_place: true\n"))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.AutoPlace {
		t.Error("AutoPlace not applied")
	}
	if _, ok := cfg.Variant(VariantQuick); !ok {
		t.Error("default variants should survive a partial file")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "variants: [\n"},
		{"unknown class", "variants:\n  x:\n    board: {width: 10, height: 10}\n    fleet: {frigate: 1}\n"},
		{"carrier too long", "variants:\n  x:\n    board: {width: 3, height: 3}\n    fleet: {carrier: 1}\n"},
		{"empty fleet", "variants:\n  x:\n    board: {width: 3, height: 3}\n    fleet: {}\n"},
		{"too wide", "variants:\n  x:\n    board: {width: 30, height: 10}\n    fleet: {submarine: 1}\n"},
		{"too tall", "variants:\n  x:\n    board: {width: 10, height: 27}\n    fleet: {submarine: 1}\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadBattleship(writeConfig(t, tc.body)); err == nil {
				t.Error("expected an error")
			}
		})
	}

	if _, err := LoadBattleship(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom path should be an error")
	}
}

func TestUnknownVariant(t *testing.T) {
	if _, err := DefaultBattleshipConfig().MatchConfig("salvo"); err == nil {
		t.Error("unknown variant should be an error")
	}
}

func TestStarterFallback(t *testing.T) {
	if got := (BattleshipConfig{FirstPlayer: 5}).Starter(); got != core.Player1 {
		t.Errorf("Starter() = %d, expected Player1", got)
	}
}

func TestBoardSizeLimit(t *testing.T) {
	ships := map[string]int{"submarine": 1}
	tests := []struct {
		width, height int
		ok            bool
	}{
		{MaxBoardSize, MaxBoardSize, true},
		{MaxBoardSize + 1, 10, false},
		{10, MaxBoardSize + 1, false},
	}
	for _, tc := range tests {
		v := VariantConfig{Title: "t", Board: BoardConfig{Width: tc.width, Height: tc.height}, Fleet: ships}
		_, err := v.MatchConfig([2]string{"Ann", "Bob"}, core.Player1)
		if (err == nil) != tc.ok {
			t.Errorf("MatchConfig(%dx%d) error = %v, expected ok=%v", tc.width, tc.height, err, tc.ok)
		}
	}
}
