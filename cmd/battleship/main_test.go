package main

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/fleet"
	"github.com/vovakirdan/tui-battleship/internal/match"
)

func TestResolveGameID(t *testing.T) {
	tests := []struct {
		in       string
		expected string
		wantErr  bool
	}{
		{"", "battleship", false},
		{"classic", "battleship", false},
		{"quick", "battleship_quick", false},
		{"battleship_quick", "battleship_quick", false},
		{"salvo", "", true},
	}
	for _, tt := range tests {
		got, err := resolveGameID(tt.in)
		if (err != nil) != tt.wantErr || got != tt.expected {
			t.Errorf("resolveGameID(%q) = %q, %v, expected %q", tt.in, got, err, tt.expected)
		}
	}
}

func TestDescribeFleet(t *testing.T) {
	got := describeFleet(fleet.Composition{fleet.Submarine: 2, fleet.Carrier: 1, fleet.Cruiser: 0})
	expected := "1 carrier (5), 2 submarine (1)"
	if got != expected {
		t.Errorf("describeFleet() = %q, expected %q", got, expected)
	}
}

func TestBoardText(t *testing.T) {
	own := match.PlayerSnapshot{
		Fleet: []match.VesselSnapshot{
			{Cells: []core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}, Sunk: true},
			{Cells: []core.Point{{X: 2, Y: 2}}},
		},
	}
	opp := match.PlayerSnapshot{
		Shots: []match.ShotRecord{
			{X: 0, Y: 0, Outcome: match.OutcomeHit},
			{X: 1, Y: 0, Outcome: match.OutcomeHit},
			{X: 0, Y: 2, Outcome: match.OutcomeMiss},
		},
	}

	lines := strings.Split(strings.TrimRight(boardText(3, 3, own, opp), "\n"), "\n")
	expected := []string{
		"    A B C ",
		"  1 # # ~ ",
		"  2 ~ ~ ~ ",
		"  3 • ~ ■ ",
	}
	if len(lines) != len(expected) {
		t.Fatalf("boardText() = %d lines, expected %d", len(lines), len(expected))
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("line %d = %q, expected %q", i, lines[i], expected[i])
		}
	}
}
