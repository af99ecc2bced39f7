package match

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/tui-battleship/internal/core"
)

// SnapshotVersion is bumped whenever the encoded layout changes.
const SnapshotVersion = 1

// Snapshot is a deep copy of the match state, safe to keep after further
// commands and to encode.
type Snapshot struct {
	Version int              `json:"version"`
	Phase   Phase            `json:"phase"`
	Turn    int              `json:"turn"`
	Active  core.PlayerID    `json:"active"`
	Winner  core.PlayerID    `json:"winner"`
	Width   int              `json:"width"`
	Height  int              `json:"height"`
	Players []PlayerSnapshot `json:"players"`
}

// PlayerSnapshot is one side of a Snapshot.
type PlayerSnapshot struct {
	ID         core.PlayerID    `json:"id"`
	Name       string           `json:"name"`
	Score      int              `json:"score"`
	Hits       int              `json:"hits"`
	Misses     int              `json:"misses"`
	ActiveTurn bool             `json:"active_turn"`
	History    []MoveRecord     `json:"history"`
	Fleet      []VesselSnapshot `json:"fleet"`
	Shots      []ShotRecord     `json:"shots"`
}

// Accuracy returns hits over shots, or 0 before the first shot.
func (p PlayerSnapshot) Accuracy() float64 {
	shots := p.Hits + p.Misses
	if shots == 0 {
		return 0
	}
	return float64(p.Hits) / float64(shots)
}

// MoveRecord is the encoded form of a Move.
type MoveRecord struct {
	Turn    int      `json:"turn"`
	Kind    MoveKind `json:"kind"`
	X       int      `json:"x"`
	Y       int      `json:"y"`
	Vessel  string   `json:"vessel,omitempty"`
	Outcome Outcome  `json:"outcome"`
	Sunk    bool     `json:"sunk,omitempty"`
}

// VesselSnapshot is the encoded form of a placed vessel.
type VesselSnapshot struct {
	ID           string       `json:"id"`
	Class        string       `json:"class"`
	Slot         int          `json:"slot"`
	X            int          `json:"x"`
	Y            int          `json:"y"`
	Orientation  string       `json:"orientation"`
	Length       int          `json:"length"`
	HitPoints    int          `json:"hit_points"`
	MaxHitPoints int          `json:"max_hit_points"`
	Sunk         bool         `json:"sunk"`
	Locked       bool         `json:"locked"`
	Cells        []core.Point `json:"cells"`
}

// ShotRecord is one fired-at cell, in firing order.
type ShotRecord struct {
	X       int     `json:"x"`
	Y       int     `json:"y"`
	Outcome Outcome `json:"outcome"`
}

// State returns a read-only snapshot of the whole match.
func (m *Match) State() Snapshot {
	snap := Snapshot{
		Version: SnapshotVersion,
		Phase:   m.phase,
		Turn:    m.turn,
		Active:  m.active,
		Winner:  m.winner,
		Width:   m.cfg.Bounds.W,
		Height:  m.cfg.Bounds.H,
		Players: make([]PlayerSnapshot, 0, len(m.players)),
	}
	for _, s := range m.players {
		snap.Players = append(snap.Players, m.playerSnapshot(s))
	}
	return snap
}

func (m *Match) playerSnapshot(s *seat) PlayerSnapshot {
	ps := PlayerSnapshot{
		ID:         s.id,
		Name:       s.name,
		Score:      m.Score(s.id),
		Hits:       s.hits,
		Misses:     s.misses,
		ActiveTurn: m.active == s.id,
		History:    make([]MoveRecord, 0, len(s.history)),
		Fleet:      make([]VesselSnapshot, 0, s.fleet.Count()),
		Shots:      make([]ShotRecord, 0, len(s.order)),
	}
	for _, mv := range s.history {
		rec := MoveRecord{
			Turn:    mv.Turn,
			Kind:    mv.Kind,
			X:       mv.Target.X,
			Y:       mv.Target.Y,
			Outcome: mv.Outcome,
			Sunk:    mv.Sunk,
		}
		if mv.Kind != KindFire || mv.Outcome == OutcomeHit {
			rec.Vessel = mv.Vessel.String()
		}
		ps.History = append(ps.History, rec)
	}
	for _, v := range s.fleet.Vessels() {
		ps.Fleet = append(ps.Fleet, VesselSnapshot{
			ID:           v.ID().String(),
			Class:        v.Kind().Name,
			Slot:         v.ID().Slot,
			X:            v.Position().X,
			Y:            v.Position().Y,
			Orientation:  v.Orientation().String(),
			Length:       v.Kind().Length,
			HitPoints:    v.HitPoints(),
			MaxHitPoints: v.Kind().MaxHitPoints,
			Sunk:         v.Sunk(),
			Locked:       v.Locked(),
			Cells:        v.Footprint().Cells(),
		})
	}
	for _, p := range s.order {
		ps.Shots = append(ps.Shots, ShotRecord{X: p.X, Y: p.Y, Outcome: s.shots[p]})
	}
	return ps
}

// Player returns the snapshot of pid, if present.
func (s Snapshot) Player(pid core.PlayerID) (PlayerSnapshot, bool) {
	for _, p := range s.Players {
		if p.ID == pid {
			return p, true
		}
	}
	return PlayerSnapshot{}, false
}

// WinnerName returns the winner's name, or "" while undecided.
func (s Snapshot) WinnerName() string {
	if p, ok := s.Player(s.Winner); ok {
		return p.Name
	}
	return ""
}

// Encode serializes the snapshot as JSON.
func (s Snapshot) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// DecodeSnapshot parses a snapshot produced by Encode.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("match: decode snapshot: %w", err)
	}
	if s.Version != SnapshotVersion {
		return Snapshot{}, fmt.Errorf("match: unsupported snapshot version %d", s.Version)
	}
	return s, nil
}
