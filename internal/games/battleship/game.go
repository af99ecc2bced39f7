// Package battleship adapts the match engine to the platform game loop as a
// hot-seat game: both players share one terminal and hand it over between
// placements and shots.
package battleship

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	mrand "math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-battleship/internal/config"
	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/fleet"
	"github.com/vovakirdan/tui-battleship/internal/grid"
	"github.com/vovakirdan/tui-battleship/internal/match"
	"github.com/vovakirdan/tui-battleship/internal/registry"
)

// Mode selects the configured variant.
type Mode int

const (
	ModeClassic Mode = iota // 10x10, standard fleet
	ModeQuick               // smaller board and fleet
)

// View is the screen the game is currently showing.
type View string

const (
	ViewPlacement View = "placement"
	ViewHandover  View = "handover"
	ViewAim       View = "aim"
	ViewFinished  View = "finished"
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// ghost is the not-yet-placed vessel following the placement cursor.
type ghost struct {
	pos         core.Point
	orientation grid.Orientation
}

// Game implements registry.Game and registry.Recorder.
type Game struct {
	mode    Mode
	runtime core.RuntimeConfig
	cfg     config.BattleshipConfig
	match   *match.Match
	matchID string
	rng     *mrand.Rand
	logger  *log.Logger

	view     View
	next     View          // shown when the handover curtain is dismissed
	viewer   core.PlayerID // whose board is on screen
	ghost    ghost
	selected int // index into the viewer's vessels; -1 selects the ghost
	cursor   [2]core.Point
	status   string
	notice   string // last shot, shown on the curtain and to the next player

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
}

// New creates a classic battleship game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewQuick creates a battleship game on the quick variant.
func NewQuick() *Game {
	return &Game{mode: ModeQuick}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeQuick {
		return "battleship_quick"
	}
	return "battleship"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeQuick {
		return "Battleship (Quick)"
	}
	return "Battleship"
}

// Variant returns the config key of the variant this game plays.
func (g *Game) Variant() string {
	if g.mode == ModeQuick {
		return config.VariantQuick
	}
	return config.VariantClassic
}

// Reset starts a new match.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if g.logger == nil {
		g.logger = log.Default()
	}

	cfg, err := config.LoadBattleship(configPath)
	if err != nil {
		g.logger.Warn("using built-in rules", "err", err)
		cfg = config.DefaultBattleshipConfig()
	}
	g.cfg = cfg

	mc, err := cfg.MatchConfig(g.Variant())
	if err != nil {
		g.logger.Warn("variant unavailable, using built-in rules", "variant", g.Variant(), "err", err)
		mc, err = config.DefaultBattleshipConfig().MatchConfig(g.Variant())
		if err != nil {
			mc = match.DefaultConfig()
		}
	}
	m, err := match.New(mc)
	if err != nil {
		// Built-in rules always validate.
		m, _ = match.New(match.DefaultConfig())
	}
	g.match = m

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = mrand.New(mrand.NewSource(seed))
	g.matchID = newMatchID()
	g.paused = false
	g.status = ""
	g.notice = ""
	g.cursor = [2]core.Point{}

	if cfg.AutoPlace {
		for _, pid := range []core.PlayerID{core.Player1, core.Player2} {
			if _, err := g.match.AutoPlace(pid, g.rng); err != nil {
				g.logger.Debug("auto-place failed", "match", g.matchID, "player", pid, "err", err)
			}
		}
	}

	g.beginPlacement(core.Player1)
	g.view = ViewPlacement
	g.screenW = runtime.ScreenW
	g.screenH = runtime.ScreenH
	g.checkScreenSize()

	g.logger.Info("match started", "match", g.matchID, "variant", g.ID(),
		"board", fmt.Sprintf("%dx%d", mc.Bounds.W, mc.Bounds.H), "vessels", mc.Composition.Total())
}

// Resize adapts the layout to a new terminal size without restarting the match.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// SetLogger replaces the logger used for command and lifecycle events.
func (g *Game) SetLogger(l *log.Logger) {
	g.logger = l
}

// Step handles the actions of one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.match == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.view != ViewFinished {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	switch g.view {
	case ViewPlacement:
		g.stepPlacement(in)
	case ViewHandover:
		if in.Has(core.ActionConfirm) {
			g.view = g.next
			g.status = ""
		}
	case ViewAim:
		g.stepAim(in)
	}

	return core.StepResult{State: g.State()}
}

// State returns the platform-level game state.
func (g *Game) State() core.GameState {
	if g.match == nil {
		return core.GameState{}
	}
	score := g.match.Score(g.viewer)
	if w := g.match.Winner(); w != 0 {
		score = g.match.Score(w)
	}
	return core.GameState{
		Score:    score,
		GameOver: g.match.Phase() == match.PhaseFinished,
		Paused:   g.paused,
	}
}

// MatchID identifies the current match.
func (g *Game) MatchID() string {
	return g.matchID
}

// Result returns the final match snapshot once the match is finished.
func (g *Game) Result() (match.Snapshot, bool) {
	if g.match == nil || g.match.Phase() != match.PhaseFinished {
		return match.Snapshot{}, false
	}
	return g.match.State(), true
}

// beginPlacement shows pid's board with the ghost or first vessel selected.
func (g *Game) beginPlacement(pid core.PlayerID) {
	g.viewer = pid
	g.ghost = ghost{}
	g.selected = -1
	if len(g.match.Fleet(pid).Unplaced()) == 0 {
		g.selected = 0
	}
	g.clampGhost()
}

func (g *Game) stepPlacement(in core.InputFrame) {
	pid := g.viewer
	dx, dy := in.Delta()

	switch {
	case in.Has(core.ActionAutoPlace):
		moves, err := g.match.AutoPlace(pid, g.rng)
		if err != nil {
			g.reject("auto-place", err)
			return
		}
		g.selected = 0
		g.status = fmt.Sprintf("Placed %d vessels. Enter locks the fleet.", len(moves))

	case in.Has(core.ActionNextVessel):
		g.cycleSelection()

	case in.Has(core.ActionRotate):
		if g.selected < 0 {
			g.rotateGhost()
			return
		}
		if v, ok := g.selectedVessel(); ok {
			if _, err := g.match.Rotate(pid, v.ID()); err != nil {
				g.reject("rotate", err)
				return
			}
			g.status = ""
		}

	case dx != 0 || dy != 0:
		if g.selected < 0 {
			g.moveGhost(dx, dy)
			return
		}
		if v, ok := g.selectedVessel(); ok {
			if _, err := g.match.Move(pid, v.ID(), dx, dy); err != nil {
				g.reject("move", err)
				return
			}
			g.status = ""
		}

	case in.Has(core.ActionConfirm):
		if g.selected < 0 {
			g.placeGhost()
			return
		}
		if g.match.Fleet(pid).Complete() {
			g.lock()
			return
		}
		g.selected = -1
		g.clampGhost()
	}
}

func (g *Game) placeGhost() {
	pid := g.viewer
	class, ok := g.ghostClass()
	if !ok {
		return
	}
	mv, err := g.match.Place(pid, class, g.ghost.pos, g.ghost.orientation)
	if err != nil {
		g.reject("place", err)
		return
	}
	g.status = fmt.Sprintf("%s placed at %s.", vesselName(mv.Vessel), cellName(mv.Target))
	if len(g.match.Fleet(pid).Unplaced()) == 0 {
		g.selected = 0
		g.status += " Fleet complete: Enter locks it."
		return
	}
	g.clampGhost()
}

func (g *Game) lock() {
	pid := g.viewer
	if err := g.match.Lock(pid); err != nil {
		g.reject("lock", err)
		return
	}
	g.logger.Debug("fleet locked", "match", g.matchID, "player", pid)

	if g.match.Phase() == match.PhaseActive {
		first := g.match.Active()
		g.handover(first, ViewAim, "Both fleets are ready.")
		return
	}
	other := pid.Other()
	g.beginPlacement(other)
	g.handover(other, ViewPlacement, "")
}

func (g *Game) stepAim(in core.InputFrame) {
	pid := g.viewer
	idx := pid.Index()
	bounds := g.match.Config().Bounds

	if dx, dy := in.Delta(); dx != 0 || dy != 0 {
		cell := core.NewRect(g.cursor[idx].X, g.cursor[idx].Y, 1, 1)
		if moved, err := grid.Translate(cell, dx, dy, bounds); err == nil {
			g.cursor[idx] = moved.Pos()
		}
	}

	if !in.Has(core.ActionConfirm) {
		return
	}
	target := g.cursor[idx]
	mv, err := g.match.Fire(pid, target)
	if err != nil {
		g.reject("fire", err)
		return
	}
	g.status = ""
	g.notice = g.describeShot(pid, mv)

	if g.match.Phase() == match.PhaseFinished {
		g.view = ViewFinished
		snap := g.match.State()
		g.logger.Info("match finished", "match", g.matchID, "winner", snap.WinnerName(),
			"score", g.match.Score(pid), "turns", g.match.Turn())
		return
	}
	g.handover(pid.Other(), ViewAim, "")
}

// handover hides the board until the next player confirms.
func (g *Game) handover(to core.PlayerID, next View, msg string) {
	g.viewer = to
	g.next = next
	g.view = ViewHandover
	g.status = msg
}

func (g *Game) describeShot(pid core.PlayerID, mv match.Move) string {
	p, _ := g.match.Player(pid)
	at := cellName(mv.Target)
	switch {
	case mv.Sunk:
		return fmt.Sprintf("%s fired at %s: hit and sunk a %s!", p.Name, at, mv.Vessel.Class)
	case mv.Outcome == match.OutcomeHit:
		return fmt.Sprintf("%s fired at %s: hit!", p.Name, at)
	default:
		return fmt.Sprintf("%s fired at %s: miss.", p.Name, at)
	}
}

// reject reports a rejected command on the status line.
func (g *Game) reject(cmd string, err error) {
	g.status = humanize(err)
	g.logger.Debug("command rejected", "match", g.matchID, "player", g.viewer, "cmd", cmd, "err", err)
}

func (g *Game) cycleSelection() {
	f := g.match.Fleet(g.viewer)
	n := f.Count()
	hasGhost := len(f.Unplaced()) > 0
	switch {
	case n == 0:
		g.selected = -1
	case g.selected+1 < n:
		g.selected++
	case hasGhost:
		g.selected = -1
		g.clampGhost()
	default:
		g.selected = 0
	}
}

func (g *Game) selectedVessel() (*fleet.Vessel, bool) {
	vs := g.match.Fleet(g.viewer).Vessels()
	if g.selected < 0 || g.selected >= len(vs) {
		return nil, false
	}
	return vs[g.selected], true
}

func (g *Game) ghostClass() (fleet.Class, bool) {
	unplaced := g.match.Fleet(g.viewer).Unplaced()
	if len(unplaced) == 0 {
		return 0, false
	}
	return unplaced[0].Class, true
}

// ghostFootprint returns the cells the pending vessel would cover.
func (g *Game) ghostFootprint() (core.Rect, bool) {
	class, ok := g.ghostClass()
	if !ok {
		return core.Rect{}, false
	}
	k, _ := fleet.KindOf(class)
	return grid.Footprint(g.ghost.pos, g.ghost.orientation, k.Length), true
}

func (g *Game) moveGhost(dx, dy int) {
	fp, ok := g.ghostFootprint()
	if !ok {
		return
	}
	if moved, err := grid.Translate(fp, dx, dy, g.match.Config().Bounds); err == nil {
		g.ghost.pos = moved.Pos()
	}
}

func (g *Game) rotateGhost() {
	fp, ok := g.ghostFootprint()
	if !ok {
		return
	}
	to := g.ghost.orientation.Toggle()
	if rotated, err := grid.Rotate(fp, g.ghost.orientation, to, g.match.Config().Bounds); err == nil {
		g.ghost.pos = rotated.Pos()
		g.ghost.orientation = to
	}
}

// clampGhost keeps the ghost on the board after its class changed.
func (g *Game) clampGhost() {
	fp, ok := g.ghostFootprint()
	if !ok {
		return
	}
	bounds := g.match.Config().Bounds
	if clamped, err := grid.Clamp(fp, bounds); err == nil {
		g.ghost.pos = clamped.Pos()
		return
	}
	// Does not fit this way round; try the other orientation.
	g.ghost.orientation = g.ghost.orientation.Toggle()
	if fp, ok = g.ghostFootprint(); ok {
		if clamped, err := grid.Clamp(fp, bounds); err == nil {
			g.ghost.pos = clamped.Pos()
		}
	}
}

// humanize turns engine errors into status line text.
func humanize(err error) string {
	switch {
	case errors.Is(err, fleet.ErrOverlap):
		return "That spot overlaps another vessel."
	case errors.Is(err, fleet.ErrOutOfBounds):
		return "The vessel does not fit there."
	case errors.Is(err, fleet.ErrCollision):
		return "Blocked by another vessel."
	case errors.Is(err, fleet.ErrLocked):
		return "The fleet is locked."
	case errors.Is(err, fleet.ErrIncompleteFleet):
		return "Place every vessel before locking."
	case errors.Is(err, fleet.ErrDuplicateSlot):
		return "Every vessel of that class is already placed."
	case errors.Is(err, match.ErrInvalidTarget):
		return "You already fired there."
	case errors.Is(err, match.ErrNotYourTurn):
		return "It is not your turn."
	case errors.Is(err, match.ErrMatchFinished):
		return "The match is over."
	default:
		return err.Error()
	}
}

// cellName formats a cell as column letter and 1-based row, e.g. "C5".
func cellName(p core.Point) string {
	return fmt.Sprintf("%c%d", 'A'+rune(p.X), p.Y+1)
}

func vesselName(id fleet.VesselID) string {
	name := id.Class.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// newMatchID returns an ID like "match-K3QF7A" from crypto/rand.
func newMatchID() string {
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		// Fallback to timestamp-based
		return fmt.Sprintf("match-%06X", time.Now().UnixNano()&0xFFFFFF)
	}
	return "match-" + base32.StdEncoding.EncodeToString(b)[:6]
}

// Register games with the registry
func init() {
	registry.Register("battleship", func() registry.Game { return New() })
	registry.Register("battleship_quick", func() registry.Game { return NewQuick() })
}
