package battleship

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/fleet"
	"github.com/vovakirdan/tui-battleship/internal/match"
)

const (
	cellWidth = 3 // " ~ " or "[~]" under the cursor
	labelW    = 3 // row numbers
	boardGap  = 4
	hudHeight = 3
)

// Board glyphs.
const (
	glyphWater  = '~'
	glyphVessel = '■'
	glyphHit    = 'X'
	glyphMiss   = '•'
	glyphSunk   = '#'
	glyphGhost  = '□'
)

// cellFunc returns the glyph and color of one board cell.
type cellFunc func(p core.Point) (rune, core.Color)

// boardSize returns the on-screen size of one board including its labels.
func (g *Game) boardSize() (int, int) {
	b := g.match.Config().Bounds
	return labelW + b.W*cellWidth, b.H + 2 // title and column header
}

// checkScreenSize checks if the screen can hold both boards and the HUD.
func (g *Game) checkScreenSize() {
	if g.match == nil {
		return
	}
	bw, bh := g.boardSize()
	minW := 2*bw + boardGap
	minH := hudHeight + bh + 3 // status, help and a spacer
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.match == nil {
		return
	}

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	bw, _ := g.boardSize()
	leftX := (g.screenW - (2*bw + boardGap)) / 2
	rightX := leftX + bw + boardGap
	boardY := hudHeight

	g.renderHUD(dst)

	switch g.view {
	case ViewHandover:
		g.renderHandover(dst)
	case ViewPlacement:
		g.drawBoard(dst, leftX, boardY, "Your fleet", g.ownCell, nil)
		g.renderRoster(dst, rightX, boardY)
	case ViewAim:
		cursor := g.cursor[g.viewer.Index()]
		g.drawBoard(dst, leftX, boardY, "Your fleet", g.ownCell, nil)
		g.drawBoard(dst, rightX, boardY, "Enemy waters", g.targetCell, &cursor)
	case ViewFinished:
		g.drawBoard(dst, leftX, boardY, "Your fleet", g.ownCell, nil)
		g.drawBoard(dst, rightX, boardY, "Enemy fleet", g.revealedCell, nil)
	}

	g.renderFooter(dst)

	if g.paused {
		msg := " PAUSED - press P to resume "
		dst.DrawTextCentered(g.screenH/2, msg, core.ColorBrightYellow)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorGray)
}

// renderHUD draws the title, the players and whose turn it is.
func (g *Game) renderHUD(dst *core.Screen) {
	title := "BATTLESHIP"
	if g.mode == ModeQuick {
		title = "BATTLESHIP (QUICK)"
	}
	dst.DrawTextCentered(0, title, core.ColorHUD)

	p1, _ := g.match.Player(core.Player1)
	p2, _ := g.match.Player(core.Player2)
	score := fmt.Sprintf("%s %d  vs  %d %s",
		p1.Name, g.match.Score(core.Player1), g.match.Score(core.Player2), p2.Name)
	dst.DrawTextCentered(1, score, core.ColorDefault)

	var phase string
	switch g.match.Phase() {
	case match.PhasePlacement:
		phase = "Placement"
	case match.PhaseActive:
		phase = fmt.Sprintf("Turn %d", g.match.Turn()+1)
	case match.PhaseFinished:
		phase = fmt.Sprintf("Finished after %d shots", g.match.Turn())
	}
	if g.view != ViewHandover {
		if p, ok := g.match.Player(g.viewer); ok {
			phase += "  |  " + p.Name
		}
	}
	dst.DrawTextCentered(2, phase, core.ColorGray)
}

// renderHandover hides both boards until the next player is at the keyboard.
func (g *Game) renderHandover(dst *core.Screen) {
	p, _ := g.match.Player(g.viewer)
	y := g.screenH/2 - 2
	if g.notice != "" {
		dst.DrawTextCentered(y, g.notice, core.ColorBrightWhite)
	}
	dst.DrawTextCentered(y+2, fmt.Sprintf("Pass the keyboard to %s", p.Name), core.ColorHUD)
	dst.DrawTextCentered(y+3, "Press Enter when ready", core.ColorGray)
}

// renderRoster lists the viewer's vessels next to the placement board.
func (g *Game) renderRoster(dst *core.Screen, x, y int) {
	f := g.match.Fleet(g.viewer)
	dst.DrawTextColored(x, y, "Fleet", core.ColorHUD)
	row := y + 2

	for i, v := range f.Vessels() {
		marker := "  "
		c := core.ColorVessel
		if i == g.selected {
			marker = "> "
			c = core.ColorSelected
		}
		line := fmt.Sprintf("%s%-14s %s  %s", marker, vesselName(v.ID()),
			strings.Repeat(string(glyphVessel), v.Kind().Length), cellName(v.Position()))
		dst.DrawTextColored(x, row, line, c)
		row++
	}
	for i, id := range f.Unplaced() {
		k, _ := fleet.KindOf(id.Class)
		marker := "  "
		c := core.ColorGray
		if i == 0 && g.selected < 0 {
			marker = "> "
			c = core.ColorSelected
		}
		line := fmt.Sprintf("%s%-14s %s", marker, vesselName(id),
			strings.Repeat(string(glyphGhost), k.Length))
		dst.DrawTextColored(x, row, line, c)
		row++
	}

	row++
	if f.Complete() {
		dst.DrawTextColored(x, row, "Enter: lock fleet", core.ColorGreen)
	} else {
		dst.DrawTextColored(x, row, fmt.Sprintf("%d left to place", len(f.Unplaced())), core.ColorGray)
	}
}

// renderFooter draws the status line and the key help.
func (g *Game) renderFooter(dst *core.Screen) {
	_, bh := g.boardSize()
	y := hudHeight + bh + 1

	status := g.status
	c := core.ColorBrightRed
	switch {
	case g.view == ViewFinished:
		status = g.finishLine()
		c = core.ColorBrightYellow
	case status == "" && g.view == ViewAim:
		status = g.notice
		c = core.ColorDefault
	}
	if g.view != ViewHandover && status != "" {
		dst.DrawTextCentered(y, status, c)
	}
	dst.DrawTextCentered(y+1, g.helpLine(), core.ColorGray)
}

func (g *Game) finishLine() string {
	w, ok := g.match.Player(g.match.Winner())
	if !ok {
		return "Match over"
	}
	return fmt.Sprintf("%s wins with %d points!", w.Name, g.match.Score(w.ID))
}

func (g *Game) helpLine() string {
	switch g.view {
	case ViewPlacement:
		return "Arrows: move  R: rotate  Tab: select  F: auto  Enter: place/lock  P: pause  Q: quit"
	case ViewAim:
		return "Arrows: aim  Enter: fire  P: pause  Q: quit"
	case ViewFinished:
		return "N: new match  B: menu  Q: quit"
	default:
		return "Enter: continue  Q: quit"
	}
}

// drawBoard draws a titled grid with column letters and row numbers.
func (g *Game) drawBoard(dst *core.Screen, x, y int, title string, cell cellFunc, cursor *core.Point) {
	b := g.match.Config().Bounds
	dst.DrawTextColored(x+labelW, y, title, core.ColorHUD)

	for cx := 0; cx < b.W; cx++ {
		dst.DrawTextColored(x+labelW+cx*cellWidth+1, y+1, string(rune('A'+cx)), core.ColorGray)
	}

	for cy := 0; cy < b.H; cy++ {
		py := y + 2 + cy
		dst.DrawTextColored(x, py, fmt.Sprintf("%2d", cy+1), core.ColorGray)
		for cx := 0; cx < b.W; cx++ {
			p := core.Pt(b.X+cx, b.Y+cy)
			px := x + labelW + cx*cellWidth
			r, c := cell(p)
			dst.SetColored(px+1, py, r, c)
			if cursor != nil && *cursor == p {
				dst.SetColored(px, py, '[', core.ColorCursor)
				dst.SetColored(px+2, py, ']', core.ColorCursor)
			}
		}
	}
}

// shotCell renders a fired-at cell of pid's fleet, if any.
func shotCell(f *fleet.Fleet, outcome match.Outcome, p core.Point) (rune, core.Color) {
	if outcome == match.OutcomeMiss {
		return glyphMiss, core.ColorMiss
	}
	if v, ok := f.VesselAt(p); ok && v.Sunk() {
		return glyphSunk, core.ColorSunk
	}
	return glyphHit, core.ColorHit
}

// ownCell renders the viewer's fleet with the opponent's shots on it.
func (g *Game) ownCell(p core.Point) (rune, core.Color) {
	pid := g.viewer
	f := g.match.Fleet(pid)

	if g.view == ViewPlacement && g.selected < 0 {
		if fp, ok := g.ghostFootprint(); ok && fp.ContainsPoint(p) {
			if _, taken := f.VesselAt(p); taken {
				return glyphGhost, core.ColorRed
			}
			return glyphGhost, core.ColorSelected
		}
	}

	if outcome, ok := g.match.ShotAt(pid.Other(), p); ok {
		return shotCell(f, outcome, p)
	}

	if v, ok := f.VesselAt(p); ok {
		if g.view == ViewPlacement {
			if sel, ok := g.selectedVessel(); ok && sel.ID() == v.ID() {
				return glyphVessel, core.ColorSelected
			}
		}
		return glyphVessel, core.ColorVessel
	}
	return glyphWater, core.ColorWater
}

// targetCell renders the viewer's shots at the opponent.
func (g *Game) targetCell(p core.Point) (rune, core.Color) {
	if outcome, ok := g.match.ShotAt(g.viewer, p); ok {
		return shotCell(g.match.Opponent(g.viewer), outcome, p)
	}
	return glyphWater, core.ColorWater
}

// revealedCell shows the opponent's shots plus the vessels they hid.
func (g *Game) revealedCell(p core.Point) (rune, core.Color) {
	if _, ok := g.match.ShotAt(g.viewer, p); ok {
		return g.targetCell(p)
	}
	if _, ok := g.match.Opponent(g.viewer).VesselAt(p); ok {
		return glyphVessel, core.ColorGray
	}
	return glyphWater, core.ColorWater
}
