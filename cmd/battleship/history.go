package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/match"
	"github.com/vovakirdan/tui-battleship/internal/storage"
)

var (
	flagPlayer string
	flagLimit  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent matches and the leaderboard",
	Long: `Display the most recent finished matches followed by the leaderboard.

Examples:
  battleship history
  battleship history --player Ann
  battleship history --limit 25`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var showCmd = &cobra.Command{
	Use:   "show <match-id>",
	Short: "Show the full record of one match",
	Long: `Display both final boards and every recorded move of a finished match.

Examples:
  battleship show match-K3QF7A`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	historyCmd.Flags().StringVar(&flagPlayer, "player", "", "Only show matches of this player")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of matches to show")
}

func runHistory(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(settings.GetString(keyDB))
	if err != nil {
		return fmt.Errorf("error opening match history: %w", err)
	}
	defer store.Close()

	var records []storage.MatchRecord
	if flagPlayer != "" {
		records, err = store.PlayerMatches(flagPlayer, flagLimit)
	} else {
		records, err = store.RecentMatches(flagLimit)
	}
	if err != nil {
		return fmt.Errorf("error retrieving matches: %w", err)
	}

	title := "Recent matches"
	if flagPlayer != "" {
		title = fmt.Sprintf("Matches of %s", flagPlayer)
	}
	fmt.Println(title)
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'battleship play' and finish a match to start the history!")
		return nil
	}

	fmt.Printf("  %-12s  %-16s  %-28s  %-12s  %-6s  %s\n", "Match", "Date", "Players", "Winner", "Score", "Shots")
	fmt.Printf("  %-12s  %-16s  %-28s  %-12s  %-6s  %s\n", "-----", "----", "-------", "------", "-----", "-----")
	for _, r := range records {
		fmt.Printf("  %-12s  %-16s  %-28s  %-12s  %-6s  %d\n",
			r.MatchID,
			r.CreatedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%s vs %s", r.Player1, r.Player2),
			r.Winner,
			fmt.Sprintf("%d-%d", r.Score1, r.Score2),
			r.Turns,
		)
	}

	leaders, err := store.Leaderboard(10)
	if err != nil {
		return fmt.Errorf("error retrieving leaderboard: %w", err)
	}
	fmt.Println()
	fmt.Println("Leaderboard")
	fmt.Println()
	fmt.Printf("  %-4s  %-16s  %-5s  %-5s  %s\n", "Rank", "Player", "Wins", "Games", "Accuracy")
	fmt.Printf("  %-4s  %-16s  %-5s  %-5s  %s\n", "----", "------", "----", "-----", "--------")
	for i, p := range leaders {
		fmt.Printf("  %-4d  %-16s  %-5d  %-5d  %.0f%%\n", i+1, p.Name, p.Wins, p.Games, p.Accuracy()*100)
	}
	return nil
}

func runShow(_ *cobra.Command, args []string) error {
	store, err := storage.Open(settings.GetString(keyDB))
	if err != nil {
		return fmt.Errorf("error opening match history: %w", err)
	}
	defer store.Close()

	rec, err := store.MatchByID(args[0])
	if err != nil {
		return fmt.Errorf("error retrieving match: %w", err)
	}
	if rec == nil {
		return fmt.Errorf("no match %q in history (run 'battleship history' to list matches)", args[0])
	}

	fmt.Printf("%s  (%s, %s)\n", rec.MatchID, rec.Variant, rec.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("%s %d - %d %s, won by %s after %d shots\n\n",
		rec.Player1, rec.Score1, rec.Score2, rec.Player2, rec.Winner, rec.Turns)

	for _, pid := range []core.PlayerID{core.Player1, core.Player2} {
		p, ok := rec.Snapshot.Player(pid)
		if !ok {
			continue
		}
		opp, _ := rec.Snapshot.Player(pid.Other())
		fmt.Printf("%s's fleet  (hits %d, misses %d, accuracy %.0f%%)\n",
			p.Name, p.Hits, p.Misses, p.Accuracy()*100)
		fmt.Println(boardText(rec.Snapshot.Width, rec.Snapshot.Height, p, opp))
	}

	moves, err := store.Moves(rec.MatchID)
	if err != nil {
		return fmt.Errorf("error retrieving moves: %w", err)
	}
	fmt.Println("Moves")
	for _, mv := range moves {
		p, _ := rec.Snapshot.Player(core.PlayerID(mv.Player))
		line := fmt.Sprintf("  %3d  %-10s %-9s %c%-2d", mv.Turn, p.Name, mv.Kind, 'A'+rune(mv.X), mv.Y+1)
		if mv.Vessel != "" {
			line += "  " + mv.Vessel
		}
		if mv.Kind == match.KindFire {
			line += "  " + string(mv.Outcome)
			if mv.Sunk {
				line += ", sunk"
			}
		}
		fmt.Println(line)
	}
	return nil
}

// boardText draws a final board: own vessels with the opponent's shots.
func boardText(width, height int, own, opp match.PlayerSnapshot) string {
	cells := make([][]rune, height)
	for y := range cells {
		cells[y] = []rune(strings.Repeat("~", width))
	}
	set := func(p core.Point, r rune) {
		if p.Y >= 0 && p.Y < height && p.X >= 0 && p.X < width {
			cells[p.Y][p.X] = r
		}
	}

	sunk := make(map[core.Point]bool)
	for _, v := range own.Fleet {
		for _, c := range v.Cells {
			set(c, '■')
			if v.Sunk {
				sunk[c] = true
			}
		}
	}
	for _, s := range opp.Shots {
		p := core.Pt(s.X, s.Y)
		switch {
		case s.Outcome == match.OutcomeMiss:
			set(p, '•')
		case sunk[p]:
			set(p, '#')
		default:
			set(p, 'X')
		}
	}

	var b strings.Builder
	b.WriteString("    ")
	for x := 0; x < width; x++ {
		fmt.Fprintf(&b, "%c ", 'A'+rune(x))
	}
	b.WriteString("\n")
	for y, row := range cells {
		fmt.Fprintf(&b, "%3d ", y+1)
		for _, r := range row {
			b.WriteRune(r)
			b.WriteRune(' ')
		}
		b.WriteString("\n")
	}
	return b.String()
}
