package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresTUI    bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show the round journal",
	Long: `Display the best (or most recent) journalled rounds.

The journal defaults to memory, so point --journal at the database a
'play' or 'serve' run wrote to.

Examples:
  snake scores --journal ~/.snake/rounds.db
  snake scores snake_plus --recent --journal ~/.snake/rounds.db
  snake scores --tui --journal ~/.snake/rounds.db`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of rounds to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Newest rounds first instead of best")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse the journal interactively")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown variant %q, run 'snake list' to see available variants", gameID)
		}
	}

	journal, err := storage.Open(flagJournal)
	if err != nil {
		return err
	}
	defer journal.Close()

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(journal, width, height)
	}

	var rounds []storage.Round
	if flagScoresRecent {
		rounds, err = journal.RecentRounds(gameID, flagScoresLimit)
	} else {
		rounds, err = journal.TopRounds(gameID, flagScoresLimit)
	}
	if err != nil {
		return err
	}

	heading := "Best rounds"
	if flagScoresRecent {
		heading = "Recent rounds"
	}
	if gameID != "" {
		info, _ := registry.Info(gameID)
		heading += " - " + info.Title
	}
	fmt.Println(heading)
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %-7s  %s\n", "Rank", "Variant", "Score", "Length", "Cause", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %-7s  %s\n", "----", "-------", "-----", "------", "-----", "----")
	for i, r := range rounds {
		fmt.Printf("  %-4d  %-10s  %-6d  %-6d  %-7s  %s\n",
			i+1, r.GameID, r.Score, r.Length, r.Cause, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	for _, g := range registry.List() {
		if gameID != "" && g.ID != gameID {
			continue
		}
		stats, err := journal.GameStats(g.ID)
		if err != nil {
			return err
		}
		if stats.Rounds == 0 {
			continue
		}
		fmt.Printf("%s: %d rounds, best %d, average %.1f\n", g.Title, stats.Rounds, stats.Best, stats.AvgScore)
	}
	return nil
}
