package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history <variant>",
	Short: "Show recent sessions for a variant",
	Long: `Display the most recent sessions recorded for the specified variant,
followed by totals across all of its sessions.

Examples:
  match3 history match3
  match3 history match3_cascade --limit 25
  match3 history match3 --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of sessions to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete all recorded sessions for the variant")
}

func runHistory(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'match3 list' to see available variants.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearSessions(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing sessions: %v\n", err)
			return
		}
		fmt.Printf("Cleared session history for %s\n", game.Title())
		return
	}

	sessions, err := store.RecentSessions(gameID, flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		return
	}

	fmt.Printf("Recent sessions - %s\n", game.Title())
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("  No sessions recorded yet.")
		return
	}

	fmt.Printf("  %-12s  %-10s  %5s  %7s  %6s  %7s  %6s\n", "When", "Player", "Moves", "Matched", "Missed", "Cleared", "Time")
	for _, row := range tui.SessionRows(sessions) {
		fmt.Printf("  %-12s  %-10s  %5s  %7s  %6s  %7s  %6s\n", row[0], row[1], row[2], row[3], row[4], row[5], row[6])
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving totals: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Printf("  %d sessions, %d moves, %d tiles cleared (best %d, avg %.1f), %s played\n",
		stats.Sessions, stats.TotalMoves, stats.TotalCleared, stats.BestCleared, stats.AvgCleared,
		tui.FormatPlayed(stats.TotalPlayed))
}
