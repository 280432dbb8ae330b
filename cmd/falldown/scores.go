package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/falldown/internal/games/falldown"
	"github.com/vovakirdan/falldown/internal/storage"
)

var (
	flagScoresLimit     int
	flagScoresCharacter string
	flagScoresClear     bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best recorded runs.

Examples:
  falldown scores
  falldown scores --limit 25
  falldown scores --character Frog
  falldown scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().StringVar(&flagScoresCharacter, "character", "", "Only show runs played with this character")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded scores")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(falldown.GameID); err != nil {
			store.Close()
			fail("%v", err)
		}
		fmt.Println("Scores cleared.")
		return
	}

	scores, err := store.AllScores(falldown.GameID)
	if err != nil {
		store.Close()
		fail("retrieving scores: %v", err)
	}
	if flagScoresCharacter != "" {
		filtered := scores[:0]
		for _, s := range scores {
			if strings.EqualFold(s.Character, flagScoresCharacter) {
				filtered = append(filtered, s)
			}
		}
		scores = filtered
	}
	if flagScoresLimit > 0 && len(scores) > flagScoresLimit {
		scores = scores[:flagScoresLimit]
	}

	fmt.Println("High Scores - Falldown")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'falldown play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-12s  %-10s  %-8s  %s\n", "Rank", "Player", "Character", "Score", "Date")
	fmt.Printf("  %-4s  %-12s  %-10s  %-8s  %s\n", "----", "------", "---------", "-----", "----")

	for i, entry := range scores {
		player := entry.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-12s  %-10s  %-8d  %s\n",
			i+1, player, entry.Character, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(falldown.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return
	}
	fmt.Println()
	fmt.Printf("Best: %d  Runs: %d  Average: %.0f", stats.HighScore, stats.GamesCount, stats.AvgScore)
	if stats.Favorite != "" {
		fmt.Printf("  Favorite: %s", stats.Favorite)
	}
	fmt.Println()
}
