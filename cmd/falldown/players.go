package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/falldown/internal/settings"
)

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the character roster",
	Long: `Shows every selectable character with its size and speed.
Select one with --player <index>; the choice is remembered.`,
	Args: cobra.NoArgs,
	Run:  runPlayers,
}

func runPlayers(_ *cobra.Command, _ []string) {
	live, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	cfg := live.Get()

	selected := 0
	if mgr, err := settings.Open(settings.AppName, nil); err == nil {
		selected = mgr.Get().Character % len(cfg.Characters)
	}

	fmt.Println("Characters:")
	fmt.Println()
	fmt.Printf("    %-3s  %-10s  %-7s  %-9s  %s\n", "#", "Name", "Size", "Top speed", "Fall")
	fmt.Printf("    %-3s  %-10s  %-7s  %-9s  %s\n", "-", "----", "----", "---------", "----")

	for i, ch := range cfg.Characters {
		marker := "  "
		if i == selected {
			marker = "> "
		}
		size := fmt.Sprintf("%.0fx%.0f", ch.Size.X(), ch.Size.Y())
		fmt.Printf("  %s%-3d  %-10s  %-7s  %-9.0f  %.0f\n",
			marker, i, ch.Name, size, ch.SpeedMax.X(), ch.SpeedMax.Y())
	}

	fmt.Println()
	fmt.Println("Run 'falldown play --player <#>' to pick one.")
}
