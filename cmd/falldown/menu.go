package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/falldown/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start falldown with the character select menu",
	Long: `Start falldown in interactive menu mode.

Pick a character with Left/Right, then play, watch the demo or browse the
high scores. After a run you return to the menu. Leave the menu alone for a
while and the demo starts by itself.

Controls:
  Up/Down/j/k      - Navigate menu
  Left/Right/h/l   - Change character
  Enter/Space      - Select
  Tab              - High scores
  Q                - Quit

Examples:
  falldown menu
  falldown menu --fps 30
  falldown menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	a, err := newApp(appOptions{audio: true, watch: true})
	if err != nil {
		fail("%v", err)
	}
	defer a.Close()

	err = tui.RunSession(a.runtime(), tui.SessionOptions{
		Store:      a.store,
		Settings:   a.settings,
		Live:       a.live,
		Logger:     a.logger,
		Audio:      a.audio,
		PlayerName: a.playerName(),
	})
	if err != nil {
		a.Close()
		fail("running menu: %v", err)
	}
}
