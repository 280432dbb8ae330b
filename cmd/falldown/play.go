package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/falldown/internal/games/falldown"
	"github.com/vovakirdan/falldown/internal/platform/tui"
	"github.com/vovakirdan/falldown/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play falldown",
	Long: `Start a run with the selected character.

Controls:
  Left/Right, A/D, H/L  - Walk
  P/Esc                 - Pause
  R/Enter               - Restart (after game over)
  B                     - Back (when paused or after game over)
  Ctrl+S                - Save a screenshot
  Q/Ctrl+C              - Quit

Difficulty options:
  easy   - Long barrier lead, slow acceleration
  normal - Start at 30% difficulty, progresses to max
  hard   - Short barrier lead, fast acceleration
  fixed  - No progression, the barrier never speeds up

Examples:
  falldown play
  falldown play --player 4
  falldown play --difficulty hard
  falldown play --config ./my-falldown.yaml`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		runGame(falldown.GameID)
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Watch the AI play",
	Long: `Let the AI play. Demo runs restart on their own and are never
recorded as high scores. Press any key to stop.

With --ai-script the demo player is driven by a Tengo script. The script
reads the view map (tick, falling, offset_x, offset_y, player_x, player_y,
barrier_y, barrier_active, score) and sets left and right.

Examples:
  falldown demo
  falldown demo --ai-script ./walker.tengo`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		runGame(falldown.DemoGameID)
	},
}

func runGame(gameID string) {
	a, err := newApp(appOptions{audio: true, watch: true})
	if err != nil {
		fail("%v", err)
	}
	defer a.Close()

	name := a.playerName()
	game, err := registry.Create(gameID, registry.Env{
		Logger:     a.logger,
		Audio:      a.audio,
		Live:       a.live,
		Character:  a.settings.Get().Character,
		PlayerName: name,
	})
	if err != nil {
		a.Close()
		fail("creating game: %v", err)
	}

	runErr := tui.Run(game, a.runtime(), tui.GameOptions{
		Store:      a.store,
		Logger:     a.logger,
		PlayerName: name,
		MaxEntries: a.live.Get().Highscore.MaxEntries,
	})
	if runErr != nil {
		a.Close()
		fail("running game: %v", runErr)
	}
}
