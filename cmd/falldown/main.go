// falldown is a terminal edition of the Falldown arcade game: fall through an
// endless shaft of platforms while a laser barrier closes in from above.
//
// Usage:
//
//	falldown play            - Play with the selected character
//	falldown demo            - Watch the AI play
//	falldown menu            - Character select and menu
//	falldown scores          - Show high scores
//	falldown players         - List the character roster
//	falldown serve           - Start SSH server for remote play
//	falldown config          - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible runs
//	--db <path>          - Set database path (default: ~/.falldown/scores.db)
//	--config <path>      - Use a custom configuration file
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--player <n>         - Select a character by roster index
//	--sound=false        - Turn sound off until turned back on
//	--music-volume <v>   - Remember the music volume (0.0-1.0)
//	--log-level <level>  - debug, info, warn or error (default: warn)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/falldown/internal/games/falldown"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagPlayer     int
	flagName       string
	flagAIScript   string
	flagNoSound    bool
	flagSound      bool
	flagLogLevel   string
	flagLogFile    string

	flagEffectsVolume float64
	flagMusicVolume   float64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "falldown",
	Short: "Falldown - fall, dodge the laser, keep falling",
	Long: `Falldown is a terminal arcade game. Your character falls through an
endless shaft of platform lines. Walk off the edges to fall through the gaps
before the laser barrier descending from above catches you.

Available commands:
  play     - Play with the selected character
  demo     - Watch the AI play
  menu     - Character select and menu
  scores   - View high scores
  players  - List the character roster
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  falldown play
  falldown play --player 3 --difficulty hard
  falldown demo --ai-script ./walker.tengo
  falldown menu
  falldown serve --ssh :2222`,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.falldown/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.IntVar(&flagPlayer, "player", -1, "Character roster index (-1 = last selected)")
	pf.StringVar(&flagName, "name", "", "Player name recorded with scores")
	pf.StringVar(&flagAIScript, "ai-script", "", "Tengo script driving the demo player")
	pf.BoolVar(&flagNoSound, "no-sound", false, "Disable sound for this session")
	pf.BoolVar(&flagSound, "sound", true, "Turn sound on or off (remembered)")
	pf.Float64Var(&flagEffectsVolume, "effects-volume", -1, "Effects volume 0.0-1.0 (remembered)")
	pf.Float64Var(&flagMusicVolume, "music-volume", -1, "Music volume 0.0-1.0 (remembered)")
	pf.StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// fail prints err the way every command reports errors and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
