package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/falldown/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the validated configuration as YAML, after the config file
search and the difficulty preset are applied. The output is a complete
config file: save it, edit it and pass it back with --config.

Config search order:
  --config <path>
  ~/.falldown/configs/falldown.yaml
  ./configs/falldown.yaml
  built-in defaults

Examples:
  falldown config
  falldown config --difficulty hard > my-falldown.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	live, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	data, err := config.Marshal(live.Get())
	if err != nil {
		fail("%v", err)
	}

	if path := config.ResolvePath(flagConfig); path != "" {
		fmt.Fprintf(os.Stderr, "# loaded from %s\n", path)
	}
	os.Stdout.Write(data)
}
