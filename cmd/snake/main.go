// snake is the classic snake game for the terminal.
//
// Usage:
//
//	snake play               - Play a game directly
//	snake menu               - Pick a speed interactively, with the scoreboard
//	snake scores [preset]    - Show the best runs
//	snake presets            - List the speed presets
//	snake config             - Show or write the game configuration
//	snake serve              - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.snake/snake.db)
//	--config <path> - Load the game configuration from a YAML file
//	--log <path>    - Log file used while the game is on screen
//	--debug         - Log debug messages
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

var (
	// Global flags
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogPath string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake in the terminal: steer the snake, eat powerups to grow,
avoid bombs and do not bite yourself.

Available commands:
  play     - Play a game directly
  menu     - Interactive speed picker with scoreboard
  scores   - View the best runs
  presets  - List the speed presets
  config   - Show or write the game configuration
  serve    - Start SSH server for remote play

Examples:
  snake play
  snake play --difficulty fast --wrap
  snake menu
  snake serve --ssh :2222
  snake scores medium`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadGameConfig,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/snake.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Log file while playing (default ~/.snake/snake.log)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log debug messages")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadGameConfig loads the YAML configuration every new game starts from.
func loadGameConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return err
	}
	snake.SetConfig(cfg)
	return nil
}
