package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a speed picker menu",
	Long: `Start snake in interactive menu mode.

Use arrow keys or j/k to pick a speed, left/right to toggle the walls,
Enter to play. After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Pick a speed
  Left/Right   - Walls or wrapping edges
  Enter/Space  - Play
  Tab          - Scoreboard
  Q            - Quit

Examples:
  snake menu
  snake menu --db ./snake.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore(stderrLogger())
	if store != nil {
		defer store.Close()
	}

	logger, closeLog, err := fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := runtimeConfig()
	gameID := selectGameID(false, false)

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg, gameID)
		if err != nil {
			return err
		}

		// Keep size changes and the last choice for the next round
		cfg = menuResult.Config
		cfg.Difficulty = string(menuResult.Preset)
		if menuResult.GameID != "" {
			gameID = menuResult.GameID
		}

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, gameID, menuResult.Preset)
			if err != nil {
				return err
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from scoreboard
		}

		game, err := registry.Create(gameID)
		if err != nil {
			return fmt.Errorf("cannot create game: %w", err)
		}

		// Fresh seed for each game unless one was given
		cfg.Seed = flagSeed

		if err := tui.Run(game, store, cfg, logger); err != nil {
			return fmt.Errorf("running game: %w", err)
		}

		// Loop back to menu
	}
}
