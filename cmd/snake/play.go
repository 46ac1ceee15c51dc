package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

var (
	flagDifficulty string
	flagWrap       bool
	flagLength     int
	flagWidth      int
	flagHeight     int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing snake directly.

Controls:
  Arrows/hjkl/wasd - Steer
  Space            - Boost a few cells at once
  P                - Pause
  R                - Restart (asks first)
  Q                - Quit (asks first)
  Y/N              - Answer a prompt
  Ctrl+C           - Exit at once

Difficulty options:
  fast, medium, slow  - Speed presets (see 'snake presets')
  easy, normal, hard  - Aliases for slow, medium, fast

Examples:
  snake play
  snake play --difficulty fast
  snake play --wrap --length 4
  snake play --width 40 --height 20
  snake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Speed preset: fast, medium, slow (or easy, normal, hard)")
	playCmd.Flags().BoolVar(&flagWrap, "wrap", false, "Edges wrap around instead of being walls")
	playCmd.Flags().IntVar(&flagLength, "length", 0, "Initial snake length")
	playCmd.Flags().IntVar(&flagWidth, "width", 0, "Grid width (0 = fit the terminal)")
	playCmd.Flags().IntVar(&flagHeight, "height", 0, "Grid height (0 = fit the terminal)")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if err := applyPlayOverrides(cmd); err != nil {
		return err
	}

	gameID := selectGameID(cmd.Flags().Changed("wrap"), flagWrap)

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	cfg := runtimeConfig()
	cfg.Difficulty = flagDifficulty

	store := openStore(stderrLogger())
	if store != nil {
		defer store.Close()
	}

	logger, closeLog, err := fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	if err := tui.Run(game, store, cfg, logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// applyPlayOverrides folds the play flags into the loaded configuration.
func applyPlayOverrides(cmd *cobra.Command) error {
	cfg := snake.Config()

	if flagDifficulty != "" {
		if _, err := config.SpeedPresetFor(config.DifficultyPreset(flagDifficulty)); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("length") {
		cfg.Snake.InitialLength = flagLength
	}
	if cmd.Flags().Changed("width") {
		cfg.Grid.Width = flagWidth
	}
	if cmd.Flags().Changed("height") {
		cfg.Grid.Height = flagHeight
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	snake.SetConfig(cfg)
	return nil
}

// selectGameID picks the walled or wrapping game. An explicit --wrap wins;
// otherwise grid.bordered from the loaded configuration decides.
func selectGameID(wrapSet, wrap bool) string {
	if !wrapSet {
		wrap = !snake.Config().Grid.Bordered
	}
	if wrap {
		return snake.IDWrap
	}
	return snake.IDWalled
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	return cfg
}
