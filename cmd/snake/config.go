package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

var (
	flagConfigInit  bool
	flagConfigForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or write the game configuration",
	Long: `Print the configuration games start from, after the search order:
--config, ~/.snake/configs/snake.yaml, ./configs/snake.yaml, built-in defaults.

With --init, write the built-in defaults to ~/.snake/configs/snake.yaml
for editing.

Examples:
  snake config
  snake config --config ./my-snake.yaml
  snake config --init`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigInit, "init", false, "Write the default config to the user config path")
	configCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing file with --init")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigInit {
		path := config.UserConfigPath()
		if path == "" {
			return errors.New("cannot find home directory")
		}
		if _, err := os.Stat(path); err == nil && !flagConfigForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if err := config.SaveSnake(path, config.DefaultSnakeConfig()); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	}

	data, err := yaml.Marshal(snake.Config())
	if err != nil {
		return fmt.Errorf("cannot encode config: %w", err)
	}
	fmt.Print(string(data))
	return nil
}
