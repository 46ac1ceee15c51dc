package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/engine"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the speed presets",
	Long: `Show each speed preset with its tick intervals. The snake speeds up by
one level every 30 cells of length; vertical moves take twice as long because
terminal cells are about twice as tall as wide.`,
	Args: cobra.NoArgs,
	Run:  runPresets,
}

var difficultyAliases = map[engine.Preset]config.DifficultyPreset{
	engine.PresetFast:   config.DifficultyHard,
	engine.PresetMedium: config.DifficultyNormal,
	engine.PresetSlow:   config.DifficultyEasy,
}

func runPresets(_ *cobra.Command, _ []string) {
	fmt.Println("Speed presets:")
	fmt.Println()

	fmt.Printf("  %-8s  %-6s  %-10s  %-10s  %s\n", "Preset", "Alias", "Level 0", "Level 10", "Vertical (level 0)")
	fmt.Printf("  %-8s  %-6s  %-10s  %-10s  %s\n", "------", "-----", "-------", "--------", "------------------")

	for _, p := range engine.Presets() {
		base := p.BaseInterval()
		fmt.Printf("  %-8s  %-6s  %-10s  %-10s  %s\n",
			p,
			difficultyAliases[p],
			engine.TickInterval(0, engine.HeadingRight, base),
			engine.TickInterval(10, engine.HeadingRight, base),
			engine.TickInterval(0, engine.HeadingUp, base),
		)
	}

	fmt.Println()
	fmt.Printf("Intervals never drop below %s.\n", engine.MinInterval)
	fmt.Println("Run 'snake play --difficulty <preset>' to play one.")
}
