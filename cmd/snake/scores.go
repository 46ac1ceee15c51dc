package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagScoresWrap   bool
	flagScoresLimit  int
	flagScoresStats  bool
	flagScoresRecent bool
	flagScoresRun    string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [preset]",
	Short: "Show the best runs",
	Long: `Display the top runs, optionally for one speed preset only.

Examples:
  snake scores
  snake scores fast
  snake scores medium --wrap
  snake scores --stats
  snake scores --recent
  snake scores --run 6f1c...`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresWrap, "wrap", false, "Show the wrapping-edges game")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show totals per game and preset")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the latest runs instead of the best")
	scoresCmd.Flags().StringVar(&flagScoresRun, "run", "", "Show a single run by ID")
}

func runScores(_ *cobra.Command, args []string) error {
	preset := ""
	if len(args) == 1 {
		p, err := config.SpeedPresetFor(config.DifficultyPreset(args[0]))
		if err != nil {
			return err
		}
		preset = string(p)
	}

	gameID := snake.IDWalled
	if flagScoresWrap {
		gameID = snake.IDWrap
	}

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagScoresRun != "":
		return printRun(store, flagScoresRun)
	case flagScoresStats:
		return printStats(store)
	case flagScoresRecent:
		runs, err := store.RecentRuns(flagScoresLimit)
		if err != nil {
			return err
		}
		fmt.Println("Recent runs")
		fmt.Println()
		printRuns(runs, true)
		return nil
	}

	runs, err := store.TopRuns(gameID, preset, flagScoresLimit)
	if err != nil {
		return err
	}

	title := registry.Title(gameID)
	if preset != "" {
		title += " (" + preset + ")"
	}
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to set the first high score!")
		return nil
	}

	printRuns(runs, preset == "")

	// Show high score
	fmt.Println()
	if best, err := store.HighScore(gameID, preset); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}

func printRuns(runs []storage.RunRecord, withPreset bool) {
	// Print header
	if withPreset {
		fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-5s  %-10s  %s\n", "Rank", "Score", "Length", "Level", "Ticks", "Preset", "Date")
		fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-5s  %-10s  %s\n", "----", "-----", "------", "-----", "-----", "------", "----")
	} else {
		fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-5s  %s\n", "Rank", "Score", "Length", "Level", "Ticks", "Date")
		fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-5s  %s\n", "----", "-----", "------", "-----", "-----", "----")
	}

	for i, r := range runs {
		date := r.CreatedAt.Local().Format("2006-01-02 15:04")
		if withPreset {
			fmt.Printf("  %-4d  %-8d  %-6d  %-6d  %-5d  %-10s  %s\n", i+1, r.Score, r.Length, r.Level, r.Ticks, r.Preset, date)
		} else {
			fmt.Printf("  %-4d  %-8d  %-6d  %-6d  %-5d  %s\n", i+1, r.Score, r.Length, r.Level, r.Ticks, date)
		}
	}
}

func printStats(store *storage.Store) error {
	stats, err := store.GetAllPresetStats()
	if err != nil {
		return err
	}

	fmt.Println("Statistics")
	fmt.Println()
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-12s  %-8s  %-5s  %-6s  %-8s  %-7s  %s\n", "Game", "Preset", "Runs", "Best", "Average", "Longest", "Last played")
	fmt.Printf("  %-12s  %-8s  %-5s  %-6s  %-8s  %-7s  %s\n", "----", "------", "----", "----", "-------", "-------", "-----------")
	for _, s := range stats {
		fmt.Printf("  %-12s  %-8s  %-5d  %-6d  %-8.1f  %-7d  %s\n",
			s.GameID, s.Preset, s.RunsCount, s.HighScore, s.AvgScore, s.MaxLength,
			s.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func printRun(store *storage.Store, runID string) error {
	r, err := store.RunByID(runID)
	if err != nil {
		return err
	}
	if r == nil {
		return errors.New("no run with ID " + runID)
	}

	fmt.Printf("Run %s\n\n", r.RunID)
	fmt.Printf("  Game:   %s\n", registry.Title(r.GameID))
	fmt.Printf("  Preset: %s\n", r.Preset)
	fmt.Printf("  Score:  %d\n", r.Score)
	fmt.Printf("  Length: %d\n", r.Length)
	fmt.Printf("  Level:  %d\n", r.Level)
	fmt.Printf("  Ticks:  %d\n", r.Ticks)
	fmt.Printf("  Date:   %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	return nil
}
