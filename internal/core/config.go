package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters available to the game
	ScreenH    int    // Screen height in characters available to the game
	Seed       int64  // RNG seed for deterministic gameplay
	Difficulty string // Speed preset name; empty keeps the game's configured one
	HighScore  int    // Best score persisted for this game and preset
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score        int    // Current score
	Length       int    // Current snake length
	Level        int    // Current speed level
	Ticks        uint64 // Simulation steps taken in this run
	Preset       string // Speed preset the run uses
	GameOver     bool   // Whether the run has been lost
	Paused       bool   // Whether the game is paused or waiting on a prompt
	Quit         bool   // Whether the player asked to leave
	NewHighScore bool   // Whether this run beat the persisted high score
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Next is the delay the platform waits before the following Step.
	Next time.Duration
	// Err is set when the game hit an unrecoverable invariant violation.
	Err error
}
