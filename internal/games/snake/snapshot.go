package snake

import "github.com/vovakirdan/tui-snake/internal/engine"

// Phase is what the game is showing.
type Phase string

const (
	PhasePlaying        Phase = "playing"
	PhasePaused         Phase = "paused"
	PhaseBlinking       Phase = "blinking"
	PhaseLost           Phase = "lost"
	PhaseConfirmQuit    Phase = "confirm_quit"
	PhaseConfirmRestart Phase = "confirm_restart"
	PhaseQuit           Phase = "quit"
	PhaseTooSmall       Phase = "too_small"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Phase     Phase
	HighScore int
	Board     engine.Snapshot
}

// Phase returns what the game is currently showing.
func (g *Game) Phase() Phase {
	if g.tooSmall || g.eng == nil {
		return PhaseTooSmall
	}
	switch g.eng.State() {
	case engine.StateLost:
		if g.blinkLeft > 0 {
			return PhaseBlinking
		}
		return PhaseLost
	case engine.StateAwaitingQuit:
		return PhaseConfirmQuit
	case engine.StateAwaitingRestart:
		return PhaseConfirmRestart
	case engine.StateQuit, engine.StateAborted:
		return PhaseQuit
	}
	if g.paused {
		return PhasePaused
	}
	return PhasePlaying
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{Phase: g.Phase()}
	if g.eng != nil {
		snap.HighScore = g.eng.HighScore()
		snap.Board = g.eng.Snapshot()
	}
	return snap
}

// Engine exposes the underlying engine, nil while the screen is too small.
func (g *Game) Engine() *engine.Engine {
	return g.eng
}
