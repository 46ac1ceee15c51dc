// Package engine implements the snake simulation: the grid occupancy model,
// the ring-buffer body, the per-tick advance rules and the speed curve.
//
// The engine is UI-agnostic and deterministic for a given Rand. It is not
// safe for concurrent use; a single driver must serialize every call.
package engine

import (
	"fmt"
	"time"
)

// levelDivisor is the length needed per speed level.
const levelDivisor = 30

// State is the lifecycle state of a run.
type State int

const (
	StateRunning State = iota
	StateLost
	StateAwaitingRestart
	StateAwaitingQuit
	StateQuit
	StateAborted // an engine error ended the run
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateLost:
		return "lost"
	case StateAwaitingRestart:
		return "awaiting_restart"
	case StateAwaitingQuit:
		return "awaiting_quit"
	case StateQuit:
		return "quit"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Outcome reports what a tick did.
type Outcome int

const (
	OutcomeIdle Outcome = iota // no tick ran, the run is not in StateRunning
	OutcomeAdvanced
	OutcomeGrew
	OutcomeShrunk
	OutcomeLost
)

// String returns the name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeIdle:
		return "idle"
	case OutcomeAdvanced:
		return "advanced"
	case OutcomeGrew:
		return "grew"
	case OutcomeShrunk:
		return "shrunk"
	case OutcomeLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Rules holds the item effects of a run.
type Rules struct {
	NormalGrowth         int  // cells gained from a powerup
	SuperGrowth          int  // cells gained from a super powerup
	BombShrink           int  // cells lost to a bomb, after the tail step
	BombPenaltyEnabled   bool // whether bombs also cost score
	BombPenalty          int  // score lost to a bomb when enabled
	InitialItems         int  // items seeded at run start
	SpawnAttemptsPerCell int  // random probes per grid cell before scanning
}

// DefaultRules returns the classic item effects.
func DefaultRules() Rules {
	return Rules{
		NormalGrowth:         1,
		SuperGrowth:          15,
		BombShrink:           25,
		BombPenaltyEnabled:   false,
		BombPenalty:          35,
		InitialItems:         2,
		SpawnAttemptsPerCell: defaultSpawnAttemptsPerCell,
	}
}

// Config describes a run.
type Config struct {
	Width         int
	Height        int
	Bordered      bool
	Preset        Preset
	InitialLength int
	Rules         Rules
}

// RunState is the score board of a run.
type RunState struct {
	Score  int
	Length int
	Level  int
	Ticks  uint64
	State  State
}

// Engine owns the grid and the snake body of one run at a time.
type Engine struct {
	cfg   Config
	rng   Rand
	grid  Grid
	body  ring
	state State

	heading Heading
	moved   Heading // heading of the last tick
	started bool

	score int
	level int
	ticks uint64

	fatal    Position
	hasFatal bool

	highScore   int
	onHighScore func(score int)
}

// New creates an engine drawing randomness from rng.
// Call Reset before the first Tick.
func New(rng Rand) *Engine {
	return &Engine{rng: rng, state: StateQuit}
}

// SetHighScore sets the best score known before this run.
func (e *Engine) SetHighScore(score int) {
	e.highScore = score
}

// HighScore returns the best score including the current run once lost.
func (e *Engine) HighScore() int {
	return e.highScore
}

// OnNewHighScore registers a callback run when a lost run beats the high score.
func (e *Engine) OnNewHighScore(fn func(score int)) {
	e.onHighScore = fn
}

// Reset starts a new run. The snake is laid out as a straight horizontal
// segment ending with its head at the grid centre, heading right, and the
// initial items are spawned.
func (e *Engine) Reset(cfg Config) (RunState, error) {
	rs, err := e.reset(cfg)
	if err != nil {
		e.state = StateAborted
	}
	return rs, err
}

func (e *Engine) reset(cfg Config) (RunState, error) {
	if err := validate(cfg); err != nil {
		return RunState{}, err
	}
	if err := e.grid.Reset(cfg.Width, cfg.Height, cfg.Bordered); err != nil {
		return RunState{}, err
	}

	e.cfg = cfg
	e.body.reset(bodyCapacity(cfg))
	e.heading = HeadingRight
	e.moved = HeadingRight
	e.started = false
	e.score = 0
	e.ticks = 0
	e.hasFatal = false
	e.state = StateRunning

	cx, cy := cfg.Width/2, cfg.Height/2
	for x := cx - cfg.InitialLength + 1; x <= cx; x++ {
		p := Position{X: x, Y: cy}
		if err := e.body.pushHead(p); err != nil {
			return RunState{}, err
		}
		e.grid.Set(p, Body)
	}
	e.grid.Set(e.body.headPos(), Head)
	e.updateLevel()

	for range cfg.Rules.InitialItems {
		if err := e.spawn(); err != nil {
			return RunState{}, err
		}
	}
	return e.RunState(), nil
}

// bodyCapacity bounds the number of ring entries a run can reach.
//
// Every entry is either a head push or a tail duplicate. Head pushes still in
// the ring sit on distinct playable cells, plus one overlap on the fatal tick.
// A duplicate is stacked at the tail when an item is eaten and is popped
// before the head pushed by that same eat, so each live head push carries at
// most SuperGrowth-1 duplicates.
func bodyCapacity(cfg Config) int {
	cells := cfg.Width * cfg.Height
	if cfg.Bordered {
		cells = (cfg.Width - 2) * (cfg.Height - 2)
	}
	return (cells + 1) * max(cfg.Rules.SuperGrowth, 1)
}

func validate(cfg Config) error {
	if cfg.InitialLength < 1 {
		return fmt.Errorf("engine: initial length %d: %w", cfg.InitialLength, ErrConfiguration)
	}
	if _, err := ParsePreset(string(cfg.Preset)); err != nil {
		return err
	}

	// The body must fit between the left edge (or wall) and the centre, and
	// may not take more than a quarter of the grid.
	left := 0
	if cfg.Bordered {
		left = 1
	}
	if cfg.Width/2-cfg.InitialLength+1 < left || cfg.InitialLength > cfg.Width*cfg.Height/4 {
		return fmt.Errorf("engine: initial length %d does not fit a %dx%d grid: %w",
			cfg.InitialLength, cfg.Width, cfg.Height, ErrConfiguration)
	}

	r := cfg.Rules
	if r.NormalGrowth < 1 || r.SuperGrowth < r.NormalGrowth || r.BombShrink < 0 ||
		r.BombPenalty < 0 || r.InitialItems < 0 {
		return fmt.Errorf("engine: item rules %+v: %w", r, ErrConfiguration)
	}
	return nil
}

// SetHeading changes the heading for the next tick. Reversing onto the body
// is rejected once the run has moved or the body is longer than one cell.
// Reversal is judged against the heading of the last tick, so two quick
// turns between ticks cannot fold the head back into the neck.
func (e *Engine) SetHeading(h Heading) bool {
	if !h.Valid() {
		return false
	}
	if (e.started || e.body.length > 1) && h == e.moved.Opposite() {
		return false
	}
	e.heading = h
	return true
}

// Tick advances the run by one cell along h (subject to SetHeading's rules)
// and reports what happened. Outside StateRunning it does nothing. An error
// moves the run to StateAborted.
func (e *Engine) Tick(h Heading) (Outcome, error) {
	out, err := e.tick(h)
	if err != nil {
		e.state = StateAborted
		return OutcomeIdle, err
	}
	return out, nil
}

func (e *Engine) tick(h Heading) (Outcome, error) {
	if e.state != StateRunning {
		return OutcomeIdle, nil
	}
	e.SetHeading(h)
	e.started = true
	e.moved = e.heading
	e.ticks++

	next := e.grid.Step(e.body.headPos(), e.heading)

	var (
		out Outcome
		err error
	)
	switch e.grid.At(next) {
	case Empty:
		out, err = e.advance(next)
	case Powerup:
		out, err = e.eat(next, e.cfg.Rules.NormalGrowth)
	case SuperPowerup:
		out, err = e.eat(next, e.cfg.Rules.SuperGrowth)
	case Bomb:
		out, err = e.detonate(next)
	default:
		out, err = e.collide(next)
	}
	e.updateLevel()
	return out, err
}

// advance moves the head into an empty cell and drags the tail along.
func (e *Engine) advance(next Position) (Outcome, error) {
	if err := e.moveHead(next); err != nil {
		return OutcomeIdle, err
	}
	e.removeTail()
	return OutcomeAdvanced, nil
}

// eat consumes a powerup or super powerup: the body grows by growth, the
// score by one, and a replacement item is spawned. The ring is checked for
// room first so a failed eat leaves the run untouched.
func (e *Engine) eat(next Position, growth int) (Outcome, error) {
	if free := e.body.capacity() - e.body.length; free < growth {
		return OutcomeIdle, fmt.Errorf("engine: grow by %d at length %d: %w", growth, e.body.length, ErrCapacityExhausted)
	}
	if err := e.duplicateTail(growth - 1); err != nil {
		return OutcomeIdle, err
	}
	if err := e.moveHead(next); err != nil {
		return OutcomeIdle, err
	}
	e.score++
	if err := e.spawn(); err != nil {
		return OutcomeGrew, err
	}
	return OutcomeGrew, nil
}

// detonate steps onto a bomb and sheds BombShrink tail cells. Running out of
// body ends the run.
func (e *Engine) detonate(next Position) (Outcome, error) {
	if err := e.moveHead(next); err != nil {
		return OutcomeIdle, err
	}
	e.removeTail()
	for range e.cfg.Rules.BombShrink {
		e.removeTail()
		if e.body.length == 0 {
			e.lose(next)
			return OutcomeLost, nil
		}
	}
	if e.cfg.Rules.BombPenaltyEnabled {
		e.score = max(e.score-e.cfg.Rules.BombPenalty, 0)
	}
	return OutcomeShrunk, nil
}

// collide handles stepping into the body or a wall. The head still moves so
// the fatal overlap is visible.
func (e *Engine) collide(next Position) (Outcome, error) {
	if err := e.moveHead(next); err != nil {
		return OutcomeIdle, err
	}
	e.removeTail()
	e.lose(next)
	return OutcomeLost, nil
}

func (e *Engine) lose(at Position) {
	e.fatal = at
	e.hasFatal = true
	e.state = StateLost
	if e.score > e.highScore {
		e.highScore = e.score
		if e.onHighScore != nil {
			e.onHighScore(e.score)
		}
	}
}

// moveHead turns the current head into body and pushes the new head.
func (e *Engine) moveHead(next Position) error {
	var prev Position
	hadHead := e.body.length > 0
	if hadHead {
		prev = e.body.headPos()
	}
	if err := e.body.pushHead(next); err != nil {
		return err
	}
	if hadHead {
		e.grid.Set(prev, Body)
	}
	e.grid.Set(next, Head)
	return nil
}

// removeTail drops the tail segment. Its cell is cleared only when no other
// segment still sits there: stacked duplicates and a head that moved onto
// the tail keep it occupied.
func (e *Engine) removeTail() {
	p, ok := e.body.popTail()
	if !ok {
		return
	}
	if e.body.length > 0 && (e.body.tailPos() == p || e.body.headPos() == p) {
		return
	}
	e.grid.Set(p, Empty)
}

func (e *Engine) duplicateTail(n int) error {
	for range n {
		if err := e.body.dupTail(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) spawn() error {
	_, err := e.grid.SpawnItem(e.rng, e.cfg.Rules.SpawnAttemptsPerCell)
	return err
}

func (e *Engine) updateLevel() {
	e.level = e.body.length / levelDivisor
}

// RequestQuit pauses a running game on the quit prompt.
func (e *Engine) RequestQuit() bool {
	if e.state != StateRunning {
		return false
	}
	e.state = StateAwaitingQuit
	return true
}

// RequestRestart pauses a running game on the restart prompt.
func (e *Engine) RequestRestart() bool {
	if e.state != StateRunning {
		return false
	}
	e.state = StateAwaitingRestart
	return true
}

// Confirm answers the pending prompt. A lost run counts as a pending
// "play again?" prompt: accepting starts a new run, declining quits.
// Accepting a restart resets the run with the same configuration; the quit
// prompt never touches game state.
func (e *Engine) Confirm(accept bool) (State, error) {
	switch e.state {
	case StateAwaitingQuit:
		if accept {
			e.state = StateQuit
		} else {
			e.state = StateRunning
		}
	case StateAwaitingRestart, StateLost:
		switch {
		case accept:
			if _, err := e.Reset(e.cfg); err != nil {
				return StateAborted, err
			}
		case e.state == StateLost:
			e.state = StateQuit
		default:
			e.state = StateRunning
		}
	}
	return e.state, nil
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// Level returns the current speed level.
func (e *Engine) Level() int {
	return e.level
}

// Length returns the number of body segments.
func (e *Engine) Length() int {
	return e.body.length
}

// Ticks returns the number of ticks run since Reset.
func (e *Engine) Ticks() uint64 {
	return e.ticks
}

// Heading returns the heading the next tick will use.
func (e *Engine) Heading() Heading {
	return e.heading
}

// Head returns the head position. It is meaningless once the body is gone.
func (e *Engine) Head() Position {
	return e.body.headPos()
}

// Body returns the segments ordered from tail to head.
func (e *Engine) Body() []Position {
	return e.body.positions()
}

// FatalCell returns the cell that ended the run, if it has ended.
func (e *Engine) FatalCell() (Position, bool) {
	return e.fatal, e.hasFatal
}

// At returns the content of a cell.
func (e *Engine) At(p Position) CellContent {
	return e.grid.At(p)
}

// Config returns the configuration of the current run.
func (e *Engine) Config() Config {
	return e.cfg
}

// RunState returns the score board of the current run.
func (e *Engine) RunState() RunState {
	return RunState{
		Score:  e.score,
		Length: e.body.length,
		Level:  e.level,
		Ticks:  e.ticks,
		State:  e.state,
	}
}

// NextInterval returns the delay the driver should wait before the next tick.
func (e *Engine) NextInterval() time.Duration {
	return TickInterval(e.level, e.heading, e.cfg.Preset.BaseInterval())
}
