package engine

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

// scriptRand replays fixed values (reduced mod n) and then falls back to a
// seeded source.
type scriptRand struct {
	vals     []int
	fallback *rand.Rand
}

func newScriptRand(vals ...int) *scriptRand {
	return &scriptRand{vals: vals, fallback: rand.New(rand.NewSource(1))}
}

func (r *scriptRand) Intn(n int) int {
	if len(r.vals) > 0 {
		v := r.vals[0]
		r.vals = r.vals[1:]
		return v % n
	}
	return r.fallback.Intn(n)
}

// testConfig returns a config with no initial items so tests place their own.
func testConfig(w, h int, bordered bool, length int) Config {
	rules := DefaultRules()
	rules.InitialItems = 0
	return Config{
		Width:         w,
		Height:        h,
		Bordered:      bordered,
		Preset:        PresetMedium,
		InitialLength: length,
		Rules:         rules,
	}
}

func newTestEngine(t *testing.T, rng Rand, cfg Config) *Engine {
	t.Helper()
	e := New(rng)
	if _, err := e.Reset(cfg); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	return e
}

// checkConsistency verifies that the cells marked Head/Body are exactly the
// body positions and that the head cell is marked Head.
func checkConsistency(t *testing.T, e *Engine) {
	t.Helper()
	body := make(map[Position]bool)
	for _, p := range e.Body() {
		body[p] = true
	}
	snap := e.Snapshot()
	for y := range snap.Height {
		for x := range snap.Width {
			p := Position{X: x, Y: y}
			if snap.At(p).IsSnake() != body[p] {
				t.Fatalf("tick %d: cell %v is %v but body membership is %v", e.Ticks(), p, snap.At(p), body[p])
			}
		}
	}
	if e.Length() > 0 && e.At(e.Head()) != Head {
		t.Fatalf("tick %d: head cell %v is %v", e.Ticks(), e.Head(), e.At(e.Head()))
	}
}

func TestResetLayout(t *testing.T) {
	cfg := testConfig(20, 10, true, 7)
	cfg.Rules.InitialItems = 2

	e := newTestEngine(t, rand.New(rand.NewSource(42)), cfg)
	snap := e.Snapshot()

	if snap.Count(Head) != 1 || snap.Count(Body) != 6 {
		t.Errorf("Expected 1 head and 6 body cells, got %d and %d", snap.Count(Head), snap.Count(Body))
	}
	if e.Head() != (Position{X: 10, Y: 5}) {
		t.Errorf("Expected head at (10,5), got %v", e.Head())
	}

	// One straight horizontal segment ending at the head
	for i, p := range e.Body() {
		want := Position{X: 4 + i, Y: 5}
		if p != want {
			t.Errorf("Segment %d at %v, expected %v", i, p, want)
		}
	}

	if got := snap.Count(Wall); got != 2*20+2*10-4 {
		t.Errorf("Expected 56 wall cells, got %d", got)
	}

	// Two seeded items, plus one extra for every bomb among them
	if snap.Items() != 2+snap.Count(Bomb) {
		t.Errorf("Expected %d items, got %d", 2+snap.Count(Bomb), snap.Items())
	}

	if snap.State != StateRunning || snap.Score != 0 || snap.Length != 7 || snap.Heading != HeadingRight {
		t.Errorf("Unexpected run state after reset: %+v", e.RunState())
	}
}

func TestResetOpenGridHasNoWalls(t *testing.T) {
	e := newTestEngine(t, newScriptRand(), testConfig(20, 10, false, 7))
	if n := e.Snapshot().Count(Wall); n != 0 {
		t.Errorf("Open grid should have no walls, got %d", n)
	}
}

func TestResetRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero width", testConfig(0, 10, false, 1)},
		{"negative height", testConfig(10, -1, false, 1)},
		{"too wide", testConfig(MaxWidth+1, 10, false, 1)},
		{"too tall", testConfig(10, MaxHeight+1, false, 1)},
		{"bordered without interior", testConfig(2, 2, true, 1)},
		{"zero length", testConfig(20, 10, true, 0)},
		{"length past wall", testConfig(20, 10, true, 11)},
		{"length over a quarter", testConfig(8, 2, false, 5)},
		{"unknown preset", func() Config { c := testConfig(20, 10, true, 3); c.Preset = "turbo"; return c }()},
		{"super smaller than normal", func() Config {
			c := testConfig(20, 10, true, 3)
			c.Rules.SuperGrowth = 0
			return c
		}()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(newScriptRand()).Reset(tc.cfg)
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("Reset() error = %v, expected ErrConfiguration", err)
			}
		})
	}
}

func TestStepOntoEmptyCell(t *testing.T) {
	// 20x10 bordered, length 7: after one tick the head sits at (11,5)
	e := newTestEngine(t, newScriptRand(), testConfig(20, 10, true, 7))

	if out, _ := e.Tick(HeadingRight); out != OutcomeAdvanced {
		t.Fatalf("First tick outcome = %v, expected advanced", out)
	}
	if e.Head() != (Position{X: 11, Y: 5}) {
		t.Fatalf("Expected head at (11,5), got %v", e.Head())
	}

	oldTail := e.Body()[0]
	out, err := e.Tick(HeadingRight)
	if err != nil {
		t.Fatalf("Tick() failed: %v", err)
	}

	if out != OutcomeAdvanced {
		t.Errorf("Outcome = %v, expected advanced", out)
	}
	if e.Head() != (Position{X: 12, Y: 5}) {
		t.Errorf("Expected head at (12,5), got %v", e.Head())
	}
	if e.Length() != 7 {
		t.Errorf("Expected length 7, got %d", e.Length())
	}
	if e.At(oldTail) != Empty {
		t.Errorf("Old tail %v should be empty, got %v", oldTail, e.At(oldTail))
	}
	if e.At(Position{X: 11, Y: 5}) != Body {
		t.Error("Previous head cell should become body")
	}
	checkConsistency(t, e)
}

func TestEmptyStepsKeepLength(t *testing.T) {
	e := newTestEngine(t, newScriptRand(), testConfig(20, 10, false, 7))

	for range 100 {
		tail := e.Body()[0]
		if out, err := e.Tick(HeadingRight); err != nil || out != OutcomeAdvanced {
			t.Fatalf("Tick() = %v, %v", out, err)
		}
		if e.Length() != 7 {
			t.Fatalf("Length changed to %d", e.Length())
		}
		if e.At(tail) != Empty {
			t.Fatalf("Tail %v not cleared", tail)
		}
	}
	checkConsistency(t, e)
}

func TestWrapAround(t *testing.T) {
	e := newTestEngine(t, newScriptRand(), testConfig(20, 10, false, 7))

	for range 9 {
		e.Tick(HeadingRight)
	}
	if e.Head() != (Position{X: 19, Y: 5}) {
		t.Fatalf("Expected head at (19,5), got %v", e.Head())
	}

	if out, _ := e.Tick(HeadingRight); out != OutcomeAdvanced {
		t.Errorf("Wrapping should be an ordinary advance, got %v", out)
	}
	if e.Head() != (Position{X: 0, Y: 5}) {
		t.Errorf("Expected head at (0,5), got %v", e.Head())
	}

	// Vertical underflow wraps to the bottom row
	for range 5 {
		e.Tick(HeadingUp)
	}
	if e.Head() != (Position{X: 0, Y: 0}) {
		t.Fatalf("Expected head at (0,0), got %v", e.Head())
	}
	e.Tick(HeadingUp)
	if e.Head() != (Position{X: 0, Y: 9}) {
		t.Errorf("Expected head at (0,9), got %v", e.Head())
	}

	// Horizontal underflow
	e.Tick(HeadingLeft)
	if e.Head() != (Position{X: 19, Y: 9}) {
		t.Errorf("Expected head at (19,9), got %v", e.Head())
	}
	checkConsistency(t, e)
}

func TestPowerup(t *testing.T) {
	// Replacement spawn: x=2, y=2, kind draw 0 (powerup)
	e := newTestEngine(t, newScriptRand(2, 2, 0), testConfig(20, 10, true, 7))
	e.grid.Set(Position{X: 11, Y: 5}, Powerup)
	tail := e.Body()[0]

	out, err := e.Tick(HeadingRight)
	if err != nil {
		t.Fatalf("Tick() failed: %v", err)
	}

	if out != OutcomeGrew {
		t.Errorf("Outcome = %v, expected grew", out)
	}
	if e.Length() != 8 || e.Score() != 1 {
		t.Errorf("Expected length 8 and score 1, got %d and %d", e.Length(), e.Score())
	}
	if e.At(tail) != Body {
		t.Error("Tail should stay in place while growing")
	}
	snap := e.Snapshot()
	if snap.Items() != 1 || snap.At(Position{X: 2, Y: 2}) != Powerup {
		t.Errorf("Expected exactly one new powerup at (2,2), got %d items", snap.Items())
	}
	checkConsistency(t, e)
}

func TestPowerupSpawnBombQuirk(t *testing.T) {
	// Replacement spawn draws a bomb at (2,2), which forces a second item at (3,3)
	e := newTestEngine(t, newScriptRand(2, 2, bombDraw, 3, 3, 0), testConfig(20, 10, true, 7))
	e.grid.Set(Position{X: 11, Y: 5}, Powerup)

	e.Tick(HeadingRight)

	if e.At(Position{X: 2, Y: 2}) != Bomb || e.At(Position{X: 3, Y: 3}) != Powerup {
		t.Errorf("Expected bomb at (2,2) and powerup at (3,3)")
	}
	if n := e.Snapshot().Items(); n != 2 {
		t.Errorf("Expected 2 items after bomb spawn, got %d", n)
	}
}

func TestSuperPowerup(t *testing.T) {
	e := newTestEngine(t, newScriptRand(2, 2, 0), testConfig(60, 10, true, 7))
	e.grid.Set(Position{X: 31, Y: 5}, SuperPowerup)
	tail := e.Body()[0]

	out, err := e.Tick(HeadingRight)
	if err != nil {
		t.Fatalf("Tick() failed: %v", err)
	}

	if out != OutcomeGrew {
		t.Errorf("Outcome = %v, expected grew", out)
	}
	if e.Length() != 7+15 {
		t.Errorf("Expected length 22, got %d", e.Length())
	}
	if e.Score() != 1 {
		t.Errorf("Expected score 1, got %d", e.Score())
	}
	checkConsistency(t, e)

	// The stacked tail segments unwind one per tick; the tail cell stays
	// occupied until the last of them leaves.
	for range 14 {
		e.Tick(HeadingRight)
		if e.At(tail) != Body {
			t.Fatalf("Tail cell cleared early at tick %d", e.Ticks())
		}
		if e.Length() != 22 {
			t.Fatalf("Length changed to %d while unwinding", e.Length())
		}
	}
	e.Tick(HeadingRight)
	if e.At(tail) != Empty {
		t.Error("Tail cell should clear once the last stacked segment leaves")
	}
	checkConsistency(t, e)
}

func TestBombEndsShortRun(t *testing.T) {
	// 20x10 bordered, length 10: max(10 - 25, 0) = 0 so the run is lost
	e := newTestEngine(t, newScriptRand(), testConfig(20, 10, true, 10))
	e.grid.Set(Position{X: 11, Y: 5}, Bomb)

	out, err := e.Tick(HeadingRight)
	if err != nil {
		t.Fatalf("Tick() failed: %v", err)
	}

	if out != OutcomeLost || e.State() != StateLost {
		t.Errorf("Expected lost, got outcome %v state %v", out, e.State())
	}
	if e.Length() != 0 {
		t.Errorf("Expected length 0, got %d", e.Length())
	}
	snap := e.Snapshot()
	if snap.Count(Head)+snap.Count(Body) != 0 {
		t.Error("No snake cells should remain")
	}
	if p, ok := e.FatalCell(); !ok || p != (Position{X: 11, Y: 5}) {
		t.Errorf("FatalCell() = %v, %v, expected (11,5)", p, ok)
	}
}

func TestBombShrink(t *testing.T) {
	tests := []struct {
		length   int
		lost     bool
		expected int
	}{
		{25, true, 0},
		{26, false, 1},
		{28, false, 3},
	}

	for _, tc := range tests {
		e := newTestEngine(t, newScriptRand(), testConfig(60, 10, true, tc.length))
		e.grid.Set(Position{X: 31, Y: 5}, Bomb)

		out, err := e.Tick(HeadingRight)
		if err != nil {
			t.Fatalf("length %d: Tick() failed: %v", tc.length, err)
		}

		if (out == OutcomeLost) != tc.lost {
			t.Errorf("length %d: outcome %v, expected lost=%v", tc.length, out, tc.lost)
		}
		if e.Length() != tc.expected {
			t.Errorf("length %d: expected %d left, got %d", tc.length, tc.expected, e.Length())
		}
		if !tc.lost {
			if out != OutcomeShrunk || e.State() != StateRunning {
				t.Errorf("length %d: expected shrunk and running, got %v %v", tc.length, out, e.State())
			}
			checkConsistency(t, e)

			// The survivor keeps moving normally
			if out, _ := e.Tick(HeadingRight); out != OutcomeAdvanced {
				t.Errorf("length %d: next tick %v, expected advanced", tc.length, out)
			}
		}
	}
}

func TestBombPenalty(t *testing.T) {
	tests := []struct {
		enabled  bool
		score    int
		expected int
	}{
		{false, 50, 50},
		{true, 50, 15},
		{true, 10, 0},
	}

	for _, tc := range tests {
		cfg := testConfig(60, 10, true, 28)
		cfg.Rules.BombPenaltyEnabled = tc.enabled
		e := newTestEngine(t, newScriptRand(), cfg)
		e.score = tc.score
		e.grid.Set(Position{X: 31, Y: 5}, Bomb)

		e.Tick(HeadingRight)

		if e.Score() != tc.expected {
			t.Errorf("enabled=%v score=%d: got %d, expected %d", tc.enabled, tc.score, e.Score(), tc.expected)
		}
	}
}

func TestSelfCollision(t *testing.T) {
	// Body (6..10,5). Up, Left, Down folds the head into (9,5).
	e := newTestEngine(t, newScriptRand(), testConfig(20, 10, false, 5))

	for _, h := range []Heading{HeadingUp, HeadingLeft} {
		if out, _ := e.Tick(h); out != OutcomeAdvanced {
			t.Fatalf("Setup tick %v: %v", h, out)
		}
	}

	out, err := e.Tick(HeadingDown)
	if err != nil {
		t.Fatalf("Tick() failed: %v", err)
	}
	if out != OutcomeLost || e.State() != StateLost {
		t.Errorf("Expected lost, got %v %v", out, e.State())
	}
	if p, _ := e.FatalCell(); p != (Position{X: 9, Y: 5}) {
		t.Errorf("FatalCell() = %v, expected (9,5)", p)
	}

	// Further ticks are idle
	if out, _ := e.Tick(HeadingDown); out != OutcomeIdle {
		t.Errorf("Tick after loss = %v, expected idle", out)
	}
}

func TestWallCollision(t *testing.T) {
	for _, length := range []int{1, 3} {
		e := newTestEngine(t, newScriptRand(), testConfig(20, 10, true, length))

		for range 8 {
			if out, _ := e.Tick(HeadingRight); out != OutcomeAdvanced {
				t.Fatalf("length %d: setup tick: %v", length, out)
			}
		}
		if e.Head() != (Position{X: 18, Y: 5}) {
			t.Fatalf("length %d: expected head at (18,5), got %v", length, e.Head())
		}

		if out, _ := e.Tick(HeadingRight); out != OutcomeLost {
			t.Errorf("length %d: stepping into the wall gave %v", length, out)
		}
		if p, _ := e.FatalCell(); p != (Position{X: 19, Y: 5}) {
			t.Errorf("length %d: FatalCell() = %v", length, p)
		}
	}
}

func TestHeadingReversal(t *testing.T) {
	e := newTestEngine(t, newScriptRand(), testConfig(20, 10, true, 7))

	if e.SetHeading(HeadingLeft) {
		t.Error("Reversal should be rejected for a multi-cell body")
	}

	// A reversing tick keeps going straight
	e.Tick(HeadingLeft)
	if e.Head() != (Position{X: 11, Y: 5}) || e.Heading() != HeadingRight {
		t.Errorf("Expected to keep heading right, head %v heading %v", e.Head(), e.Heading())
	}

	// Two turns between ticks cannot fold back onto the neck
	if !e.SetHeading(HeadingUp) {
		t.Error("Turning up should be allowed")
	}
	if e.SetHeading(HeadingLeft) {
		t.Error("Left is the reverse of the last move and must be rejected")
	}

	tests := []struct {
		moving, reverse Heading
	}{
		{HeadingUp, HeadingDown},
		{HeadingDown, HeadingUp},
		{HeadingLeft, HeadingRight},
		{HeadingRight, HeadingLeft},
	}
	for _, tc := range tests {
		e := newTestEngine(t, newScriptRand(), testConfig(40, 20, false, 1))
		e.Tick(tc.moving)
		if e.SetHeading(tc.reverse) {
			t.Errorf("Moving %v: reversal to %v accepted", tc.moving, tc.reverse)
		}
	}
}

func TestSingleSegmentMayReverseBeforeMoving(t *testing.T) {
	e := newTestEngine(t, newScriptRand(), testConfig(20, 10, true, 1))
	if !e.SetHeading(HeadingLeft) {
		t.Error("A single segment that has not moved may pick any heading")
	}
	e.Tick(HeadingLeft)
	if e.Head() != (Position{X: 9, Y: 5}) {
		t.Errorf("Expected head at (9,5), got %v", e.Head())
	}
}

func TestLevelAndInterval(t *testing.T) {
	e := newTestEngine(t, newScriptRand(), testConfig(80, 40, false, 30))
	if e.Level() != 1 {
		t.Errorf("Expected level 1 at length 30, got %d", e.Level())
	}
	if got := e.NextInterval(); got != TickInterval(1, HeadingRight, PresetMedium.BaseInterval()) {
		t.Errorf("NextInterval() = %v", got)
	}

	e = newTestEngine(t, newScriptRand(), testConfig(80, 40, false, 29))
	if e.Level() != 0 {
		t.Errorf("Expected level 0 at length 29, got %d", e.Level())
	}
}

func TestQuitPromptDoesNotMutate(t *testing.T) {
	e := newTestEngine(t, newScriptRand(), testConfig(20, 10, true, 7))
	e.Tick(HeadingRight)
	before := e.Snapshot()

	if !e.RequestQuit() || e.State() != StateAwaitingQuit {
		t.Fatalf("Expected awaiting quit, got %v", e.State())
	}
	if out, _ := e.Tick(HeadingRight); out != OutcomeIdle {
		t.Errorf("Tick while prompting = %v, expected idle", out)
	}
	if st, _ := e.Confirm(false); st != StateRunning {
		t.Errorf("Declining quit should resume, got %v", st)
	}

	after := e.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Error("Quit prompt must not change the game")
	}

	e.RequestQuit()
	if st, _ := e.Confirm(true); st != StateQuit {
		t.Errorf("Accepting quit should end in quit, got %v", st)
	}
}

func TestRestartPrompt(t *testing.T) {
	e := newTestEngine(t, newScriptRand(), testConfig(20, 10, true, 7))
	for range 3 {
		e.Tick(HeadingRight)
	}

	e.RequestRestart()
	if st, _ := e.Confirm(false); st != StateRunning || e.Ticks() != 3 {
		t.Errorf("Declining restart should resume the same run, got %v after %d ticks", st, e.Ticks())
	}

	e.RequestRestart()
	st, err := e.Confirm(true)
	if err != nil {
		t.Fatalf("Confirm() failed: %v", err)
	}
	if st != StateRunning || e.Ticks() != 0 || e.Head() != (Position{X: 10, Y: 5}) {
		t.Errorf("Restart should reset the run, got %v ticks=%d head=%v", st, e.Ticks(), e.Head())
	}
	checkConsistency(t, e)
}

func TestLostPrompt(t *testing.T) {
	lose := func() *Engine {
		e := newTestEngine(t, newScriptRand(), testConfig(20, 10, true, 1))
		for e.State() == StateRunning {
			e.Tick(HeadingUp)
		}
		return e
	}

	e := lose()
	if e.RequestQuit() || e.RequestRestart() {
		t.Error("Prompts cannot be requested after a loss")
	}
	if st, _ := e.Confirm(false); st != StateQuit {
		t.Errorf("Declining a new game should quit, got %v", st)
	}

	e = lose()
	if st, _ := e.Confirm(true); st != StateRunning || e.Length() != 1 {
		t.Errorf("Accepting a new game should reset, got %v length %d", st, e.Length())
	}
}

func TestHighScore(t *testing.T) {
	var reported []int

	e := New(newScriptRand(2, 2, 0))
	e.SetHighScore(0)
	e.OnNewHighScore(func(score int) { reported = append(reported, score) })
	if _, err := e.Reset(testConfig(20, 10, true, 3)); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	e.grid.Set(Position{X: 11, Y: 5}, Powerup)

	for e.State() == StateRunning {
		e.Tick(HeadingRight)
	}

	if len(reported) != 1 || reported[0] != 1 || e.HighScore() != 1 {
		t.Errorf("Expected one report of 1, got %v (high %d)", reported, e.HighScore())
	}

	// A run that does not beat the record reports nothing
	e.SetHighScore(5)
	e.Confirm(true)
	for e.State() == StateRunning {
		e.Tick(HeadingRight)
	}
	if len(reported) != 1 {
		t.Errorf("Expected no new report, got %v", reported)
	}
}

func TestDeterminism(t *testing.T) {
	cfg := testConfig(30, 15, false, 5)
	cfg.Rules = DefaultRules()

	run := func() Snapshot {
		e := newTestEngine(t, rand.New(rand.NewSource(12345)), cfg)
		headings := []Heading{HeadingRight, HeadingDown, HeadingLeft, HeadingDown, HeadingRight, HeadingUp}
		for i := range 200 {
			if _, err := e.Tick(headings[(i/7)%len(headings)]); err != nil {
				t.Fatalf("Tick() failed: %v", err)
			}
		}
		return e.Snapshot()
	}

	if a, b := run(), run(); !reflect.DeepEqual(a, b) {
		t.Error("Same seed and inputs should produce identical snapshots")
	}
}

func TestRandomPlayKeepsGridAndBodyInSync(t *testing.T) {
	cfg := testConfig(30, 15, false, 5)
	cfg.Rules = DefaultRules()
	cfg.Rules.InitialItems = 20

	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		e := newTestEngine(t, rng, cfg)
		turns := rand.New(rand.NewSource(seed * 7))

		for range 500 {
			h := e.Heading()
			if turns.Intn(4) == 0 {
				h = Heading(turns.Intn(4))
			}
			out, err := e.Tick(h)
			if err != nil {
				t.Fatalf("seed %d: Tick() failed: %v", seed, err)
			}
			if out == OutcomeLost {
				break
			}
			checkConsistency(t, e)
			if e.Length() > e.body.capacity() {
				t.Fatalf("seed %d: length %d over capacity", seed, e.Length())
			}
		}
	}
}

func TestConsecutiveSuperPowerupsOnWrapGrid(t *testing.T) {
	cfg := testConfig(40, 2, false, 20)
	e := newTestEngine(t, newScriptRand(), cfg)

	head := e.Head()
	for x := head.X + 1; x <= head.X+7; x++ {
		e.grid.Set(Position{X: x, Y: head.Y}, SuperPowerup)
	}

	for i := range 7 {
		out, err := e.Tick(HeadingRight)
		if err != nil {
			t.Fatalf("super %d: Tick() failed: %v", i+1, err)
		}
		if out != OutcomeGrew {
			t.Fatalf("super %d: outcome %v, expected grew", i+1, out)
		}
		checkConsistency(t, e)
	}
	if want := 20 + 7*cfg.Rules.SuperGrowth; e.Length() != want {
		t.Fatalf("Expected length %d, got %d", want, e.Length())
	}

	// Keep going until the head wraps into the stacked tail
	for range 100 {
		out, err := e.Tick(HeadingRight)
		if err != nil {
			t.Fatalf("tick %d: Tick() failed: %v", e.Ticks(), err)
		}
		if out == OutcomeLost {
			return
		}
		checkConsistency(t, e)
	}
	t.Error("Expected the head to run into the body")
}

func TestBodyCapacityCoversStackedGrowth(t *testing.T) {
	cfg := testConfig(40, 2, false, 20)
	if got, want := bodyCapacity(cfg), (40*2+1)*cfg.Rules.SuperGrowth; got != want {
		t.Errorf("open grid capacity = %d, want %d", got, want)
	}
	cfg = testConfig(20, 10, true, 5)
	if got, want := bodyCapacity(cfg), (18*8+1)*cfg.Rules.SuperGrowth; got != want {
		t.Errorf("bordered grid capacity = %d, want %d", got, want)
	}
}

func TestGrowthPastCapacityAbortsCleanly(t *testing.T) {
	cfg := testConfig(20, 10, true, 3)
	e := newTestEngine(t, newScriptRand(), cfg)

	// Shrink the ring to one free slot: enough to move, too small to grow
	var tight ring
	tight.reset(e.Length() + 1)
	for _, p := range e.Body() {
		if err := tight.pushHead(p); err != nil {
			t.Fatal(err)
		}
	}
	e.body = tight

	next := Position{X: e.Head().X + 1, Y: e.Head().Y}
	e.grid.Set(next, SuperPowerup)
	body := e.Body()
	score := e.Score()

	out, err := e.Tick(HeadingRight)
	if !errors.Is(err, ErrCapacityExhausted) {
		t.Fatalf("Expected ErrCapacityExhausted, got %v", err)
	}
	if out != OutcomeIdle {
		t.Errorf("Expected idle outcome on error, got %v", out)
	}
	if !reflect.DeepEqual(e.Body(), body) || e.Score() != score {
		t.Error("A failed eat should leave the body and score untouched")
	}
	if e.At(next) != SuperPowerup {
		t.Errorf("The item should still be there, got %v", e.At(next))
	}
	checkConsistency(t, e)

	if e.State() != StateAborted {
		t.Fatalf("Expected StateAborted after an error, got %v", e.State())
	}
	ticks := e.Ticks()
	out, err = e.Tick(HeadingRight)
	if err != nil || out != OutcomeIdle || e.Ticks() != ticks {
		t.Errorf("An aborted run should not tick: %v %v ticks %d", out, err, e.Ticks())
	}
	if st, _ := e.Confirm(true); st != StateAborted {
		t.Errorf("Confirm should not revive an aborted run, got %v", st)
	}
}

func TestFailedResetAborts(t *testing.T) {
	e := newTestEngine(t, newScriptRand(), testConfig(20, 10, true, 3))
	if _, err := e.Reset(testConfig(20, 10, true, 0)); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("Expected ErrConfiguration, got %v", err)
	}
	if e.State() != StateAborted {
		t.Errorf("Expected StateAborted, got %v", e.State())
	}
}
