package engine

import "fmt"

// Rand is the source of uniformly distributed integers in [0, n) the engine
// draws item placement and kinds from. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Item kind draw: one value in itemDraws yields a super powerup, one a bomb,
// the rest a plain powerup.
const (
	itemDraws        = 10
	superPowerupDraw = 7
	bombDraw         = 3

	defaultSpawnAttemptsPerCell = 8
)

// itemKind maps a draw in [0, itemDraws) to the item it places.
func itemKind(draw int) CellContent {
	switch draw {
	case superPowerupDraw:
		return SuperPowerup
	case bombDraw:
		return Bomb
	default:
		return Powerup
	}
}

// SpawnItem places a random item on a random empty cell and returns the cells
// it filled. Placing a bomb always places another item as well, so a bomb
// never replaces the last consumable on the board.
//
// Cells are sampled uniformly (x first, then y) up to attemptsPerCell times
// the grid area; after that the remaining empty cells are scanned. With no
// empty cell left the error wraps ErrSpawnExhausted.
func (g *Grid) SpawnItem(rng Rand, attemptsPerCell int) ([]Position, error) {
	var placed []Position
	for {
		p, err := g.randomEmpty(rng, attemptsPerCell)
		if err != nil {
			return placed, err
		}
		kind := itemKind(rng.Intn(itemDraws))
		g.Set(p, kind)
		placed = append(placed, p)
		if kind != Bomb {
			return placed, nil
		}
	}
}

func (g *Grid) randomEmpty(rng Rand, attemptsPerCell int) (Position, error) {
	if attemptsPerCell <= 0 {
		attemptsPerCell = defaultSpawnAttemptsPerCell
	}
	for range attemptsPerCell * g.width * g.height {
		p := Position{X: rng.Intn(g.width), Y: rng.Intn(g.height)}
		if g.At(p) == Empty {
			return p, nil
		}
	}

	free := g.positionsOf(Empty)
	if len(free) == 0 {
		return Position{}, fmt.Errorf("engine: spawn on full %dx%d grid: %w", g.width, g.height, ErrSpawnExhausted)
	}
	return free[rng.Intn(len(free))], nil
}
