package engine

// Snapshot is a copy of everything a renderer needs to draw a run.
type Snapshot struct {
	Width    int
	Height   int
	Bordered bool
	Cells    []CellContent // row-major, len Width*Height
	Body     []Position    // tail to head
	Heading  Heading
	Score    int
	Length   int
	Level    int
	Ticks    uint64
	State    State
}

// Snapshot returns a copy of the grid and the run state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Width:    e.grid.Width(),
		Height:   e.grid.Height(),
		Bordered: e.grid.Bordered(),
		Cells:    e.grid.Cells(),
		Body:     e.body.positions(),
		Heading:  e.heading,
		Score:    e.score,
		Length:   e.body.length,
		Level:    e.level,
		Ticks:    e.ticks,
		State:    e.state,
	}
}

// At returns the content of a cell in the snapshot, Wall when out of bounds.
func (s Snapshot) At(p Position) CellContent {
	if p.X < 0 || p.X >= s.Width || p.Y < 0 || p.Y >= s.Height {
		return Wall
	}
	return s.Cells[p.Y*s.Width+p.X]
}

// Count returns how many cells of the snapshot hold c.
func (s Snapshot) Count(c CellContent) int {
	n := 0
	for _, cell := range s.Cells {
		if cell == c {
			n++
		}
	}
	return n
}

// Items returns the number of consumable items on the board.
func (s Snapshot) Items() int {
	return s.Count(Powerup) + s.Count(SuperPowerup) + s.Count(Bomb)
}
