package engine

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Grid size limits. A run may use any size up to these bounds.
const (
	MaxWidth  = 512
	MaxHeight = 256

	// minBorderedSide leaves at least one open cell inside the walls.
	minBorderedSide = 3
)

// CellContent classifies what occupies a grid cell.
type CellContent uint8

const (
	Empty CellContent = iota
	Wall
	Head
	Body
	Powerup
	SuperPowerup
	Bomb
)

// String returns the name of the content.
func (c CellContent) String() string {
	switch c {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Head:
		return "head"
	case Body:
		return "body"
	case Powerup:
		return "powerup"
	case SuperPowerup:
		return "super-powerup"
	case Bomb:
		return "bomb"
	default:
		return "unknown"
	}
}

// IsItem reports whether the content is a consumable item.
func (c CellContent) IsItem() bool {
	return c == Powerup || c == SuperPowerup || c == Bomb
}

// IsSnake reports whether the content is part of the snake.
func (c CellContent) IsSnake() bool {
	return c == Head || c == Body
}

// Position is a cell coordinate, 0 <= X < width, 0 <= Y < height.
type Position struct {
	X, Y int
}

// Grid is the occupancy buffer of a run.
// Cells are stored in row-major order: index = y*width + x.
type Grid struct {
	width    int
	height   int
	bordered bool
	cells    []CellContent
}

// Reset sizes the grid and clears it. A bordered grid gets a ring of Wall
// cells on its perimeter; an open grid wraps around at the edges instead.
func (g *Grid) Reset(width, height int, bordered bool) error {
	if width <= 0 || height <= 0 || width > MaxWidth || height > MaxHeight {
		return fmt.Errorf("engine: grid %dx%d outside 1x1..%dx%d: %w",
			width, height, MaxWidth, MaxHeight, ErrConfiguration)
	}
	if bordered && (width < minBorderedSide || height < minBorderedSide) {
		return fmt.Errorf("engine: bordered grid %dx%d has no interior: %w", width, height, ErrConfiguration)
	}

	n := width * height
	if cap(g.cells) < n {
		g.cells = make([]CellContent, n)
	}
	g.cells = g.cells[:n]
	clear(g.cells)

	g.width = width
	g.height = height
	g.bordered = bordered

	if bordered {
		for x := range width {
			g.Set(Position{X: x, Y: 0}, Wall)
			g.Set(Position{X: x, Y: height - 1}, Wall)
		}
		for y := range height {
			g.Set(Position{X: 0, Y: y}, Wall)
			g.Set(Position{X: width - 1, Y: y}, Wall)
		}
	}
	return nil
}

// Width returns the grid width in cells.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the grid height in cells.
func (g *Grid) Height() int {
	return g.height
}

// Bordered reports whether the grid is walled rather than toroidal.
func (g *Grid) Bordered() bool {
	return g.bordered
}

// InBounds returns true if the position lies inside the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

func (g *Grid) index(p Position) int {
	return p.Y*g.width + p.X
}

// At returns what occupies the cell. Positions outside the grid read as Wall.
func (g *Grid) At(p Position) CellContent {
	if !g.InBounds(p) {
		return Wall
	}
	return g.cells[g.index(p)]
}

// Set overwrites a single cell. Out-of-bounds positions are ignored.
func (g *Grid) Set(p Position, c CellContent) {
	if g.InBounds(p) {
		g.cells[g.index(p)] = c
	}
}

// Step returns the neighbour of p along h. On an open grid coordinates wrap
// around in both directions; on a bordered grid they are left as is and the
// perimeter walls stop the snake.
func (g *Grid) Step(p Position, h Heading) Position {
	dx, dy := h.Delta()
	next := Position{X: p.X + dx, Y: p.Y + dy}
	if !g.bordered {
		next.X = core.Wrap(next.X, g.width)
		next.Y = core.Wrap(next.Y, g.height)
	}
	return next
}

// Count returns how many cells hold the given content.
func (g *Grid) Count(c CellContent) int {
	n := 0
	for _, cell := range g.cells {
		if cell == c {
			n++
		}
	}
	return n
}

// positionsOf returns every position holding the given content, row by row.
func (g *Grid) positionsOf(c CellContent) []Position {
	var out []Position
	for i, cell := range g.cells {
		if cell == c {
			out = append(out, Position{X: i % g.width, Y: i / g.width})
		}
	}
	return out
}

// Cells returns a copy of the row-major cell contents.
func (g *Grid) Cells() []CellContent {
	out := make([]CellContent, len(g.cells))
	copy(out, g.cells)
	return out
}
