package engine

import "fmt"

// ring is the snake body: a fixed-capacity circular buffer of positions.
// The live segments run from tail to head inclusive, advancing circularly.
type ring struct {
	buf    []Position
	head   int
	tail   int
	length int
}

// reset empties the ring and makes sure it can hold capacity segments.
// An empty ring keeps head one slot behind tail so the first push lands on tail.
func (r *ring) reset(capacity int) {
	if cap(r.buf) < capacity {
		r.buf = make([]Position, capacity)
	}
	r.buf = r.buf[:capacity]
	r.tail = 0
	r.head = r.prev(0)
	r.length = 0
}

// capacity returns how many segments the ring can hold.
func (r *ring) capacity() int {
	return len(r.buf)
}

func (r *ring) next(i int) int {
	return (i + 1) % len(r.buf)
}

// prev steps an index back without ever taking a negative modulo.
func (r *ring) prev(i int) int {
	return (i + len(r.buf) - 1) % len(r.buf)
}

// pushHead appends a new head segment.
func (r *ring) pushHead(p Position) error {
	if r.length == len(r.buf) {
		return fmt.Errorf("engine: push head at length %d: %w", r.length, ErrCapacityExhausted)
	}
	r.head = r.next(r.head)
	r.buf[r.head] = p
	r.length++
	return nil
}

// popTail removes and returns the tail segment.
func (r *ring) popTail() (Position, bool) {
	if r.length == 0 {
		return Position{}, false
	}
	p := r.buf[r.tail]
	r.tail = r.next(r.tail)
	r.length--
	return p, true
}

// dupTail stacks a copy of the tail segment behind it, growing the body by
// one without touching the grid.
func (r *ring) dupTail() error {
	if r.length == 0 {
		return fmt.Errorf("engine: duplicate tail of empty body: %w", ErrCapacityExhausted)
	}
	if r.length == len(r.buf) {
		return fmt.Errorf("engine: duplicate tail at length %d: %w", r.length, ErrCapacityExhausted)
	}
	p := r.buf[r.tail]
	r.tail = r.prev(r.tail)
	r.buf[r.tail] = p
	r.length++
	return nil
}

func (r *ring) headPos() Position {
	return r.buf[r.head]
}

func (r *ring) tailPos() Position {
	return r.buf[r.tail]
}

// positions returns the live segments ordered from tail to head.
func (r *ring) positions() []Position {
	out := make([]Position, 0, r.length)
	for i, idx := 0, r.tail; i < r.length; i, idx = i+1, r.next(idx) {
		out = append(out, r.buf[idx])
	}
	return out
}
