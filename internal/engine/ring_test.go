package engine

import (
	"errors"
	"reflect"
	"testing"
)

func TestRingPushPop(t *testing.T) {
	var r ring
	r.reset(3)

	for i := range 3 {
		if err := r.pushHead(Position{X: i}); err != nil {
			t.Fatalf("pushHead(%d) failed: %v", i, err)
		}
	}
	if err := r.pushHead(Position{X: 3}); !errors.Is(err, ErrCapacityExhausted) {
		t.Errorf("Push on a full ring = %v, expected ErrCapacityExhausted", err)
	}
	if err := r.dupTail(); !errors.Is(err, ErrCapacityExhausted) {
		t.Errorf("Duplicate on a full ring = %v, expected ErrCapacityExhausted", err)
	}

	// Cycle past the end of the buffer several times
	for i := 3; i < 10; i++ {
		p, ok := r.popTail()
		if !ok || p.X != i-3 {
			t.Fatalf("popTail() = %v, %v, expected X=%d", p, ok, i-3)
		}
		if err := r.pushHead(Position{X: i}); err != nil {
			t.Fatalf("pushHead(%d) failed: %v", i, err)
		}
	}

	want := []Position{{X: 7}, {X: 8}, {X: 9}}
	if got := r.positions(); !reflect.DeepEqual(got, want) {
		t.Errorf("positions() = %v, expected %v", got, want)
	}
	if r.headPos().X != 9 || r.tailPos().X != 7 {
		t.Errorf("head %v tail %v", r.headPos(), r.tailPos())
	}
}

func TestRingDupTailWrapsBackwards(t *testing.T) {
	var r ring
	r.reset(4)

	// The tail sits at index 0, so the duplicate lands at the last slot
	r.pushHead(Position{X: 1})
	r.pushHead(Position{X: 2})
	if err := r.dupTail(); err != nil {
		t.Fatalf("dupTail() failed: %v", err)
	}
	if err := r.dupTail(); err != nil {
		t.Fatalf("dupTail() failed: %v", err)
	}

	want := []Position{{X: 1}, {X: 1}, {X: 1}, {X: 2}}
	if got := r.positions(); !reflect.DeepEqual(got, want) {
		t.Errorf("positions() = %v, expected %v", got, want)
	}
	if r.length != 4 || r.capacity() != 4 {
		t.Errorf("length %d capacity %d", r.length, r.capacity())
	}
}

func TestRingEmpty(t *testing.T) {
	var r ring
	r.reset(2)

	if _, ok := r.popTail(); ok {
		t.Error("popTail() on an empty ring should fail")
	}
	if err := r.dupTail(); !errors.Is(err, ErrCapacityExhausted) {
		t.Errorf("dupTail() on an empty ring = %v", err)
	}

	// First push lands on the tail slot
	r.pushHead(Position{X: 5, Y: 5})
	if r.headPos() != r.tailPos() {
		t.Error("A single segment is both head and tail")
	}
	if len(r.positions()) != 1 {
		t.Errorf("Expected one position, got %d", len(r.positions()))
	}
}
