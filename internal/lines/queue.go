// Package lines manages the backlog of chunks and the window of visible lines.
package lines

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/typerush/internal/model"
)

var (
	// ErrExhausted is returned when no line is left to type.
	ErrExhausted = errors.New("no more text")
	// ErrSlotIndex is returned for an index outside the visible window.
	ErrSlotIndex = errors.New("slot index out of range")
)

// MaxWindow is the largest supported number of visible lines.
const MaxWindow = 3

// Source supplies chunks when the backlog runs low. The second result is
// false once nothing more can be supplied.
type Source interface {
	Next() ([]model.Chunk, bool)
}

// Slot binds one visible chunk to its input buffer.
type Slot struct {
	Chunk     model.Chunk
	Input     string
	States    []model.CharState
	Correct   int
	Completed bool
}

func newSlot(c model.Chunk) *Slot {
	states := make([]model.CharState, len([]rune(c.Text)))
	return &Slot{Chunk: c, States: states}
}

// Queue holds chunks not yet visible (the backlog) and up to capacity
// visible slots. Lines are typed in ordinal order; Active is the slot that
// receives input.
type Queue struct {
	src       Source
	capacity  int
	mode      model.AdvanceMode
	backlog   []model.Chunk
	slots     []*Slot
	active    int
	completed int
	drained   bool
}

// New builds a queue with the given window capacity and fills the window.
func New(src Source, capacity int, mode model.AdvanceMode) (*Queue, error) {
	if capacity < 1 || capacity > MaxWindow {
		return nil, fmt.Errorf("window size must be between 1 and %d, got %d", MaxWindow, capacity)
	}
	q := &Queue{src: src, capacity: capacity, mode: mode}
	q.fill()
	return q, nil
}

// EnsureBacklog pulls from the source until the backlog holds at least one
// window's worth of chunks or the source is drained.
func (q *Queue) EnsureBacklog() {
	for len(q.backlog) < q.capacity && !q.drained {
		chunks, ok := q.src.Next()
		if !ok {
			q.drained = true
			return
		}
		q.backlog = append(q.backlog, chunks...)
	}
}

func (q *Queue) pop() (model.Chunk, bool) {
	q.EnsureBacklog()
	if len(q.backlog) == 0 {
		return model.Chunk{}, false
	}
	c := q.backlog[0]
	q.backlog = q.backlog[1:]
	return c, true
}

func (q *Queue) fill() {
	for len(q.slots) < q.capacity {
		c, ok := q.pop()
		if !ok {
			return
		}
		q.slots = append(q.slots, newSlot(c))
	}
	q.EnsureBacklog()
}

// Slots returns the visible slots in display order.
func (q *Queue) Slots() []*Slot {
	return q.slots
}

// Active returns the slot receiving input, or nil when exhausted.
func (q *Queue) Active() *Slot {
	if q.Exhausted() {
		return nil
	}
	return q.slots[q.active]
}

// ActiveIndex returns the display index of the active slot.
func (q *Queue) ActiveIndex() int {
	return q.active
}

// Completed returns the number of lines completed since the last reset.
func (q *Queue) Completed() int {
	return q.completed
}

// Backlog returns the number of chunks waiting outside the window.
func (q *Queue) Backlog() int {
	return len(q.backlog)
}

// Exhausted reports whether no line is left to type.
func (q *Queue) Exhausted() bool {
	return len(q.slots) == 0
}

// Advance marks slot i completed and moves the window. In slide mode the
// remaining slots shift up and the next chunk is appended; in replace mode
// the next chunk takes slot i's place and input moves to the following slot.
// It returns ErrExhausted when the window ends up empty.
func (q *Queue) Advance(i int) error {
	if i < 0 || i >= len(q.slots) {
		return fmt.Errorf("advance slot %d: %w", i, ErrSlotIndex)
	}
	q.slots[i].Completed = true
	q.completed++

	next, ok := q.pop()
	switch q.mode {
	case model.AdvanceReplace:
		if ok {
			q.slots[i] = newSlot(next)
			q.active = (i + 1) % len(q.slots)
		} else {
			q.slots = append(q.slots[:i], q.slots[i+1:]...)
			q.active = 0
			if i < len(q.slots) {
				q.active = i
			}
		}
	default:
		q.slots = append(q.slots[:i], q.slots[i+1:]...)
		if ok {
			q.slots = append(q.slots, newSlot(next))
		}
		q.active = 0
	}
	q.EnsureBacklog()

	if q.Exhausted() {
		return ErrExhausted
	}
	return nil
}

// Reset drops all slots and backlog and refills the window from the source.
func (q *Queue) Reset() {
	q.backlog = nil
	q.slots = nil
	q.active = 0
	q.completed = 0
	q.drained = false
	q.fill()
}
