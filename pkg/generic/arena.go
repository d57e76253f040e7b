package generic

import "sync/atomic"

// Handle addresses a slot in an Arena. Generations make handles to removed
// values stale instead of aliasing whatever reuses the slot. A handle only
// resolves in the arena that issued it. The zero Handle never refers to a
// live value.
type Handle struct {
	arena uint32
	index uint32
	gen   uint32
}

func (h Handle) Index() uint32      { return h.index }
func (h Handle) Generation() uint32 { return h.gen }
func (h Handle) IsZero() bool       { return h.gen == 0 }

type arenaSlot[T any] struct {
	value T
	gen   uint32
	live  bool
}

// Arena stores values in a slice and hands out generational handles.
// It is not safe for concurrent use.
type Arena[T any] struct {
	id    uint32
	slots []arenaSlot[T]
	free  []uint32
	count int
}

var arenaIDs atomic.Uint32

func NewArena[T any](capacity int) *Arena[T] {
	return &Arena[T]{id: arenaIDs.Add(1), slots: make([]arenaSlot[T], 0, capacity)}
}

// Insert stores value and returns its handle. Freed slots are reused with a
// bumped generation.
func (a *Arena[T]) Insert(value T) Handle {
	a.count++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		slot := &a.slots[idx]
		slot.value = value
		slot.live = true
		return Handle{arena: a.id, index: idx, gen: slot.gen}
	}
	a.slots = append(a.slots, arenaSlot[T]{value: value, gen: 1, live: true})
	return Handle{arena: a.id, index: uint32(len(a.slots) - 1), gen: 1}
}

func (a *Arena[T]) Get(h Handle) (T, bool) {
	if !a.Contains(h) {
		var zero T
		return zero, false
	}
	return a.slots[h.index].value, true
}

func (a *Arena[T]) Contains(h Handle) bool {
	if h.gen == 0 || h.arena != a.id || int(h.index) >= len(a.slots) {
		return false
	}
	slot := &a.slots[h.index]
	return slot.live && slot.gen == h.gen
}

// Remove frees the slot behind h and returns the value it held.
func (a *Arena[T]) Remove(h Handle) (T, bool) {
	var zero T
	if !a.Contains(h) {
		return zero, false
	}
	slot := &a.slots[h.index]
	value := slot.value
	slot.value = zero
	slot.live = false
	slot.gen++
	if slot.gen == 0 {
		// wrapped: retire the slot rather than hand out a zero generation
		a.count--
		return value, true
	}
	a.free = append(a.free, h.index)
	a.count--
	return value, true
}

func (a *Arena[T]) Len() int {
	return a.count
}
