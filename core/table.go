// Package core: slot table underlying node and edge storage.
//
// A table maps slot indices to entries and owns the generation counters that
// invalidate stale handles. Slots are either occupied (live or tombstoned)
// or free; free slots form an intrusive singly-linked free list threaded
// through nextFree, so reclaimed storage is reused before the table grows.

package core

// noFree terminates the intrusive free list.
const noFree = ^uint32(0)

// firstGen is the generation assigned to a freshly grown slot. Starting at 1
// keeps the zero handle permanently unresolvable.
const firstGen uint32 = 1

// slot holds one entry plus its lifecycle bookkeeping.
type slot[T any] struct {
	gen      uint32 // current generation; handles must match to resolve
	nextFree uint32 // next index in the free list, valid when !occupied
	occupied bool   // slot holds an entry (alive or tombstoned)
	alive    bool   // entry not marked dead
	data     T
}

// table is a growable arena of slots with generation-checked access.
// Not safe for concurrent use; callers serialize through the guard protocol.
type table[T any] struct {
	slots    []slot[T]
	freeHead uint32
	live     int // occupied && alive
}

func newTable[T any]() table[T] {
	return table[T]{freeHead: noFree}
}

// alloc places data into a free slot (reusing the free list head when
// available, growing otherwise) and returns the slot index and generation.
// Complexity: O(1) amortized.
func (t *table[T]) alloc(data T) (index, gen uint32) {
	t.live++
	if t.freeHead != noFree {
		index = t.freeHead
		s := &t.slots[index]
		t.freeHead = s.nextFree
		s.occupied = true
		s.alive = true
		s.data = data
		return index, s.gen
	}
	t.slots = append(t.slots, slot[T]{gen: firstGen, occupied: true, alive: true, data: data})
	return uint32(len(t.slots) - 1), firstGen
}

// resolve returns the slot for (index, gen) if it is occupied and the
// generation matches. Tombstoned slots resolve; freed slots do not.
func (t *table[T]) resolve(index, gen uint32) (*slot[T], bool) {
	if int(index) >= len(t.slots) {
		return nil, false
	}
	s := &t.slots[index]
	if !s.occupied || s.gen != gen {
		return nil, false
	}
	return s, true
}

// markDead tombstones an occupied slot. The slot stays resolvable until
// free; callers must not mark a slot twice (check alive first).
func (t *table[T]) markDead(index uint32) {
	t.slots[index].alive = false
	t.live--
}

// free resets an occupied slot, bumps its generation so every outstanding
// handle to it goes stale, and links it into the free list for reuse.
func (t *table[T]) free(index uint32) {
	s := &t.slots[index]
	var zero T
	s.data = zero
	s.occupied = false
	s.alive = false
	s.gen++
	s.nextFree = t.freeHead
	t.freeHead = index
}

// len reports the total slot count, occupied or not.
func (t *table[T]) len() int {
	return len(t.slots)
}

// nodeRecord is the per-node entry: payload plus the incidence list.
// Adjacency records every incident edge in insertion order regardless of
// directionality; direction is a property of the edge and is applied at
// traversal time. Keeping incoming edges in the list is what lets the
// reclamation pass prove a dead node has no surviving references.
type nodeRecord[N any] struct {
	payload   N
	adjacency []EdgeHandle
}

// edgeRecord is the per-edge entry: payload plus both endpoints.
type edgeRecord[E any] struct {
	payload E
	source  NodeHandle
	target  NodeHandle
}
