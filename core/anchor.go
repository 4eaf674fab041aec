// Package core: the Anchor — the scope-bound access guard.
//
// An Anchor is the only way to reach graph contents. While one is held the
// occupied-slot set never shrinks: entries may be tombstoned but are not
// physically removed until the last anchor of the scope is released, so a
// handle captured mid-scope stays dereferenceable for the rest of the scope.
// Shared anchors permit traversal and reads; exclusive anchors additionally
// permit adding entries, writing payloads, marking entries dead, and editing
// the root set.

package core

import "iter"

// Anchor is a scope-bound guard over a Store. Obtain one via Shared,
// Exclusive, View, or Update; never construct it directly. An Anchor is
// intended for a single goroutine and must be released exactly once —
// Release is idempotent, and the View/Update helpers release automatically.
type Anchor[N, E any] struct {
	store     *Store[N, E]
	exclusive bool
	released  bool

	// Handles marked dead under this anchor, folded into the store's
	// pending sets at release.
	pendingNodes map[NodeHandle]struct{}
	pendingEdges map[EdgeHandle]struct{}
}

// Exclusive reports whether this anchor permits mutation.
func (a *Anchor[N, E]) Exclusive() bool {
	return a.exclusive
}

// Release ends the anchor's scope. The first call retires the guard and, if
// it was the last one live, triggers the reclamation pass; further calls are
// no-ops. Releasing early is always safe and is the cancellation primitive:
// cursors bound to the anchor fail with ErrReleased afterwards.
func (a *Anchor[N, E]) Release() {
	if a.released {
		return
	}
	a.released = true
	a.store.release(a)
}

// Cursor returns a cursor with no position. Position it with MoveTo, or use
// it directly for AddNode, which needs no position.
func (a *Anchor[N, E]) Cursor() *Cursor[N, E] {
	return &Cursor[N, E]{anchor: a}
}

// CursorAt returns a cursor positioned at h.
// Returns ErrStaleHandle if h does not resolve, ErrReleased after Release.
// Tombstoned nodes are valid positions; read policy applies at Read time.
func (a *Anchor[N, E]) CursorAt(h NodeHandle) (*Cursor[N, E], error) {
	if a.released {
		return nil, ErrReleased
	}
	if _, ok := a.store.nodes.resolve(h.index, h.gen); !ok {
		return nil, ErrStaleHandle
	}
	return &Cursor[N, E]{anchor: a, pos: h, hasPos: true}, nil
}

// CursorAtRoot returns a cursor positioned at the first live pinned root in
// insertion order. Returns ErrStaleHandle when no live root exists.
func (a *Anchor[N, E]) CursorAtRoot() (*Cursor[N, E], error) {
	if a.released {
		return nil, ErrReleased
	}
	for _, h := range a.store.roots {
		if s, ok := a.store.nodes.resolve(h.index, h.gen); ok && s.alive {
			return &Cursor[N, E]{anchor: a, pos: h, hasPos: true}, nil
		}
	}
	return nil, ErrStaleHandle
}

// PinRoot adds h to the root set. Roots are where CursorAtRoot starts and
// where precise reclamation marks from. Pinning an already-pinned handle is
// a no-op. Requires an exclusive anchor; fails ErrStaleHandle if h does not
// resolve, ErrDead if it is tombstoned.
func (a *Anchor[N, E]) PinRoot(h NodeHandle) error {
	if a.released {
		return ErrReleased
	}
	if !a.exclusive {
		return ErrRequiresExclusive
	}
	s, ok := a.store.nodes.resolve(h.index, h.gen)
	if !ok {
		return ErrStaleHandle
	}
	if !s.alive {
		return ErrDead
	}
	for _, r := range a.store.roots {
		if r == h {
			return nil
		}
	}
	a.store.roots = append(a.store.roots, h)
	return nil
}

// UnpinRoot removes h from the root set; removing a handle that is not
// pinned is a no-op. Requires an exclusive anchor.
func (a *Anchor[N, E]) UnpinRoot(h NodeHandle) error {
	if a.released {
		return ErrReleased
	}
	if !a.exclusive {
		return ErrRequiresExclusive
	}
	for i, r := range a.store.roots {
		if r == h {
			a.store.roots = append(a.store.roots[:i], a.store.roots[i+1:]...)
			return nil
		}
	}
	return nil
}

// Roots yields the pinned roots that still resolve to live nodes, in pin
// order. The sequence is restartable.
func (a *Anchor[N, E]) Roots() iter.Seq[NodeHandle] {
	return func(yield func(NodeHandle) bool) {
		if a.released {
			return
		}
		for _, h := range a.store.roots {
			if s, ok := a.store.nodes.resolve(h.index, h.gen); ok && s.alive {
				if !yield(h) {
					return
				}
			}
		}
	}
}

// Resolve reports whether h is dereferenceable: its generation matches the
// slot's current generation and the slot is occupied. Tombstoned nodes
// resolve; reclaimed ones report ErrStaleHandle.
func (a *Anchor[N, E]) Resolve(h NodeHandle) error {
	if a.released {
		return ErrReleased
	}
	if _, ok := a.store.nodes.resolve(h.index, h.gen); !ok {
		return ErrStaleHandle
	}
	return nil
}

// ResolveEdge is Resolve for edge handles.
func (a *Anchor[N, E]) ResolveEdge(h EdgeHandle) error {
	if a.released {
		return ErrReleased
	}
	if _, ok := a.store.edges.resolve(h.index, h.gen); !ok {
		return ErrStaleHandle
	}
	return nil
}

// NodeCount returns the number of live (non-tombstoned) nodes. O(1).
func (a *Anchor[N, E]) NodeCount() int {
	return a.store.nodes.live
}

// EdgeCount returns the number of live (non-tombstoned) edges. O(1).
func (a *Anchor[N, E]) EdgeCount() int {
	return a.store.edges.live
}

// Nodes yields every live node handle in slot order. The sequence is lazy,
// finite, and restartable.
func (a *Anchor[N, E]) Nodes() iter.Seq[NodeHandle] {
	return func(yield func(NodeHandle) bool) {
		if a.released {
			return
		}
		for i := range a.store.nodes.slots {
			s := &a.store.nodes.slots[i]
			if s.occupied && s.alive {
				if !yield(NodeHandle{index: uint32(i), gen: s.gen}) {
					return
				}
			}
		}
	}
}
