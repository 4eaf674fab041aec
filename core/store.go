// Package core: Store construction and the guard state machine.
//
// The Store is the sole long-lived owner of graph data. It exposes no direct
// node or edge accessors: every access goes through an Anchor obtained from
// Shared or Exclusive, and the exclusivity invariant — one exclusive anchor,
// or any number of shared ones, never both — is enforced here as an explicit
// runtime state machine (idle | shared(n) | exclusive).

package core

import "sync"

// guardState tags the store's acquisition state.
type guardState uint8

const (
	guardIdle guardState = iota
	guardShared
	guardExclusive
)

// Store owns all node and edge slots of one logical graph.
//
// Acquisition policy is fixed at construction: by default Shared/Exclusive
// fail immediately with ErrGuardBusy when the exclusivity invariant would be
// violated; with WithBlockingGuards they wait instead. Anchor and Cursor
// operations themselves never block and are meant for use by the goroutine
// holding the anchor.
type Store[N, E any] struct {
	mu   sync.Mutex
	cond *sync.Cond // non-nil only under the Block policy

	state       guardState
	sharedCount int

	cfg config

	nodes table[nodeRecord[N]]
	edges table[edgeRecord[E]]

	// roots is the caller-pinned root set, insertion-ordered. CursorAtRoot
	// starts here; precise reclamation marks from here.
	roots []NodeHandle

	// pendingNodes/pendingEdges accumulate dead-marked handles from released
	// anchors, plus nodes requeued by an earlier pass that found them still
	// referenced by a live edge.
	pendingNodes map[NodeHandle]struct{}
	pendingEdges map[EdgeHandle]struct{}
}

// New creates an empty Store with the given policy options.
// Defaults: directed edges, Hide tombstone reads, Fail contention policy,
// local reclamation only.
func New[N, E any](opts ...Option) *Store[N, E] {
	s := &Store[N, E]{
		cfg:          config{directed: true},
		nodes:        newTable[nodeRecord[N]](),
		edges:        newTable[edgeRecord[E]](),
		pendingNodes: make(map[NodeHandle]struct{}),
		pendingEdges: make(map[EdgeHandle]struct{}),
	}
	for _, opt := range opts {
		opt(&s.cfg)
	}
	if s.cfg.blocking {
		s.cond = sync.NewCond(&s.mu)
	}
	return s
}

// Shared acquires a read-only anchor. Fails with ErrGuardBusy while an
// exclusive anchor is live (or blocks, per policy).
func (s *Store[N, E]) Shared() (*Anchor[N, E], error) {
	return s.acquire(false)
}

// Exclusive acquires a read-write anchor. Fails with ErrGuardBusy while any
// anchor is live (or blocks, per policy).
func (s *Store[N, E]) Exclusive() (*Anchor[N, E], error) {
	return s.acquire(true)
}

// View runs fn under a shared anchor with guaranteed release on return,
// including early returns and panics. This is the scoped-acquisition form;
// prefer it over manual Shared/Release pairs.
func (s *Store[N, E]) View(fn func(*Anchor[N, E]) error) error {
	a, err := s.Shared()
	if err != nil {
		return err
	}
	defer a.Release()
	return fn(a)
}

// Update runs fn under an exclusive anchor with guaranteed release on
// return. Release triggers the reclamation pass over everything fn marked
// dead, so by the time Update returns the graph is physically compacted.
func (s *Store[N, E]) Update(fn func(*Anchor[N, E]) error) error {
	a, err := s.Exclusive()
	if err != nil {
		return err
	}
	defer a.Release()
	return fn(a)
}

// acquire admits one guard according to the exclusivity invariant.
func (s *Store[N, E]) acquire(exclusive bool) (*Anchor[N, E], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for !s.admissible(exclusive) {
		if s.cond == nil {
			return nil, ErrGuardBusy
		}
		s.cond.Wait()
	}
	if exclusive {
		s.state = guardExclusive
	} else {
		s.state = guardShared
		s.sharedCount++
	}
	return &Anchor[N, E]{
		store:        s,
		exclusive:    exclusive,
		pendingNodes: make(map[NodeHandle]struct{}),
		pendingEdges: make(map[EdgeHandle]struct{}),
	}, nil
}

// admissible reports whether a guard of the requested kind may be admitted
// in the current state. Callers hold s.mu.
func (s *Store[N, E]) admissible(exclusive bool) bool {
	switch s.state {
	case guardIdle:
		return true
	case guardShared:
		return !exclusive
	default: // guardExclusive
		return false
	}
}

// release retires one anchor, folds its dead-marked handles into the
// store-level pending sets, and — when the live guard count drops to zero —
// runs the reclamation pass over the accumulated batch. Guard release is a
// total barrier: s.mu orders every mutation made under the anchor before any
// subsequently admitted guard.
func (s *Store[N, E]) release(a *Anchor[N, E]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for nh := range a.pendingNodes {
		s.pendingNodes[nh] = struct{}{}
	}
	for eh := range a.pendingEdges {
		s.pendingEdges[eh] = struct{}{}
	}

	if a.exclusive {
		s.state = guardIdle
	} else {
		s.sharedCount--
		if s.sharedCount == 0 {
			s.state = guardIdle
		}
	}
	if s.state == guardIdle {
		s.reclaim()
	}
	if s.cond != nil {
		s.cond.Broadcast()
	}
}
