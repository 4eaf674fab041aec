// Package core: the Cursor — positional traversal and mutation.
//
// A Cursor is a transient accessor bound to a live Anchor. It holds a
// position (a node handle, or none) and performs every read, navigation, and
// mutation operation against it. Handles are store-global, so MoveTo accepts
// any resolvable handle without a reachability requirement. Cursors never
// outlive their anchor: after Release every operation fails ErrReleased.

package core

import "iter"

// Cursor is a movable accessor over one Store, bound to the Anchor that
// created it. The zero position (fresh from Anchor.Cursor, or after
// DeleteNode) only supports MoveTo and AddNode.
type Cursor[N, E any] struct {
	anchor *Anchor[N, E]
	pos    NodeHandle
	hasPos bool
}

// At returns the current position and whether one is set.
func (c *Cursor[N, E]) At() (NodeHandle, bool) {
	return c.pos, c.hasPos
}

// MoveTo repositions the cursor at h. No reachability from the previous
// position is required. Returns ErrStaleHandle if h does not resolve;
// tombstoned nodes are valid positions.
func (c *Cursor[N, E]) MoveTo(h NodeHandle) error {
	if c.anchor.released {
		return ErrReleased
	}
	if _, ok := c.store().nodes.resolve(h.index, h.gen); !ok {
		return ErrStaleHandle
	}
	c.pos = h
	c.hasPos = true
	return nil
}

// Alive reports whether the current node is live (not tombstoned).
func (c *Cursor[N, E]) Alive() (bool, error) {
	s, err := c.node()
	if err != nil {
		return false, err
	}
	return s.alive, nil
}

// Read returns the payload of the current node. Under the default Hide
// policy a tombstoned node reads as ErrDead; under WithTombstoneReads the
// payload is returned until the slot is physically reclaimed.
func (c *Cursor[N, E]) Read() (N, error) {
	var zero N
	s, err := c.node()
	if err != nil {
		return zero, err
	}
	if !s.alive && !c.store().cfg.exposeTombstones {
		return zero, ErrDead
	}
	return s.data.payload, nil
}

// Write replaces the payload of the current node. Requires an exclusive
// anchor; writing a tombstoned node fails ErrDead regardless of policy.
func (c *Cursor[N, E]) Write(v N) error {
	s, err := c.node()
	if err != nil {
		return err
	}
	if !c.anchor.exclusive {
		return ErrRequiresExclusive
	}
	if !s.alive {
		return ErrDead
	}
	s.data.payload = v
	return nil
}

// AddNode allocates a new detached node and returns its handle. The cursor
// does not move; attach the node via AddEdge or PinRoot before the scope
// ends if it must survive precise reclamation. Requires an exclusive anchor.
func (c *Cursor[N, E]) AddNode(payload N) (NodeHandle, error) {
	if c.anchor.released {
		return NodeHandle{}, ErrReleased
	}
	if !c.anchor.exclusive {
		return NodeHandle{}, ErrRequiresExclusive
	}
	index, gen := c.store().nodes.alloc(nodeRecord[N]{payload: payload})
	return NodeHandle{index: index, gen: gen}, nil
}

// AddEdge connects the current node to target and returns the new edge's
// handle. The edge is appended to both endpoints' adjacency (insertion
// order); direction is a property of the store and applies at traversal
// time. Requires an exclusive anchor and a live current node; fails
// ErrStaleHandle if target does not resolve, ErrDead if either endpoint is
// tombstoned.
func (c *Cursor[N, E]) AddEdge(target NodeHandle, payload E) (EdgeHandle, error) {
	src, err := c.node()
	if err != nil {
		return EdgeHandle{}, err
	}
	if !c.anchor.exclusive {
		return EdgeHandle{}, ErrRequiresExclusive
	}
	dst, ok := c.store().nodes.resolve(target.index, target.gen)
	if !ok {
		return EdgeHandle{}, ErrStaleHandle
	}
	if !src.alive || !dst.alive {
		return EdgeHandle{}, ErrDead
	}

	index, gen := c.store().edges.alloc(edgeRecord[E]{
		payload: payload,
		source:  c.pos,
		target:  target,
	})
	eh := EdgeHandle{index: index, gen: gen}
	src.data.adjacency = append(src.data.adjacency, eh)
	if target != c.pos {
		dst.data.adjacency = append(dst.data.adjacency, eh)
	}
	return eh, nil
}

// RemoveEdge marks the edge dead and queues it for reclamation at guard
// release. The adjacency ordering of still-alive edges is untouched; the
// tombstone stays in place (and readable, per policy) until the pass runs.
// Removing an already-dead edge is a no-op. Requires an exclusive anchor.
func (c *Cursor[N, E]) RemoveEdge(h EdgeHandle) error {
	if c.anchor.released {
		return ErrReleased
	}
	if !c.anchor.exclusive {
		return ErrRequiresExclusive
	}
	s, ok := c.store().edges.resolve(h.index, h.gen)
	if !ok {
		return ErrStaleHandle
	}
	if !s.alive {
		return nil
	}
	c.store().edges.markDead(h.index)
	c.anchor.pendingEdges[h] = struct{}{}
	return nil
}

// DeleteNode marks the current node dead, cascades the dead mark to every
// still-alive incident edge, and queues all of them for reclamation. The
// cursor position becomes undefined; MoveTo before further positional use.
// Requires an exclusive anchor.
func (c *Cursor[N, E]) DeleteNode() error {
	s, err := c.node()
	if err != nil {
		return err
	}
	if !c.anchor.exclusive {
		return ErrRequiresExclusive
	}
	if s.alive {
		c.store().nodes.markDead(c.pos.index)
		c.anchor.pendingNodes[c.pos] = struct{}{}
		for _, eh := range s.data.adjacency {
			es, ok := c.store().edges.resolve(eh.index, eh.gen)
			if !ok || !es.alive {
				continue
			}
			c.store().edges.markDead(eh.index)
			c.anchor.pendingEdges[eh] = struct{}{}
		}
	}
	c.hasPos = false
	return nil
}

// Neighbors yields the node handles adjacent to the current position, in
// adjacency insertion order. In a directed store only outgoing edges are
// followed; in an undirected store the opposite endpoint of every incident
// edge is yielded (a self-loop yields the node itself once per edge).
// Tombstoned edges are skipped unless WithTombstones is given. The sequence
// is lazy, finite, and restartable; with no position or a released anchor it
// is empty.
func (c *Cursor[N, E]) Neighbors(opts ...TraverseOption) iter.Seq[NodeHandle] {
	edges := c.Edges(opts...)
	return func(yield func(NodeHandle) bool) {
		for _, nh := range edges {
			if !yield(nh) {
				return
			}
		}
	}
}

// Edges yields (edge handle, neighbor node handle) pairs for the current
// position, with the same ordering, direction, and tombstone rules as
// Neighbors.
func (c *Cursor[N, E]) Edges(opts ...TraverseOption) iter.Seq2[EdgeHandle, NodeHandle] {
	var tc traverseConfig
	for _, opt := range opts {
		opt(&tc)
	}
	return func(yield func(EdgeHandle, NodeHandle) bool) {
		if c.anchor.released || !c.hasPos {
			return
		}
		// Snapshot the position: repositioning the cursor from inside the
		// loop body must not redirect the walk already in progress.
		pos := c.pos
		s, ok := c.store().nodes.resolve(pos.index, pos.gen)
		if !ok {
			return
		}
		for _, eh := range s.data.adjacency {
			es, ok := c.store().edges.resolve(eh.index, eh.gen)
			if !ok {
				continue
			}
			if !es.alive && !tc.withTombstones {
				continue
			}
			if c.store().cfg.directed && es.data.source != pos {
				continue // incoming edge of a directed store
			}
			neighbor := es.data.target
			if neighbor == pos && es.data.source != pos {
				neighbor = es.data.source
			}
			if !yield(eh, neighbor) {
				return
			}
		}
	}
}

// Edge returns the endpoints of h. Tombstoned edges are readable only under
// WithTombstoneReads, mirroring payload reads.
func (c *Cursor[N, E]) Edge(h EdgeHandle) (Endpoints, error) {
	s, err := c.edge(h)
	if err != nil {
		return Endpoints{}, err
	}
	if !s.alive && !c.store().cfg.exposeTombstones {
		return Endpoints{}, ErrDead
	}
	return Endpoints{Source: s.data.source, Target: s.data.target}, nil
}

// ReadEdge returns the payload of edge h, under the same tombstone policy
// as node reads.
func (c *Cursor[N, E]) ReadEdge(h EdgeHandle) (E, error) {
	var zero E
	s, err := c.edge(h)
	if err != nil {
		return zero, err
	}
	if !s.alive && !c.store().cfg.exposeTombstones {
		return zero, ErrDead
	}
	return s.data.payload, nil
}

// WriteEdge replaces the payload of edge h. Requires an exclusive anchor;
// tombstoned edges fail ErrDead regardless of policy.
func (c *Cursor[N, E]) WriteEdge(h EdgeHandle, v E) error {
	s, err := c.edge(h)
	if err != nil {
		return err
	}
	if !c.anchor.exclusive {
		return ErrRequiresExclusive
	}
	if !s.alive {
		return ErrDead
	}
	s.data.payload = v
	return nil
}

// Internal helpers:
////////////////////

func (c *Cursor[N, E]) store() *Store[N, E] {
	return c.anchor.store
}

// node resolves the current position after the released/position checks
// shared by every positional operation.
func (c *Cursor[N, E]) node() (*slot[nodeRecord[N]], error) {
	if c.anchor.released {
		return nil, ErrReleased
	}
	if !c.hasPos {
		return nil, ErrNoPosition
	}
	s, ok := c.store().nodes.resolve(c.pos.index, c.pos.gen)
	if !ok {
		return nil, ErrStaleHandle
	}
	return s, nil
}

// edge resolves an edge handle after the released check.
func (c *Cursor[N, E]) edge(h EdgeHandle) (*slot[edgeRecord[E]], error) {
	if c.anchor.released {
		return nil, ErrReleased
	}
	s, ok := c.store().edges.resolve(h.index, h.gen)
	if !ok {
		return nil, ErrStaleHandle
	}
	return s, nil
}
