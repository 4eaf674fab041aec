// Package core: the reclamation pass.
//
// Reclamation is the single deterministic point at which memory is freed. It
// runs under the store lock, only when the live guard count has dropped to
// zero, over the union of pending-dead sets from the guards released in the
// batch plus anything requeued by an earlier pass. Eligibility is rechecked
// here, not trusted from the mark: an edge is always eligible once dead; a
// node is eligible once dead and no incident edge survives as live. Nodes
// still referenced are requeued rather than dropped, so the pass is
// idempotent and never frees a slot twice.

package core

// reclaim runs the pass. Callers hold s.mu with state == guardIdle.
func (s *Store[N, E]) reclaim() {
	if len(s.pendingEdges) == 0 && len(s.pendingNodes) == 0 && !s.cfg.precise {
		return
	}

	// Edges first: they are always eligible, and clearing them out of the
	// adjacency lists is what makes their endpoints eligible below.
	for eh := range s.pendingEdges {
		es, ok := s.edges.resolve(eh.index, eh.gen)
		if !ok || es.alive {
			continue // already freed, or the handle never marked this slot
		}
		s.unlink(eh, es.data.source, es.data.target)
		s.edges.free(eh.index)
	}
	clear(s.pendingEdges)

	for nh := range s.pendingNodes {
		ns, ok := s.nodes.resolve(nh.index, nh.gen)
		if !ok || ns.alive {
			delete(s.pendingNodes, nh)
			continue
		}
		if s.hasLiveIncident(ns) {
			continue // still referenced: requeued for the next pass
		}
		s.dropRoot(nh)
		s.nodes.free(nh.index)
		delete(s.pendingNodes, nh)
	}

	if s.cfg.precise {
		s.sweepUnreachable()
	}
}

// hasLiveIncident reports whether any edge in the node's adjacency is still
// alive. Dead edges from this batch were freed (and unlinked) above, so a
// surviving entry here means a genuine outstanding reference.
func (s *Store[N, E]) hasLiveIncident(ns *slot[nodeRecord[N]]) bool {
	for _, eh := range ns.data.adjacency {
		if es, ok := s.edges.resolve(eh.index, eh.gen); ok && es.alive {
			return true
		}
	}
	return false
}

// unlink removes eh from the adjacency list of each endpoint, preserving the
// order of the remaining entries. Endpoints that were already freed are
// skipped; a self-loop names the same endpoint twice and is removed once.
func (s *Store[N, E]) unlink(eh EdgeHandle, endpoints ...NodeHandle) {
	for _, nh := range endpoints {
		ns, ok := s.nodes.resolve(nh.index, nh.gen)
		if !ok {
			continue
		}
		adj := ns.data.adjacency
		for i, x := range adj {
			if x == eh {
				ns.data.adjacency = append(adj[:i], adj[i+1:]...)
				break
			}
		}
	}
}

// dropRoot removes nh from the pinned root set if present.
func (s *Store[N, E]) dropRoot(nh NodeHandle) {
	for i, r := range s.roots {
		if r == nh {
			s.roots = append(s.roots[:i], s.roots[i+1:]...)
			return
		}
	}
}

// sweepUnreachable is the precise extension (WithPreciseReclaim): mark every
// node reachable from a live pinned root across live edges (following edge
// direction in directed stores), then retire every occupied node left
// unmarked — live detached nodes included — together with their remaining
// edges. This mirrors root-reachability cleanup: a node survives scopes only
// by being attached, directly or transitively, to the root set.
func (s *Store[N, E]) sweepUnreachable() {
	marked := make([]bool, s.nodes.len())
	var queue []NodeHandle
	for _, r := range s.roots {
		if ns, ok := s.nodes.resolve(r.index, r.gen); ok && ns.alive && !marked[r.index] {
			marked[r.index] = true
			queue = append(queue, r)
		}
	}
	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		ns, ok := s.nodes.resolve(h.index, h.gen)
		if !ok {
			continue
		}
		for _, eh := range ns.data.adjacency {
			es, ok := s.edges.resolve(eh.index, eh.gen)
			if !ok || !es.alive {
				continue
			}
			if s.cfg.directed && es.data.source != h {
				continue
			}
			other := es.data.target
			if other == h && es.data.source != h {
				other = es.data.source
			}
			if os, ok := s.nodes.resolve(other.index, other.gen); ok && os.alive && !marked[other.index] {
				marked[other.index] = true
				queue = append(queue, other)
			}
		}
	}

	for i := range s.nodes.slots {
		ns := &s.nodes.slots[i]
		if !ns.occupied || marked[i] {
			continue
		}
		nh := NodeHandle{index: uint32(i), gen: ns.gen}
		// Copy: unlink below edits the adjacency we are walking.
		adj := append([]EdgeHandle(nil), ns.data.adjacency...)
		for _, eh := range adj {
			es, ok := s.edges.resolve(eh.index, eh.gen)
			if !ok {
				continue
			}
			if es.alive {
				s.edges.markDead(eh.index)
			}
			s.unlink(eh, es.data.source, es.data.target)
			s.edges.free(eh.index)
		}
		if ns.alive {
			s.nodes.markDead(nh.index)
		}
		s.dropRoot(nh)
		s.nodes.free(nh.index)
		delete(s.pendingNodes, nh)
	}
}
