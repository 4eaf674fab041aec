// Package core provides the guarded graph store at the heart of anchorgraph:
// an arena of generation-checked slots behind a scoped access protocol, with
// deterministic deferred reclamation.
//
// The model, leaf to root:
//
//   - Handles — NodeHandle/EdgeHandle are stable (index, generation) pairs.
//     Identity is independent of storage location; a handle whose generation
//     no longer matches its slot is stale and every operation on it fails
//     with ErrStaleHandle instead of touching reused memory.
//   - Store — sole owner of all node and edge slots. Exposes no direct
//     accessors: acquisition of an Anchor is the only doorway in.
//   - Anchor — the scope-bound guard, shared (read-only) or exclusive
//     (read-write). At most one exclusive anchor, or any number of shared
//     ones, may be live; never both. While any anchor is held, the
//     occupied-slot set never shrinks.
//   - Cursor — a positional accessor bound to a live anchor; performs all
//     reads, traversal, and mutation at its current node handle.
//   - Reclamation — deletion only marks entries dead (tombstones). Physical
//     freeing happens in one pass when the last anchor of a scope is
//     released: a safe point at which no cursor can be examining the slot
//     being freed. Freed slots re-enter a free list with an incremented
//     generation, so stale handles never resolve to recycled entries.
//
// Configuration Options (Option):
//
//	– WithDirected(directed bool)
//	    Edge directionality for the store (default directed). Undirected
//	    stores traverse every incident edge from both endpoints.
//
//	– WithTombstoneReads()
//	    Expose policy: reads of tombstoned entries return the payload until
//	    reclamation instead of ErrDead. Writes to tombstones always fail.
//
//	– WithBlockingGuards()
//	    Block policy: Shared/Exclusive wait for admissibility instead of
//	    failing with ErrGuardBusy. Fixed per store, never mixed.
//
//	– WithPreciseReclaim()
//	    Adds a mark-sweep from the pinned root set to every reclamation
//	    pass; live nodes unreachable from the roots are retired too.
//
// Acquisition discipline:
//
//	// Scoped (release guaranteed by defer) — preferred
//	err := s.Update(func(a *core.Anchor[N, E]) error { ... })
//	err := s.View(func(a *core.Anchor[N, E]) error { ... })
//
//	// Manual — Release exactly once; extra calls are no-ops
//	a, err := s.Exclusive()
//	defer a.Release()
//
// Cursor operations (mutations require an exclusive anchor):
//
//	MoveTo(h) / At() / Alive()                  // positioning
//	Read() / Write(v)                           // node payload
//	Neighbors(...) / Edges(...)                 // lazy, restartable, insertion order
//	AddNode(p) / AddEdge(target, p)             // allocation
//	RemoveEdge(h) / DeleteNode()                // tombstoning
//	Edge(h) / ReadEdge(h) / WriteEdge(h, v)     // edge payload and endpoints
//
// All failures are sentinel errors local to the failing operation; no error
// corrupts store state, and there is no fatal category. ErrGuardBusy and
// ErrStaleHandle are routine outcomes of contended or long-lived handle use,
// not exceptional conditions.
package core
