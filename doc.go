// Package anchorgraph is a graph container for cyclic, self-referential
// structures that need structural mutation without a tracing garbage
// collector and without reference counting on every access.
//
// The trick: every read and write of graph contents goes through a scoped
// access guard (an "anchor"), and physical deletion of removed entries is
// deferred to the moment the last guard is released — a deterministic safe
// point at which no outstanding cursor can be examining the slot being freed.
//
// Everything is organized under two subpackages:
//
//	core/  — Store, Anchor (shared/exclusive guards), Cursor, handle tables
//	         and the reclamation pass that runs at guard release
//	build/ — deterministic topology constructors (Path, Cycle, Star,
//	         Complete) expressed through the guarded API
//
// Quick sketch:
//
//	s := core.New[string, int]()
//	_ = s.Update(func(an *core.Anchor[string, int]) error {
//		cur := an.Cursor()
//		a, _ := cur.AddNode("a")
//		b, _ := cur.AddNode("b")
//		_ = cur.MoveTo(a)
//		_, _ = cur.AddEdge(b, 1)
//		return an.PinRoot(a)
//	}) // guard released here; tombstoned entries are reclaimed
//
// Handles are (index, generation) pairs: cheap, copyable, and safe to keep
// across scopes. A handle to a reclaimed slot goes stale and every operation
// on it reports core.ErrStaleHandle instead of touching reused memory.
package anchorgraph
