// Package core implements the guarded graph store: stable (index, generation)
// handles, shared/exclusive access anchors, positional cursors, and the
// deferred reclamation pass that frees tombstoned entries at guard release.
//
// This file declares the handle types, sentinel errors, and the Option /
// TraverseOption configuration surface.
//
// Errors:
//
//	ErrGuardBusy         - guard acquisition would violate exclusivity.
//	ErrStaleHandle       - handle generation no longer matches the slot.
//	ErrRequiresExclusive - mutation attempted under a shared anchor.
//	ErrDead              - read of a tombstoned entry under the Hide policy,
//	                       or mutation through a tombstoned entry.
//	ErrReleased          - operation through an anchor already released.
//	ErrNoPosition        - cursor operation with no current position.
package core

import "errors"

// Sentinel errors for guarded store operations. Match with errors.Is.
var (
	// ErrGuardBusy indicates acquisition would violate the exclusivity
	// invariant (one exclusive anchor, or any number of shared ones).
	// Recoverable: retry, or configure WithBlockingGuards.
	ErrGuardBusy = errors.New("core: guard busy")

	// ErrStaleHandle indicates the handle's generation does not match the
	// live generation at its slot: the entry it named has been reclaimed.
	ErrStaleHandle = errors.New("core: stale handle")

	// ErrRequiresExclusive indicates a mutation was attempted under a
	// shared anchor. Programmer error, surfaced immediately.
	ErrRequiresExclusive = errors.New("core: operation requires exclusive anchor")

	// ErrDead indicates an access to a tombstoned entry that the configured
	// policy forbids (reads under Hide; writes always).
	ErrDead = errors.New("core: entry is tombstoned")

	// ErrReleased indicates the anchor backing this operation has already
	// been released; cursors must not outlive their anchor.
	ErrReleased = errors.New("core: anchor already released")

	// ErrNoPosition indicates the cursor position is undefined, either never
	// set or invalidated by DeleteNode. MoveTo before further use.
	ErrNoPosition = errors.New("core: cursor has no position")
)

// NodeHandle is the stable identity of a node: a slot index plus the
// generation observed at allocation. Handles are comparable; two handles are
// equal only if both fields match. The zero NodeHandle never resolves
// (generations start at 1).
type NodeHandle struct {
	index uint32
	gen   uint32
}

// EdgeHandle is the stable identity of an edge, with the same generation
// discipline as NodeHandle.
type EdgeHandle struct {
	index uint32
	gen   uint32
}

// Endpoints names the two nodes an edge connects, in source→target order.
// For undirected stores the order records insertion, not traversal.
type Endpoints struct {
	Source NodeHandle
	Target NodeHandle
}

// config collects store-level policy switches resolved at construction.
type config struct {
	directed         bool // edge directionality: true = Directed
	exposeTombstones bool // tombstone read policy: true = Expose
	blocking         bool // guard contention policy: true = Block
	precise          bool // reclamation: also sweep nodes unreachable from roots
}

// Option configures a Store before creation.
type Option func(*config)

// WithDirected sets the edge directionality for the store
// (true = directed, false = undirected). Default: directed.
func WithDirected(directed bool) Option {
	return func(c *config) { c.directed = directed }
}

// WithTombstoneReads selects the Expose tombstone policy: reads of entries
// marked dead but not yet reclaimed return their payload instead of ErrDead.
func WithTombstoneReads() Option {
	return func(c *config) { c.exposeTombstones = true }
}

// WithBlockingGuards selects the Block contention policy: Shared and
// Exclusive wait until the exclusivity condition is satisfiable instead of
// failing with ErrGuardBusy. The policy is fixed per store; the two modes
// are never mixed.
func WithBlockingGuards() Option {
	return func(c *config) { c.blocking = true }
}

// WithPreciseReclaim extends the reclamation pass with a mark-sweep from the
// pinned root set: live nodes unreachable from any root are retired together
// with their incident edges. This trades the near-constant local pass for a
// traversal proportional to the reachable graph.
func WithPreciseReclaim() Option {
	return func(c *config) { c.precise = true }
}

// traverseConfig collects per-call traversal switches.
type traverseConfig struct {
	withTombstones bool
}

// TraverseOption configures a single Neighbors or Edges traversal.
type TraverseOption func(*traverseConfig)

// WithTombstones includes edges marked dead but not yet reclaimed in the
// traversal. By default tombstoned edges are skipped.
func WithTombstones() TraverseOption {
	return func(tc *traverseConfig) { tc.withTombstones = true }
}
