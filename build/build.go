// Package build: constructor implementations.
//
// Contract shared by all constructors:
//   - Size validation first; ErrTooFewNodes (wrapped with the method name)
//     before any mutation.
//   - All mutation inside one Update scope: either the whole topology lands
//     and is attached, or nothing does.
//   - Node i gets payload nodeFn(i); the k-th emitted edge gets payload
//     edgeFn(k). Emission order is documented per constructor.
//   - The first created node is pinned as a root, so the topology survives
//     precise reclamation and is reachable via CursorAtRoot.

package build

import (
	"fmt"

	"github.com/veligost/anchorgraph/core"
)

// Method tags for wrapped validation errors.
const (
	methodPath     = "Path"
	methodCycle    = "Cycle"
	methodStar     = "Star"
	methodComplete = "Complete"

	minPathNodes     = 2
	minCycleNodes    = 3
	minStarLeaves    = 1
	minCompleteNodes = 2
)

// NodeFn produces the payload for the node at creation index i.
type NodeFn[N any] func(i int) N

// EdgeFn produces the payload for the k-th emitted edge.
type EdgeFn[E any] func(k int) E

// Path builds the simple path P_n: nodes 0..n-1 with edges (i-1)→i emitted
// for i = 1..n-1. Returns handles in creation order.
// Complexity: O(n).
func Path[N, E any](s *core.Store[N, E], n int, nodeFn NodeFn[N], edgeFn EdgeFn[E]) ([]core.NodeHandle, error) {
	if n < minPathNodes {
		return nil, fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewNodes)
	}
	return construct(s, n, nodeFn, func(link linker[E]) error {
		for i := 1; i < n; i++ {
			if err := link(i-1, i, edgeFn(i-1)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Cycle builds the cycle C_n: the path edges of P_n plus a closing edge
// (n-1)→0 emitted last.
// Complexity: O(n).
func Cycle[N, E any](s *core.Store[N, E], n int, nodeFn NodeFn[N], edgeFn EdgeFn[E]) ([]core.NodeHandle, error) {
	if n < minCycleNodes {
		return nil, fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewNodes)
	}
	return construct(s, n, nodeFn, func(link linker[E]) error {
		for i := 1; i < n; i++ {
			if err := link(i-1, i, edgeFn(i-1)); err != nil {
				return err
			}
		}
		return link(n-1, 0, edgeFn(n-1))
	})
}

// Star builds the star S_leaves: node 0 is the center, edges 0→i emitted for
// i = 1..leaves in ascending order.
// Complexity: O(leaves).
func Star[N, E any](s *core.Store[N, E], leaves int, nodeFn NodeFn[N], edgeFn EdgeFn[E]) ([]core.NodeHandle, error) {
	if leaves < minStarLeaves {
		return nil, fmt.Errorf("%s: leaves=%d < min=%d: %w", methodStar, leaves, minStarLeaves, ErrTooFewNodes)
	}
	return construct(s, leaves+1, nodeFn, func(link linker[E]) error {
		for i := 1; i <= leaves; i++ {
			if err := link(0, i, edgeFn(i-1)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Complete builds K_n: one edge per ordered pair i→j with i < j, emitted in
// lexicographic (i, j) order. In an undirected store this yields the
// complete graph; in a directed store, its canonical orientation.
// Complexity: O(n²).
func Complete[N, E any](s *core.Store[N, E], n int, nodeFn NodeFn[N], edgeFn EdgeFn[E]) ([]core.NodeHandle, error) {
	if n < minCompleteNodes {
		return nil, fmt.Errorf("%s: n=%d < min=%d: %w", methodComplete, n, minCompleteNodes, ErrTooFewNodes)
	}
	return construct(s, n, nodeFn, func(link linker[E]) error {
		k := 0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if err := link(i, j, edgeFn(k)); err != nil {
					return err
				}
				k++
			}
		}
		return nil
	})
}

// linker connects two nodes by creation index inside a construct scope.
type linker[E any] func(from, to int, payload E) error

// construct runs the shared skeleton: allocate n nodes, hand the edge
// emission to wire, pin node 0. Everything happens in one Update scope.
func construct[N, E any](s *core.Store[N, E], n int, nodeFn NodeFn[N], wire func(linker[E]) error) ([]core.NodeHandle, error) {
	handles := make([]core.NodeHandle, n)
	err := s.Update(func(an *core.Anchor[N, E]) error {
		cur := an.Cursor()
		for i := 0; i < n; i++ {
			h, err := cur.AddNode(nodeFn(i))
			if err != nil {
				return err
			}
			handles[i] = h
		}
		link := func(from, to int, payload E) error {
			if err := cur.MoveTo(handles[from]); err != nil {
				return err
			}
			_, err := cur.AddEdge(handles[to], payload)
			return err
		}
		if err := wire(link); err != nil {
			return err
		}
		return an.PinRoot(handles[0])
	})
	if err != nil {
		return nil, err
	}
	return handles, nil
}
