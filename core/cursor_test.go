// Package core_test verifies Cursor contracts: positioning, payload access,
// exclusivity enforcement, traversal ordering, and tombstone visibility.
package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veligost/anchorgraph/core"
)

// buildTriangle populates s with a → b, a → c and returns the handles.
// Edge insertion order at a is e(a→b) then e(a→c).
func buildTriangle(t *testing.T, s *core.Store[string, int]) (a, b, c core.NodeHandle) {
	t.Helper()
	require.NoError(t, s.Update(func(an *core.Anchor[string, int]) error {
		cur := an.Cursor()
		var err error
		if a, err = cur.AddNode("a"); err != nil {
			return err
		}
		if b, err = cur.AddNode("b"); err != nil {
			return err
		}
		if c, err = cur.AddNode("c"); err != nil {
			return err
		}
		if err = cur.MoveTo(a); err != nil {
			return err
		}
		if _, err = cur.AddEdge(b, 1); err != nil {
			return err
		}
		_, err = cur.AddEdge(c, 2)
		return err
	}))
	return a, b, c
}

// collect drains a neighbor sequence into a slice.
func collect(seq func(func(core.NodeHandle) bool)) []core.NodeHandle {
	var out []core.NodeHandle
	seq(func(h core.NodeHandle) bool {
		out = append(out, h)
		return true
	})
	return out
}

// TestCursor_ReadWrite verifies payload round-trips and the write path.
func TestCursor_ReadWrite(t *testing.T) {
	s := core.New[string, int]()
	a, _, _ := buildTriangle(t, s)

	require.NoError(t, s.Update(func(an *core.Anchor[string, int]) error {
		cur, err := an.CursorAt(a)
		require.NoError(t, err)

		got, err := cur.Read()
		require.NoError(t, err)
		require.Equal(t, "a", got)

		require.NoError(t, cur.Write("a2"))
		got, err = cur.Read()
		require.NoError(t, err)
		require.Equal(t, "a2", got)
		return nil
	}))

	// Writes under one exclusive anchor are visible to later guards.
	require.NoError(t, s.View(func(an *core.Anchor[string, int]) error {
		cur, err := an.CursorAt(a)
		require.NoError(t, err)
		got, err := cur.Read()
		require.NoError(t, err)
		require.Equal(t, "a2", got)
		return nil
	}))
}

// TestCursor_SharedRejectsMutation verifies every mutating operation fails
// ErrRequiresExclusive under a shared anchor while reads keep working.
func TestCursor_SharedRejectsMutation(t *testing.T) {
	s := core.New[string, int]()
	a, b, _ := buildTriangle(t, s)

	require.NoError(t, s.View(func(an *core.Anchor[string, int]) error {
		cur, err := an.CursorAt(a)
		require.NoError(t, err)

		require.ErrorIs(t, cur.Write("x"), core.ErrRequiresExclusive)
		_, err = cur.AddNode("x")
		require.ErrorIs(t, err, core.ErrRequiresExclusive)
		_, err = cur.AddEdge(b, 9)
		require.ErrorIs(t, err, core.ErrRequiresExclusive)
		require.ErrorIs(t, cur.DeleteNode(), core.ErrRequiresExclusive)
		require.ErrorIs(t, an.PinRoot(a), core.ErrRequiresExclusive)

		var eh core.EdgeHandle
		for h := range cur.Edges() {
			eh = h
			break
		}
		require.ErrorIs(t, cur.RemoveEdge(eh), core.ErrRequiresExclusive)
		require.ErrorIs(t, cur.WriteEdge(eh, 9), core.ErrRequiresExclusive)

		// Reads and traversal stay available.
		_, err = cur.Read()
		require.NoError(t, err)
		require.Len(t, collect(cur.Neighbors()), 2)
		return nil
	}))
}

// TestCursor_MoveToIsStoreGlobal verifies MoveTo repositions to any
// resolvable handle without a reachability requirement, and rejects stale
// handles.
func TestCursor_MoveToIsStoreGlobal(t *testing.T) {
	s := core.New[string, int]()
	_, b, c := buildTriangle(t, s)

	require.NoError(t, s.View(func(an *core.Anchor[string, int]) error {
		cur, err := an.CursorAt(c)
		require.NoError(t, err)

		// b is not reachable from c; MoveTo does not care.
		require.NoError(t, cur.MoveTo(b))
		got, err := cur.Read()
		require.NoError(t, err)
		require.Equal(t, "b", got)

		require.ErrorIs(t, cur.MoveTo(core.NodeHandle{}), core.ErrStaleHandle)
		// A failed MoveTo leaves the position untouched.
		at, ok := cur.At()
		require.True(t, ok)
		require.Equal(t, b, at)
		return nil
	}))
}

// TestCursor_NeighborsInsertionOrder verifies adjacency order is insertion
// order and the sequence is restartable.
func TestCursor_NeighborsInsertionOrder(t *testing.T) {
	s := core.New[string, int]()
	a, b, c := buildTriangle(t, s)

	require.NoError(t, s.View(func(an *core.Anchor[string, int]) error {
		cur, err := an.CursorAt(a)
		require.NoError(t, err)

		seq := cur.Neighbors()
		require.Equal(t, []core.NodeHandle{b, c}, collect(seq))
		require.Equal(t, []core.NodeHandle{b, c}, collect(seq), "sequence must be re-invocable")

		// Early break must not poison later runs.
		for range seq {
			break
		}
		require.Equal(t, []core.NodeHandle{b, c}, collect(seq))
		return nil
	}))
}

// TestCursor_DirectedSkipsIncoming verifies traversal in a directed store
// follows outgoing edges only, while the undirected configuration yields
// both endpoints' views of the same edge.
func TestCursor_DirectedSkipsIncoming(t *testing.T) {
	s := core.New[string, int]()
	_, b, _ := buildTriangle(t, s)

	require.NoError(t, s.View(func(an *core.Anchor[string, int]) error {
		cur, err := an.CursorAt(b)
		require.NoError(t, err)
		require.Empty(t, collect(cur.Neighbors()), "b has only an incoming edge")
		return nil
	}))

	u := core.New[string, int](core.WithDirected(false))
	ua, ub, _ := buildTriangle(t, u)
	require.NoError(t, u.View(func(an *core.Anchor[string, int]) error {
		cur, err := an.CursorAt(ub)
		require.NoError(t, err)
		require.Equal(t, []core.NodeHandle{ua}, collect(cur.Neighbors()))
		return nil
	}))
}

// TestCursor_TombstoneVisibility verifies the default Hide policy versus
// WithTombstones traversal and WithTombstoneReads payload access, all within
// one exclusive scope (no reclamation has run yet).
func TestCursor_TombstoneVisibility(t *testing.T) {
	s := core.New[string, int](core.WithTombstoneReads())
	a, b, c := buildTriangle(t, s)

	require.NoError(t, s.Update(func(an *core.Anchor[string, int]) error {
		cur, err := an.CursorAt(a)
		require.NoError(t, err)

		var ab core.EdgeHandle
		for eh, nh := range cur.Edges() {
			if nh == b {
				ab = eh
			}
		}
		require.NoError(t, cur.RemoveEdge(ab))

		// Default traversal hides the tombstoned edge; the option exposes it.
		require.Equal(t, []core.NodeHandle{c}, collect(cur.Neighbors()))
		require.Equal(t, []core.NodeHandle{b, c}, collect(cur.Neighbors(core.WithTombstones())))

		// Mid-scope the tombstone still dereferences: Expose policy reads it.
		require.NoError(t, an.ResolveEdge(ab))
		w, err := cur.ReadEdge(ab)
		require.NoError(t, err)
		require.Equal(t, 1, w)

		// Writing through a tombstone is forbidden regardless of policy.
		require.ErrorIs(t, cur.WriteEdge(ab, 0), core.ErrDead)
		return nil
	}))
}

// TestCursor_HidePolicyRejectsTombstoneReads verifies ErrDead under the
// default Hide policy for both node and edge reads.
func TestCursor_HidePolicyRejectsTombstoneReads(t *testing.T) {
	s := core.New[string, int]()
	a, b, _ := buildTriangle(t, s)

	require.NoError(t, s.Update(func(an *core.Anchor[string, int]) error {
		cur, err := an.CursorAt(b)
		require.NoError(t, err)
		require.NoError(t, cur.DeleteNode())

		// The slot still dereferences, but reads are refused.
		require.NoError(t, an.Resolve(b))
		require.NoError(t, cur.MoveTo(b))
		_, err = cur.Read()
		require.ErrorIs(t, err, core.ErrDead)
		alive, err := cur.Alive()
		require.NoError(t, err)
		require.False(t, alive)

		// The cascaded edge tombstone is refused too.
		cur2, err := an.CursorAt(a)
		require.NoError(t, err)
		for eh := range cur2.Edges(core.WithTombstones()) {
			if _, err := cur2.ReadEdge(eh); err != nil {
				require.ErrorIs(t, err, core.ErrDead)
			}
		}
		return nil
	}))
}

// TestCursor_DeleteNodeCascadesAndUnpositions verifies DeleteNode marks the
// node and all incident edges dead — incoming included — and leaves the
// cursor without a position.
func TestCursor_DeleteNodeCascadesAndUnpositions(t *testing.T) {
	s := core.New[string, int]()
	a, b, _ := buildTriangle(t, s)

	require.NoError(t, s.Update(func(an *core.Anchor[string, int]) error {
		cur, err := an.CursorAt(b)
		require.NoError(t, err)
		require.NoError(t, cur.DeleteNode())

		_, ok := cur.At()
		require.False(t, ok)
		_, err = cur.Read()
		require.ErrorIs(t, err, core.ErrNoPosition)
		require.ErrorIs(t, cur.DeleteNode(), core.ErrNoPosition)

		// a's edge into b is gone from default traversal (cascade marked it).
		curA, err := an.CursorAt(a)
		require.NoError(t, err)
		for _, nh := range collect(curA.Neighbors()) {
			require.NotEqual(t, b, nh)
		}

		// The cursor is reusable after MoveTo.
		require.NoError(t, cur.MoveTo(a))
		got, err := cur.Read()
		require.NoError(t, err)
		require.Equal(t, "a", got)
		return nil
	}))
}

// TestCursor_AddEdgeValidation verifies endpoint checks: stale targets fail
// ErrStaleHandle, tombstoned endpoints fail ErrDead.
func TestCursor_AddEdgeValidation(t *testing.T) {
	s := core.New[string, int]()
	a, b, _ := buildTriangle(t, s)

	require.NoError(t, s.Update(func(an *core.Anchor[string, int]) error {
		cur, err := an.CursorAt(a)
		require.NoError(t, err)

		_, err = cur.AddEdge(core.NodeHandle{}, 0)
		require.ErrorIs(t, err, core.ErrStaleHandle)

		// Tombstone b, then try to target it.
		curB, err := an.CursorAt(b)
		require.NoError(t, err)
		require.NoError(t, curB.DeleteNode())
		_, err = cur.AddEdge(b, 0)
		require.ErrorIs(t, err, core.ErrDead)
		return nil
	}))
}

// TestCursor_SelfLoop verifies a self-loop is stored once and traversed as
// a single neighbor entry naming the node itself.
func TestCursor_SelfLoop(t *testing.T) {
	s := core.New[string, int]()

	var a core.NodeHandle
	require.NoError(t, s.Update(func(an *core.Anchor[string, int]) error {
		cur := an.Cursor()
		var err error
		if a, err = cur.AddNode("a"); err != nil {
			return err
		}
		if err = cur.MoveTo(a); err != nil {
			return err
		}
		_, err = cur.AddEdge(a, 7)
		return err
	}))

	require.NoError(t, s.View(func(an *core.Anchor[string, int]) error {
		cur, err := an.CursorAt(a)
		require.NoError(t, err)
		require.Equal(t, []core.NodeHandle{a}, collect(cur.Neighbors()))

		for eh, nh := range cur.Edges() {
			require.Equal(t, a, nh)
			ep, err := cur.Edge(eh)
			require.NoError(t, err)
			require.Equal(t, core.Endpoints{Source: a, Target: a}, ep)
		}
		return nil
	}))
}
