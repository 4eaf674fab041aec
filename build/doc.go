// Package build provides deterministic topology constructors over a guarded
// core.Store: Path, Cycle, Star, and Complete.
//
// Every constructor performs all of its mutation inside one exclusive Update
// scope, emits nodes and edges in a stable order (node payloads by ascending
// index via the caller's NodeFn, edges in the documented order via EdgeFn),
// pins the first created node as a root, and returns the node handles in
// creation order. Constructors never panic at runtime; parameter validation
// returns sentinel errors wrapped with method context — branch on them with
// errors.Is.
package build
