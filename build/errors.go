// Package build: sentinel errors.
//
// Error policy:
//   - Only package-level sentinels are exposed; callers branch with
//     errors.Is.
//   - Sentinels carry no parameters; constructors attach context with %w
//     wrapping at the failure site.

package build

import "errors"

// ErrTooFewNodes indicates a size parameter below the constructor's minimum
// (Path/Complete need n ≥ 2, Cycle n ≥ 3, Star at least one leaf).
var ErrTooFewNodes = errors.New("build: parameter too small")
