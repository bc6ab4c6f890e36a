package scoringdb

import "errors"

// ErrInvalidScore marks a record that violates the scoring invariants
// (negative total, or a total that disagrees with its breakdown). Such
// records must never be persisted.
var ErrInvalidScore = errors.New("daily score violates invariants")
