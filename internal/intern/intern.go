// Package intern implements a collision-tolerant string interning table
// (no other package in this module imports it): values are deduplicated by xxHash64, with a full string comparison on
// hash match so an actual hash collision never corrupts the mapping —
// generalized from the metric-name collision tracker in
// internal/collision/tracker.go, which uses the same
// hash-then-verify-then-fall-back-to-list shape for metric names.
package intern

import "github.com/arloliu/vortex/internal/hash"

// Table assigns each distinct string a stable integer code in first-seen
// order.
type Table struct {
	byHash       map[uint64][]int32
	values       []string
	hasCollision bool
}

// New creates an empty Table.
func New() *Table {
	return &Table{byHash: make(map[uint64][]int32)}
}

// Intern returns the code for s, assigning a new one in insertion order if
// s has not been seen before.
func (t *Table) Intern(s string) int32 {
	h := hash.ID(s)
	if codes, ok := t.byHash[h]; ok {
		for _, code := range codes {
			if t.values[code] == s {
				return code
			}
		}
		// Same hash, different string: a genuine collision.
		t.hasCollision = true
	}

	code := int32(len(t.values))
	t.values = append(t.values, s)
	t.byHash[h] = append(t.byHash[h], code)

	return code
}

// Value returns the string assigned to code. It panics if code is out of
// range.
func (t *Table) Value(code int32) string {
	return t.values[code]
}

// Len returns the number of distinct interned strings.
func (t *Table) Len() int { return len(t.values) }

// HasCollision reports whether any two distinct interned strings shared
// an xxHash64 value.
func (t *Table) HasCollision() bool { return t.hasCollision }

// Values returns the interned strings in code order. Callers must not
// mutate the returned slice.
func (t *Table) Values() []string { return t.values }
