// Package tags implements the weighted tag store and the constraint
// language evaluated over it. Selected entities contribute named integer
// tags; constraints gate which combinations of entities are legal.
package tags

import (
	"sort"
	"strings"
)

// Tags maps tag names to integer weights. Presence matters independently
// of the value: a tag explicitly set to 0 still counts as present.
type Tags map[string]int32

// New returns an empty tag store.
func New() Tags {
	return make(Tags)
}

// Add accumulates delta onto the named tag, inserting it if absent.
func (t Tags) Add(name string, delta int32) {
	t[name] += delta
}

// Merge sums other into the receiver pointwise. The receiver must be
// owned exclusively by the caller; stores are never shared across
// component boundaries.
func (t Tags) Merge(other Tags) {
	for name, weight := range other {
		t[name] += weight
	}
}

// Value returns the weight of the named tag, 0 when absent.
func (t Tags) Value(name string) int32 {
	return t[name]
}

// Has reports whether the named tag is present.
func (t Tags) Has(name string) bool {
	_, ok := t[name]
	return ok
}

// Clone returns an independent copy of the store.
func (t Tags) Clone() Tags {
	out := make(Tags, len(t))
	for name, weight := range t {
		out[name] = weight
	}
	return out
}

// Names returns the tag names in sorted order.
func (t Tags) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String renders the store as space-separated names for display.
func (t Tags) String() string {
	return strings.Join(t.Names(), " ")
}
