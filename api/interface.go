// Package api define types and interfaces common to the ordered map
// implementations in this repository.
package api

import "iter"

// OrderedMap interface for a sorted {key,value} container keyed by
// integers. Absence of a key, or an empty container, is reported through
// the `ok` return value and is never treated as a failure.
type OrderedMap interface {
	// ID return the name of this instance.
	ID() string

	// Count return the number of entries.
	Count() int64

	// Has return true if key is present.
	Has(key int64) bool

	// Get return value for key. ok is false if key is missing.
	Get(key int64) (value interface{}, ok bool)

	// Upsert insert key or replace its value. If key was already present
	// its older value is returned with ok as true.
	Upsert(key int64, value interface{}) (oldvalue interface{}, ok bool)

	// Delete key. Deleting a missing key is a no-op and ok is false.
	Delete(key int64) (oldvalue interface{}, ok bool)

	// Min return the smallest key and its value.
	Min() (key int64, value interface{}, ok bool)

	// Max return the largest key and its value.
	Max() (key int64, value interface{}, ok bool)

	// Height return the number of nodes on the longest path from root,
	// ZERO for an empty container.
	Height() int64

	// Traverse return a restartable sequence of every {key,value} in
	// the requested order.
	Traverse(order Order) iter.Seq2[int64, interface{}]
}
