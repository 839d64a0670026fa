// Package llrb implement a self-balancing version of binary-tree, called,
// LLRB (Left Leaning Red Black), as an ordered map of integer keys.
//
//   * Each key shall be unique within the map.
//   * Value is an opaque interface{}, it is never copied or inspected.
//   * Reads and writes are serialized with a sync.RWMutex, concurrent
//     reads are allowed when no write is in progress. Methods of the
//     same tree shall not be called from inside a Traverse loop.
//   * Traverse yields entries in-order, pre-order, post-order or
//     level-order as a range-over-func sequence.
//
// Deleting an interior node copies the key and value of its in-order
// successor into the node, and removes the successor from the right
// subtree.
package llrb
