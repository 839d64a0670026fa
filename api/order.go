package api

import "fmt"
import "strings"

// Order in which Traverse shall visit the entries.
type Order byte

const (
	// InOrder visit left subtree, node, right subtree. Keys are yielded
	// in ascending order.
	InOrder Order = iota + 1
	// PreOrder visit node, left subtree, right subtree.
	PreOrder
	// PostOrder visit left subtree, right subtree, node.
	PostOrder
	// LevelOrder visit level by level, left to right.
	LevelOrder
)

func (order Order) String() string {
	switch order {
	case InOrder:
		return "in"
	case PreOrder:
		return "pre"
	case PostOrder:
		return "post"
	case LevelOrder:
		return "level"
	}
	return fmt.Sprintf("order(%d)", byte(order))
}

// Valid return true for a known traversal order.
func (order Order) Valid() bool {
	return order >= InOrder && order <= LevelOrder
}

// ParseOrder convert one of "in", "pre", "post", "level" to Order, the
// "order" suffix is optional.
func ParseOrder(s string) (Order, error) {
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "order")
	switch s {
	case "in":
		return InOrder, nil
	case "pre":
		return PreOrder, nil
	case "post":
		return PostOrder, nil
	case "level":
		return LevelOrder, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrorInvalidOrder)
}
