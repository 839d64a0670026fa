// Package dict implement a reference ordered map on top of
// github.com/emirpasic/gods red-black tree. Primarily meant as reference
// for validating more useful implementations, like llrb.
package dict

import "fmt"
import "iter"

import "github.com/bnclabs/ordmap/api"
import rbt "github.com/emirpasic/gods/trees/redblacktree"
import "github.com/emirpasic/gods/utils"

// Dict is a reference data structure, for validation purpose. It is
// not safe for concurrent use.
type Dict struct {
	id   string
	tree *rbt.Tree
}

// NewDict create a new ordered map of int64 keys.
func NewDict(id string) *Dict {
	return &Dict{id: id, tree: rbt.NewWith(utils.Int64Comparator)}
}

// ID implement api.OrderedMap interface.
func (d *Dict) ID() string {
	return d.id
}

// Count implement api.OrderedMap interface.
func (d *Dict) Count() int64 {
	return int64(d.tree.Size())
}

// Has implement api.OrderedMap interface.
func (d *Dict) Has(key int64) bool {
	_, ok := d.tree.Get(key)
	return ok
}

// Get implement api.OrderedMap interface.
func (d *Dict) Get(key int64) (interface{}, bool) {
	return d.tree.Get(key)
}

// Upsert implement api.OrderedMap interface.
func (d *Dict) Upsert(key int64, value interface{}) (interface{}, bool) {
	oldvalue, ok := d.tree.Get(key)
	d.tree.Put(key, value)
	return oldvalue, ok
}

// Delete implement api.OrderedMap interface.
func (d *Dict) Delete(key int64) (interface{}, bool) {
	oldvalue, ok := d.tree.Get(key)
	if ok {
		d.tree.Remove(key)
	}
	return oldvalue, ok
}

// Min implement api.OrderedMap interface.
func (d *Dict) Min() (int64, interface{}, bool) {
	if nd := d.tree.Left(); nd != nil {
		return nd.Key.(int64), nd.Value, true
	}
	return 0, nil, false
}

// Max implement api.OrderedMap interface.
func (d *Dict) Max() (int64, interface{}, bool) {
	if nd := d.tree.Right(); nd != nil {
		return nd.Key.(int64), nd.Value, true
	}
	return 0, nil, false
}

// DeleteMin remove the smallest entry.
func (d *Dict) DeleteMin() (int64, interface{}, bool) {
	key, value, ok := d.Min()
	if ok {
		d.tree.Remove(key)
	}
	return key, value, ok
}

// DeleteMax remove the largest entry.
func (d *Dict) DeleteMax() (int64, interface{}, bool) {
	key, value, ok := d.Max()
	if ok {
		d.tree.Remove(key)
	}
	return key, value, ok
}

// Height implement api.OrderedMap interface. Note that height of a
// classic red-black tree differ from that of a left leaning one for
// the same set of keys.
func (d *Dict) Height() int64 {
	return height(d.tree.Root)
}

// Traverse implement api.OrderedMap interface.
func (d *Dict) Traverse(order api.Order) iter.Seq2[int64, interface{}] {
	if !order.Valid() {
		panic(fmt.Errorf("Traverse(%v): %w", order, api.ErrorInvalidOrder))
	}
	return func(yield func(int64, interface{}) bool) {
		if order == api.InOrder {
			it := d.tree.Iterator()
			for it.Next() {
				if !yield(it.Key().(int64), it.Value()) {
					return
				}
			}
			return
		}
		nodes := make([]*rbt.Node, 0, d.tree.Size())
		switch order {
		case api.PreOrder:
			nodes = preorder(d.tree.Root, nodes)
		case api.PostOrder:
			nodes = postorder(d.tree.Root, nodes)
		case api.LevelOrder:
			nodes = levelorder(d.tree.Root, nodes)
		}
		for _, nd := range nodes {
			if !yield(nd.Key.(int64), nd.Value) {
				return
			}
		}
	}
}

func height(nd *rbt.Node) int64 {
	if nd == nil {
		return 0
	}
	lh, rh := height(nd.Left), height(nd.Right)
	if lh > rh {
		return lh + 1
	}
	return rh + 1
}

func preorder(nd *rbt.Node, acc []*rbt.Node) []*rbt.Node {
	if nd == nil {
		return acc
	}
	acc = append(acc, nd)
	acc = preorder(nd.Left, acc)
	return preorder(nd.Right, acc)
}

func postorder(nd *rbt.Node, acc []*rbt.Node) []*rbt.Node {
	if nd == nil {
		return acc
	}
	acc = postorder(nd.Left, acc)
	acc = postorder(nd.Right, acc)
	return append(acc, nd)
}

func levelorder(root *rbt.Node, acc []*rbt.Node) []*rbt.Node {
	if root == nil {
		return acc
	}
	acc = append(acc, root)
	for i := 0; i < len(acc); i++ {
		if nd := acc[i]; nd.Left != nil {
			acc = append(acc, nd.Left)
		}
		if nd := acc[i]; nd.Right != nil {
			acc = append(acc, nd.Right)
		}
	}
	return acc
}
