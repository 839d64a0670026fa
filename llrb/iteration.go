package llrb

import "fmt"
import "iter"
import "sync/atomic"

import "github.com/bnclabs/ordmap/api"

// Traverse implement api.OrderedMap interface. Return a sequence of
// {key,value} that is evaluated lazily, every range over the sequence
// walks the tree afresh. Read lock is held while ranging, hence the
// caller shall not call any method of this tree from inside the loop,
// neither mutations nor reads like Get, Has or Stats: a nested read
// lock blocks forever when a writer is already waiting on the lock.
// Panics if order is not valid.
func (llrb *LLRB) Traverse(order api.Order) iter.Seq2[int64, interface{}] {
	var walk func(*Llrbnode, func(int64, interface{}) bool) bool

	switch order {
	case api.InOrder:
		walk = inorder
	case api.PreOrder:
		walk = preorder
	case api.PostOrder:
		walk = postorder
	case api.LevelOrder:
		walk = levelorder
	default:
		panic(fmt.Errorf("Traverse(%v): %w", order, api.ErrorInvalidOrder))
	}

	return func(yield func(int64, interface{}) bool) {
		llrb.rw.RLock()
		defer llrb.rw.RUnlock()

		atomic.AddInt64(&llrb.n_traversals, 1)
		walk(llrb.root, yield)
	}
}

// Keys return all keys in ascending order.
func (llrb *LLRB) Keys() []int64 {
	keys := make([]int64, 0, llrb.Count())
	for key := range llrb.Traverse(api.InOrder) {
		keys = append(keys, key)
	}
	return keys
}

func inorder(nd *Llrbnode, yield func(int64, interface{}) bool) bool {
	if nd == nil {
		return true
	}
	if !inorder(nd.left, yield) {
		return false
	}
	if !yield(nd.key, nd.value) {
		return false
	}
	return inorder(nd.right, yield)
}

func preorder(nd *Llrbnode, yield func(int64, interface{}) bool) bool {
	if nd == nil {
		return true
	}
	if !yield(nd.key, nd.value) {
		return false
	}
	if !preorder(nd.left, yield) {
		return false
	}
	return preorder(nd.right, yield)
}

func postorder(nd *Llrbnode, yield func(int64, interface{}) bool) bool {
	if nd == nil {
		return true
	}
	if !postorder(nd.left, yield) {
		return false
	}
	if !postorder(nd.right, yield) {
		return false
	}
	return yield(nd.key, nd.value)
}

// breadth first, one level fully before the next, left to right.
func levelorder(root *Llrbnode, yield func(int64, interface{}) bool) bool {
	if root == nil {
		return true
	}
	queue := []*Llrbnode{root}
	for len(queue) > 0 {
		nd := queue[0]
		queue[0], queue = nil, queue[1:]
		if !yield(nd.key, nd.value) {
			return false
		}
		if nd.left != nil {
			queue = append(queue, nd.left)
		}
		if nd.right != nil {
			queue = append(queue, nd.right)
		}
	}
	return true
}
