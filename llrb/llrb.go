package llrb

import "io"
import "fmt"
import "sync"
import "time"
import "strings"
import "sync/atomic"

import "github.com/bnclabs/ordmap/api"
import "github.com/bnclabs/ordmap/lib"
import s "github.com/bnclabs/gosettings"

// LLRB manage a single instance of in-memory ordered map using
// left-leaning-red-black tree.
type LLRB struct { // tree container
	// all are 64-bit aligned
	llrbstats

	h_upsertdepth *lib.HistogramInt64
	a_rebalances  *lib.AverageInt64 // rotations and flips per mutation

	name     string
	root     *Llrbnode
	borntime time.Time
	rw       sync.RWMutex

	// settings
	dovalidate bool
	maxdepth   int64
	setts      s.Settings
	logprefix  string
}

// NewLLRB a new instance of in-memory ordered map.
func NewLLRB(name string, setts s.Settings) *LLRB {
	llrb := &LLRB{name: name, borntime: time.Now()}
	llrb.logprefix = fmt.Sprintf("LLRB [%s]", name)

	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	llrb.readsettings(setts)
	llrb.setts = setts

	// statistics
	llrb.h_upsertdepth = lib.NewHistogramInt64(1, llrb.maxdepth, 1)
	llrb.a_rebalances = &lib.AverageInt64{}

	infof("%v started ...\n", llrb.logprefix)
	return llrb
}

// ID implement api.OrderedMap interface.
func (llrb *LLRB) ID() string {
	return llrb.name
}

// Count implement api.OrderedMap interface.
func (llrb *LLRB) Count() int64 {
	return atomic.LoadInt64(&llrb.n_count)
}

// Dotdump to convert whole tree into dot script that can be visualized
// using graphviz. Red links are drawn in red.
func (llrb *LLRB) Dotdump(buffer io.Writer) {
	lines := []string{
		"digraph llrb {",
		"  node[shape=record];\n",
		"}\n",
	}
	llrb.rw.RLock()
	defer llrb.rw.RUnlock()

	buffer.Write([]byte(strings.Join(lines[:len(lines)-1], "\n")))
	llrb.root.dotdump(buffer)
	buffer.Write([]byte(lines[len(lines)-1]))
}

// Clone the full tree into a new instance with the same settings.
func (llrb *LLRB) Clone(name string) *LLRB {
	llrb.rw.RLock()
	defer llrb.rw.RUnlock()

	newllrb := NewLLRB(name, llrb.setts)
	newllrb.root = llrb.root.clone()
	count := llrb.Count()
	newllrb.n_count, newllrb.n_inserts, newllrb.n_nodes = count, count, count
	return newllrb
}

// Validate will walk the full tree to confirm the sort order, color
// rules, black balance and height bound. Panics on violation.
func (llrb *LLRB) Validate() {
	llrb.rw.RLock()
	defer llrb.rw.RUnlock()
	llrb.validate(llrb.root)
}

//---- api.OrderedMap reader methods.

// Has implement api.OrderedMap interface.
func (llrb *LLRB) Has(key int64) bool {
	_, ok := llrb.Get(key)
	return ok
}

// Get implement api.OrderedMap interface, acquires a read lock.
func (llrb *LLRB) Get(key int64) (value interface{}, ok bool) {
	llrb.rw.RLock()
	defer llrb.rw.RUnlock()

	atomic.AddInt64(&llrb.n_lookups, 1)
	if nd := llrb.root.lookup(key); nd != nil {
		return nd.value, true
	}
	return nil, false
}

// Min implement api.OrderedMap interface. ok is false for an empty tree.
func (llrb *LLRB) Min() (key int64, value interface{}, ok bool) {
	llrb.rw.RLock()
	defer llrb.rw.RUnlock()

	atomic.AddInt64(&llrb.n_lookups, 1)
	if llrb.root == nil {
		return 0, nil, false
	}
	nd := llrb.root.minnode()
	return nd.key, nd.value, true
}

// Max implement api.OrderedMap interface. ok is false for an empty tree.
func (llrb *LLRB) Max() (key int64, value interface{}, ok bool) {
	llrb.rw.RLock()
	defer llrb.rw.RUnlock()

	atomic.AddInt64(&llrb.n_lookups, 1)
	if llrb.root == nil {
		return 0, nil, false
	}
	nd := llrb.root.maxnode()
	return nd.key, nd.value, true
}

// Height implement api.OrderedMap interface. An empty tree has height
// ZERO and a tree with a single entry has height 1.
func (llrb *LLRB) Height() int64 {
	llrb.rw.RLock()
	defer llrb.rw.RUnlock()
	return llrb.root.height()
}

//---- api.OrderedMap writer methods.

// Upsert implement api.OrderedMap interface. If key is already present
// its value is replaced in place and older value is returned.
func (llrb *LLRB) Upsert(key int64, value interface{}) (interface{}, bool) {
	llrb.rw.Lock()
	defer llrb.rw.Unlock()

	mark := llrb.rebalances()
	root, oldvalue, ok := llrb.upsert(llrb.root, 1 /*depth*/, key, value)
	llrb.root = root.setblack()
	llrb.upsertcounts(ok)
	llrb.postmutation("Upsert", mark)
	return oldvalue, ok
}

// returns root, oldvalue, found
func (llrb *LLRB) upsert(
	nd *Llrbnode, depth int64,
	key int64, value interface{}) (*Llrbnode, interface{}, bool) {

	var oldvalue interface{}
	var ok bool

	if nd == nil {
		llrb.h_upsertdepth.Add(depth)
		return llrb.newnode(key, value), nil, false
	}

	if key < nd.key {
		nd.left, oldvalue, ok = llrb.upsert(nd.left, depth+1, key, value)
	} else if key > nd.key {
		nd.right, oldvalue, ok = llrb.upsert(nd.right, depth+1, key, value)
	} else {
		oldvalue, ok, nd.value = nd.value, true, value
		llrb.h_upsertdepth.Add(depth)
	}

	nd = llrb.walkuprot23(nd)
	return nd, oldvalue, ok
}

// Delete implement api.OrderedMap interface. Deleting a missing key
// leaves the tree untouched.
func (llrb *LLRB) Delete(key int64) (interface{}, bool) {
	llrb.rw.Lock()
	defer llrb.rw.Unlock()

	if llrb.root.lookup(key) == nil {
		debugf("%v Delete(%v): %v\n", llrb.logprefix, key, api.ErrorKeyMissing)
		return nil, false
	}

	mark := llrb.rebalances()
	llrb.borrowroot()
	root, oldvalue := llrb.delete(llrb.root, key)
	llrb.setroot(root)
	llrb.delcount()
	llrb.postmutation("Delete", mark)
	return oldvalue, true
}

// REQUIRE: key must be present in the subtree rooted at nd.
func (llrb *LLRB) delete(nd *Llrbnode, key int64) (*Llrbnode, interface{}) {
	var oldvalue interface{}

	if key < nd.key {
		if !isred(nd.left) && !isred(nd.left.left) {
			nd = llrb.moveredleft(nd)
		}
		nd.left, oldvalue = llrb.delete(nd.left, key)

	} else {
		if isred(nd.left) {
			nd = llrb.rotateright(nd)
		}
		// If key equals nd.key and no right children at nd
		if key == nd.key && nd.right == nil {
			return nil, nd.value
		}
		if !isred(nd.right) && !isred(nd.right.left) {
			nd = llrb.moveredright(nd)
		}
		// If key equals nd.key, and (from above) nd.right != nil
		if key == nd.key {
			oldvalue = nd.value
			succ := nd.right.minnode()
			nd.key, nd.value = succ.key, succ.value
			nd.right, _ = llrb.deletemin(nd.right)
		} else { // Else, key is bigger than nd.key
			nd.right, oldvalue = llrb.delete(nd.right, key)
		}
	}
	return llrb.fixup(nd), oldvalue
}

// DeleteMin remove the smallest entry, ok is false for an empty tree.
func (llrb *LLRB) DeleteMin() (key int64, value interface{}, ok bool) {
	llrb.rw.Lock()
	defer llrb.rw.Unlock()

	if llrb.root == nil {
		return 0, nil, false
	}
	mark := llrb.rebalances()
	llrb.borrowroot()
	root, deleted := llrb.deletemin(llrb.root)
	llrb.setroot(root)
	llrb.delcount()
	llrb.postmutation("DeleteMin", mark)
	return deleted.key, deleted.value, true
}

// using 2-3 trees
func (llrb *LLRB) deletemin(nd *Llrbnode) (newnd, deleted *Llrbnode) {
	if nd == nil {
		return nil, nil
	}
	if nd.left == nil {
		return nil, nd
	}
	if !isred(nd.left) && !isred(nd.left.left) {
		nd = llrb.moveredleft(nd)
	}
	nd.left, deleted = llrb.deletemin(nd.left)
	return llrb.fixup(nd), deleted
}

// DeleteMax remove the largest entry, ok is false for an empty tree.
func (llrb *LLRB) DeleteMax() (key int64, value interface{}, ok bool) {
	llrb.rw.Lock()
	defer llrb.rw.Unlock()

	if llrb.root == nil {
		return 0, nil, false
	}
	mark := llrb.rebalances()
	llrb.borrowroot()
	root, deleted := llrb.deletemax(llrb.root)
	llrb.setroot(root)
	llrb.delcount()
	llrb.postmutation("DeleteMax", mark)
	return deleted.key, deleted.value, true
}

// using 2-3 trees
func (llrb *LLRB) deletemax(nd *Llrbnode) (newnd, deleted *Llrbnode) {
	if nd == nil {
		return nil, nil
	}
	if isred(nd.left) {
		nd = llrb.rotateright(nd)
	}
	if nd.right == nil {
		return nil, nd
	}
	if !isred(nd.right) && !isred(nd.right.left) {
		nd = llrb.moveredright(nd)
	}
	nd.right, deleted = llrb.deletemax(nd.right)
	return llrb.fixup(nd), deleted
}

// borrowroot colors the root red when both its children are black, so
// that deletion has a red link to push down the tree.
func (llrb *LLRB) borrowroot() {
	if !isred(llrb.root.left) && !isred(llrb.root.right) {
		llrb.root.setred()
	}
}

func (llrb *LLRB) setroot(root *Llrbnode) {
	if root != nil {
		root.setblack()
	}
	llrb.root = root
}

func (llrb *LLRB) rebalances() int64 {
	return llrb.n_rotates + llrb.n_flips
}

func (llrb *LLRB) postmutation(op string, mark int64) {
	llrb.a_rebalances.Add(llrb.rebalances() - mark)
	if llrb.dovalidate {
		tracef("%v %v(): validating %v entries\n", llrb.logprefix, op, llrb.n_count)
		llrb.validate(llrb.root)
	}
}

// rotation routines for 2-3 algorithm

func (llrb *LLRB) walkuprot23(nd *Llrbnode) *Llrbnode {
	if isred(nd.right) && !isred(nd.left) {
		nd = llrb.rotateleft(nd)
	}
	if isred(nd.left) && isred(nd.left.left) {
		nd = llrb.rotateright(nd)
	}
	if isred(nd.left) && isred(nd.right) {
		llrb.flip(nd)
	}
	return nd
}

func (llrb *LLRB) rotateleft(nd *Llrbnode) *Llrbnode {
	y := nd.right
	if y.isblack() {
		panic("rotateleft(): rotating a black link ? call the programmer")
	}
	nd.right = y.left
	y.left = nd
	y.black = nd.black
	nd.setred()
	llrb.n_rotates++
	return y
}

func (llrb *LLRB) rotateright(nd *Llrbnode) *Llrbnode {
	x := nd.left
	if x.isblack() {
		panic("rotateright(): rotating a black link ? call the programmer")
	}
	nd.left = x.right
	x.right = nd
	x.black = nd.black
	nd.setred()
	llrb.n_rotates++
	return x
}

// REQUIRE: Left and Right children must be present
func (llrb *LLRB) flip(nd *Llrbnode) {
	nd.left.togglelink()
	nd.right.togglelink()
	nd.togglelink()
	llrb.n_flips++
}

// REQUIRE: Left and Right children must be present
func (llrb *LLRB) moveredleft(nd *Llrbnode) *Llrbnode {
	llrb.flip(nd)
	if isred(nd.right.left) {
		nd.right = llrb.rotateright(nd.right)
		nd = llrb.rotateleft(nd)
		llrb.flip(nd)
	}
	return nd
}

// REQUIRE: Left and Right children must be present
func (llrb *LLRB) moveredright(nd *Llrbnode) *Llrbnode {
	llrb.flip(nd)
	if isred(nd.left.left) {
		nd = llrb.rotateright(nd)
		llrb.flip(nd)
	}
	return nd
}

func (llrb *LLRB) fixup(nd *Llrbnode) *Llrbnode {
	if isred(nd.right) {
		nd = llrb.rotateleft(nd)
	}
	if isred(nd.left) && isred(nd.left.left) {
		nd = llrb.rotateright(nd)
	}
	if isred(nd.left) && isred(nd.right) {
		llrb.flip(nd)
	}
	return nd
}

//---- local functions

func (llrb *LLRB) newnode(key int64, value interface{}) *Llrbnode {
	llrb.n_nodes++
	return &Llrbnode{key: key, value: value}
}

func (llrb *LLRB) upsertcounts(found bool) {
	if found {
		llrb.n_updates++
		return
	}
	atomic.AddInt64(&llrb.n_count, 1)
	llrb.n_inserts++
}

func (llrb *LLRB) delcount() {
	atomic.AddInt64(&llrb.n_count, -1)
	llrb.n_deletes++
}
