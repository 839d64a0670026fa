package llrb

import "fmt"
import "errors"

// LLRB rule, from sedgewick's paper.
var errRedAfterRed = errors.New("consecutive red spotted")

// LLRB rule, left leaning.
var errRightLeaningRed = errors.New("right leaning red spotted")

var errRedRoot = errors.New("root is red")

// LLRB rule, from sedgewick's paper.
func unbalancedblacks(lblacks, rblacks int64) error {
	return fmt.Errorf("unbalancedblacks {%v,%v}", lblacks, rblacks)
}

func (llrb *LLRB) validate(root *Llrbnode) {
	if isred(root) {
		panic(errRedRoot)
	}

	_, count, height := llrb.validatetree(root, false /*fromred*/, 0, nil, nil)
	if count != llrb.n_count {
		fmsg := "validate(): n_count:%v != actual:%v"
		panic(fmt.Errorf(fmsg, llrb.n_count, count))
	}
	if count > 0 && float64(height) > maxheight(count) {
		fmsg := "validate(): height %v exceeds 2*log2(%v+1)"
		panic(fmt.Errorf(fmsg, height, count))
	}
	llrb.validatestats()
}

// validatetree return the number of black links from nd to its leaves,
// the number of nodes and the height of subtree. lower and upper, when
// not nil, bound the keys allowed in this subtree.
func (llrb *LLRB) validatetree(
	nd *Llrbnode, fromred bool, blacks int64,
	lower, upper *int64) (nblacks, count, height int64) {

	if nd == nil {
		return blacks, 0, 0
	}
	if fromred && isred(nd) {
		panic(errRedAfterRed)
	}
	if isred(nd.right) {
		panic(errRightLeaningRed)
	}
	if lower != nil && nd.key <= *lower {
		fmsg := "validate(): sort order, node %v is <= lower bound %v"
		panic(fmt.Errorf(fmsg, nd.key, *lower))
	}
	if upper != nil && nd.key >= *upper {
		fmsg := "validate(): sort order, node %v is >= upper bound %v"
		panic(fmt.Errorf(fmsg, nd.key, *upper))
	}
	if !isred(nd) {
		blacks++
	}

	key := nd.key
	lblacks, lcount, lheight := llrb.validatetree(
		nd.left, isred(nd), blacks, lower, &key)
	rblacks, rcount, rheight := llrb.validatetree(
		nd.right, isred(nd), blacks, &key, upper)
	if lblacks != rblacks {
		panic(unbalancedblacks(lblacks, rblacks))
	}

	if height = lheight; rheight > height {
		height = rheight
	}
	return lblacks, lcount + rcount + 1, height + 1
}

func (llrb *LLRB) validatestats() {
	// n_count should match (n_inserts - n_deletes)
	n_count := llrb.n_count
	n_inserts, n_deletes := llrb.n_inserts, llrb.n_deletes
	if n_count != (n_inserts - n_deletes) {
		fmsg := "validatestats(): n_count:%v != (n_inserts:%v - n_deletes:%v)"
		panic(fmt.Errorf(fmsg, n_count, n_inserts, n_deletes))
	}
	// n_nodes should match n_inserts
	if n_nodes := llrb.n_nodes; n_inserts != n_nodes {
		fmsg := "validatestats(): n_inserts:%v != n_nodes:%v"
		panic(fmt.Errorf(fmsg, n_inserts, n_nodes))
	}
}
