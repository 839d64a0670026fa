package llrb

import "io"
import "fmt"
import "strings"

// Llrbnode defines a node in LLRB tree. Color describe the link from
// parent to this node, a nil node is always black.
type Llrbnode struct {
	left  *Llrbnode
	right *Llrbnode
	key   int64
	value interface{}
	black bool
}

// Key return entry key.
func (nd *Llrbnode) Key() int64 {
	return nd.key
}

// Value return entry value.
func (nd *Llrbnode) Value() interface{} {
	return nd.value
}

func (nd *Llrbnode) isred() bool {
	return nd != nil && !nd.black
}

func (nd *Llrbnode) isblack() bool {
	return !nd.isred()
}

func (nd *Llrbnode) setred() *Llrbnode {
	nd.black = false
	return nd
}

func (nd *Llrbnode) setblack() *Llrbnode {
	nd.black = true
	return nd
}

func (nd *Llrbnode) togglelink() *Llrbnode {
	nd.black = !nd.black
	return nd
}

func isred(nd *Llrbnode) bool {
	return nd.isred()
}

func (nd *Llrbnode) minnode() *Llrbnode {
	for nd.left != nil {
		nd = nd.left
	}
	return nd
}

func (nd *Llrbnode) maxnode() *Llrbnode {
	for nd.right != nil {
		nd = nd.right
	}
	return nd
}

func (nd *Llrbnode) lookup(key int64) *Llrbnode {
	for nd != nil {
		if key < nd.key {
			nd = nd.left
		} else if key > nd.key {
			nd = nd.right
		} else {
			return nd
		}
	}
	return nil
}

func (nd *Llrbnode) height() int64 {
	if nd == nil {
		return 0
	}
	lh, rh := nd.left.height(), nd.right.height()
	if lh > rh {
		return lh + 1
	}
	return rh + 1
}

func (nd *Llrbnode) clone() *Llrbnode {
	if nd == nil {
		return nil
	}
	newnd := *nd
	newnd.left, newnd.right = nd.left.clone(), nd.right.clone()
	return &newnd
}

func (nd *Llrbnode) dotdump(buffer io.Writer) {
	if nd == nil {
		return
	}

	whatcolor := func(childnd *Llrbnode) string {
		if childnd.isred() {
			return "red"
		}
		return "black"
	}

	lines := []string{
		fmt.Sprintf("  %d [label=\"{%d}\"];\n", nd.key, nd.key),
	}
	fmsg := "  %d -> %d [color=%v];\n"
	if nd.left != nil {
		line := fmt.Sprintf(fmsg, nd.key, nd.left.key, whatcolor(nd.left))
		lines = append(lines, line)
	}
	if nd.right != nil {
		line := fmt.Sprintf(fmsg, nd.key, nd.right.key, whatcolor(nd.right))
		lines = append(lines, line)
	}
	buffer.Write([]byte(strings.Join(lines, "")))
	nd.left.dotdump(buffer)
	nd.right.dotdump(buffer)
}
