package llrb

import "fmt"
import "strings"
import "sync/atomic"
import "encoding/json"

import humanize "github.com/dustin/go-humanize"
import "github.com/bnclabs/ordmap/lib"
import "github.com/bnclabs/golog"

type llrbstats struct {
	n_count      int64 // number of entries in the tree
	n_lookups    int64
	n_traversals int64
	n_inserts    int64
	n_updates    int64
	n_deletes    int64
	n_nodes      int64
	n_rotates    int64
	n_flips      int64
}

// Stats return a map of counters and the upsert-depth histogram.
func (llrb *LLRB) Stats() map[string]interface{} {
	llrb.rw.RLock()
	defer llrb.rw.RUnlock()
	return llrb.stats()
}

// Fullstats return Stats along with a histogram of leaf depths and
// the number of black links from root to any leaf. Full walk of the tree.
func (llrb *LLRB) Fullstats() map[string]interface{} {
	llrb.rw.RLock()
	defer llrb.rw.RUnlock()
	return llrb.fullstats()
}

// Log statistics, count fields are comma formatted if humanize is true.
func (llrb *LLRB) Log(dohumanize bool) {
	llrb.rw.RLock()
	defer llrb.rw.RUnlock()
	llrb.log(dohumanize)
}

func (llrb *LLRB) stats() map[string]interface{} {
	stats := llrb.stattree(map[string]interface{}{})
	stats["h_upsertdepth"] = llrb.h_upsertdepth.Fullstats()
	stats["a_rebalances"] = llrb.a_rebalances.Stats()
	return stats
}

func (llrb *LLRB) fullstats() map[string]interface{} {
	stats := llrb.stats()
	h_height := lib.NewHistogramInt64(1, llrb.maxdepth, 1)
	llrb.heightStats(llrb.root, 1 /*depth*/, h_height)
	stats["h_height"] = h_height.Fullstats()
	stats["n_blacks"] = llrb.countblacks(llrb.root, 0)
	stats["height"] = llrb.root.height()

	if x := h_height.Samples(); x != llrb.n_count {
		fmsg := "expected h_height.samples:%v to be same as llrb.Count():%v"
		panic(fmt.Errorf(fmsg, x, llrb.n_count))
	}
	return stats
}

func (llrb *LLRB) stattree(stats map[string]interface{}) map[string]interface{} {
	stats["n_count"] = llrb.Count()
	stats["n_lookups"] = atomic.LoadInt64(&llrb.n_lookups)
	stats["n_traversals"] = atomic.LoadInt64(&llrb.n_traversals)
	stats["n_inserts"] = llrb.n_inserts
	stats["n_updates"] = llrb.n_updates
	stats["n_deletes"] = llrb.n_deletes
	stats["n_nodes"] = llrb.n_nodes
	stats["n_rotates"] = llrb.n_rotates
	stats["n_flips"] = llrb.n_flips
	return stats
}

// every entry is sampled at its depth, root is at depth 1.
func (llrb *LLRB) heightStats(nd *Llrbnode, depth int64, h *lib.HistogramInt64) {
	if nd == nil {
		return
	}
	h.Add(depth)
	llrb.heightStats(nd.left, depth+1, h)
	llrb.heightStats(nd.right, depth+1, h)
}

// count black links along the left spine, root included.
func (llrb *LLRB) countblacks(nd *Llrbnode, count int64) int64 {
	if nd == nil {
		return count
	}
	if nd.isblack() {
		count++
	}
	return llrb.countblacks(nd.left, count)
}

func (llrb *LLRB) log(dohumanize bool) {
	stats := llrb.fullstats()

	if dohumanize {
		keys := []string{
			"n_count", "n_inserts", "n_updates", "n_deletes", "n_lookups",
			"n_rotates", "n_flips",
		}
		outs := make([]string, 0, len(keys))
		for _, key := range keys {
			val := humanize.Comma(stats[key].(int64))
			outs = append(outs, fmt.Sprintf("%v:%v", key, val))
		}
		log.Infof("%v counts {%v}\n", llrb.logprefix, strings.Join(outs, " "))
		life := humanize.Time(llrb.borntime)
		log.Infof("%v height %v, born %v\n", llrb.logprefix, stats["height"], life)
	}

	text, err := json.Marshal(stats)
	if err != nil {
		panic(fmt.Errorf("log(): %v", err))
	}
	log.Infof("%v stats %v\n", llrb.logprefix, string(text))
}
