package lib

import "fmt"
import "sort"
import "strconv"
import "strings"

// HistogramInt64 accumulate int64 samples into fixed width buckets
// between [from, till). Samples below `from` land in the first bucket
// and samples at or above `till` land in the last bucket, labelled "+".
type HistogramInt64 struct {
	n       int64
	minval  int64
	maxval  int64
	sum     int64
	buckets []int64
	// setup
	from  int64
	till  int64
	width int64
}

// NewHistogramInt64 return a new histogram, `from` and `till` are
// aligned down to `width`.
func NewHistogramInt64(from, till, width int64) *HistogramInt64 {
	if width <= 0 {
		panic(fmt.Errorf("histogram width %v must be > 0", width))
	}
	from, till = (from/width)*width, (till/width)*width
	if till < from {
		panic(fmt.Errorf("histogram till %v < from %v", till, from))
	}
	h := &HistogramInt64{from: from, till: till, width: width}
	h.buckets = make([]int64, 1+((till-from)/width)+1)
	return h
}

// Add a sample.
func (h *HistogramInt64) Add(sample int64) {
	if h.n == 0 || sample < h.minval {
		h.minval = sample
	}
	if h.n == 0 || sample > h.maxval {
		h.maxval = sample
	}
	h.n++
	h.sum += sample

	switch {
	case sample < h.from:
		h.buckets[0]++
	case sample >= h.till:
		h.buckets[len(h.buckets)-1]++
	default:
		h.buckets[((sample-h.from)/h.width)+1]++
	}
}

// Min return the smallest sample, ZERO if there are no samples.
func (h *HistogramInt64) Min() int64 {
	return h.minval
}

// Max return the largest sample, ZERO if there are no samples.
func (h *HistogramInt64) Max() int64 {
	return h.maxval
}

// Samples return the number of samples added so far.
func (h *HistogramInt64) Samples() int64 {
	return h.n
}

// Sum of all samples.
func (h *HistogramInt64) Sum() int64 {
	return h.sum
}

// Mean of all samples, truncated.
func (h *HistogramInt64) Mean() int64 {
	if h.n == 0 {
		return 0
	}
	return h.sum / h.n
}

// Stats return cummulative counts per bucket, keyed by the bucket's
// exclusive upper bound. Trailing empty buckets are skipped.
func (h *HistogramInt64) Stats() map[string]int64 {
	m := make(map[string]int64)
	last := -1
	for i, v := range h.buckets {
		if v > 0 {
			last = i
		}
	}
	cumm := int64(0)
	for i := 0; i <= last; i++ {
		cumm += h.buckets[i]
		if i == len(h.buckets)-1 {
			m["+"] = cumm
			continue
		}
		m[strconv.Itoa(int(h.from+(int64(i)*h.width)))] = cumm
	}
	return m
}

// Fullstats include min, max, mean and samples along with Stats().
func (h *HistogramInt64) Fullstats() map[string]interface{} {
	hmap := make(map[string]interface{})
	for k, v := range h.Stats() {
		hmap[k] = v
	}
	return map[string]interface{}{
		"samples":   h.Samples(),
		"min":       h.Min(),
		"max":       h.Max(),
		"mean":      h.Mean(),
		"histogram": hmap,
	}
}

// Logstring return Fullstats as a single line, with keys sorted.
func (h *HistogramInt64) Logstring() string {
	ss := []string{
		fmt.Sprintf(`"samples": %v`, h.Samples()),
		fmt.Sprintf(`"min": %v`, h.Min()),
		fmt.Sprintf(`"max": %v`, h.Max()),
		fmt.Sprintf(`"mean": %v`, h.Mean()),
	}
	stats := h.Stats()
	bounds := make([]int, 0, len(stats))
	for k := range stats {
		if k == "+" {
			continue
		}
		n, _ := strconv.Atoi(k)
		bounds = append(bounds, n)
	}
	sort.Ints(bounds)
	hs := make([]string, 0, len(stats))
	for _, n := range bounds {
		k := strconv.Itoa(n)
		hs = append(hs, fmt.Sprintf(`"%v": %v`, k, stats[k]))
	}
	if v, ok := stats["+"]; ok {
		hs = append(hs, fmt.Sprintf(`"+": %v`, v))
	}
	ss = append(ss, `"histogram": {`+strings.Join(hs, ",")+"}")
	return "{" + strings.Join(ss, ",") + "}"
}
