package lib

import "math"

// AverageInt64 accumulate int64 samples and compute their mean, variance
// and standard deviation, without keeping the samples.
type AverageInt64 struct {
	n      int64
	minval int64
	maxval int64
	sum    int64
	sumsq  float64
	init   bool
}

// Add a sample.
func (av *AverageInt64) Add(sample int64) {
	av.n++
	av.sum += sample
	f := float64(sample)
	av.sumsq += f * f
	if !av.init || sample < av.minval {
		av.minval = sample
	}
	if !av.init || av.maxval < sample {
		av.maxval = sample
	}
	av.init = true
}

// Min return the smallest sample, 0 when there are none.
func (av *AverageInt64) Min() int64 {
	return av.minval
}

// Max return the largest sample, 0 when there are none.
func (av *AverageInt64) Max() int64 {
	return av.maxval
}

// Samples return the number of samples added so far.
func (av *AverageInt64) Samples() int64 {
	return av.n
}

// Sum of all samples.
func (av *AverageInt64) Sum() int64 {
	return av.sum
}

// Mean return the integer mean of samples.
func (av *AverageInt64) Mean() int64 {
	if av.n == 0 {
		return 0
	}
	return int64(float64(av.sum) / float64(av.n))
}

// Variance of samples, computed against the exact mean.
func (av *AverageInt64) Variance() float64 {
	if av.n == 0 {
		return 0
	}
	nf, meanf := float64(av.n), float64(av.sum)/float64(av.n)
	if v := (av.sumsq / nf) - (meanf * meanf); v > 0 {
		return v
	}
	return 0 // rounding can go below zero for identical samples.
}

// SD return the standard deviation.
func (av *AverageInt64) SD() float64 {
	if av.n == 0 {
		return 0
	}
	return math.Sqrt(av.Variance())
}

// Clone return a copy of the accumulator.
func (av *AverageInt64) Clone() *AverageInt64 {
	newav := (*av)
	return &newav
}

// Stats return the accumulated statistics as a map.
func (av *AverageInt64) Stats() map[string]interface{} {
	return map[string]interface{}{
		"samples":     av.Samples(),
		"min":         av.Min(),
		"max":         av.Max(),
		"mean":        av.Mean(),
		"variance":    av.Variance(),
		"stddeviance": av.SD(),
	}
}
