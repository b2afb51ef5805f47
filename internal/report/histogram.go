package report

import (
	"sort"
)

// Histogram summarises a sample with equal-width bins over its range.
// Edges has one more entry than Counts. Every bin is half-open except the
// last, which also holds the maximum. A constant sample is binned over
// [v-0.5, v+0.5].
type Histogram struct {
	Count  int       `json:"count"`
	Mean   float64   `json:"mean"`
	Median float64   `json:"median"`
	Edges  []float64 `json:"edges"`
	Counts []int     `json:"counts"`
}

// Empty reports whether the sample had no values.
func (h Histogram) Empty() bool {
	return h.Count == 0
}

// NewHistogram bins values into n bins. An empty sample yields a zero
// Histogram.
func NewHistogram(values []float64, n int) Histogram {
	if len(values) == 0 || n < 1 {
		return Histogram{}
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	h := Histogram{
		Count:  len(sorted),
		Mean:   mean(sorted),
		Median: median(sorted),
		Edges:  make([]float64, n+1),
		Counts: make([]int, n),
	}

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	width := (hi - lo) / float64(n)
	for i := range h.Edges {
		h.Edges[i] = lo + float64(i)*width
	}
	h.Edges[n] = hi

	for _, v := range sorted {
		h.Counts[binOf(v, lo, hi, width, n)]++
	}
	return h
}

func binOf(v, lo, hi, width float64, n int) int {
	if v >= hi {
		return n - 1
	}
	i := int((v - lo) / width)
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func mean(sorted []float64) float64 {
	var sum float64
	for _, v := range sorted {
		sum += v
	}
	return sum / float64(len(sorted))
}

func median(sorted []float64) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
