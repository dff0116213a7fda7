package quantile

import "container/heap"

// weightedCursor tracks a position within one Buffer's sorted elements
// during the k-way merge interpolate performs.
type weightedCursor struct {
	elements []interface{}
	weight   uint64
	idx      int
}

// cursorHeap is a min-heap of weightedCursors ordered by the element each
// currently points at, under a given Ordering.
type cursorHeap struct {
	cursors []*weightedCursor
	less    func(a, b interface{}) bool
}

func (h *cursorHeap) Len() int { return len(h.cursors) }
func (h *cursorHeap) Less(i, j int) bool {
	return h.less(h.cursors[i].elements[h.cursors[i].idx], h.cursors[j].elements[h.cursors[j].idx])
}
func (h *cursorHeap) Swap(i, j int) { h.cursors[i], h.cursors[j] = h.cursors[j], h.cursors[i] }
func (h *cursorHeap) Push(x interface{}) {
	h.cursors = append(h.cursors, x.(*weightedCursor))
}
func (h *cursorHeap) Pop() interface{} {
	old := h.cursors
	n := len(old)
	c := old[n-1]
	h.cursors = old[:n-1]
	return c
}

// interpolate performs a single streaming pass over the
// weighted sorted union of buffers, conceptually expanding each element
// into `weight` copies and emitting, for each j in 0..count-1, the element
// whose running cumulative weight is the first to exceed j*step+offset.
//
// buffers need not all share the same length (the output-time remainder
// buffer may be shorter); only the per-buffer weight matters to the walk.
func interpolate(buffers []Buffer, count int, step, offset float64, order Ordering) []interface{} {
	if count <= 0 {
		return nil
	}

	h := &cursorHeap{less: order.Less}
	for i := range buffers {
		if len(buffers[i].Elements) == 0 {
			continue
		}
		h.cursors = append(h.cursors, &weightedCursor{
			elements: buffers[i].Elements,
			weight:   buffers[i].Weight,
		})
	}
	if h.Len() == 0 {
		return nil
	}
	heap.Init(h)

	advance := func() (interface{}, uint64, bool) {
		if h.Len() == 0 {
			return nil, 0, false
		}
		top := h.cursors[0]
		v := top.elements[top.idx]
		w := top.weight
		top.idx++
		if top.idx < len(top.elements) {
			heap.Fix(h, 0)
		} else {
			heap.Pop(h)
		}
		return v, w, true
	}

	first, firstWeight, _ := advance()
	current := float64(firstWeight)
	picked := first

	result := make([]interface{}, 0, count)
	for j := 0; j < count; j++ {
		target := float64(j)*step + offset
		for current <= target {
			v, w, ok := advance()
			if !ok {
				break
			}
			picked = v
			current += float64(w)
		}
		result = append(result, picked)
	}
	return result
}
