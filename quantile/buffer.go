package quantile

import "sort"

// Buffer is a fixed-capacity sorted run of elements tagged with a level and
// a weight. Level 0 means raw input; weight is the number of
// original elements each stored element represents. Every Buffer has
// exactly bufferSize elements except the one remainder buffer extractOutput
// may build from an unflushed tail.
type Buffer struct {
	Level    uint32
	Weight   uint64
	Elements []interface{}
}

// bufferList keeps Buffers ordered by Level ascending. Buffers.size() never
// exceeds numBuffers (bounded by construction, typically well under a
// hundred), so a small sorted slice does the job a priority queue would --
// the same call the pack's own later evolution of this file made when it
// dropped a skiplist backend for exactly this reason (see DESIGN.md).
type bufferList struct {
	items []Buffer
}

// Len reports how many buffers are currently held.
func (bl *bufferList) Len() int { return len(bl.items) }

// insert keeps items sorted by Level ascending; ties are broken by
// insertion order; ties at the same level may be broken arbitrarily.
func (bl *bufferList) insert(b Buffer) {
	i := sort.Search(len(bl.items), func(i int) bool { return bl.items[i].Level > b.Level })
	bl.items = append(bl.items, Buffer{})
	copy(bl.items[i+1:], bl.items[i:])
	bl.items[i] = b
}

// extractLowestGroup removes the lowest-level buffer together with every
// buffer at the level of the second-lowest.
// Requires len(bl.items) >= 2.
func (bl *bufferList) extractLowestGroup() []Buffer {
	minLevel := bl.items[1].Level
	end := 1
	for end < len(bl.items) && bl.items[end].Level == minLevel {
		end++
	}

	group := make([]Buffer, end)
	copy(group, bl.items[:end])

	remaining := make([]Buffer, len(bl.items)-end)
	copy(remaining, bl.items[end:])
	bl.items = remaining

	return group
}
