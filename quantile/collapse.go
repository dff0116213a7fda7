package quantile

// collapseIfNeeded repeats Collapse until buffers.size() is
// back within budget. Called after every flush of unbuffered into a new
// level-0 buffer and once after a merge has absorbed all of the other
// summary's buffers.
func (s *Summary) collapseIfNeeded() {
	for s.buffers.Len() > int(s.params.numBuffers) {
		s.collapseOnce()
	}
}

// collapseOnce performs a single Collapse: extract the lowest-level group,
// down-sample its weighted union to bufferSize elements, and insert the
// result as one new higher-level buffer.
func (s *Summary) collapseOnce() {
	group := s.buffers.extractLowestGroup()

	var newLevel uint32
	var newWeight uint64
	for _, b := range group {
		if lvl := b.Level + 1; lvl > newLevel {
			newLevel = lvl
		}
		newWeight += b.Weight
	}

	elements := interpolate(group, int(s.params.bufferSize), float64(newWeight), s.jitterOffset(newWeight), s.order)

	s.buffers.insert(Buffer{
		Level:    newLevel,
		Weight:   newWeight,
		Elements: elements,
	})
}

// jitterOffset implements the even-weight rounding jitter. An odd
// newWeight always rounds up. An even newWeight alternates between the two
// midpoint roundings across successive even-weight calls (offsetJitter
// starts at 0, so the first even call yields offset 2), which is what
// removes the systematic rank bias a fixed floor or ceil would introduce.
func (s *Summary) jitterOffset(newWeight uint64) float64 {
	if newWeight%2 == 1 {
		return float64(newWeight+1) / 2
	}
	s.offsetJitter = 2 - s.offsetJitter
	return float64(int64(newWeight)+int64(s.offsetJitter)) / 2
}
