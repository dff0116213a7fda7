package quantile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func levelsOf(bl *bufferList) []uint32 {
	levels := make([]uint32, len(bl.items))
	for i, b := range bl.items {
		levels[i] = b.Level
	}
	return levels
}

func TestBufferListInsertKeepsLevelOrder(t *testing.T) {
	var bl bufferList
	bl.insert(Buffer{Level: 2})
	bl.insert(Buffer{Level: 0})
	bl.insert(Buffer{Level: 1})
	bl.insert(Buffer{Level: 0})

	assert.Equal(t, []uint32{0, 0, 1, 2}, levelsOf(&bl))
}

func TestBufferListExtractLowestGroupGroupsBySecondLowestLevel(t *testing.T) {
	var bl bufferList
	bl.insert(Buffer{Level: 0})
	bl.insert(Buffer{Level: 1})
	bl.insert(Buffer{Level: 1})
	bl.insert(Buffer{Level: 2})

	group := bl.extractLowestGroup()

	// b1 = level 0, b2 = level 1 -> minLevel = 1, group extends through
	// every further level-1 buffer.
	assert.Equal(t, []uint32{0, 1, 1}, levelsOf(&bufferList{items: group}))
	assert.Equal(t, []uint32{2}, levelsOf(&bl))
}

func TestBufferListExtractLowestGroupAllEqualLevel(t *testing.T) {
	var bl bufferList
	for i := 0; i < 5; i++ {
		bl.insert(Buffer{Level: 0})
	}

	group := bl.extractLowestGroup()
	assert.Len(t, group, 5)
	assert.Equal(t, 0, bl.Len())
}
