package cachesim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestL1(t *testing.T) (*L1Cache, *L2Cache, *DRAM) {
	t.Helper()
	dram := NewDRAM(dramParams)
	l2, err := NewL2Cache(256*1024, 64, 4, l2Params, rand.New(rand.NewSource(0)), dram)
	require.NoError(t, err)
	l1, err := NewL1Cache(32*1024, 64, l1Params, l2)
	require.NoError(t, err)
	return l1, l2, dram
}

func TestL1_ColdReadMisses(t *testing.T) {
	l1, l2, dram := newTestL1(t)

	usage := l1.Access(ReadData, 0x0)

	assert.True(t, l1.acc.series[len(l1.acc.series)-1].Miss)
	assert.Greater(t, usage.Energy, 0.0)
	assert.Len(t, l2.acc.series, 1)
	assert.Len(t, dram.acc.series, 1)
}

func TestL1_RepeatedReadSameLineHitsAfterFirst(t *testing.T) {
	l1, l2, _ := newTestL1(t)

	for i := 0; i < 1024; i++ {
		l1.Access(ReadData, 0x0)
	}

	misses := 0
	for _, sample := range l1.acc.series {
		if sample.Miss {
			misses++
		}
	}
	assert.Equal(t, 1, misses)
	assert.Equal(t, 1023, len(l1.acc.series)-misses)
	assert.Len(t, l2.acc.series, 1, "only the first access should reach L2")
}

func TestL1_HitOnWriteSetsDirtyWithoutTouchingL2(t *testing.T) {
	l1, l2, _ := newTestL1(t)

	l1.Access(WriteData, 0x0) // cold miss, installs dirty line
	require.Len(t, l2.acc.series, 1)

	l1.Access(WriteData, 0x0) // hit, should stay dirty, no further L2 traffic
	assert.Len(t, l2.acc.series, 1)
	assert.True(t, l1.lines[0].Dirty)
}

func TestL1_EmptySlotNeverWritesBack(t *testing.T) {
	l1, l2, _ := newTestL1(t)

	l1.Access(ReadData, 0x0)
	require.Len(t, l2.acc.series, 1)

	// Evict the still-clean line with a different tag at the same index.
	// numLines = 32*1024/64 = 512, so address with index 0 and a different
	// tag is (1 << 15).
	l1.Access(ReadData, 1<<15)

	// A clean victim must not trigger a write-back: only one more L2 access
	// (the refill), not two.
	assert.Len(t, l2.acc.series, 2)
}

func TestL1_DirtyEvictionWritesBackToL2(t *testing.T) {
	l1, l2, _ := newTestL1(t)

	l1.Access(WriteData, 0x0) // cold miss, dirty
	require.Len(t, l2.acc.series, 1)

	l1.Access(ReadData, 1<<15) // evicts the dirty line at the same index

	// Eviction write-back (hit or miss in L2) plus the new refill: two more
	// L2 accesses.
	assert.Len(t, l2.acc.series, 3)
}
