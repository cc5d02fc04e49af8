package cachesim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter_RejectsUnknownStatistic(t *testing.T) {
	h := newTestHierarchy(t)
	_, err := h.Reporter().Report(Statistic("bogus"))
	assert.Error(t, err)
}

func TestReporter_OrdersLevelsICacheDCacheL2DRAM(t *testing.T) {
	h := newTestHierarchy(t)
	h.Access(ReadInst, 0x0)
	h.Access(ReadData, 0x1000)

	// Every level records one sample per access; the miss bits tell the
	// levels apart: the icache missed first, the dcache second, L2 missed
	// both times, and DRAM always hits.
	series, err := h.Reporter().Report(StatMisses)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 0}, series[0], "icache")
	assert.Equal(t, []float64{0, 1}, series[1], "dcache")
	assert.Equal(t, []float64{1, 1}, series[2], "l2")
	assert.Equal(t, []float64{0, 0}, series[3], "dram")
}

func TestReporter_AccessesAreAlwaysOne(t *testing.T) {
	h := newTestHierarchy(t)
	h.Access(ReadData, 0x0)
	h.Access(ReadData, 0x0)

	series, err := h.Reporter().Report(StatAccesses)
	require.NoError(t, err)
	for _, v := range series[1] {
		assert.Equal(t, 1.0, v)
	}
}

func TestReporter_MissesAreZeroOrOne(t *testing.T) {
	h := newTestHierarchy(t)
	h.Access(ReadData, 0x0) // cold: miss
	h.Access(ReadData, 0x0) // warm: hit

	series, err := h.Reporter().Report(StatMisses)
	require.NoError(t, err)
	require.Len(t, series[1], 2)
	assert.Equal(t, 1.0, series[1][0])
	assert.Equal(t, 0.0, series[1][1])
}

func TestReporter_EnergyAndTimeAreNonNegative(t *testing.T) {
	h := newTestHierarchy(t)
	for i := 0; i < 20; i++ {
		h.Access(ReadData, uint64(i)*64)
	}

	energy, err := h.Reporter().Report(StatEnergy)
	require.NoError(t, err)
	timeSeries, err := h.Reporter().Report(StatTime)
	require.NoError(t, err)

	for lvl := 0; lvl < 4; lvl++ {
		for _, v := range energy[lvl] {
			assert.GreaterOrEqual(t, v, 0.0)
		}
		for _, v := range timeSeries[lvl] {
			assert.GreaterOrEqual(t, v, 0.0)
		}
	}
}

func TestReporter_PeerL1TimeIsAlwaysZero(t *testing.T) {
	h := newTestHierarchy(t)
	h.Access(ReadData, 0x0)
	h.Access(ReadData, 0x1000)

	timeSeries, err := h.Reporter().Report(StatTime)
	require.NoError(t, err)
	for _, v := range timeSeries[0] {
		assert.Equal(t, 0.0, v, "icache never actively probed during these dcache accesses")
	}
}
