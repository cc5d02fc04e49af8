package cachesim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccumulator_ProbeChargesDynamicEnergyAndTime(t *testing.T) {
	acc := newAccumulator(LevelParams{AccessTime: 2, DynamicPower: 3})
	acc.probe()
	committed := acc.commitAccess(false)
	assert.Equal(t, 6.0, committed.Energy)
	assert.Equal(t, 2.0, committed.Time)
}

func TestAccumulator_ChargeTransferAddsFixedEnergyOnly(t *testing.T) {
	acc := newAccumulator(LevelParams{TransferPenalty: 5})
	acc.chargeTransfer()
	committed := acc.commitAccess(false)
	assert.Equal(t, 5.0, committed.Energy)
	assert.Equal(t, 0.0, committed.Time)
}

func TestAccumulator_IdleChargesStaticEnergyNotTime(t *testing.T) {
	acc := newAccumulator(LevelParams{StaticPower: 4})
	acc.idle(3, false, nil)
	committed := acc.commitAccess(false)
	assert.Equal(t, 12.0, committed.Energy)
	assert.Equal(t, 0.0, committed.Time, "idle time is charged to Energy, never to Time")
}

func TestAccumulator_IdlePropagatesToNextWhenRequested(t *testing.T) {
	next := newAccumulator(LevelParams{StaticPower: 10})
	acc := newAccumulator(LevelParams{StaticPower: 1})

	acc.idle(2, true, &next)

	assert.Equal(t, 2.0, acc.scratch.Energy)
	assert.Equal(t, 20.0, next.scratch.Energy)
}

func TestAccumulator_IdleDoesNotPropagateByDefault(t *testing.T) {
	next := newAccumulator(LevelParams{StaticPower: 10})
	acc := newAccumulator(LevelParams{StaticPower: 1})

	acc.idle(2, false, &next)

	assert.Equal(t, 2.0, acc.scratch.Energy)
	assert.Equal(t, 0.0, next.scratch.Energy)
}

func TestAccumulator_CommitAccessResetsScratchAndAppendsSample(t *testing.T) {
	acc := newAccumulator(LevelParams{AccessTime: 1, DynamicPower: 1})
	acc.probe()
	acc.commitAccess(true)
	acc.probe()
	acc.commitAccess(false)

	require := assert.New(t)
	require.Len(acc.series, 2)
	require.True(acc.series[0].Miss)
	require.False(acc.series[1].Miss)
	require.Equal(Usage{}, acc.scratch)
}
