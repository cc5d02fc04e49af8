package cachesim

// DRAM is the always-hit leaf of the hierarchy: main memory is modelled as
// a fixed-cost sink with no capacity and no misses.
type DRAM struct {
	acc accumulator
}

// NewDRAM constructs a DRAM sink with the given hardware parameters.
func NewDRAM(params LevelParams) *DRAM {
	return &DRAM{acc: newAccumulator(params)}
}

// Access is DRAM's only operation: one probe, always a hit. kind and
// fromPrevious are accepted to match the calling convention shared with L1
// and L2, but DRAM charges the same cost regardless of either.
func (d *DRAM) Access(kind AccessKind, address uint64, fromPrevious bool) Usage {
	d.acc.chargeTransfer()
	d.acc.probe()
	return d.acc.commitAccess(false)
}
