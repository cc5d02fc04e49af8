package cachesim

// Hierarchy is the orchestrator: it owns one L2, one DRAM, and two L1
// caches (instruction and data), and dispatches each trace record to the
// appropriate L1.
type Hierarchy struct {
	icache *L1Cache
	dcache *L1Cache
	l2     *L2Cache
	dram   *DRAM
	rng    *PartitionedRNG
}

// NewHierarchy constructs a Hierarchy from cfg. The configuration is
// validated before anything is allocated; an invalid configuration leaves
// no partially-built hierarchy behind.
func NewHierarchy(cfg HierarchyConfig) (*Hierarchy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := NewPartitionedRNG(cfg.RandomSeed, cfg.Seeded)
	dram := NewDRAM(dramParams)
	l2, err := NewL2Cache(cfg.L2Size, BlockSize, cfg.Associativity, l2Params, rng.ForSubsystem(SubsystemL2Replacement), dram)
	if err != nil {
		return nil, err
	}
	icache, err := NewL1Cache(cfg.L1Size, BlockSize, l1Params, l2)
	if err != nil {
		return nil, err
	}
	dcache, err := NewL1Cache(cfg.L1Size, BlockSize, l1Params, l2)
	if err != nil {
		return nil, err
	}

	return &Hierarchy{icache: icache, dcache: dcache, l2: l2, dram: dram, rng: rng}, nil
}

// levels returns the four accumulators in report order: [L1-I, L1-D, L2, DRAM].
func (h *Hierarchy) levels() [4]*accumulator {
	return [4]*accumulator{&h.icache.acc, &h.dcache.acc, &h.l2.acc, &h.dram.acc}
}

func (h *Hierarchy) seriesLengths() [4]int {
	var lengths [4]int
	for i, lvl := range h.levels() {
		lengths[i] = len(lvl.series)
	}
	return lengths
}

// sumUsageSince returns the sum of Energy and Time over every sample
// appended to any level's series since from, across all four levels.
func (h *Hierarchy) sumUsageSince(from [4]int) Usage {
	var total Usage
	for i, lvl := range h.levels() {
		for _, sample := range lvl.series[from[i]:] {
			total.AddInto(Usage{Energy: sample.Energy, Time: sample.Time})
		}
	}
	return total
}

// mergeTail collapses every sample appended to acc's series since from into
// exactly one. L2 and DRAM can each commit more than once while servicing a
// single top-level access (a dirty write-back followed by its own refill,
// each committing independently inside L2Cache.Access/DRAM.Access), but the
// hierarchy guarantees exactly one record per level per trace record — so
// any such burst is folded down to a single sample, summing Energy and Time
// and OR-ing Miss across the burst.
func mergeTail(acc *accumulator, from int) {
	tail := acc.series[from:]
	if len(tail) <= 1 {
		return
	}
	var merged AccessSample
	for _, sample := range tail {
		merged.Miss = merged.Miss || sample.Miss
		merged.Energy += sample.Energy
		merged.Time += sample.Time
	}
	acc.series = append(acc.series[:from], merged)
}

// Access dispatches one trace record to the appropriate L1 and returns the
// total Usage consumed across all four levels servicing it. It guarantees
// that every level commits exactly one sample this round:
//
//   - The peer L1 never probed anything; it gets a zero-time idle charge,
//     same as before.
//   - L2 and DRAM always accrue static-idle energy for the active L1's own
//     tag-probe duration, cascading unchanged from L2 through DRAM, exactly
//     as the original's total_usage() cascades calc_if_unused down the
//     entire remaining chain at the top of every resolved access — hit or
//     miss, not only when the probe never reached that level. This is added
//     on top of whatever real work L2/DRAM did servicing a miss, or stands
//     alone as their only charge when the active L1 hit.
//   - Any level touched more than once this round (a dirty write-back
//     followed by its own refill) is folded into that one record by
//     mergeTail.
func (h *Hierarchy) Access(kind AccessKind, address uint64) Usage {
	active, peer := h.dcache, h.icache
	if kind == ReadInst {
		active, peer = h.icache, h.dcache
	}

	before := h.seriesLengths()
	usage := active.Access(kind, address)

	// The peer L1 never probed anything for this access: it was only
	// powered and idle for as long as the active L1 was busy. It must not
	// propagate idle to L2/DRAM — those are charged below, rooted at the
	// active L1's single tag-probe time (AccessTime) rather than its
	// committed time, which counts every probe it made (two on a write miss).
	peer.acc.idle(usage.Time, false, nil)
	peer.acc.commitAccess(false)

	h.l2.acc.idle(active.acc.params.AccessTime, true, &h.dram.acc)
	h.l2.acc.commitAccess(false)
	h.dram.acc.commitAccess(false)

	mergeTail(&h.l2.acc, before[2])
	mergeTail(&h.dram.acc, before[3])

	return h.sumUsageSince(before)
}

// Run feeds every record in trace through the hierarchy in order, and
// returns the per-record total Usage (sum across all four levels),
// matching Access's return value for each record in sequence.
func (h *Hierarchy) Run(trace []AccessRecord) []Usage {
	perAccess := make([]Usage, len(trace))
	for i, rec := range trace {
		perAccess[i] = h.Access(rec.Kind, rec.Address)
	}
	return perAccess
}

// Reporter returns the reporting surface for this hierarchy.
func (h *Hierarchy) Reporter() *Reporter {
	return &Reporter{h: h}
}
