package cachesim

// LevelParams are the fixed hardware characteristics of one hierarchy
// level, stored in engineering units (seconds, watts, joules) rather than
// the nanosecond/picojoule units they're commonly quoted in.
type LevelParams struct {
	AccessTime      float64 // seconds
	StaticPower     float64 // watts
	DynamicPower    float64 // watts
	TransferPenalty float64 // joules; charged once per Access() call into this level
}

// AccessSample is one committed per-access record at a single hierarchy
// level: whether the access missed, and the energy/time charged to this
// level during it.
type AccessSample struct {
	Miss   bool
	Energy float64
	Time   float64
}

// accumulator is the per-level "current access scratch" plus the
// persistent committed series described in the design notes: each of L1,
// L2, and DRAM embeds one, mutated only by that level's own methods during
// a single synchronous Access() call.
type accumulator struct {
	params  LevelParams
	scratch Usage
	series  []AccessSample
}

func newAccumulator(params LevelParams) accumulator {
	return accumulator{params: params}
}

// probe is one dynamic use of the level — a tag read, a tag write, or any
// other active operation — charged at this level's access_time.
func (a *accumulator) probe() {
	a.scratch.Energy += a.params.DynamicPower * a.params.AccessTime
	a.scratch.Time += a.params.AccessTime
}

// chargeTransfer adds this level's fixed block-transfer energy, charged
// unconditionally at the top of a level's Access() regardless of hit or
// miss. This resolves the source's ambiguous "top of access() vs. only on
// eviction transfer" split the same way the design notes call equivalent:
// the penalty is incurred once per probe of this level from above.
func (a *accumulator) chargeTransfer() {
	a.scratch.Energy += a.params.TransferPenalty
}

// idle charges static energy for duration, during which this level was
// powered but not probing. If propagate is true and next is non-nil, next
// is charged idle for the same interval as well (one level only: the charge
// does not recurse past next). Most call sites account for a level's own idle time while waiting
// on the next level's refill (propagate=false: the next level already
// charges its own idle further down during that same call). Hierarchy.Access
// is the one caller that passes propagate=true, cascading the active L1's
// own tag-probe time down through L2 and DRAM on every access, mirroring the
// original's calc_if_unused recursing down the entire remaining chain from
// whichever level just resolved its own access.
func (a *accumulator) idle(duration float64, propagate bool, next *accumulator) {
	a.scratch.Energy += a.params.StaticPower * duration
	if propagate && next != nil {
		next.idle(duration, true, nil)
	}
}

// commitAccess freezes the scratch into one committed sample, appends it
// to the series, and resets the scratch. Called exactly once per top-level
// access to this level. Returns the committed Usage.
func (a *accumulator) commitAccess(miss bool) Usage {
	committed := a.scratch
	a.series = append(a.series, AccessSample{Miss: miss, Energy: committed.Energy, Time: committed.Time})
	a.scratch = Usage{}
	return committed
}
