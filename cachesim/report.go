package cachesim

import "fmt"

// Statistic names one of the four series Report can return.
type Statistic string

const (
	StatAccesses Statistic = "Accesses"
	StatMisses   Statistic = "Misses"
	StatEnergy   Statistic = "Energy"
	StatTime     Statistic = "Time"
)

var validStatistics = map[Statistic]bool{
	StatAccesses: true,
	StatMisses:   true,
	StatEnergy:   true,
	StatTime:     true,
}

// Reporter is the reporting surface over a Hierarchy: a thin, read-only
// view that projects each level's committed series into the statistic the
// caller asked for.
type Reporter struct {
	h *Hierarchy
}

// Report returns, for stat, one series per level in the fixed order
// [L1-I, L1-D, L2, DRAM]. An unrecognized stat is rejected at the call
// site with an error.
func (r *Reporter) Report(stat Statistic) ([4][]float64, error) {
	if !validStatistics[stat] {
		return [4][]float64{}, fmt.Errorf("cachesim: unknown statistic %q", stat)
	}
	var out [4][]float64
	for i, lvl := range r.h.levels() {
		out[i] = projectSeries(lvl.series, stat)
	}
	return out, nil
}

func projectSeries(series []AccessSample, stat Statistic) []float64 {
	result := make([]float64, len(series))
	for i, sample := range series {
		switch stat {
		case StatAccesses:
			result[i] = 1
		case StatMisses:
			if sample.Miss {
				result[i] = 1
			}
		case StatEnergy:
			result[i] = sample.Energy
		case StatTime:
			result[i] = sample.Time
		}
	}
	return result
}
