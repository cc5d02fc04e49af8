package cachesim

// Usage is a pair (energy, time) representing the resources consumed
// during one access or sub-operation: energy in joules, time in seconds.
type Usage struct {
	Energy float64
	Time   float64
}

// AddInto accumulates other into u, replacing the source's operator-
// overloaded "usage addition" with a plain explicit accumulator.
func (u *Usage) AddInto(other Usage) {
	u.Energy += other.Energy
	u.Time += other.Time
}

// Energies projects a slice of Usage down to just its Energy field, in
// order, e.g. for feeding a cumulative-energy report.
func Energies(usages []Usage) []float64 {
	energies := make([]float64, len(usages))
	for i, u := range usages {
		energies[i] = u.Energy
	}
	return energies
}
