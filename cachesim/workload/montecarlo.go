// Package workload generates synthetic .din-style access traces for
// Monte Carlo sweeps: random splices of a real trace corpus, stitched
// together and lightly mutated to broaden coverage beyond the corpus's
// exact recorded behavior.
package workload

import (
	"math"
	"math/rand"

	"github.com/cachesim/cachesim/cachesim"
)

// MonteCarloConfig parameterizes synthetic workload generation.
type MonteCarloConfig struct {
	// WorkloadLen is the target number of accesses in the generated trace.
	WorkloadLen int
	// SpliceProb is the per-access probability of ending the current splice
	// (splice lengths are Geometric(SpliceProb)): smaller values produce
	// longer contiguous splices from the corpus.
	SpliceProb float64
	// MutProb is the independent per-access probability of mutating that
	// access's kind, and separately its address.
	MutProb float64
}

// Generate produces a synthetic trace of roughly cfg.WorkloadLen accesses by
// splicing random contiguous runs from corpus end to end and then mutating
// a MutProb fraction of access kinds and addresses, grounded on
// MonteCarloGenerator.gen_workload.
func Generate(cfg MonteCarloConfig, corpus [][]cachesim.AccessRecord, rng *rand.Rand) []cachesim.AccessRecord {
	if len(corpus) == 0 || cfg.WorkloadLen <= 0 {
		return nil
	}

	lengths := geometricLengths(cfg.WorkloadLen, cfg.SpliceProb, rng)
	trace := make([]cachesim.AccessRecord, 0, cfg.WorkloadLen)
	for _, length := range lengths {
		trace = append(trace, randomSplice(corpus, length, rng)...)
	}

	addrBits := addressBits(corpus)
	mutateKinds(trace, cfg.MutProb, rng)
	mutateAddresses(trace, cfg.MutProb, addrBits, rng)

	return trace
}

// geometricSample draws from a Geometric(p) distribution over {1, 2, ...}
// via inverse-CDF sampling, matching numpy's rng.geometric(p).
func geometricSample(rng *rand.Rand, p float64) int {
	if p >= 1 {
		return 1
	}
	u := rng.Float64()
	for u == 0 {
		u = rng.Float64()
	}
	k := int(math.Ceil(math.Log(u) / math.Log(1-p)))
	if k < 1 {
		k = 1
	}
	return k
}

// geometricLengths splits maximum into a sequence of geometrically
// distributed splice lengths, with the final piece truncated so the pieces
// sum to exactly maximum, matching geometric_generator.
func geometricLengths(maximum int, p float64, rng *rand.Rand) []int {
	var lengths []int
	i := geometricSample(rng, p)
	total := i
	for total < maximum {
		lengths = append(lengths, i)
		i = geometricSample(rng, p)
		total += i
	}
	lengths = append(lengths, maximum-(total-i))
	return lengths
}

// randomSplice picks a random trace from corpus and returns length
// consecutive accesses starting at a random offset, wrapping around to the
// start of that trace if the run would run off the end.
func randomSplice(corpus [][]cachesim.AccessRecord, length int, rng *rand.Rand) []cachesim.AccessRecord {
	source := corpus[rng.Intn(len(corpus))]
	if len(source) == 0 {
		return nil
	}
	if length > len(source) {
		length = len(source)
	}
	start := rng.Intn(len(source))
	end := start + length

	overlap := 0
	if end > len(source) {
		overlap = end - len(source)
		end = len(source)
	}

	out := make([]cachesim.AccessRecord, 0, length)
	out = append(out, source[start:end]...)
	out = append(out, source[:overlap]...)
	return out
}

// mutateKinds independently replaces each record's access kind with a
// uniformly random one with probability mutProb.
func mutateKinds(trace []cachesim.AccessRecord, mutProb float64, rng *rand.Rand) {
	for i := range trace {
		if rng.Float64() < mutProb {
			trace[i].Kind = cachesim.AccessKind(rng.Intn(3))
		}
	}
}

// mutateAddresses independently perturbs each record's address with
// probability mutProb, adding Gaussian noise scaled to roughly one cache
// line's worth of spread to preserve locality of reference, then wrapping
// into [0, 2^addrBits).
func mutateAddresses(trace []cachesim.AccessRecord, mutProb float64, addrBits uint, rng *rand.Rand) {
	if addrBits == 0 {
		return
	}
	maxAddr := uint64(1) << addrBits
	lineBits := math.Log2(float64(cachesim.BlockSize))
	stdDev := float64(maxAddr) * math.Pow(2, -(float64(addrBits)-lineBits))

	for i := range trace {
		if rng.Float64() >= mutProb {
			continue
		}
		delta := rng.NormFloat64() * stdDev
		clamped := clamp(delta, -float64(maxAddr), float64(maxAddr))
		shifted := int64(trace[i].Address) + int64(clamped)
		mod := int64(maxAddr)
		wrapped := ((shifted % mod) + mod) % mod
		trace[i].Address = uint64(wrapped)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// addressBits returns ceil(log2(maxAddress)) across every record in corpus,
// the address-space width mutateAddresses wraps within.
func addressBits(corpus [][]cachesim.AccessRecord) uint {
	var maxAddr uint64
	for _, trace := range corpus {
		for _, rec := range trace {
			if rec.Address > maxAddr {
				maxAddr = rec.Address
			}
		}
	}
	if maxAddr == 0 {
		return 0
	}
	return uint(math.Ceil(math.Log2(float64(maxAddr))))
}
