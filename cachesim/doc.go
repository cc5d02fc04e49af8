// Package cachesim is the trace-driven energy/time simulation engine for a
// two-level on-chip cache hierarchy: split L1 instruction/data caches
// backed by a unified, set-associative L2, backed by an always-hit DRAM
// sink.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - types.go: the access-kind/address vocabulary the hierarchy consumes
//   - accumulator.go: the per-level energy/time scratch and commit step
//   - hierarchy.go: the orchestrator that dispatches each access and drives
//     idle accounting on the non-selected L1
//
// # Architecture
//
// Each level (l1.go, l2.go, dram.go) owns an accumulator and exposes its
// own typed Access method; there is no polymorphic dispatch across levels.
// L1 holds a non-owning handle to the shared L2; L2 holds a non-owning
// handle to DRAM. The Hierarchy in hierarchy.go is the sole owner of all
// four levels.
//
// External collaborators — the trace parser (trace/) and the Monte Carlo
// workload generator (workload/) — are separate packages; the core engine
// only consumes []AccessRecord and produces per-level statistics series via
// Report.
package cachesim
