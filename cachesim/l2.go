package cachesim

import (
	"fmt"
	"math/rand"
)

// L2Cache is an N-way set-associative, random-replacement, write-back
// cache unifying instruction and data traffic from both L1s.
type L2Cache struct {
	acc     accumulator
	decoder addrDecoder
	sets    [][]CacheLine
	ways    int
	rng     *rand.Rand
	dram    *DRAM
}

// NewL2Cache constructs an L2 of sizeBytes capacity with the given
// associativity (ways). sizeBytes must be divisible by blockSize*ways into
// a power-of-two number of sets. rng supplies replacement decisions and
// must be seeded independently of any global RNG.
func NewL2Cache(sizeBytes, blockSize, ways int, params LevelParams, rng *rand.Rand, dram *DRAM) (*L2Cache, error) {
	if ways < 1 {
		return nil, fmt.Errorf("l2: associativity must be >= 1, got %d", ways)
	}
	setDenominator := blockSize * ways
	if setDenominator <= 0 || sizeBytes <= 0 || sizeBytes%setDenominator != 0 {
		return nil, fmt.Errorf("l2: size %d must be divisible by block_size*associativity (%d)", sizeBytes, setDenominator)
	}
	numSets := sizeBytes / setDenominator
	decoder, err := newAddrDecoder(blockSize, numSets)
	if err != nil {
		return nil, fmt.Errorf("l2: %w", err)
	}
	sets := make([][]CacheLine, numSets)
	for i := range sets {
		sets[i] = make([]CacheLine, ways)
	}
	return &L2Cache{
		acc:     newAccumulator(params),
		decoder: decoder,
		sets:    sets,
		ways:    ways,
		rng:     rng,
		dram:    dram,
	}, nil
}

// Access services one probe into L2. fromPrevious indicates the access
// originates from an L1 eviction write-back rather than a program
// reference: such an access marks a matched line dirty regardless of kind
// (an installed line is dirty only when kind is WriteData, which is what L1
// write-backs pass), and never refills from DRAM on a miss — the L1 already
// supplies the data; L2 only needs to allocate room for it. A dirty victim
// evicted to make that room is still written back to DRAM.
func (c *L2Cache) Access(kind AccessKind, address uint64, fromPrevious bool) Usage {
	c.acc.chargeTransfer()
	setIndex, tag := c.decoder.decompose(address)
	set := c.sets[setIndex]

	// Associative lookup.
	for way := 0; way < c.ways; way++ {
		c.acc.probe()
		if set[way].Valid && set[way].Tag == tag {
			if kind == WriteData || fromPrevious {
				set[way].Dirty = true
			}
			return c.acc.commitAccess(false)
		}
	}

	// Miss: scan again for an EMPTY slot, each scanned slot costing one
	// more probe.
	installed := false
	for way := 0; way < c.ways; way++ {
		c.acc.probe()
		if !set[way].Valid {
			set[way] = CacheLine{Tag: tag, Valid: true, Dirty: kind == WriteData}
			installed = true
			break
		}
	}

	// No EMPTY slot: random eviction.
	if !installed {
		victim := c.rng.Intn(c.ways)
		c.acc.probe() // victim read
		c.handleEviction(set, victim, setIndex)
		set[victim] = CacheLine{Tag: tag, Valid: true, Dirty: kind == WriteData}
	}

	// Refill from DRAM, unless this access is itself an L1 write-back
	// (which does not recursively fetch — L2 only needs to allocate).
	if !fromPrevious {
		dramUsage := c.dram.Access(kind, address, true)
		c.acc.idle(dramUsage.Time, false, nil)
	}

	return c.acc.commitAccess(true)
}

// handleEviction writes back the victim way in set to DRAM if it is
// dirty, before it is overwritten.
func (c *L2Cache) handleEviction(set []CacheLine, way int, setIndex uint64) {
	line := set[way]
	if !line.Valid || !line.Dirty {
		return
	}
	addr := c.decoder.recompose(line.Tag, setIndex)
	writeback := c.dram.Access(WriteData, addr, true)
	c.acc.idle(writeback.Time, false, nil)
}
