package cachesim

import "fmt"

// L1Cache is a direct-mapped, write-back, write-allocate first-level
// cache. The instruction and data caches are two independent instances
// sharing one L2 through a non-owning handle.
type L1Cache struct {
	acc     accumulator
	decoder addrDecoder
	lines   []CacheLine
	l2      *L2Cache
}

// NewL1Cache constructs an L1 of sizeBytes capacity with a fixed block
// size, backed by l2. sizeBytes/blockSize (the line count) must be a
// power of two.
func NewL1Cache(sizeBytes, blockSize int, params LevelParams, l2 *L2Cache) (*L1Cache, error) {
	if blockSize <= 0 || sizeBytes <= 0 || sizeBytes%blockSize != 0 {
		return nil, fmt.Errorf("l1: size %d must be a positive multiple of block size %d", sizeBytes, blockSize)
	}
	numLines := sizeBytes / blockSize
	decoder, err := newAddrDecoder(blockSize, numLines)
	if err != nil {
		return nil, fmt.Errorf("l1: %w", err)
	}
	return &L1Cache{
		acc:     newAccumulator(params),
		decoder: decoder,
		lines:   make([]CacheLine, numLines),
		l2:      l2,
	}, nil
}

// Access services one program reference against this L1, returning the
// Usage committed to this level alone (not including L2/DRAM contributions
// triggered by a miss or eviction — those commit to their own levels).
func (c *L1Cache) Access(kind AccessKind, address uint64) Usage {
	index, tag := c.decoder.decompose(address)
	c.acc.probe() // tag read

	if c.lines[index].Valid && c.lines[index].Tag == tag {
		if kind == WriteData {
			c.lines[index].Dirty = true
		}
		return c.acc.commitAccess(false)
	}

	// Miss: write back a dirty victim before overwriting it, then install.
	c.handleEviction(index)
	c.lines[index] = CacheLine{Tag: tag, Valid: true, Dirty: kind == WriteData}

	refill := c.l2.Access(kind, address, false)
	c.acc.idle(refill.Time, false, nil)

	if kind == WriteData {
		c.acc.probe() // the write into the newly allocated line
	}

	return c.acc.commitAccess(true)
}

// handleEviction writes back the line at index to L2 if it is dirty. An
// EMPTY slot, or a clean valid line, needs no write-back regardless of
// whatever bits happen to sit beneath an EMPTY slot's dirty field.
func (c *L1Cache) handleEviction(index uint64) {
	line := c.lines[index]
	if !line.Valid || !line.Dirty {
		return
	}
	addr := c.decoder.recompose(line.Tag, index)
	writeback := c.l2.Access(WriteData, addr, true)
	c.acc.idle(writeback.Time, false, nil)
}
