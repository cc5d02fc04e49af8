package cachesim

import (
	"fmt"
	"math/bits"
)

// BlockSize is the fixed cache line size, in bytes, shared by L1 and L2.
const BlockSize = 64

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// addrDecoder decomposes a byte address into (line/set index, tag) for a
// cache with a given block size and number of lines/sets, both of which
// must be powers of two. The same formula serves L1 (lines) and L2 (sets).
type addrDecoder struct {
	offsetBits uint
	indexBits  uint
	indexMask  uint64
}

func newAddrDecoder(blockSize, numLines int) (addrDecoder, error) {
	if blockSize <= 0 || numLines <= 0 {
		return addrDecoder{}, fmt.Errorf("geometry: block size and line/set count must be positive, got block=%d lines=%d", blockSize, numLines)
	}
	if !isPowerOfTwo(blockSize) {
		return addrDecoder{}, fmt.Errorf("geometry: block size %d must be a power of two", blockSize)
	}
	if !isPowerOfTwo(numLines) {
		return addrDecoder{}, fmt.Errorf("geometry: line/set count %d must be a power of two", numLines)
	}
	return addrDecoder{
		offsetBits: uint(bits.TrailingZeros(uint(blockSize))),
		indexBits:  uint(bits.TrailingZeros(uint(numLines))),
		indexMask:  uint64(numLines - 1),
	}, nil
}

// decompose splits address into (index, tag): offset = address[0..offsetBits),
// index = address[offsetBits..offsetBits+indexBits), tag = the remaining
// high bits.
func (d addrDecoder) decompose(address uint64) (index, tag uint64) {
	index = (address >> d.offsetBits) & d.indexMask
	tag = address >> (d.offsetBits + d.indexBits)
	return index, tag
}

// recompose reconstructs an address from (tag, index), the inverse of
// decompose restricted to the block-aligned address (offset bits are zero).
func (d addrDecoder) recompose(tag, index uint64) uint64 {
	return (tag << (d.offsetBits + d.indexBits)) | (index << d.offsetBits)
}
