// Package memory provides the address allocator used for memory-allocate
// instructions. Sizes and addresses are in kbytes.
package memory

// Allocate returns the allocation cursor that follows cursor once a block of
// blockSize has been handed out from a system of systemSize. The cursor wraps
// to 0 when the next block would start at or beyond systemSize.
func Allocate(cursor, blockSize, systemSize uint32) uint32 {
	if systemSize == 0 {
		return 0
	}
	next := uint64(cursor) + uint64(blockSize)
	if next >= uint64(systemSize) {
		return 0
	}
	return uint32(next)
}
