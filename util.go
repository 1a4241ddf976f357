package huffman

import (
	mathbits "math/bits"

	"github.com/chronos-tachyon/assert"
)

func log2uint32(x uint32) uint32 {
	if x == 0 {
		x = 1
	}
	return uint32(32 - mathbits.LeadingZeros32(x))
}

// addFreq adds two frequencies.  Callers must have checked that the total
// fits, so overflow here is a bug.
func addFreq(a, b uint64) uint64 {
	sum, carry := mathbits.Add64(a, b, 0)
	assert.Assertf(carry == 0, "frequency overflow: %d + %d", a, b)
	return sum
}
