package huffman

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// BitSequence represents an immutable sequence of bits of arbitrary length.
//
// Bits are packed most significant first: bit 0 of the sequence is the high
// bit of the first byte.  Any unused low bits of the final byte are zero.
//
// The zero value is the empty sequence.
type BitSequence struct {
	packed []byte
	n      int
}

// NewBitSequence constructs a BitSequence from the first n bits of packed,
// which are read most significant bit first.  The data is copied.
func NewBitSequence(packed []byte, n int) BitSequence {
	assert.Assertf(n >= 0, "n %d < 0", n)
	assert.Assertf(n <= len(packed)*8, "n %d > len(packed)*8 %d", n, len(packed)*8)

	out := make([]byte, byteLen(n))
	copy(out, packed)
	maskTail(out, n)
	return BitSequence{packed: out, n: n}
}

// ParseBits parses a string of '0' and '1' characters into a BitSequence.
func ParseBits(str string) (BitSequence, error) {
	var bb bitBuffer
	bb.grow(len(str))
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case '0':
			bb.appendBit(0)
		case '1':
			bb.appendBit(1)
		default:
			return BitSequence{}, fmt.Errorf("huffman: invalid character %q at offset %d in bit string", str[i], i)
		}
	}
	return bb.sequence(), nil
}

// MustParseBits is like ParseBits, but panics on error.
func MustParseBits(str string) BitSequence {
	bs, err := ParseBits(str)
	if err != nil {
		panic(err)
	}
	return bs
}

// Len returns the number of bits in the sequence.
func (bs BitSequence) Len() int {
	return bs.n
}

// At returns the bit at the given offset, either 0 or 1.
func (bs BitSequence) At(i int) uint8 {
	assert.Assertf(i >= 0 && i < bs.n, "bit index %d out of range [0, %d)", i, bs.n)
	return (bs.packed[i>>3] >> (7 - uint(i&7))) & 1
}

// Bytes returns a copy of the packed representation.  The final byte is
// padded with zero bits.
func (bs BitSequence) Bytes() []byte {
	out := make([]byte, byteLen(bs.n))
	copy(out, bs.packed)
	return out
}

// Append returns a new sequence consisting of this sequence followed by one
// more bit.
func (bs BitSequence) Append(bit uint8) BitSequence {
	var bb bitBuffer
	bb.grow(bs.n + 1)
	bb.appendSequence(bs)
	bb.appendBit(bit)
	return bb.sequence()
}

// Concat returns a new sequence consisting of this sequence followed by
// other.
func (bs BitSequence) Concat(other BitSequence) BitSequence {
	var bb bitBuffer
	bb.grow(bs.n + other.n)
	bb.appendSequence(bs)
	bb.appendSequence(other)
	return bb.sequence()
}

// Prefix returns the first n bits of the sequence.
func (bs BitSequence) Prefix(n int) BitSequence {
	assert.Assertf(n >= 0 && n <= bs.n, "prefix length %d out of range [0, %d]", n, bs.n)
	return NewBitSequence(bs.packed, n)
}

// HasPrefix returns true iff prefix is a (not necessarily strict) prefix of
// this sequence.
func (bs BitSequence) HasPrefix(prefix BitSequence) bool {
	if prefix.n > bs.n {
		return false
	}
	full := prefix.n >> 3
	if !bytes.Equal(bs.packed[:full], prefix.packed[:full]) {
		return false
	}
	rem := uint(prefix.n & 7)
	if rem == 0 {
		return true
	}
	mask := byte(0xff) << (8 - rem)
	return bs.packed[full]&mask == prefix.packed[full]
}

// Equal returns true iff both sequences hold the same bits.
func (bs BitSequence) Equal(other BitSequence) bool {
	return bs.n == other.n && bytes.Equal(bs.packed[:byteLen(bs.n)], other.packed[:byteLen(other.n)])
}

// Text returns the bits as a string of '0' and '1' characters.
func (bs BitSequence) Text() string {
	var sb strings.Builder
	sb.Grow(bs.n)
	for i := 0; i < bs.n; i++ {
		sb.WriteByte('0' + bs.At(i))
	}
	return sb.String()
}

// String returns the quoted string representation of this BitSequence.
func (bs BitSequence) String() string {
	return strconv.Quote(bs.Text())
}

var _ fmt.Stringer = BitSequence{}

// bitBuffer accumulates bits for a BitSequence under construction.  The
// buffer is handed over by sequence(), after which it must not be reused.
type bitBuffer struct {
	packed []byte
	n      int
}

func (bb *bitBuffer) grow(bits int) {
	if need := byteLen(bb.n + bits); need > cap(bb.packed) {
		packed := make([]byte, len(bb.packed), need)
		copy(packed, bb.packed)
		bb.packed = packed
	}
}

func (bb *bitBuffer) appendBit(bit uint8) {
	if bb.n&7 == 0 {
		bb.packed = append(bb.packed, 0)
	}
	if bit != 0 {
		bb.packed[bb.n>>3] |= 0x80 >> uint(bb.n&7)
	}
	bb.n++
}

func (bb *bitBuffer) appendSequence(bs BitSequence) {
	if bs.n == 0 {
		return
	}
	src := bs.packed[:byteLen(bs.n)]
	shift := uint(bb.n & 7)
	if shift == 0 {
		bb.packed = append(bb.packed, src...)
		bb.n += bs.n
		return
	}

	// The last byte of bb.packed is partially filled: the high bits of
	// each source byte complete it, and the low bits start a new one.
	for _, b := range src {
		bb.packed[len(bb.packed)-1] |= b >> shift
		bb.packed = append(bb.packed, b<<(8-shift))
	}
	bb.n += bs.n
	bb.packed = bb.packed[:byteLen(bb.n)]
}

func (bb *bitBuffer) sequence() BitSequence {
	bs := BitSequence{packed: bb.packed, n: bb.n}
	*bb = bitBuffer{}
	return bs
}

func byteLen(bits int) int {
	return (bits + 7) >> 3
}

func maskTail(packed []byte, n int) {
	if rem := uint(n & 7); rem != 0 {
		packed[n>>3] &= byte(0xff) << (8 - rem)
	}
}
