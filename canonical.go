package huffman

import (
	"sort"

	"github.com/chronos-tachyon/assert"
)

// Canonical returns the canonical Huffman code with the same code lengths as
// this table, per the algorithm in RFC 1951 Section 3.2.2.  Symbols are
// sorted by (code length, Symbol) ascending and assigned consecutive codes,
// so the whole table can be reconstructed from its lengths alone.
//
// For the frequencies {a:5, b:2, c:1, d:1} this yields a="0", b="10",
// c="110", d="111".
//
func (ct CodeTable) Canonical() CodeTable {
	if len(ct.codes) == 0 {
		return ct
	}

	// Step 1: sort the symbols by (size, symbol) ascending.

	sorted := make(bySize, 0, len(ct.codes))
	for symbol, code := range ct.codes {
		sorted = append(sorted, symbolAndSize{symbol, code.Len()})
	}
	sorted.Sort()

	// Step 2: assign the codes sequentially.

	return newCodeTable(assignCanonical(sorted))
}

// assignCanonical assigns consecutive codes to a list that is already sorted
// by (size, symbol), per the algorithm detailed at
// <https://en.wikipedia.org/w/index.php?title=Canonical_Huffman_code&oldid=999983137>.
func assignCanonical(sorted bySize) map[Symbol]BitSequence {
	// Codes may be longer than any machine word, so nextCode is kept as
	// one byte per bit, most significant first.

	lastSize := sorted[0].size
	nextCode := make([]byte, lastSize)
	codes := make(map[Symbol]BitSequence, len(sorted))
	for _, item := range sorted {
		if item.size > lastSize {
			nextCode = append(nextCode, make([]byte, item.size-lastSize)...)
			lastSize = item.size
		}
		codes[item.symbol] = bitsFromDigits(nextCode)
		incrementDigits(nextCode)
	}
	return codes
}

// CanonicalCodes is shorthand for GenerateCodes(t).Canonical().
func CanonicalCodes(t *Tree) CodeTable {
	return GenerateCodes(t).Canonical()
}

func bitsFromDigits(digits []byte) BitSequence {
	var bb bitBuffer
	bb.grow(len(digits))
	for _, bit := range digits {
		bb.appendBit(bit)
	}
	return bb.sequence()
}

// incrementDigits adds 1 to a big-endian binary number stored one bit per
// byte.  Overflow wraps around to all zeros.
func incrementDigits(digits []byte) {
	for i := len(digits) - 1; i >= 0; i-- {
		if digits[i] == 0 {
			digits[i] = 1
			return
		}
		digits[i] = 0
	}
}

// type symbolAndSize + type bySize {{{

type symbolAndSize struct {
	symbol Symbol
	size   int
}

type bySize []symbolAndSize

func (list bySize) Len() int {
	return len(list)
}

func (list bySize) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list bySize) Less(i, j int) bool {
	a, b := list[i], list[j]
	ay, ai := a.symbol, a.size
	by, bi := b.symbol, b.size
	if ai != bi {
		return ai < bi
	}
	return ay < by
}

func (list bySize) Sort() {
	sort.Sort(list)
	assert.Assertf(len(list) == 0 || list[0].size > 0, "zero-length code in table")
}

var _ sort.Interface = bySize(nil)

// }}}
