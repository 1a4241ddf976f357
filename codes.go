package huffman

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/chronos-tachyon/assert"
)

// CodeTable is an immutable mapping from each Symbol of an alphabet to its
// code.  Every code is non-empty and no code is a prefix of another.
//
// A CodeTable is safe for concurrent use by multiple goroutines.
type CodeTable struct {
	codes  map[Symbol]BitSequence
	minLen int
	maxLen int
}

// GenerateCodes derives the CodeTable for a Tree.  Each Symbol's code is the
// path from the root to its leaf, with 0 for child 0 and 1 for child 1.  In a
// single-symbol tree the root is itself the leaf, and its Symbol is assigned
// the code "0".
func GenerateCodes(t *Tree) CodeTable {
	codes := make(map[Symbol]BitSequence, t.numSymbols)
	t.walkPaths(func(index nodeIndex, path BitSequence) {
		n := t.nodes[index]
		if !n.isLeaf() {
			return
		}
		if path.Len() == 0 {
			path = singleSymbolCode
		}
		codes[n.symbol] = path
	})

	assert.Assertf(len(codes) == t.numSymbols, "generated %d codes for %d symbols", len(codes), t.numSymbols)
	return newCodeTable(codes)
}

var singleSymbolCode = MustParseBits("0")

// MakeCodeTable constructs a CodeTable from an explicit mapping, such as one
// received from a peer.  The mapping is copied.  It returns an error if any
// Symbol is negative, any code is empty, or the codes are not prefix-free.
func MakeCodeTable(codes map[Symbol]BitSequence) (CodeTable, error) {
	copied := make(map[Symbol]BitSequence, len(codes))
	for symbol, code := range codes {
		if symbol < 0 {
			return CodeTable{}, fmt.Errorf("%w: %d", ErrInvalidSymbol, symbol)
		}
		if code.Len() == 0 {
			return CodeTable{}, fmt.Errorf("%w: empty code for symbol %d", ErrCodeTableInconsistent, symbol)
		}
		copied[symbol] = code
	}

	sorted := make(byBits, 0, len(copied))
	for symbol, code := range copied {
		sorted = append(sorted, symbolAndCode{symbol, code})
	}
	sorted.Sort()

	// In lexicographic order, a code that is a prefix of any other code is
	// a prefix of its immediate successor.
	for i := 1; i < len(sorted); i++ {
		prev, next := sorted[i-1], sorted[i]
		if next.code.HasPrefix(prev.code) {
			return CodeTable{}, fmt.Errorf("%w: code %s for symbol %d is a prefix of code %s for symbol %d",
				ErrCodeTableInconsistent, prev.code, prev.symbol, next.code, next.symbol)
		}
	}

	return newCodeTable(copied), nil
}

func newCodeTable(codes map[Symbol]BitSequence) CodeTable {
	ct := CodeTable{codes: codes}
	first := true
	for _, code := range codes {
		size := code.Len()
		if first {
			first = false
			ct.minLen = size
			ct.maxLen = size
		} else if ct.minLen > size {
			ct.minLen = size
		} else if ct.maxLen < size {
			ct.maxLen = size
		}
	}
	return ct
}

// Lookup returns the code for a Symbol, or false if the Symbol is not in the
// alphabet.
func (ct CodeTable) Lookup(symbol Symbol) (BitSequence, bool) {
	code, found := ct.codes[symbol]
	return code, found
}

// Len returns the number of Symbols in the alphabet.
func (ct CodeTable) Len() int {
	return len(ct.codes)
}

// MinLen is the bit length of the shortest code.
func (ct CodeTable) MinLen() int {
	return ct.minLen
}

// MaxLen is the bit length of the longest code.
func (ct CodeTable) MaxLen() int {
	return ct.maxLen
}

// Symbols returns the alphabet in ascending order.
func (ct CodeTable) Symbols() []Symbol {
	out := make(bySymbol, 0, len(ct.codes))
	for symbol := range ct.codes {
		out = append(out, symbol)
	}
	out.Sort()
	return out
}

// Lengths returns the bit length of each Symbol's code.
func (ct CodeTable) Lengths() map[Symbol]int {
	out := make(map[Symbol]int, len(ct.codes))
	for symbol, code := range ct.codes {
		out[symbol] = code.Len()
	}
	return out
}

// WeightedLength returns the sum of frequency × code length over all Symbols
// of freqs, i.e. the number of bits needed to encode an input with those
// frequencies.  Symbols of freqs that are not in the alphabet contribute
// nothing.
func (ct CodeTable) WeightedLength(freqs FrequencyTable) uint64 {
	var sum uint64
	for symbol, freq := range freqs {
		if code, found := ct.codes[symbol]; found {
			sum += freq * uint64(code.Len())
		}
	}
	return sum
}

// Fingerprint returns a 64-bit hash of the table's contents.  Equal tables
// always have equal fingerprints.
func (ct CodeTable) Fingerprint() uint64 {
	var d xxhash.Digest
	d.Reset()

	var scratch [8]byte
	for _, symbol := range ct.Symbols() {
		code := ct.codes[symbol]
		binary.BigEndian.PutUint32(scratch[0:4], uint32(symbol))
		binary.BigEndian.PutUint32(scratch[4:8], uint32(code.Len()))
		_, _ = d.Write(scratch[:])
		_, _ = d.Write(code.packed[:byteLen(code.Len())])
	}
	return d.Sum64()
}

// Equal returns true iff both tables assign the same codes to the same
// Symbols.
func (ct CodeTable) Equal(other CodeTable) bool {
	if len(ct.codes) != len(other.codes) {
		return false
	}
	for symbol, code := range ct.codes {
		otherCode, found := other.codes[symbol]
		if !found || !code.Equal(otherCode) {
			return false
		}
	}
	return true
}

// Dump writes a programmer-readable debugging dump of the CodeTable to the
// given writer.
func (ct CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinLen() = %d\n", ct.minLen)
	fmt.Fprintf(&buf, "\tMaxLen() = %d\n", ct.maxLen)
	for _, symbol := range ct.Symbols() {
		fmt.Fprintf(&buf, "\tLookup(%d) = %s\n", symbol, ct.codes[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// type symbolAndCode + type byBits {{{

type symbolAndCode struct {
	symbol Symbol
	code   BitSequence
}

type byBits []symbolAndCode

func (list byBits) Sort() {
	sort.Sort(list)
}

func (list byBits) Len() int {
	return len(list)
}

func (list byBits) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byBits) Less(i, j int) bool {
	at, bt := list[i].code.Text(), list[j].code.Text()
	if at != bt {
		return at < bt
	}
	return list[i].symbol < list[j].symbol
}

var _ sort.Interface = byBits(nil)

// }}}
