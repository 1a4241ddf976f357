package huffman

import (
	"math"
)

// Symbol represents a symbol in an arbitrary alphabet.  Negative symbols are
// not valid.
type Symbol int32

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(math.MaxInt32)

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.
const InvalidSymbol = Symbol(-1)

// SymbolsOf converts a byte string into a sequence of Symbols, one per byte.
func SymbolsOf(data []byte) []Symbol {
	out := make([]Symbol, len(data))
	for i, b := range data {
		out[i] = Symbol(b)
	}
	return out
}

// BytesOf is the inverse of SymbolsOf.  It returns false if any Symbol lies
// outside the byte range.
func BytesOf(symbols []Symbol) ([]byte, bool) {
	out := make([]byte, len(symbols))
	for i, symbol := range symbols {
		if symbol < 0 || symbol > math.MaxUint8 {
			return nil, false
		}
		out[i] = byte(symbol)
	}
	return out, true
}
