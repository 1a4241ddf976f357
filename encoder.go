package huffman

import (
	"github.com/chronos-tachyon/assert"
	"golang.org/x/sync/errgroup"
)

// Encode concatenates the codes of the given Symbols, in input order.
//
// If a Symbol has no code in the table, a *SymbolNotInAlphabetError is
// returned and no output is produced.
func Encode(symbols []Symbol, codes CodeTable) (BitSequence, error) {
	return encodeRange(symbols, codes, 0)
}

// EncodeChunked is equivalent to Encode, but splits the input into chunks of
// chunkSize Symbols and encodes up to workers chunks concurrently.  A
// non-positive workers means no limit.
//
// The chunk outputs are concatenated in input order, so the result is
// identical to that of Encode.  If several chunks contain Symbols that are
// not in the alphabet, the error reports the first such Symbol in input
// order.
func EncodeChunked(symbols []Symbol, codes CodeTable, chunkSize int, workers int) (BitSequence, error) {
	assert.Assertf(chunkSize > 0, "chunkSize %d <= 0", chunkSize)

	numChunks := (len(symbols) + chunkSize - 1) / chunkSize
	if numChunks <= 1 {
		return Encode(symbols, codes)
	}

	parts := make([]BitSequence, numChunks)
	errs := make([]error, numChunks)

	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i := 0; i < numChunks; i++ {
		i := i
		lo := i * chunkSize
		hi := min(lo+chunkSize, len(symbols))
		g.Go(func() error {
			parts[i], errs[i] = encodeRange(symbols[lo:hi], codes, lo)
			return errs[i]
		})
	}

	if g.Wait() != nil {
		for _, err := range errs {
			if err != nil {
				return BitSequence{}, err
			}
		}
	}

	var total int
	for _, part := range parts {
		total += part.Len()
	}

	var bb bitBuffer
	bb.grow(total)
	for _, part := range parts {
		bb.appendSequence(part)
	}
	return bb.sequence(), nil
}

// encodeRange encodes one run of Symbols.  base is the index of symbols[0]
// within the caller's input, for error reporting.
func encodeRange(symbols []Symbol, codes CodeTable, base int) (BitSequence, error) {
	var bb bitBuffer
	bb.grow(len(symbols) * codes.minLen)
	for i, symbol := range symbols {
		code, found := codes.codes[symbol]
		if !found {
			return BitSequence{}, &SymbolNotInAlphabetError{Symbol: symbol, Index: base + i}
		}
		bb.appendSequence(code)
	}
	return bb.sequence(), nil
}
