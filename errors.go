package huffman

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyAlphabet         = errors.New("huffman: empty alphabet")
	ErrSymbolNotInAlphabet   = errors.New("huffman: symbol not in alphabet")
	ErrTruncatedStream       = errors.New("huffman: truncated stream")
	ErrInvalidCode           = errors.New("huffman: invalid code")
	ErrInvalidSymbol         = errors.New("huffman: invalid symbol")
	ErrCodeTableInconsistent = errors.New("huffman: inconsistent code table")
	ErrFrequencyOverflow     = errors.New("huffman: total frequency overflows uint64")
)

// EmptyAlphabetError is returned when a tree is requested for a
// FrequencyTable with no symbols of non-zero frequency.
type EmptyAlphabetError struct {
	// Ignored is the number of entries that were present with a frequency
	// of zero.
	Ignored int
}

func (err *EmptyAlphabetError) Error() string {
	if err.Ignored == 0 {
		return "huffman: cannot build a tree from an empty frequency table"
	}
	return fmt.Sprintf("huffman: cannot build a tree from a frequency table with %d zero-frequency symbols and no others", err.Ignored)
}

// Is makes errors.Is(err, ErrEmptyAlphabet) succeed.
func (err *EmptyAlphabetError) Is(target error) bool {
	return target == ErrEmptyAlphabet
}

// SymbolNotInAlphabetError is returned when asked to encode a Symbol that has
// no entry in the CodeTable.
type SymbolNotInAlphabetError struct {
	Symbol Symbol

	// Index is the position of Symbol within the input sequence.
	Index int
}

func (err *SymbolNotInAlphabetError) Error() string {
	return fmt.Sprintf("huffman: symbol %d at index %d is not in the alphabet", err.Symbol, err.Index)
}

// Is makes errors.Is(err, ErrSymbolNotInAlphabet) succeed.
func (err *SymbolNotInAlphabetError) Is(target error) bool {
	return target == ErrSymbolNotInAlphabet
}

// TruncatedStreamError is returned when a bit sequence ends in the middle of
// a code.
type TruncatedStreamError struct {
	// Consumed is the total number of bits read, i.e. the input length.
	Consumed int

	// Pending is the number of bits read since the last complete symbol.
	Pending int
}

func (err *TruncatedStreamError) Error() string {
	return fmt.Sprintf("huffman: bit stream ends inside a code: %d of %d bits form an incomplete code", err.Pending, err.Consumed)
}

// Is makes errors.Is(err, ErrTruncatedStream) succeed.
func (err *TruncatedStreamError) Is(target error) bool {
	return target == ErrTruncatedStream
}

// InvalidCodeError is returned when a bit sequence contains a bit pattern
// that no code in the tree can start with.  This is only possible for the
// degenerate single-symbol tree, whose sole code is "0".
type InvalidCodeError struct {
	// Offset is the index of the offending bit.
	Offset int
}

func (err *InvalidCodeError) Error() string {
	return fmt.Sprintf("huffman: invalid code at bit offset %d", err.Offset)
}

// Is makes errors.Is(err, ErrInvalidCode) succeed.
func (err *InvalidCodeError) Is(target error) bool {
	return target == ErrInvalidCode
}

var (
	_ error = (*EmptyAlphabetError)(nil)
	_ error = (*SymbolNotInAlphabetError)(nil)
	_ error = (*TruncatedStreamError)(nil)
	_ error = (*InvalidCodeError)(nil)
)
