package huffman

import (
	"fmt"

	"github.com/chronos-tachyon/assert"
)

// TreeFromCodes reconstructs a decoding Tree from a CodeTable, such as a
// canonical table produced by CodeTable.Canonical.
//
// The table must describe a complete code: every internal node of the
// resulting tree must have two children.  A single-symbol table must assign
// the code "0".  Violations yield ErrCodeTableInconsistent.
//
// Frequencies are not recoverable from a CodeTable, so every node of the
// returned Tree has frequency 0.
//
func TreeFromCodes(ct CodeTable) (*Tree, error) {
	numSymbols := len(ct.codes)
	if numSymbols == 0 {
		return nil, &EmptyAlphabetError{}
	}

	t := &Tree{
		nodes:      make([]node, 0, 2*numSymbols-1),
		numSymbols: numSymbols,
	}

	if numSymbols == 1 {
		symbol := ct.Symbols()[0]
		if code := ct.codes[symbol]; !code.Equal(singleSymbolCode) {
			return nil, fmt.Errorf("%w: sole symbol %d has code %s, expected %s",
				ErrCodeTableInconsistent, symbol, code, singleSymbolCode)
		}
		t.root = t.addLeaf(symbol, 0)
		return t, nil
	}

	t.root = t.addInternal(0, noChild, noChild)
	for _, symbol := range ct.Symbols() {
		if err := t.insertCode(symbol, ct.codes[symbol]); err != nil {
			return nil, err
		}
	}

	for index, n := range t.nodes {
		if n.isLeaf() {
			continue
		}
		for bit, child := range n.children {
			if child == noChild {
				path := t.pathTo(nodeIndex(index)).Append(uint8(bit))
				return nil, fmt.Errorf("%w: no code begins with %s", ErrCodeTableInconsistent, path)
			}
		}
	}

	assert.Assertf(t.NumInternal() == numSymbols-1, "%d internal nodes for %d symbols", t.NumInternal(), numSymbols)
	return t, nil
}

// TreeFromLengths builds the canonical code for the given code lengths, as
// transmitted by a peer, and returns both the decoding Tree and the
// CodeTable.  Lengths must be positive, and must describe a complete code
// (Kraft sum of exactly 1), except that a single Symbol of length 1 is
// permitted.
//
func TreeFromLengths(lengths map[Symbol]int) (*Tree, CodeTable, error) {
	if len(lengths) == 0 {
		return nil, CodeTable{}, &EmptyAlphabetError{}
	}

	sorted := make(bySize, 0, len(lengths))
	for symbol, size := range lengths {
		if symbol < 0 {
			return nil, CodeTable{}, fmt.Errorf("%w: %d", ErrInvalidSymbol, symbol)
		}
		if size <= 0 {
			return nil, CodeTable{}, fmt.Errorf("%w: invalid bit length %d for symbol %d", ErrCodeTableInconsistent, size, symbol)
		}
		sorted = append(sorted, symbolAndSize{symbol, size})
	}
	sorted.Sort()

	// permit degenerate code with 1 symbol
	if len(sorted) == 1 && sorted[0].size != 1 {
		return nil, CodeTable{}, fmt.Errorf("%w: sole symbol %d has bit length %d, expected 1",
			ErrCodeTableInconsistent, sorted[0].symbol, sorted[0].size)
	}

	ct := newCodeTable(assignCanonical(sorted))
	t, err := TreeFromCodes(ct)
	if err != nil {
		return nil, CodeTable{}, err
	}
	return t, ct, nil
}

// insertCode adds the leaf for one code, creating internal nodes along the
// way.
func (t *Tree) insertCode(symbol Symbol, code BitSequence) error {
	current := t.root
	last := code.Len() - 1
	for i := 0; i < last; i++ {
		bit := code.At(i)
		child := t.nodes[current].children[bit]
		switch {
		case child == noChild:
			child = t.addInternal(0, noChild, noChild)
			t.nodes[current].children[bit] = child
		case t.nodes[child].isLeaf():
			return fmt.Errorf("%w: code for symbol %d is a prefix of code %s for symbol %d",
				ErrCodeTableInconsistent, t.nodes[child].symbol, code, symbol)
		}
		current = child
	}

	bit := code.At(last)
	if existing := t.nodes[current].children[bit]; existing != noChild {
		return fmt.Errorf("%w: code %s for symbol %d collides with another code",
			ErrCodeTableInconsistent, code, symbol)
	}
	leaf := t.addLeaf(symbol, 0)
	t.nodes[current].children[bit] = leaf
	return nil
}

// pathTo returns the path from the root to the node at index.
func (t *Tree) pathTo(target nodeIndex) BitSequence {
	var found BitSequence
	t.walkPaths(func(index nodeIndex, path BitSequence) {
		if index == target {
			found = path
		}
	})
	return found
}
