package huffman

// Decode converts a bit sequence back into the Symbols it encodes, by walking
// the tree from the root: each bit selects child 0 or child 1, and reaching a
// leaf emits its Symbol and restarts at the root.
//
// An empty bit sequence decodes to an empty result.  If the bits run out
// while the walk is partway down the tree, a *TruncatedStreamError is
// returned.
//
// In a single-symbol tree the root is a leaf whose code is "0", so every 0
// bit emits that Symbol; a 1 bit yields an *InvalidCodeError.
//
func Decode(bits BitSequence, t *Tree) ([]Symbol, error) {
	numBits := bits.Len()
	root := t.nodes[t.root]

	if root.isLeaf() {
		out := make([]Symbol, 0, numBits)
		for i := 0; i < numBits; i++ {
			if bits.At(i) != 0 {
				return nil, &InvalidCodeError{Offset: i}
			}
			out = append(out, root.symbol)
		}
		return out, nil
	}

	var out []Symbol
	current := t.root
	var pending int
	for i := 0; i < numBits; i++ {
		current = t.nodes[current].children[bits.At(i)]
		pending++

		if n := t.nodes[current]; n.isLeaf() {
			out = append(out, n.symbol)
			current = t.root
			pending = 0
		}
	}

	if current != t.root {
		return nil, &TruncatedStreamError{Consumed: numBits, Pending: pending}
	}
	if out == nil {
		out = []Symbol{}
	}
	return out, nil
}
