package huffman

import (
	"container/heap"
	"fmt"

	"github.com/chronos-tachyon/assert"
)

// BuildTree constructs a Huffman tree for the given frequencies.
//
// Symbols with a frequency of 0 are ignored.  If no Symbol has a non-zero
// frequency, an *EmptyAlphabetError is returned.  A negative Symbol yields
// ErrInvalidSymbol.  If the frequencies sum past math.MaxUint64, the root
// frequency cannot be represented and ErrFrequencyOverflow is returned.
//
// The construction is fully deterministic.  The two nodes of lowest
// frequency are repeatedly merged; the first one removed becomes child 0 (bit
// 0) and the second becomes child 1 (bit 1).  Ties between nodes of equal
// frequency are broken by rank, lowest first: leaves are ranked 0 .. n-1 in
// ascending Symbol order, and each merged node takes the next rank n, n+1, ...
// in the order it is created.  Hence equal-frequency leaves are removed in
// Symbol order and before any merged node of the same frequency.
//
func BuildTree(freqs FrequencyTable) (*Tree, error) {
	var ignored int
	for symbol, freq := range freqs {
		if symbol < 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidSymbol, symbol)
		}
		if freq == 0 {
			ignored++
		}
	}

	symbols := freqs.Symbols()
	numSymbols := len(symbols)
	if numSymbols == 0 {
		return nil, &EmptyAlphabetError{Ignored: ignored}
	}

	total, ok := freqs.total()
	if !ok {
		return nil, ErrFrequencyOverflow
	}

	t := &Tree{
		nodes:      make([]node, 0, 2*numSymbols-1),
		numSymbols: numSymbols,
	}

	// Step 1: build a minheap of leaves.
	//
	// Nodes are appended to the arena in rank order, so a node's arena
	// index doubles as its tie-break rank.

	h := freqHeap{list: make([]indexAndFreq, 0, numSymbols)}
	for _, symbol := range symbols {
		freq := freqs[symbol]
		index := t.addLeaf(symbol, freq)
		h.list = append(h.list, indexAndFreq{index, freq})
	}
	h.Init()

	// Step 2: pop the two lowest nodes, merge them into a new internal
	// node, and push the new node back onto the minheap.

	for h.Len() > 1 {
		a := heap.Pop(&h).(indexAndFreq)
		b := heap.Pop(&h).(indexAndFreq)

		freqSum := addFreq(a.freq, b.freq)
		index := t.addInternal(freqSum, a.index, b.index)
		heap.Push(&h, indexAndFreq{index, freqSum})
	}

	root := heap.Pop(&h).(indexAndFreq)
	t.root = root.index

	assert.Assertf(len(t.nodes) == 2*numSymbols-1, "tree has %d nodes for %d symbols", len(t.nodes), numSymbols)
	assert.Assertf(root.freq == total, "root frequency %d != total frequency %d", root.freq, total)
	return t, nil
}

// type indexAndFreq + type freqHeap {{{

type indexAndFreq struct {
	index nodeIndex
	freq  uint64
}

type freqHeap struct {
	list []indexAndFreq
}

func (h *freqHeap) Init() {
	heap.Init(h)
}

func (h *freqHeap) Len() int {
	return len(h.list)
}

func (h *freqHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *freqHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.freq != b.freq {
		return a.freq < b.freq
	}
	return a.index < b.index
}

func (h *freqHeap) Push(x interface{}) {
	h.list = append(h.list, x.(indexAndFreq))
}

func (h *freqHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*freqHeap)(nil)

// }}}
