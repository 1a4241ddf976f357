package huffman

import (
	"bytes"
	"fmt"
	"io"
)

// Tree is an immutable Huffman code tree.
//
// Every internal node has exactly two children: child 0 is reached on a 0 bit
// and child 1 on a 1 bit.  Every leaf holds one Symbol.  A Tree with a single
// Symbol consists of a lone leaf.
//
// A Tree is safe for concurrent use by multiple goroutines.
type Tree struct {
	nodes      []node
	root       nodeIndex
	numSymbols int
}

// Node is a read-only view of one node within a Tree.
type Node struct {
	tree  *Tree
	index nodeIndex
}

type nodeIndex int32

const noChild = nodeIndex(-1)

// node is an arena entry.  Leaves have symbol >= 0 and no children;
// internal nodes have symbol == InvalidSymbol and two children.
type node struct {
	freq     uint64
	symbol   Symbol
	children [2]nodeIndex
}

func (n node) isLeaf() bool {
	return n.symbol != InvalidSymbol
}

// Root returns the root node of the tree.
func (t *Tree) Root() Node {
	return Node{tree: t, index: t.root}
}

// NumSymbols returns the number of distinct Symbols encoded by the tree.
func (t *Tree) NumSymbols() int {
	return t.numSymbols
}

// NumLeaves returns the number of leaf nodes, which is always equal to
// NumSymbols.
func (t *Tree) NumLeaves() int {
	var count int
	for _, n := range t.nodes {
		if n.isLeaf() {
			count++
		}
	}
	return count
}

// NumInternal returns the number of internal nodes.
func (t *Tree) NumInternal() int {
	return len(t.nodes) - t.NumLeaves()
}

// Weight returns the frequency of the root, i.e. the sum of the frequencies
// of all Symbols.
func (t *Tree) Weight() uint64 {
	return t.nodes[t.root].freq
}

// Height returns the length of the longest path from the root to a leaf.  A
// single-leaf tree has height 0.
func (t *Tree) Height() int {
	var height int
	t.walk(func(_ nodeIndex, depth int) {
		if depth > height {
			height = depth
		}
	})
	return height
}

// Symbols returns the Symbols held by the leaves, in ascending order.
func (t *Tree) Symbols() []Symbol {
	out := make(bySymbol, 0, t.numSymbols)
	for _, n := range t.nodes {
		if n.isLeaf() {
			out = append(out, n.symbol)
		}
	}
	out.Sort()
	return out
}

// Dump writes a programmer-readable debugging dump of the tree to the given
// writer.  Nodes are listed in depth-first order, child 0 first, and are
// labelled by their path from the root.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tNumSymbols() = %d\n", t.numSymbols)
	fmt.Fprintf(&buf, "\tHeight() = %d\n", t.Height())
	t.walkPaths(func(index nodeIndex, path BitSequence) {
		n := t.nodes[index]
		fmt.Fprintf(&buf, "\tNode(%s) = {%d, %d}\n", path, n.symbol, n.freq)
	})
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// IsLeaf returns true iff the node holds a Symbol.
func (n Node) IsLeaf() bool {
	return n.tree.nodes[n.index].isLeaf()
}

// Symbol returns the Symbol of a leaf, or InvalidSymbol for an internal node.
func (n Node) Symbol() Symbol {
	return n.tree.nodes[n.index].symbol
}

// Frequency returns the frequency of a leaf, or the sum of the frequencies
// of its children for an internal node.
func (n Node) Frequency() uint64 {
	return n.tree.nodes[n.index].freq
}

// Child returns the child reached on the given bit.  It panics if called on
// a leaf.
func (n Node) Child(bit uint8) Node {
	child := n.tree.nodes[n.index].children[bit&1]
	if child == noChild {
		panic("huffman: Child called on a leaf")
	}
	return Node{tree: n.tree, index: child}
}

func (t *Tree) addLeaf(symbol Symbol, freq uint64) nodeIndex {
	index := nodeIndex(len(t.nodes))
	t.nodes = append(t.nodes, node{freq: freq, symbol: symbol, children: [2]nodeIndex{noChild, noChild}})
	return index
}

func (t *Tree) addInternal(freq uint64, zero, one nodeIndex) nodeIndex {
	index := nodeIndex(len(t.nodes))
	t.nodes = append(t.nodes, node{freq: freq, symbol: InvalidSymbol, children: [2]nodeIndex{zero, one}})
	return index
}

// walk visits every node in depth-first order, child 0 first, reporting the
// depth of each.  It uses an explicit stack; depth is bounded by the number
// of Symbols.  Missing children, which only occur while a tree is under
// construction, are skipped.
func (t *Tree) walk(fn func(index nodeIndex, depth int)) {
	type stackItem struct {
		index nodeIndex
		depth int
	}

	stack := make([]stackItem, 0, log2uint32(uint32(len(t.nodes)))+1)
	stack = append(stack, stackItem{t.root, 0})
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		fn(top.index, top.depth)

		n := t.nodes[top.index]
		// push child 1 first so that child 0 is visited first
		for bit := 1; bit >= 0; bit-- {
			if child := n.children[bit]; child != noChild {
				stack = append(stack, stackItem{child, top.depth + 1})
			}
		}
	}
}

// walkPaths is like walk, but reports the path from the root to each node.
func (t *Tree) walkPaths(fn func(index nodeIndex, path BitSequence)) {
	type stackItem struct {
		index nodeIndex
		path  BitSequence
	}

	stack := make([]stackItem, 0, log2uint32(uint32(len(t.nodes)))+1)
	stack = append(stack, stackItem{t.root, BitSequence{}})
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack[len(stack)-1] = stackItem{}
		stack = stack[:len(stack)-1]

		fn(top.index, top.path)

		n := t.nodes[top.index]
		for bit := 1; bit >= 0; bit-- {
			if child := n.children[bit]; child != noChild {
				stack = append(stack, stackItem{child, top.path.Append(uint8(bit))})
			}
		}
	}
}
