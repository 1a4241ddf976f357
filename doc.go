// Package huffman builds Huffman codes from symbol frequencies and uses them
// to encode symbol sequences into bit sequences and back.
//
// The pipeline is:
//
//     freqs := huffman.FrequenciesOfBytes(data)
//     tree, err := huffman.BuildTree(freqs)
//     codes := huffman.GenerateCodes(tree)
//     bits, err := huffman.Encode(huffman.SymbolsOf(data), codes)
//     symbols, err := huffman.Decode(bits, tree)
//
// Tree construction is deterministic; see BuildTree for the tie-break rule.
// Trees, CodeTables and BitSequences are immutable and may be shared freely
// between goroutines.
//
// No container format is defined.  A caller that stores or transmits encoded
// data must also carry the bit count and either the code lengths (see
// CodeTable.Canonical and TreeFromLengths) or the frequencies.
//
// References:
//
//     <https://www.rfc-editor.org/rfc/rfc1951.html>, Section 3.2.2
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffman
