package huffman

import (
	"errors"
	"io"

	"github.com/icza/bitio"
)

// WriteTo writes the packed representation of the sequence to w, padding the
// final byte with zero bits.  The bit count itself is not written; callers
// that need to recover the sequence must transmit Len() by other means.
func (bs BitSequence) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bitio.NewWriter(cw)

	full := bs.n >> 3
	for _, b := range bs.packed[:full] {
		if err := bw.WriteByte(b); err != nil {
			return cw.n, err
		}
	}
	if rem := uint8(bs.n & 7); rem != 0 {
		last := uint64(bs.packed[full] >> (8 - rem))
		if err := bw.WriteBits(last, rem); err != nil {
			return cw.n, err
		}
	}

	err := bw.Close()
	return cw.n, err
}

var _ io.WriterTo = BitSequence{}

// ReadBitSequence reads exactly n bits from r, as written by
// BitSequence.WriteTo.  Padding bits in the final byte are consumed but
// ignored.  If r ends early, io.ErrUnexpectedEOF is returned.
//
// Unless r implements io.ByteReader, it is buffered and may be read past the
// final byte of the sequence.
func ReadBitSequence(r io.Reader, n int) (BitSequence, error) {
	if n < 0 {
		return BitSequence{}, errors.New("huffman: negative bit count")
	}

	br := bitio.NewReader(r)
	packed := make([]byte, byteLen(n))

	full := n >> 3
	for i := 0; i < full; i++ {
		b, err := br.ReadByte()
		if err != nil {
			return BitSequence{}, unexpectedEOF(err)
		}
		packed[i] = b
	}
	if rem := uint8(n & 7); rem != 0 {
		bits, err := br.ReadBits(rem)
		if err != nil {
			return BitSequence{}, unexpectedEOF(err)
		}
		packed[full] = byte(bits) << (8 - rem)
	}

	return BitSequence{packed: packed, n: n}, nil
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
