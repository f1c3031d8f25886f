package encoding

import (
	"encoding/binary"
	"iter"

	"github.com/arloliu/segfit/internal/pool"
)

// DeltaEncoder encodes int64 values with delta-of-delta, zigzag and varint
// compression.
//
// The first value is stored as a zigzag varint, the second as the delta from
// the first, and every further value as the difference between consecutive
// deltas. Segment boundaries of a regularly sampled series repeat the same
// delta, so most values take a single byte.
type DeltaEncoder struct {
	prev      int64
	prevDelta int64
	seqCount  int
	temp      [binary.MaxVarintLen64]byte
	buf       *pool.ByteBuffer
	count     int
}

var _ ColumnarEncoder[int64] = (*DeltaEncoder)(nil)

// NewDeltaEncoder creates a delta-of-delta encoder.
func NewDeltaEncoder() *DeltaEncoder {
	return &DeltaEncoder{
		buf: pool.GetBlobBuffer(),
	}
}

// Write encodes a single value.
func (e *DeltaEncoder) Write(value int64) {
	e.count++
	e.seqCount++
	e.buf.Grow(binary.MaxVarintLen64)

	switch e.seqCount {
	case 1:
		e.writeSigned(value)
	case 2:
		e.prevDelta = value - e.prev
		e.writeSigned(e.prevDelta)
	default:
		delta := value - e.prev
		e.writeSigned(delta - e.prevDelta)
		e.prevDelta = delta
	}

	e.prev = value
}

// WriteSlice encodes a slice of values.
func (e *DeltaEncoder) WriteSlice(values []int64) {
	// about two bytes per value once the first two are written
	e.buf.Grow(2*binary.MaxVarintLen64 + 2*len(values))
	for _, v := range values {
		e.Write(v)
	}
}

func (e *DeltaEncoder) writeSigned(v int64) {
	zigzag := (v << 1) ^ (v >> 63)
	n := binary.PutUvarint(e.temp[:], uint64(zigzag)) //nolint:gosec
	e.buf.MustWrite(e.temp[:n])
}

func (e *DeltaEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

func (e *DeltaEncoder) Len() int {
	return e.count
}

func (e *DeltaEncoder) Size() int {
	return e.buf.Len()
}

// Reset starts a new sequence; the next value is stored in full.
func (e *DeltaEncoder) Reset() {
	e.prev = 0
	e.prevDelta = 0
	e.seqCount = 0
}

func (e *DeltaEncoder) Finish() {
	pool.PutBlobBuffer(e.buf)
	e.buf = nil
	e.Reset()
	e.count = 0
}

// DeltaDecoder decodes values written by DeltaEncoder.
type DeltaDecoder struct{}

var _ ColumnarDecoder[int64] = DeltaDecoder{}

func NewDeltaDecoder() DeltaDecoder {
	return DeltaDecoder{}
}

// All yields the decoded values in order.
func (d DeltaDecoder) All(data []byte, count int) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		var (
			cur, delta int64
			offset     int
		)

		for i := range count {
			v, n := readSigned(data[offset:])
			if n <= 0 {
				return
			}
			offset += n

			switch i {
			case 0:
				cur = v
			case 1:
				delta = v
				cur += delta
			default:
				delta += v
				cur += delta
			}

			if !yield(cur) {
				return
			}
		}
	}
}

// At decodes sequentially up to index.
func (d DeltaDecoder) At(data []byte, index int, count int) (int64, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	i := 0
	for v := range d.All(data, index+1) {
		if i == index {
			return v, true
		}
		i++
	}

	return 0, false
}

func readSigned(data []byte) (int64, int) {
	zigzag, n := binary.Uvarint(data)
	if n <= 0 {
		return 0, n
	}

	return int64(zigzag>>1) ^ -int64(zigzag&1), n //nolint:gosec
}
