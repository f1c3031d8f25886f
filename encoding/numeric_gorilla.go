package encoding

import (
	"iter"
	"math"
	"math/bits"

	"github.com/arloliu/segfit/internal/pool"
)

// NumericGorillaEncoder implements the Gorilla XOR compression for float64
// columns.
//
//  1. The first value is stored as its 64 raw bits.
//  2. Every further value is XORed with the previous one:
//     - XOR 0: a single 0 bit.
//     - otherwise a 1 bit, then either 0 and the meaningful bits inside the
//     previous leading/trailing window, or 1, 5 bits of leading zeros,
//     6 bits of block size minus one, and the meaningful bits.
//
// See https://www.vldb.org/pvldb/vol8/p1816-teller.pdf for details.
//
// Bits are packed most significant first. Bytes is valid at any time; the
// final byte is zero-padded.
type NumericGorillaEncoder struct {
	prevValue    uint64
	prevLeading  int
	prevTrailing int
	hasBlock     bool
	seqCount     int
	bitPos       int // bits used in the last byte, 0 when byte aligned
	buf          *pool.ByteBuffer
	count        int
}

var _ ColumnarEncoder[float64] = (*NumericGorillaEncoder)(nil)

// NewNumericGorillaEncoder creates a Gorilla encoder.
func NewNumericGorillaEncoder() *NumericGorillaEncoder {
	return &NumericGorillaEncoder{
		buf: pool.GetBlobBuffer(),
	}
}

func (e *NumericGorillaEncoder) Write(val float64) {
	e.count++
	e.seqCount++
	valBits := math.Float64bits(val)

	if e.seqCount == 1 {
		e.prevValue = valBits
		e.writeBits(valBits, 64)

		return
	}

	xor := valBits ^ e.prevValue
	e.prevValue = valBits

	if xor == 0 {
		e.writeBits(0, 1)
		return
	}

	leading := min(bits.LeadingZeros64(xor), 31)
	trailing := bits.TrailingZeros64(xor)

	if e.hasBlock && leading >= e.prevLeading && trailing >= e.prevTrailing {
		e.writeBits(0b10, 2)
		e.writeBits(xor>>e.prevTrailing, 64-e.prevLeading-e.prevTrailing)

		return
	}

	blockSize := 64 - leading - trailing
	e.writeBits(0b11, 2)
	e.writeBits(uint64(leading), 5)     //nolint:gosec
	e.writeBits(uint64(blockSize-1), 6) //nolint:gosec
	e.writeBits(xor>>trailing, blockSize)

	e.prevLeading = leading
	e.prevTrailing = trailing
	e.hasBlock = true
}

func (e *NumericGorillaEncoder) WriteSlice(values []float64) {
	e.buf.Grow(8 + len(values)*2)
	for _, v := range values {
		e.Write(v)
	}
}

// writeBits appends the low n bits of value, most significant first.
func (e *NumericGorillaEncoder) writeBits(value uint64, n int) {
	for n > 0 {
		if e.bitPos == 0 {
			e.buf.B = append(e.buf.B, 0)
		}

		free := 8 - e.bitPos
		take := min(free, n)
		chunk := byte((value >> (n - take)) & (1<<take - 1))
		e.buf.B[len(e.buf.B)-1] |= chunk << (free - take)

		e.bitPos = (e.bitPos + take) % 8
		n -= take
	}
}

func (e *NumericGorillaEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

func (e *NumericGorillaEncoder) Len() int {
	return e.count
}

func (e *NumericGorillaEncoder) Size() int {
	return e.buf.Len()
}

// Reset starts a new sequence at the next byte boundary.
func (e *NumericGorillaEncoder) Reset() {
	e.prevValue = 0
	e.prevLeading = 0
	e.prevTrailing = 0
	e.hasBlock = false
	e.seqCount = 0
	e.bitPos = 0
}

func (e *NumericGorillaEncoder) Finish() {
	pool.PutBlobBuffer(e.buf)
	e.buf = nil
	e.Reset()
	e.count = 0
}

// NumericGorillaDecoder decodes values written by NumericGorillaEncoder.
type NumericGorillaDecoder struct{}

var _ ColumnarDecoder[float64] = NumericGorillaDecoder{}

func NewNumericGorillaDecoder() NumericGorillaDecoder {
	return NumericGorillaDecoder{}
}

func (d NumericGorillaDecoder) All(data []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if count <= 0 {
			return
		}

		br := bitReader{data: data}

		prev, ok := br.readBits(64)
		if !ok || !yield(math.Float64frombits(prev)) {
			return
		}

		var leading, trailing int
		hasBlock := false

		for range count - 1 {
			changed, ok := br.readBits(1)
			if !ok {
				return
			}

			if changed == 1 {
				newBlock, ok := br.readBits(1)
				if !ok {
					return
				}

				if newBlock == 1 {
					l, ok1 := br.readBits(5)
					size, ok2 := br.readBits(6)
					if !ok1 || !ok2 {
						return
					}
					leading = int(l)                      //nolint:gosec
					trailing = 64 - leading - int(size+1) //nolint:gosec
					if trailing < 0 {
						return
					}
					hasBlock = true
				} else if !hasBlock {
					return
				}

				meaningful, ok := br.readBits(64 - leading - trailing)
				if !ok {
					return
				}
				prev ^= meaningful << trailing
			}

			if !yield(math.Float64frombits(prev)) {
				return
			}
		}
	}
}

// At decodes sequentially up to index.
func (d NumericGorillaDecoder) At(data []byte, index int, count int) (float64, bool) {
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

type bitReader struct {
	data []byte
	pos  int // bit offset into data
}

// readBits reads n bits, most significant first.
func (br *bitReader) readBits(n int) (uint64, bool) {
	if br.pos+n > len(br.data)*8 {
		return 0, false
	}

	var result uint64
	for n > 0 {
		offset := br.pos % 8
		take := min(8-offset, n)
		b := br.data[br.pos/8]
		chunk := (b >> (8 - offset - take)) & (1<<take - 1)

		result = result<<take | uint64(chunk)
		br.pos += take
		n -= take
	}

	return result, true
}
