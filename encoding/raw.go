package encoding

import (
	"iter"
	"math"

	"github.com/arloliu/segfit/endian"
	"github.com/arloliu/segfit/internal/pool"
)

const rawValueSize = 8

// RawValue is the set of column types stored as fixed 8-byte words.
type RawValue interface {
	int64 | float64
}

// RawEncoder stores every value as a fixed 8-byte word in the engine's byte
// order. It trades size for random access in O(1).
type RawEncoder[T RawValue] struct {
	buf    *pool.ByteBuffer
	count  int
	engine endian.EndianEngine
}

var (
	_ ColumnarEncoder[int64]   = (*RawEncoder[int64])(nil)
	_ ColumnarEncoder[float64] = (*RawEncoder[float64])(nil)
)

// NewIntRawEncoder creates a raw encoder for int64 columns.
func NewIntRawEncoder(engine endian.EndianEngine) *RawEncoder[int64] {
	return &RawEncoder[int64]{engine: engine, buf: pool.GetBlobBuffer()}
}

// NewNumericRawEncoder creates a raw encoder for float64 columns.
func NewNumericRawEncoder(engine endian.EndianEngine) *RawEncoder[float64] {
	return &RawEncoder[float64]{engine: engine, buf: pool.GetBlobBuffer()}
}

func (e *RawEncoder[T]) Write(value T) {
	e.count++
	e.buf.Grow(rawValueSize)
	e.buf.B = e.engine.AppendUint64(e.buf.B, toBits(value))
}

func (e *RawEncoder[T]) WriteSlice(values []T) {
	e.buf.Grow(rawValueSize * len(values))
	for _, v := range values {
		e.buf.B = e.engine.AppendUint64(e.buf.B, toBits(v))
	}
	e.count += len(values)
}

func (e *RawEncoder[T]) Bytes() []byte {
	return e.buf.Bytes()
}

func (e *RawEncoder[T]) Len() int {
	return e.count
}

func (e *RawEncoder[T]) Size() int {
	return e.buf.Len()
}

// Reset is a no-op; raw values carry no state between them.
func (e *RawEncoder[T]) Reset() {}

func (e *RawEncoder[T]) Finish() {
	pool.PutBlobBuffer(e.buf)
	e.buf = nil
	e.count = 0
}

// RawDecoder reads values written by RawEncoder with the same engine.
type RawDecoder[T RawValue] struct {
	engine endian.EndianEngine
}

var (
	_ ColumnarDecoder[int64]   = RawDecoder[int64]{}
	_ ColumnarDecoder[float64] = RawDecoder[float64]{}
)

func NewIntRawDecoder(engine endian.EndianEngine) RawDecoder[int64] {
	return RawDecoder[int64]{engine: engine}
}

func NewNumericRawDecoder(engine endian.EndianEngine) RawDecoder[float64] {
	return RawDecoder[float64]{engine: engine}
}

// All yields up to count values. Data whose length is not a multiple of
// eight bytes yields nothing.
func (d RawDecoder[T]) All(data []byte, count int) iter.Seq[T] {
	return func(yield func(T) bool) {
		if len(data)%rawValueSize != 0 {
			return
		}

		for i := range min(count, len(data)/rawValueSize) {
			start := i * rawValueSize
			if !yield(fromBits[T](d.engine.Uint64(data[start : start+rawValueSize]))) {
				return
			}
		}
	}
}

func (d RawDecoder[T]) At(data []byte, index int, count int) (T, bool) {
	var zero T
	if index < 0 || index >= count {
		return zero, false
	}

	start := index * rawValueSize
	if start+rawValueSize > len(data) {
		return zero, false
	}

	return fromBits[T](d.engine.Uint64(data[start : start+rawValueSize])), true
}

func toBits[T RawValue](v T) uint64 {
	switch x := any(v).(type) {
	case float64:
		return math.Float64bits(x)
	case int64:
		return uint64(x) //nolint:gosec
	}

	return 0
}

func fromBits[T RawValue](b uint64) T {
	var v T
	switch p := any(&v).(type) {
	case *float64:
		*p = math.Float64frombits(b)
	case *int64:
		*p = int64(b) //nolint:gosec
	}

	return v
}
