package encoding

import "iter"

// ColumnarEncoder appends values of one column to an internal buffer.
type ColumnarEncoder[T comparable] interface {
	// Bytes returns the encoded column.
	// The returned slice is valid until the next Write, WriteSlice or Finish.
	Bytes() []byte

	// Len returns the number of encoded values.
	Len() int

	// Size returns the number of encoded bytes.
	Size() int

	// Reset clears the encoder state so that the next value starts a new
	// sequence. Data already written stays in the buffer.
	Reset()

	// Finish returns the buffer to the pool. The encoder must not be used
	// afterwards.
	Finish()

	// Write encodes a single value.
	Write(data T)

	// WriteSlice encodes a slice of values.
	WriteSlice(values []T)
}

// ColumnarDecoder reads values produced by the matching ColumnarEncoder.
type ColumnarDecoder[T comparable] interface {
	// All yields up to count values decoded from data. It stops early on
	// malformed or truncated data.
	All(data []byte, count int) iter.Seq[T]

	// At returns the value at index, or false when index is outside
	// [0, count) or data is malformed.
	At(data []byte, index int, count int) (T, bool)
}

// DecodeAll decodes exactly count values, reporting false when data holds
// fewer.
func DecodeAll[T comparable](d ColumnarDecoder[T], data []byte, count int) ([]T, bool) {
	values := make([]T, 0, count)
	for v := range d.All(data, count) {
		values = append(values, v)
	}

	return values, len(values) == count
}
