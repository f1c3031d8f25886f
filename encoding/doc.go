// Package encoding implements the column codecs used by segment blobs.
//
// A segment blob stores a fit as five columns of equal length: segment start
// timestamps and last point indexes (int64), and slopes, intercepts and
// errors (float64). Each column is written by a ColumnarEncoder and read back
// by the matching ColumnarDecoder:
//
//	enc := encoding.NewDeltaEncoder()
//	defer enc.Finish()
//	enc.WriteSlice(starts)
//	payload = append(payload, enc.Bytes()...)
//
//	starts, ok := encoding.DecodeAll(encoding.NewDeltaDecoder(), data, count)
//
// # Built-in Implementations
//
// Integer columns:
//   - IntRawEncoder / IntRawDecoder: fixed 8 bytes per value in the engine's byte order
//   - DeltaEncoder / DeltaDecoder: zigzag varint delta-of-delta, about 1 byte per
//     value for evenly spaced boundaries
//
// Float columns:
//   - NumericRawEncoder / NumericRawDecoder: fixed 8 bytes per value
//   - NumericGorillaEncoder / NumericGorillaDecoder: XOR compression of
//     consecutive values, effective when neighbouring segments share slopes or
//     the error column holds many zeros
//
// Encoders are not safe for concurrent use. Decoders are stateless values and
// may be shared.
package encoding
