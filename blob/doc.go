// Package blob encodes piecewise-linear fits into compact binary blobs and
// decodes them back.
//
// A segment blob stores one series.Fit: where every segment starts, which
// points it covers, and the line fitted to it. Reconstructing values from a
// blob needs no access to the original points.
//
// # Layout
//
// Every blob starts with a 56-byte section.SegmentHeader followed by two
// payloads, each compressed on its own:
//
//	+--------------------+------------------+---------------------+
//	| header (56 bytes)  | boundary payload | coefficient payload |
//	+--------------------+------------------+---------------------+
//
// The boundary payload holds the start timestamp and last point index of
// every segment, delta encoded by default. The coefficient payload holds the
// slope, intercept and error of every segment, raw or Gorilla encoded,
// followed by the total cost. The header checksum covers both stored
// payloads.
//
// # Encoding
//
//	fit, err := s.Fit(2.5)
//	encoder, err := blob.NewSegmentEncoder(
//	    blob.WithCoefficientEncoding(format.TypeGorilla),
//	    blob.WithCompression(format.CompressionZstd),
//	)
//	data, err := encoder.Encode(fit)
//
// # Decoding
//
//	b, err := blob.DecodeSegments(data)
//	for i, seg := range b.All() {
//	    fmt.Println(i, seg.Start, seg.Slope, seg.Intercept)
//	}
//	v, err := b.At(ts)
//
// Encoders and decoders are not safe for concurrent use. A decoded
// SegmentBlob is immutable and may be shared.
package blob
