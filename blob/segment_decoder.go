package blob

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/arloliu/segfit/compress"
	"github.com/arloliu/segfit/encoding"
	"github.com/arloliu/segfit/endian"
	"github.com/arloliu/segfit/errs"
	"github.com/arloliu/segfit/format"
	"github.com/arloliu/segfit/internal/hash"
	"github.com/arloliu/segfit/section"
	"github.com/arloliu/segfit/segment"
	"github.com/arloliu/segfit/series"
)

// SegmentDecoder decodes a segment blob produced by SegmentEncoder.
//
// Note: The SegmentDecoder is NOT thread-safe and NOT reusable.
type SegmentDecoder struct {
	data   []byte
	header section.SegmentHeader
	engine endian.EndianEngine
}

// NewSegmentDecoder parses the header of data and checks the payload sizes
// and checksum. Payloads are not decompressed until Decode is called.
//
// Returns:
//   - *SegmentDecoder: Decoder ready for Decode
//   - error: Header error, errs.ErrInvalidPayload or errs.ErrChecksumMismatch
func NewSegmentDecoder(data []byte) (*SegmentDecoder, error) {
	header, err := section.ParseSegmentHeader(data)
	if err != nil {
		return nil, err
	}

	if want := section.HeaderSize + header.PayloadSize(); len(data) != want {
		return nil, fmt.Errorf("%w: blob is %d bytes, header describes %d", errs.ErrInvalidPayload, len(data), want)
	}

	if sum := hash.Checksum32(data[section.HeaderSize:]); sum != header.Checksum {
		return nil, fmt.Errorf("%w: got 0x%08X, want 0x%08X", errs.ErrChecksumMismatch, sum, header.Checksum)
	}

	if header.SegmentCount == 0 || header.PointCount < header.SegmentCount {
		return nil, fmt.Errorf("%w: %d segments over %d points", errs.ErrInvalidPayload, header.SegmentCount, header.PointCount)
	}

	return &SegmentDecoder{
		data:   data,
		header: header,
		engine: header.Flag.GetEndianEngine(),
	}, nil
}

// Header returns the parsed header.
func (d *SegmentDecoder) Header() section.SegmentHeader {
	return d.header
}

// Decode decompresses both payloads and rebuilds the fit.
//
// Returns:
//   - SegmentBlob: The decoded blob
//   - error: Decompression error, errs.ErrInvalidPayload or
//     errs.ErrNonContiguousSegments
func (d *SegmentDecoder) Decode() (SegmentBlob, error) {
	boundaryEnd := section.HeaderSize + int(d.header.BoundaryPayloadSize)

	boundary, err := d.decompress(d.header.Flag.BoundaryCompression(), d.data[section.HeaderSize:boundaryEnd])
	if err != nil {
		return SegmentBlob{}, fmt.Errorf("decompress boundary payload: %w", err)
	}

	coefficient, err := d.decompress(d.header.Flag.CoefficientCompression(), d.data[boundaryEnd:])
	if err != nil {
		return SegmentBlob{}, fmt.Errorf("decompress coefficient payload: %w", err)
	}

	k := int(d.header.SegmentCount)

	starts, lasts, err := d.decodeBoundaries(boundary, k)
	if err != nil {
		return SegmentBlob{}, err
	}

	result, err := d.decodeCoefficients(coefficient, k)
	if err != nil {
		return SegmentBlob{}, err
	}

	first := 0
	for i, last := range lasts {
		if last < int64(first) || last >= int64(d.header.PointCount) {
			return SegmentBlob{}, fmt.Errorf("%w: segment %d ends at %d", errs.ErrNonContiguousSegments, i, last)
		}
		result.Segments[i].First = first
		result.Segments[i].Last = int(last)
		first = int(last) + 1
	}

	if err := result.Validate(int(d.header.PointCount)); err != nil {
		return SegmentBlob{}, err
	}

	fit, err := series.NewFit(d.header.SeriesID, d.header.Origin, d.header.Unit, starts, d.header.End, result)
	if err != nil {
		return SegmentBlob{}, err
	}

	return SegmentBlob{header: d.header, fit: fit}, nil
}

func (d *SegmentDecoder) decompress(comp format.CompressionType, data []byte) ([]byte, error) {
	codec, err := compress.GetCodec(comp)
	if err != nil {
		return nil, err
	}

	return codec.Decompress(data)
}

func (d *SegmentDecoder) boundaryDecoder() encoding.ColumnarDecoder[int64] {
	if d.header.Flag.BoundaryEncoding() == format.TypeRaw {
		return encoding.NewIntRawDecoder(d.engine)
	}

	return encoding.NewDeltaDecoder()
}

func (d *SegmentDecoder) coefficientDecoder() encoding.ColumnarDecoder[float64] {
	if d.header.Flag.CoefficientEncoding() == format.TypeGorilla {
		return encoding.NewNumericGorillaDecoder()
	}

	return encoding.NewNumericRawDecoder(d.engine)
}

func (d *SegmentDecoder) decodeBoundaries(payload []byte, k int) ([]int64, []int64, error) {
	sizes, body, err := readSizes(payload, 1)
	if err != nil {
		return nil, nil, err
	}

	// Delta and raw values take at least one byte each.
	if k > sizes[0] {
		return nil, nil, fmt.Errorf("%w: %d segments in a %d byte start column", errs.ErrInvalidPayload, k, sizes[0])
	}

	dec := d.boundaryDecoder()

	starts, ok := encoding.DecodeAll(dec, body[:sizes[0]], k)
	if !ok {
		return nil, nil, fmt.Errorf("%w: short segment start column", errs.ErrInvalidPayload)
	}

	lasts, ok := encoding.DecodeAll(dec, body[sizes[0]:], k)
	if !ok {
		return nil, nil, fmt.Errorf("%w: short last index column", errs.ErrInvalidPayload)
	}

	return starts, lasts, nil
}

func (d *SegmentDecoder) decodeCoefficients(payload []byte, k int) (*segment.Result[float64], error) {
	sizes, body, err := readSizes(payload, 2)
	if err != nil {
		return nil, err
	}

	if len(body) < sizes[0]+sizes[1]+8 {
		return nil, fmt.Errorf("%w: coefficient payload too short", errs.ErrInvalidPayload)
	}

	costOffset := len(body) - 8
	dec := d.coefficientDecoder()

	slopes, ok1 := encoding.DecodeAll(dec, body[:sizes[0]], k)
	intercepts, ok2 := encoding.DecodeAll(dec, body[sizes[0]:sizes[0]+sizes[1]], k)
	errVals, ok3 := encoding.DecodeAll(dec, body[sizes[0]+sizes[1]:costOffset], k)
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("%w: short coefficient column", errs.ErrInvalidPayload)
	}

	result := &segment.Result[float64]{
		TotalCost: math.Float64frombits(d.engine.Uint64(body[costOffset:])),
		Segments:  make([]segment.SegmentResult[float64], k),
	}
	for i := range result.Segments {
		result.Segments[i].Info = segment.SegmentInfo[float64]{
			Slope:     slopes[i],
			Intercept: intercepts[i],
			Error:     errVals[i],
		}
	}

	return result, nil
}

// readSizes reads n uvarint column sizes from the start of payload and
// returns them with the remaining bytes.
func readSizes(payload []byte, n int) ([]int, []byte, error) {
	sizes := make([]int, n)
	total := 0
	for i := range sizes {
		size, read := binary.Uvarint(payload)
		if read <= 0 {
			return nil, nil, fmt.Errorf("%w: bad column size", errs.ErrInvalidPayload)
		}
		payload = payload[read:]
		if size > uint64(len(payload)) {
			return nil, nil, fmt.Errorf("%w: column size %d exceeds payload", errs.ErrInvalidPayload, size)
		}
		sizes[i] = int(size) //nolint:gosec
		total += sizes[i]
	}

	if total > len(payload) {
		return nil, nil, fmt.Errorf("%w: column sizes exceed payload", errs.ErrInvalidPayload)
	}

	return sizes, payload, nil
}

// DecodeSegments decodes a segment blob in one call.
func DecodeSegments(data []byte) (SegmentBlob, error) {
	dec, err := NewSegmentDecoder(data)
	if err != nil {
		return SegmentBlob{}, err
	}

	return dec.Decode()
}
