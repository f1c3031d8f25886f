package section

import (
	"fmt"
	"time"

	"github.com/arloliu/segfit/errs"
)

// SegmentHeader is the fixed-size header at the start of a segment blob.
type SegmentHeader struct {
	// Flag is a packed field for the magic number, byte order, encodings
	// and compressions.
	Flag SegmentFlag // byte offset 0-3
	// SegmentCount is the number of segments.
	SegmentCount uint32 // byte offset 4-7
	// PointCount is the number of fitted points.
	PointCount uint32 // byte offset 8-11
	// BoundaryPayloadSize is the stored size of the boundary payload.
	BoundaryPayloadSize uint32 // byte offset 12-15
	// CoefficientPayloadSize is the stored size of the coefficient payload.
	CoefficientPayloadSize uint32 // byte offset 16-19
	// Checksum covers both stored payloads.
	Checksum uint32 // byte offset 20-23
	// SeriesID identifies the fitted series.
	SeriesID uint64 // byte offset 24-31
	// Origin is the timestamp, in microseconds, mapped to x = 0.
	Origin int64 // byte offset 32-39
	// End is the timestamp, in microseconds, of the last fitted point.
	End int64 // byte offset 40-47
	// Unit is the duration of one x unit.
	Unit time.Duration // byte offset 48-55
}

// NewSegmentHeader creates a header with the default flag.
func NewSegmentHeader(seriesID uint64, originUs int64, unit time.Duration) *SegmentHeader {
	return &SegmentHeader{
		Flag:     NewSegmentFlag(),
		SeriesID: seriesID,
		Origin:   originUs,
		Unit:     unit,
	}
}

// Parse parses the header from a byte slice of exactly HeaderSize bytes.
//
// Returns:
//   - error: errs.ErrInvalidHeaderSize, errs.ErrInvalidMagicNumber or
//     errs.ErrInvalidHeaderFlags
func (h *SegmentHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: got %d bytes, want %d", errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}

	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.EncodingType = data[2]
	h.Flag.CompressionType = data[3]

	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.Flag.GetEndianEngine()

	h.SegmentCount = engine.Uint32(data[4:8])
	h.PointCount = engine.Uint32(data[8:12])
	h.BoundaryPayloadSize = engine.Uint32(data[12:16])
	h.CoefficientPayloadSize = engine.Uint32(data[16:20])
	h.Checksum = engine.Uint32(data[20:24])
	h.SeriesID = engine.Uint64(data[24:32])
	h.Origin = int64(engine.Uint64(data[32:40]))       //nolint:gosec
	h.End = int64(engine.Uint64(data[40:48]))          //nolint:gosec
	h.Unit = time.Duration(engine.Uint64(data[48:56])) //nolint:gosec

	return nil
}

// Bytes serializes the header.
func (h *SegmentHeader) Bytes() []byte {
	b := make([]byte, 4, HeaderSize)

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.EncodingType
	b[3] = h.Flag.CompressionType

	engine := h.Flag.GetEndianEngine()
	b = engine.AppendUint32(b, h.SegmentCount)
	b = engine.AppendUint32(b, h.PointCount)
	b = engine.AppendUint32(b, h.BoundaryPayloadSize)
	b = engine.AppendUint32(b, h.CoefficientPayloadSize)
	b = engine.AppendUint32(b, h.Checksum)
	b = engine.AppendUint64(b, h.SeriesID)
	b = engine.AppendUint64(b, uint64(h.Origin)) //nolint:gosec
	b = engine.AppendUint64(b, uint64(h.End))    //nolint:gosec
	b = engine.AppendUint64(b, uint64(h.Unit))   //nolint:gosec

	return b
}

// PayloadSize returns the combined stored size of both payloads.
func (h *SegmentHeader) PayloadSize() int {
	return int(h.BoundaryPayloadSize) + int(h.CoefficientPayloadSize)
}

// OriginAsTime returns the origin as a time.Time.
func (h *SegmentHeader) OriginAsTime() time.Time {
	return time.UnixMicro(h.Origin)
}

// ParseSegmentHeader parses a SegmentHeader from the start of data.
func ParseSegmentHeader(data []byte) (SegmentHeader, error) {
	if len(data) < HeaderSize {
		return SegmentHeader{}, fmt.Errorf("%w: got %d bytes, want at least %d", errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}

	h := SegmentHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return SegmentHeader{}, err
	}

	return h, nil
}
