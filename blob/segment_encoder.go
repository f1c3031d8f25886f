package blob

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/arloliu/segfit/compress"
	"github.com/arloliu/segfit/errs"
	"github.com/arloliu/segfit/internal/hash"
	"github.com/arloliu/segfit/internal/options"
	"github.com/arloliu/segfit/internal/pool"
	"github.com/arloliu/segfit/section"
	"github.com/arloliu/segfit/series"
)

// MaxSegmentCount is the maximum number of segments in a single blob.
const MaxSegmentCount = math.MaxUint32

// SegmentEncoder encodes fits into segment blobs.
//
// An encoder holds only its configuration and the statistics of the last
// Encode call, so it may encode any number of fits. It is not safe for
// concurrent use.
type SegmentEncoder struct {
	*SegmentEncoderConfig

	boundaryCodec    compress.Codec
	coefficientCodec compress.Codec
	stats            [2]compress.CompressionStats
}

// NewSegmentEncoder creates an encoder.
//
// Parameters:
//   - opts: Optional byte order, encoding and compression settings
//
// Returns:
//   - *SegmentEncoder: The encoder
//   - error: Invalid option
func NewSegmentEncoder(opts ...SegmentEncoderOption) (*SegmentEncoder, error) {
	cfg := newSegmentEncoderConfig()
	if err := options.ApplyAndValidate(cfg, opts...); err != nil {
		return nil, err
	}

	boundaryCodec, err := compress.CreateCodec(cfg.flag.BoundaryCompression(), "boundary")
	if err != nil {
		return nil, err
	}

	coefficientCodec, err := compress.CreateCodec(cfg.flag.CoefficientCompression(), "coefficient")
	if err != nil {
		return nil, err
	}

	return &SegmentEncoder{
		SegmentEncoderConfig: cfg,
		boundaryCodec:        boundaryCodec,
		coefficientCodec:     coefficientCodec,
	}, nil
}

// Encode serializes fit into a new blob owned by the caller.
//
// The blob holds the header followed by the boundary payload (segment start
// timestamps, last point indexes) and the coefficient payload (slopes,
// intercepts, errors, total cost).
//
// Returns:
//   - []byte: The encoded blob
//   - error: errs.ErrNilFit, errs.ErrTooManySegments or a compression error
func (e *SegmentEncoder) Encode(fit *series.Fit) ([]byte, error) {
	if fit == nil || fit.Result == nil {
		return nil, errs.ErrNilFit
	}

	k := fit.SegmentCount()
	if uint64(k) > MaxSegmentCount || uint64(fit.Len()) > math.MaxUint32 { //nolint:gosec
		return nil, fmt.Errorf("%w: %d segments over %d points", errs.ErrTooManySegments, k, fit.Len())
	}

	boundary := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(boundary)
	coefficient := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(coefficient)

	e.encodeBoundaries(boundary, fit)
	e.encodeCoefficients(coefficient, fit)

	storedBoundary, err := e.boundaryCodec.Compress(boundary.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress boundary payload: %w", err)
	}

	storedCoefficient, err := e.coefficientCodec.Compress(coefficient.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress coefficient payload: %w", err)
	}

	e.stats[0] = compress.CompressionStats{
		Algorithm:      e.flag.BoundaryCompression(),
		OriginalSize:   int64(boundary.Len()),
		CompressedSize: int64(len(storedBoundary)),
	}
	e.stats[1] = compress.CompressionStats{
		Algorithm:      e.flag.CoefficientCompression(),
		OriginalSize:   int64(coefficient.Len()),
		CompressedSize: int64(len(storedCoefficient)),
	}

	header := section.NewSegmentHeader(fit.SeriesID, fit.Origin, fit.Unit)
	header.Flag = e.flag
	header.End = fit.End
	header.SegmentCount = uint32(k)                                //nolint:gosec
	header.PointCount = uint32(fit.Len())                          //nolint:gosec
	header.BoundaryPayloadSize = uint32(len(storedBoundary))       //nolint:gosec
	header.CoefficientPayloadSize = uint32(len(storedCoefficient)) //nolint:gosec

	out := make([]byte, section.HeaderSize, section.HeaderSize+len(storedBoundary)+len(storedCoefficient))
	out = append(out, storedBoundary...)
	out = append(out, storedCoefficient...)

	header.Checksum = hash.Checksum32(out[section.HeaderSize:])
	copy(out, header.Bytes())

	return out, nil
}

// Stats returns the compression statistics of the boundary and coefficient
// payloads of the last Encode call.
func (e *SegmentEncoder) Stats() (boundary, coefficient compress.CompressionStats) {
	return e.stats[0], e.stats[1]
}

// encodeBoundaries writes uvarint(size of starts column), the starts column
// and the last index column.
func (e *SegmentEncoder) encodeBoundaries(dst *pool.ByteBuffer, fit *series.Fit) {
	lasts, cleanup := pool.GetInt64Slice(fit.SegmentCount())
	defer cleanup()
	for i, s := range fit.Result.Segments {
		lasts[i] = int64(s.Last)
	}

	enc := e.newBoundaryEncoder()
	defer enc.Finish()

	enc.WriteSlice(fit.Starts)
	startsSize := enc.Size()
	enc.Reset()
	enc.WriteSlice(lasts)

	dst.B = binary.AppendUvarint(dst.B, uint64(startsSize)) //nolint:gosec
	dst.MustWrite(enc.Bytes())
}

// encodeCoefficients writes uvarint sizes of the slope and intercept
// columns, the three columns, and the total cost as 8 raw bytes.
func (e *SegmentEncoder) encodeCoefficients(dst *pool.ByteBuffer, fit *series.Fit) {
	k := fit.SegmentCount()
	slopes, cleanupSlopes := pool.GetFloat64Slice(k)
	defer cleanupSlopes()
	intercepts, cleanupIntercepts := pool.GetFloat64Slice(k)
	defer cleanupIntercepts()
	errVals, cleanupErrors := pool.GetFloat64Slice(k)
	defer cleanupErrors()

	for i, s := range fit.Result.Segments {
		slopes[i] = s.Info.Slope
		intercepts[i] = s.Info.Intercept
		errVals[i] = s.Info.Error
	}

	enc := e.newCoefficientEncoder()
	defer enc.Finish()

	enc.WriteSlice(slopes)
	slopeSize := enc.Size()
	enc.Reset()
	enc.WriteSlice(intercepts)
	interceptSize := enc.Size() - slopeSize
	enc.Reset()
	enc.WriteSlice(errVals)

	dst.B = binary.AppendUvarint(dst.B, uint64(slopeSize))     //nolint:gosec
	dst.B = binary.AppendUvarint(dst.B, uint64(interceptSize)) //nolint:gosec
	dst.MustWrite(enc.Bytes())
	dst.B = e.engine.AppendUint64(dst.B, math.Float64bits(fit.Result.TotalCost))
}
