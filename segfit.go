// Package segfit computes optimal piecewise-linear approximations of point
// sequences and time series, and stores them as compact binary blobs.
//
// Given points with strictly increasing x-coordinates and a non-negative
// per-segment cost, the solver splits the points into contiguous segments,
// fits a least-squares line to each, and minimizes the sum of squared errors
// plus the cost charged once per segment. A small cost yields many short
// segments; a large cost yields few long ones.
//
// # Core Features
//
//   - Exact dynamic-programming segmentation with optional pruning
//   - Generic arithmetic: float64, float32 and arbitrary-precision decimals
//   - Incremental sessions that accept points one at a time
//   - Parallel sweeps over several segment costs and several series
//   - Segment blobs with Raw, Delta and Gorilla columns and optional
//     Zstd, S2 or LZ4 compression
//
// # Basic Usage
//
// Fitting a time series:
//
//	import "github.com/arloliu/segfit"
//
//	s := series.Series{Name: "cpu.usage", Timestamps: ts, Values: values}
//	fit, _ := segfit.Fit(s, 2.5)
//	for i, seg := range fit.Result.Segments {
//	    fmt.Println(fit.Starts[i], seg.Info.Slope, seg.Info.Intercept)
//	}
//
// Encoding and decoding a fit:
//
//	encoder, _ := segfit.NewDefaultSegmentEncoder()
//	data, _ := encoder.Encode(fit)
//	b, _ := segfit.DecodeSegments(data)
//	v, _ := b.At(ts[3])
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the segment,
// series and blob packages. For generic arithmetic, incremental sessions and
// cost sweeps, use the segment package directly.
package segfit

import (
	"context"

	"github.com/arloliu/segfit/blob"
	"github.com/arloliu/segfit/format"
	"github.com/arloliu/segfit/internal/hash"
	"github.com/arloliu/segfit/segment"
	"github.com/arloliu/segfit/series"
)

var defaultSegmentOptions = []blob.SegmentEncoderOption{
	blob.WithLittleEndian(),
	blob.WithBoundaryEncoding(format.TypeDelta),
	blob.WithBoundaryCompression(format.CompressionNone),
	blob.WithCoefficientEncoding(format.TypeGorilla),
	blob.WithCoefficientCompression(format.CompressionZstd),
}

// Solve segments points with float64 arithmetic.
//
// Parameters:
//   - points: At least two points with strictly increasing x-coordinates
//   - segmentCost: Non-negative cost charged once per segment
//   - opts: Solver options, see segment.WithPruning and segment.WithCapacity
//
// Returns:
//   - *segment.Result[float64]: Segments ordered left to right
//   - error: errs.ErrInsufficientPoints, errs.ErrNegativeSegmentCost or
//     *errs.OutOfOrderError
func Solve[C segment.Coordinate](points []segment.Point[C], segmentCost float64, opts ...segment.Option[float64]) (*segment.Result[float64], error) {
	return segment.SolveFloat64(points, segmentCost, opts...)
}

// Fit computes the optimal approximation of a time series.
//
// Example:
//
//	fit, err := segfit.Fit(s, 2.5, series.WithUnit(time.Minute))
func Fit(s series.Series, segmentCost float64, opts ...series.Option) (*series.Fit, error) {
	return s.Fit(segmentCost, opts...)
}

// FitAll fits several series in parallel. The returned fits are
// index-aligned with the input.
func FitAll(ctx context.Context, s []series.Series, segmentCost float64, opts ...series.Option) ([]*series.Fit, error) {
	return series.FitAll(ctx, s, segmentCost, opts...)
}

// NewSegmentEncoder creates a segment blob encoder with custom options.
//
// Available options:
//   - blob.WithLittleEndian() / blob.WithBigEndian() / blob.WithNativeEndian()
//   - blob.WithBoundaryEncoding(format.TypeRaw|TypeDelta)
//   - blob.WithCoefficientEncoding(format.TypeRaw|TypeGorilla)
//   - blob.WithBoundaryCompression(format.CompressionNone|Zstd|S2|LZ4)
//   - blob.WithCoefficientCompression(format.CompressionNone|Zstd|S2|LZ4)
//   - blob.WithCompression(...) for both payloads
func NewSegmentEncoder(opts ...blob.SegmentEncoderOption) (*blob.SegmentEncoder, error) {
	return blob.NewSegmentEncoder(opts...)
}

// NewDefaultSegmentEncoder creates an encoder with recommended settings:
// little-endian, delta-encoded uncompressed boundaries and Gorilla-encoded
// coefficients compressed with Zstd.
func NewDefaultSegmentEncoder() (*blob.SegmentEncoder, error) {
	return blob.NewSegmentEncoder(defaultSegmentOptions...)
}

// DecodeSegments decodes a segment blob.
func DecodeSegments(data []byte) (blob.SegmentBlob, error) {
	return blob.DecodeSegments(data)
}

// SeriesID returns the 64-bit identifier of a series name, as stored in
// segment blob headers.
func SeriesID(name string) uint64 {
	return hash.ID(name)
}
