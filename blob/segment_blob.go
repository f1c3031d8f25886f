package blob

import (
	"iter"
	"time"

	"github.com/arloliu/segfit/format"
	"github.com/arloliu/segfit/section"
	"github.com/arloliu/segfit/segment"
	"github.com/arloliu/segfit/series"
)

// Segment is one decoded segment with its time range.
type Segment struct {
	// Start is the timestamp, in microseconds, of the first point.
	Start int64
	// First and Last are inclusive point indexes.
	First int
	Last  int
	// Slope and Intercept describe the line in x-axis units.
	Slope     float64
	Intercept float64
	// Error is the sum of squared residuals over the segment.
	Error float64
}

// SegmentBlob is a decoded segment blob.
type SegmentBlob struct {
	header section.SegmentHeader
	fit    *series.Fit
}

// Fit returns the decoded fit.
func (b SegmentBlob) Fit() *series.Fit {
	return b.fit
}

// Header returns the blob header.
func (b SegmentBlob) Header() section.SegmentHeader {
	return b.header
}

func (b SegmentBlob) SeriesID() uint64 {
	return b.header.SeriesID
}

// Origin returns the time mapped to x = 0.
func (b SegmentBlob) Origin() time.Time {
	return b.header.OriginAsTime().UTC()
}

func (b SegmentBlob) Unit() time.Duration {
	return b.header.Unit
}

func (b SegmentBlob) SegmentCount() int {
	return int(b.header.SegmentCount)
}

func (b SegmentBlob) PointCount() int {
	return int(b.header.PointCount)
}

// TotalCost returns the total cost of the stored segmentation.
func (b SegmentBlob) TotalCost() float64 {
	if b.fit == nil {
		return 0
	}

	return b.fit.Result.TotalCost
}

func (b SegmentBlob) BoundaryEncoding() format.EncodingType {
	return b.header.Flag.BoundaryEncoding()
}

func (b SegmentBlob) CoefficientEncoding() format.EncodingType {
	return b.header.Flag.CoefficientEncoding()
}

// At evaluates the stored approximation at a timestamp in microseconds.
func (b SegmentBlob) At(tsUs int64) (float64, error) {
	return b.fit.At(tsUs)
}

// All returns an iterator over the segments in order.
func (b SegmentBlob) All() iter.Seq2[int, Segment] {
	return func(yield func(int, Segment) bool) {
		if b.fit == nil {
			return
		}

		for i, s := range b.fit.Result.Segments {
			if !yield(i, toSegment(b.fit.Starts[i], s)) {
				return
			}
		}
	}
}

// SegmentAt returns the segment at index, or false when index is out of range.
func (b SegmentBlob) SegmentAt(index int) (Segment, bool) {
	if b.fit == nil || index < 0 || index >= len(b.fit.Result.Segments) {
		return Segment{}, false
	}

	return toSegment(b.fit.Starts[index], b.fit.Result.Segments[index]), true
}

func toSegment(start int64, s segment.SegmentResult[float64]) Segment {
	return Segment{
		Start:     start,
		First:     s.First,
		Last:      s.Last,
		Slope:     s.Info.Slope,
		Intercept: s.Info.Intercept,
		Error:     s.Info.Error,
	}
}
