// Package errs defines the sentinel errors returned by segfit packages.
//
// Callers should match errors with errors.Is; call sites wrap these sentinels
// with additional context via fmt.Errorf("%w: ...").
package errs

import (
	"errors"
	"fmt"
)

// Solver input errors.
var (
	// ErrInsufficientPoints indicates fewer than two points were supplied.
	ErrInsufficientPoints = errors.New("insufficient points: at least 2 are required")
	// ErrNegativeSegmentCost indicates a negative per-segment cost.
	ErrNegativeSegmentCost = errors.New("segment cost must be non-negative")
	// ErrNilAbsoluteValue indicates that the absolute-value function is missing.
	ErrNilAbsoluteValue = errors.New("absolute value function is nil")
	// ErrNilArithmetic indicates that no number arithmetic was supplied.
	ErrNilArithmetic = errors.New("arithmetic is nil")
	// ErrOutOfOrderPoints indicates x-coordinates that are not strictly increasing.
	ErrOutOfOrderPoints = errors.New("points must have strictly increasing x-coordinates")
	// ErrCorruptBacktrack indicates an inconsistent backtracking table.
	ErrCorruptBacktrack = errors.New("corrupt backtracking table")
	// ErrEmptySession indicates a result was requested before any point was added.
	ErrEmptySession = errors.New("session has no points")
	// ErrInvalidConcurrency indicates a non-positive worker limit.
	ErrInvalidConcurrency = errors.New("concurrency must be positive")
	// ErrInvalidCapacity indicates a negative capacity hint.
	ErrInvalidCapacity = errors.New("capacity must be non-negative")
)

// Series errors.
var (
	// ErrLengthMismatch indicates timestamps and values of different lengths.
	ErrLengthMismatch = errors.New("timestamps and values length mismatch")
	// ErrInvalidTimeUnit indicates a non-positive time unit.
	ErrInvalidTimeUnit = errors.New("time unit must be positive")
	// ErrTimestampOutOfRange indicates a timestamp outside the fitted range.
	ErrTimestampOutOfRange = errors.New("timestamp outside fitted range")
	// ErrInvalidSeriesName indicates an empty series name in a batch.
	ErrInvalidSeriesName = errors.New("invalid series name: must not be empty")
	// ErrDuplicateSeries indicates the same series name twice in a batch.
	ErrDuplicateSeries = errors.New("duplicate series name")
	// ErrSeriesIDCollision indicates two series names with the same ID.
	ErrSeriesIDCollision = errors.New("series ID collision")
)

// Segment blob errors.
var (
	// ErrInvalidHeaderSize indicates a header buffer of the wrong size.
	ErrInvalidHeaderSize = errors.New("invalid header size")
	// ErrInvalidMagicNumber indicates data that is not a segment blob.
	ErrInvalidMagicNumber = errors.New("invalid magic number")
	// ErrInvalidHeaderFlags indicates unknown encoding or compression flags.
	ErrInvalidHeaderFlags = errors.New("invalid header flags")
	// ErrChecksumMismatch indicates a payload whose checksum does not match the header.
	ErrChecksumMismatch = errors.New("payload checksum mismatch")
	// ErrInvalidPayload indicates a truncated or malformed segment payload.
	ErrInvalidPayload = errors.New("invalid segment payload")
	// ErrNonContiguousSegments indicates segments that do not partition the point range.
	ErrNonContiguousSegments = errors.New("segments are not contiguous")
	// ErrTooManySegments indicates a fit that cannot be represented in the blob format.
	ErrTooManySegments = errors.New("too many segments")
	// ErrNilFit indicates a nil fit was passed to the encoder.
	ErrNilFit = errors.New("fit is nil")
	// ErrPayloadTooLarge indicates a payload that decompresses beyond compress.MaxPayloadSize.
	ErrPayloadTooLarge = errors.New("payload too large")
)

// OutOfOrderError describes the first point whose x-coordinate does not
// exceed the previous one. It matches ErrOutOfOrderPoints with errors.Is.
type OutOfOrderError struct {
	Index int
	X     any
	Y     any
	PrevX any
}

func (e *OutOfOrderError) Error() string {
	return fmt.Sprintf("point (%v, %v) at [%d] must have x-coordinate greater than previous value %v",
		e.X, e.Y, e.Index, e.PrevX)
}

// Is reports whether target is ErrOutOfOrderPoints.
func (e *OutOfOrderError) Is(target error) bool {
	return target == ErrOutOfOrderPoints
}
