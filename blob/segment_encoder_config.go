package blob

import (
	"fmt"

	"github.com/arloliu/segfit/encoding"
	"github.com/arloliu/segfit/endian"
	"github.com/arloliu/segfit/format"
	"github.com/arloliu/segfit/internal/options"
	"github.com/arloliu/segfit/section"
)

// SegmentEncoderConfig holds the flag and byte order used by a SegmentEncoder.
type SegmentEncoderConfig struct {
	flag   section.SegmentFlag
	engine endian.EndianEngine
}

func newSegmentEncoderConfig() *SegmentEncoderConfig {
	flag := section.NewSegmentFlag()

	return &SegmentEncoderConfig{
		flag:   flag,
		engine: flag.GetEndianEngine(),
	}
}

// Validate implements options.Validator.
func (c *SegmentEncoderConfig) Validate() error {
	return c.flag.Validate()
}

// Flag returns the flag written to every encoded header.
func (c *SegmentEncoderConfig) Flag() section.SegmentFlag {
	return c.flag
}

func (c *SegmentEncoderConfig) setBoundaryEncoding(enc format.EncodingType) error {
	switch enc { //nolint: exhaustive
	case format.TypeRaw, format.TypeDelta:
		c.flag.SetBoundaryEncoding(enc)
		return nil
	default:
		return fmt.Errorf("invalid boundary encoding: %v", enc)
	}
}

func (c *SegmentEncoderConfig) setCoefficientEncoding(enc format.EncodingType) error {
	switch enc { //nolint: exhaustive
	case format.TypeRaw, format.TypeGorilla:
		c.flag.SetCoefficientEncoding(enc)
		return nil
	default:
		return fmt.Errorf("invalid coefficient encoding: %v", enc)
	}
}

func validCompression(comp format.CompressionType) bool {
	switch comp {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		return true
	default:
		return false
	}
}

func (c *SegmentEncoderConfig) setEngine(engine endian.EndianEngine) {
	c.flag.SetEndianEngine(engine)
	c.engine = c.flag.GetEndianEngine()
}

func (c *SegmentEncoderConfig) newBoundaryEncoder() encoding.ColumnarEncoder[int64] {
	if c.flag.BoundaryEncoding() == format.TypeRaw {
		return encoding.NewIntRawEncoder(c.engine)
	}

	return encoding.NewDeltaEncoder()
}

func (c *SegmentEncoderConfig) newCoefficientEncoder() encoding.ColumnarEncoder[float64] {
	if c.flag.CoefficientEncoding() == format.TypeGorilla {
		return encoding.NewNumericGorillaEncoder()
	}

	return encoding.NewNumericRawEncoder(c.engine)
}

// SegmentEncoderOption configures a SegmentEncoder.
type SegmentEncoderOption = options.Option[*SegmentEncoderConfig]

// WithLittleEndian writes fixed-width fields little-endian. It is the default.
func WithLittleEndian() SegmentEncoderOption {
	return options.NoError(func(c *SegmentEncoderConfig) {
		c.setEngine(endian.GetLittleEndianEngine())
	})
}

// WithBigEndian writes fixed-width fields big-endian.
func WithBigEndian() SegmentEncoderOption {
	return options.NoError(func(c *SegmentEncoderConfig) {
		c.setEngine(endian.GetBigEndianEngine())
	})
}

// WithNativeEndian writes fixed-width fields in the host's byte order.
func WithNativeEndian() SegmentEncoderOption {
	return options.NoError(func(c *SegmentEncoderConfig) {
		c.setEngine(endian.GetNativeEngine())
	})
}

// WithBoundaryEncoding sets the encoding of segment starts and last indexes,
// format.TypeRaw or format.TypeDelta (default).
func WithBoundaryEncoding(enc format.EncodingType) SegmentEncoderOption {
	return options.New(func(c *SegmentEncoderConfig) error {
		return c.setBoundaryEncoding(enc)
	})
}

// WithCoefficientEncoding sets the encoding of slopes, intercepts and errors,
// format.TypeRaw (default) or format.TypeGorilla.
func WithCoefficientEncoding(enc format.EncodingType) SegmentEncoderOption {
	return options.New(func(c *SegmentEncoderConfig) error {
		return c.setCoefficientEncoding(enc)
	})
}

// WithBoundaryCompression sets the compression of the boundary payload.
func WithBoundaryCompression(comp format.CompressionType) SegmentEncoderOption {
	return options.New(func(c *SegmentEncoderConfig) error {
		if !validCompression(comp) {
			return fmt.Errorf("invalid boundary compression: %v", comp)
		}
		c.flag.SetBoundaryCompression(comp)

		return nil
	})
}

// WithCoefficientCompression sets the compression of the coefficient payload.
func WithCoefficientCompression(comp format.CompressionType) SegmentEncoderOption {
	return options.New(func(c *SegmentEncoderConfig) error {
		if !validCompression(comp) {
			return fmt.Errorf("invalid coefficient compression: %v", comp)
		}
		c.flag.SetCoefficientCompression(comp)

		return nil
	})
}

// WithCompression sets the same compression for both payloads.
func WithCompression(comp format.CompressionType) SegmentEncoderOption {
	return options.New(func(c *SegmentEncoderConfig) error {
		if !validCompression(comp) {
			return fmt.Errorf("invalid compression: %v", comp)
		}
		c.flag.SetBoundaryCompression(comp)
		c.flag.SetCoefficientCompression(comp)

		return nil
	})
}
