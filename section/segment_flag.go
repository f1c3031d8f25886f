package section

import (
	"fmt"

	"github.com/arloliu/segfit/endian"
	"github.com/arloliu/segfit/errs"
	"github.com/arloliu/segfit/format"
)

// SegmentFlag is the packed flag field at the start of a segment header.
type SegmentFlag struct {
	// Options is a packed field for various options.
	// Bit 1 is the endianness flag, 0 means little-endian, 1 means big-endian.
	// Bits 0, 2 and 3 are reserved and must be 0.
	// Bits 4-15 hold the magic number 0xEC10.
	Options uint16

	// EncodingType holds the boundary encoding in bits 0-3 and the
	// coefficient encoding in bits 4-7.
	EncodingType uint8
	// CompressionType holds the boundary compression in bits 0-3 and the
	// coefficient compression in bits 4-7.
	CompressionType uint8
}

var (
	validBoundaryEncodings = map[format.EncodingType]struct{}{
		format.TypeRaw:   {},
		format.TypeDelta: {},
	}

	validCoefficientEncodings = map[format.EncodingType]struct{}{
		format.TypeRaw:     {},
		format.TypeGorilla: {},
	}

	validCompressions = map[format.CompressionType]struct{}{
		format.CompressionNone: {},
		format.CompressionZstd: {},
		format.CompressionS2:   {},
		format.CompressionLZ4:  {},
	}
)

// NewSegmentFlag creates a little-endian flag with delta boundaries, raw
// coefficients and zstd compression of the coefficients.
func NewSegmentFlag() SegmentFlag {
	flag := SegmentFlag{
		Options:         MagicSegmentV1Opt,
		EncodingType:    BoundaryTypeDelta | CoefficientTypeRaw,
		CompressionType: BoundaryCompressionNone | CoefficientCompressionZstd,
	}
	flag.WithLittleEndian()

	return flag
}

func (f SegmentFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

func (f SegmentFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

func (f *SegmentFlag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

func (f *SegmentFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f SegmentFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// BoundaryEncoding returns the encoding of segment starts and last indexes.
func (f SegmentFlag) BoundaryEncoding() format.EncodingType {
	return format.EncodingType(f.EncodingType & 0x0F)
}

func (f *SegmentFlag) SetBoundaryEncoding(enc format.EncodingType) {
	f.EncodingType &^= 0x0F
	f.EncodingType |= uint8(enc) & 0x0F
}

// CoefficientEncoding returns the encoding of slopes, intercepts and errors.
func (f SegmentFlag) CoefficientEncoding() format.EncodingType {
	return format.EncodingType((f.EncodingType >> 4) & 0x0F)
}

func (f *SegmentFlag) SetCoefficientEncoding(enc format.EncodingType) {
	f.EncodingType &^= 0xF0
	f.EncodingType |= (uint8(enc) & 0x0F) << 4
}

func (f SegmentFlag) BoundaryCompression() format.CompressionType {
	return format.CompressionType(f.CompressionType & 0x0F)
}

func (f *SegmentFlag) SetBoundaryCompression(compression format.CompressionType) {
	f.CompressionType &^= 0x0F
	f.CompressionType |= uint8(compression) & 0x0F
}

func (f SegmentFlag) CoefficientCompression() format.CompressionType {
	return format.CompressionType((f.CompressionType >> 4) & 0x0F)
}

func (f *SegmentFlag) SetCoefficientCompression(compression format.CompressionType) {
	f.CompressionType &^= 0xF0
	f.CompressionType |= (uint8(compression) & 0x0F) << 4
}

// Validate checks the magic number, reserved bits, encodings and compressions.
func (f SegmentFlag) Validate() error {
	if f.GetMagicNumber() != MagicSegmentV1Opt {
		return fmt.Errorf("%w: 0x%04X", errs.ErrInvalidMagicNumber, f.GetMagicNumber())
	}

	if f.Options&ReservedBitsMask != 0 {
		return fmt.Errorf("%w: reserved bits 0x%04X", errs.ErrInvalidHeaderFlags, f.Options&ReservedBitsMask)
	}

	if _, ok := validBoundaryEncodings[f.BoundaryEncoding()]; !ok {
		return fmt.Errorf("%w: boundary encoding %s", errs.ErrInvalidHeaderFlags, f.BoundaryEncoding())
	}

	if _, ok := validCoefficientEncodings[f.CoefficientEncoding()]; !ok {
		return fmt.Errorf("%w: coefficient encoding %s", errs.ErrInvalidHeaderFlags, f.CoefficientEncoding())
	}

	if _, ok := validCompressions[f.BoundaryCompression()]; !ok {
		return fmt.Errorf("%w: boundary compression %s", errs.ErrInvalidHeaderFlags, f.BoundaryCompression())
	}

	if _, ok := validCompressions[f.CoefficientCompression()]; !ok {
		return fmt.Errorf("%w: coefficient compression %s", errs.ErrInvalidHeaderFlags, f.CoefficientCompression())
	}

	return nil
}

// GetEndianEngine returns the engine for the flag's byte order.
func (f SegmentFlag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}

// SetEndianEngine records the byte order of engine.
func (f *SegmentFlag) SetEndianEngine(engine endian.EndianEngine) {
	if endian.IsLittleEndian(engine) {
		f.WithLittleEndian()
	} else {
		f.WithBigEndian()
	}
}
