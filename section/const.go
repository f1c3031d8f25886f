package section

import "github.com/arloliu/segfit/format"

const (
	// Bit masks of SegmentFlag.Options
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1)
	ReservedBitsMask = 0x000D // Mask for reserved bits (bits 0, 2 and 3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicSegmentV1Opt identifies version 1 of the segment blob format.
	MagicSegmentV1Opt = 0xEC10

	// Boundary encodings (bits 0-3)
	BoundaryTypeRaw   = uint8(format.TypeRaw)
	BoundaryTypeDelta = uint8(format.TypeDelta)

	// Coefficient encodings (bits 4-7)
	CoefficientTypeRaw     = uint8(format.TypeRaw) << 4
	CoefficientTypeGorilla = uint8(format.TypeGorilla) << 4

	// Boundary compression (bits 0-3)
	BoundaryCompressionNone = uint8(format.CompressionNone)
	BoundaryCompressionZstd = uint8(format.CompressionZstd)

	// Coefficient compression (bits 4-7)
	CoefficientCompressionNone = uint8(format.CompressionNone) << 4
	CoefficientCompressionZstd = uint8(format.CompressionZstd) << 4
)

// HeaderSize is the fixed size of a SegmentHeader in bytes.
const HeaderSize = 56
