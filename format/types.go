// Package format defines the encoding and compression identifiers stored in
// segment blob headers.
package format

import (
	"fmt"
	"strings"
)

type (
	EncodingType    uint8
	CompressionType uint8
)

const (
	TypeRaw     EncodingType = 0x1 // TypeRaw stores fixed-width values.
	TypeDelta   EncodingType = 0x2 // TypeDelta stores zigzag varint delta-of-deltas.
	TypeGorilla EncodingType = 0x3 // TypeGorilla stores XOR-compressed float64 values.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (e EncodingType) String() string {
	switch e {
	case TypeRaw:
		return "Raw"
	case TypeDelta:
		return "Delta"
	case TypeGorilla:
		return "Gorilla"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseEncodingType parses a case-insensitive encoding name such as "delta".
func ParseEncodingType(name string) (EncodingType, error) {
	for _, e := range []EncodingType{TypeRaw, TypeDelta, TypeGorilla} {
		if strings.EqualFold(name, e.String()) {
			return e, nil
		}
	}

	return 0, fmt.Errorf("unknown encoding %q", name)
}

// ParseCompressionType parses a case-insensitive compression name such as "zstd".
func ParseCompressionType(name string) (CompressionType, error) {
	for _, c := range []CompressionType{CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4} {
		if strings.EqualFold(name, c.String()) {
			return c, nil
		}
	}

	return 0, fmt.Errorf("unknown compression %q", name)
}
