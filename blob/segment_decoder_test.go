package blob

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/segfit/errs"
	"github.com/arloliu/segfit/format"
	"github.com/arloliu/segfit/internal/hash"
	"github.com/arloliu/segfit/section"
	"github.com/arloliu/segfit/segment"
	"github.com/arloliu/segfit/series"
)

func TestDecodeSegments_RoundTrip(t *testing.T) {
	fit := createTestFit(t, 90)

	boundaryEncodings := []format.EncodingType{format.TypeRaw, format.TypeDelta}
	coefficientEncodings := []format.EncodingType{format.TypeRaw, format.TypeGorilla}
	compressions := []format.CompressionType{
		format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4,
	}
	endians := map[string]SegmentEncoderOption{
		"little": WithLittleEndian(),
		"big":    WithBigEndian(),
	}

	for endianName, endianOpt := range endians {
		for _, be := range boundaryEncodings {
			for _, ce := range coefficientEncodings {
				for _, comp := range compressions {
					name := fmt.Sprintf("%s/%s-%s/%s", endianName, be, ce, comp)
					t.Run(name, func(t *testing.T) {
						encoder, err := NewSegmentEncoder(
							endianOpt,
							WithBoundaryEncoding(be),
							WithCoefficientEncoding(ce),
							WithCompression(comp),
						)
						require.NoError(t, err)

						data, err := encoder.Encode(fit)
						require.NoError(t, err)

						b, err := DecodeSegments(data)
						require.NoError(t, err)
						requireSameFit(t, fit, b.Fit())
						require.Equal(t, be, b.BoundaryEncoding())
						require.Equal(t, ce, b.CoefficientEncoding())
					})
				}
			}
		}
	}
}

func TestNewSegmentDecoder_Header(t *testing.T) {
	fit := createTestFit(t, 30)
	encoder, err := NewSegmentEncoder()
	require.NoError(t, err)
	data, err := encoder.Encode(fit)
	require.NoError(t, err)

	decoder, err := NewSegmentDecoder(data)
	require.NoError(t, err)

	header := decoder.Header()
	require.Equal(t, fit.SeriesID, header.SeriesID)
	require.Equal(t, uint32(30), header.PointCount)
}

func TestNewSegmentDecoder_Errors(t *testing.T) {
	fit := createTestFit(t, 30)
	encoder, err := NewSegmentEncoder(WithCompression(format.CompressionNone))
	require.NoError(t, err)
	data, err := encoder.Encode(fit)
	require.NoError(t, err)

	t.Run("short header", func(t *testing.T) {
		_, err := NewSegmentDecoder(data[:section.HeaderSize-1])
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("bad magic", func(t *testing.T) {
		corrupted := clone(data)
		corrupted[1] = 0x00
		_, err := NewSegmentDecoder(corrupted)
		require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})

	t.Run("truncated payload", func(t *testing.T) {
		_, err := NewSegmentDecoder(data[:len(data)-1])
		require.ErrorIs(t, err, errs.ErrInvalidPayload)
	})

	t.Run("trailing bytes", func(t *testing.T) {
		_, err := NewSegmentDecoder(append(clone(data), 0))
		require.ErrorIs(t, err, errs.ErrInvalidPayload)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		corrupted := clone(data)
		corrupted[len(corrupted)-1] ^= 0xFF
		_, err := NewSegmentDecoder(corrupted)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("zero segments", func(t *testing.T) {
		corrupted := clone(data)
		copy(corrupted[4:8], []byte{0, 0, 0, 0})
		_, err := NewSegmentDecoder(corrupted)
		require.ErrorIs(t, err, errs.ErrInvalidPayload)
	})
}

func TestSegmentDecoder_Decode_Errors(t *testing.T) {
	fit := createTestFit(t, 30)
	encoder, err := NewSegmentEncoder(WithCompression(format.CompressionNone))
	require.NoError(t, err)
	data, err := encoder.Encode(fit)
	require.NoError(t, err)

	t.Run("segment count too large", func(t *testing.T) {
		corrupted := clone(data)
		corrupted[4]++
		_, err := DecodeSegments(corrupted)
		require.ErrorIs(t, err, errs.ErrInvalidPayload)
	})

	t.Run("point count too large", func(t *testing.T) {
		corrupted := clone(data)
		corrupted[8]++
		_, err := DecodeSegments(corrupted)
		require.ErrorIs(t, err, errs.ErrNonContiguousSegments)
	})

	t.Run("garbage payload with valid checksum", func(t *testing.T) {
		corrupted := clone(data)
		for i := section.HeaderSize; i < len(corrupted); i++ {
			corrupted[i] = 0xFF
		}
		resign(corrupted)
		_, err := DecodeSegments(corrupted)
		require.ErrorIs(t, err, errs.ErrInvalidPayload)
	})
}

func TestSegmentDecoder_Decode_CorruptCompressedPayload(t *testing.T) {
	fit := createTestFit(t, 60)
	encoder, err := NewSegmentEncoder(WithCompression(format.CompressionZstd))
	require.NoError(t, err)
	data, err := encoder.Encode(fit)
	require.NoError(t, err)

	for i := section.HeaderSize; i < len(data); i++ {
		data[i] = 0xA5
	}
	resign(data)

	_, err = DecodeSegments(data)
	require.Error(t, err)
}

func TestSegmentDecoder_Decode_ImpossiblePointCount(t *testing.T) {
	encoder, err := NewSegmentEncoder(WithCompression(format.CompressionNone))
	require.NoError(t, err)

	// Built without NewFit, which refuses these segments.
	encode := func(starts []int64, end int64, lasts ...int) []byte {
		result := &segment.Result[float64]{TotalCost: 1}
		first := 0
		for _, last := range lasts {
			result.Segments = append(result.Segments, segment.SegmentResult[float64]{First: first, Last: last})
			first = last + 1
		}

		data, err := encoder.Encode(&series.Fit{
			SeriesID: 1,
			Unit:     time.Microsecond,
			Starts:   starts,
			End:      end,
			Result:   result,
		})
		require.NoError(t, err)

		return data
	}

	t.Run("last segment", func(t *testing.T) {
		data := encode([]int64{0}, 10, 999_999)
		require.Less(t, len(data), 128)

		_, err := DecodeSegments(data)
		require.ErrorIs(t, err, errs.ErrInvalidPayload)
	})

	t.Run("inner segment", func(t *testing.T) {
		data := encode([]int64{0, 5}, 10, 5, 6)

		_, err := DecodeSegments(data)
		require.ErrorIs(t, err, errs.ErrInvalidPayload)
	})

	t.Run("span exactly filled", func(t *testing.T) {
		data := encode([]int64{0, 5}, 10, 4, 10)

		b, err := DecodeSegments(data)
		require.NoError(t, err)
		require.Equal(t, 11, b.PointCount())
	})

	t.Run("segment count beyond payload", func(t *testing.T) {
		data := encode([]int64{0}, 10, 10)

		header, err := section.ParseSegmentHeader(data)
		require.NoError(t, err)
		header.SegmentCount = 1 << 30
		header.PointCount = 1 << 30
		copy(data, header.Bytes())

		_, err = DecodeSegments(data)
		require.ErrorIs(t, err, errs.ErrInvalidPayload)
	})
}

func clone(data []byte) []byte {
	return append([]byte(nil), data...)
}

// resign recomputes the checksum of a little-endian blob after its payloads
// were modified.
func resign(data []byte) {
	header, err := section.ParseSegmentHeader(data)
	if err != nil {
		panic(err)
	}
	header.Checksum = hash.Checksum32(data[section.HeaderSize:])
	copy(data, header.Bytes())
}
