package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/segfit/errs"
)

// S2Compressor provides S2 block compression.
//
// Payloads are small and written once, so Compress trades some speed for
// ratio with s2.EncodeBetter. The output is a regular S2 block.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.EncodeBetter(nil, data), nil
}

// Decompress reads the decoded length from the block header and rejects
// blocks larger than MaxPayloadSize before allocating.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}
	if size > MaxPayloadSize {
		return nil, fmt.Errorf("%w: s2 block declares %d bytes", errs.ErrPayloadTooLarge, size)
	}

	decoded, err := s2.Decode(make([]byte, size), data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return decoded, nil
}
