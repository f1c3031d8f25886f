//go:build gozstd && cgo

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"

	"github.com/arloliu/segfit/errs"
)

// Compress compresses data with the cgo zstd binding at level 3.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decompressed, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if len(decompressed) > MaxPayloadSize {
		return nil, fmt.Errorf("%w: zstd frame holds %d bytes", errs.ErrPayloadTooLarge, len(decompressed))
	}

	return decompressed, nil
}
