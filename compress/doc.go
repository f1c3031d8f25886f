// Package compress provides the payload codecs of segment blobs.
//
// Compression is the second stage after column encoding: the boundary and
// coefficient payloads of a blob are each passed through the codec named in
// the header flag.
//
//   - None: payload stored as encoded
//   - Zstd: best ratio; klauspost/compress by default, valyala/gozstd when
//     built with the gozstd tag and cgo enabled
//   - S2: fast with a good ratio
//   - LZ4: fastest decompression
//
// All codecs are safe for concurrent use.
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	compressed, err := codec.Compress(payload)
//	original, err := codec.Decompress(compressed)
package compress
