package compress

import (
	"testing"
)

func BenchmarkAllCodecs_RoundTrip(b *testing.B) {
	data := coefficientPayload(1000)

	for name, codec := range getAllCodecs() {
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for b.Loop() {
				compressed, err := codec.Compress(data)
				if err != nil {
					b.Fatal(err)
				}
				if _, err := codec.Decompress(compressed); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
