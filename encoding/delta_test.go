package encoding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDelta_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		values []int64
	}{
		{name: "Single", values: []int64{1_700_000_000_000_000}},
		{name: "Zero", values: []int64{0, 0, 0}},
		{name: "Regular", values: []int64{1000, 2000, 3000, 4000, 5000}},
		{name: "Indexes", values: []int64{0, 2, 4, 6, 8, 19}},
		{name: "Negative", values: []int64{-50, -10, 30, -100}},
		{name: "Extremes", values: []int64{math.MinInt64, math.MaxInt64, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := NewDeltaEncoder()
			defer enc.Finish()

			enc.WriteSlice(tt.values)
			require.Equal(t, len(tt.values), enc.Len())
			require.Equal(t, len(enc.Bytes()), enc.Size())

			got, ok := DecodeAll(NewDeltaDecoder(), enc.Bytes(), len(tt.values))
			require.True(t, ok)
			require.Equal(t, tt.values, got)

			for i, want := range tt.values {
				v, ok := NewDeltaDecoder().At(enc.Bytes(), i, len(tt.values))
				require.True(t, ok)
				require.Equal(t, want, v)
			}
		})
	}
}

func TestDelta_RegularSpacingIsCompact(t *testing.T) {
	enc := NewDeltaEncoder()
	defer enc.Finish()

	start := int64(1_700_000_000_000_000)
	for i := range 100 {
		enc.Write(start + int64(i)*10_000_000)
	}

	// first value and first delta, then one byte per zero delta-of-delta
	require.Less(t, enc.Size(), 9+4+98+1)
}

func TestDelta_WriteMatchesWriteSlice(t *testing.T) {
	values := []int64{5, 9, 20, 21, 40}

	single := NewDeltaEncoder()
	defer single.Finish()
	for _, v := range values {
		single.Write(v)
	}

	bulk := NewDeltaEncoder()
	defer bulk.Finish()
	bulk.WriteSlice(values)

	require.Equal(t, single.Bytes(), bulk.Bytes())
}

func TestDelta_Reset(t *testing.T) {
	enc := NewDeltaEncoder()
	defer enc.Finish()

	enc.WriteSlice([]int64{10, 20})
	first := enc.Size()
	enc.Reset()
	enc.WriteSlice([]int64{7, 8})

	require.Equal(t, 4, enc.Len())

	got, ok := DecodeAll(NewDeltaDecoder(), enc.Bytes()[first:], 2)
	require.True(t, ok)
	require.Equal(t, []int64{7, 8}, got)
}

func TestDeltaDecoder_Malformed(t *testing.T) {
	dec := NewDeltaDecoder()

	_, ok := DecodeAll(dec, nil, 1)
	require.False(t, ok)

	// truncated varint
	_, ok = DecodeAll(dec, []byte{0x80}, 1)
	require.False(t, ok)

	enc := NewDeltaEncoder()
	defer enc.Finish()
	enc.WriteSlice([]int64{1, 2, 3})

	got, ok := DecodeAll(dec, enc.Bytes(), 4)
	require.False(t, ok)
	require.Equal(t, []int64{1, 2, 3}, got)

	_, ok = dec.At(enc.Bytes(), 3, 3)
	require.False(t, ok)
	_, ok = dec.At(enc.Bytes(), -1, 3)
	require.False(t, ok)
}
