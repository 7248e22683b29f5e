package blob

import (
	"math/rand"
	"testing"

	"github.com/arloliu/bibo/format"
	"github.com/arloliu/bibo/section"
	"github.com/stretchr/testify/require"
)

func randomValues(seed int64, n int) []bool {
	rng := rand.New(rand.NewSource(seed))
	values := make([]bool, 0, n)
	v := rng.Intn(2) == 1
	for len(values) < n {
		runLen := 1 + rng.Intn(25)
		if runLen > n-len(values) {
			runLen = n - len(values)
		}
		for i := 0; i < runLen; i++ {
			values = append(values, v)
		}
		v = !v
	}

	return values
}

func countSet(values []bool) int {
	n := 0
	for _, v := range values {
		if v {
			n++
		}
	}

	return n
}

func TestBitmapEncoder_Defaults(t *testing.T) {
	encoder, err := NewBitmapEncoder()
	require.NoError(t, err)

	encoder.WriteSlice([]bool{true, false, true})
	require.Equal(t, 3, encoder.Len())

	bitmap, err := encoder.Finish()
	require.NoError(t, err)

	require.Equal(t, format.TypeRLE, bitmap.Encoding())
	require.Equal(t, format.CompressionNone, bitmap.Compression())
	require.Equal(t, 3, bitmap.ValueCount())
	require.Equal(t, 2, bitmap.SetCount())
	require.GreaterOrEqual(t, len(bitmap.Bytes()), section.HeaderSize)
}

func TestBitmapEncoder_InvalidOptions(t *testing.T) {
	_, err := NewBitmapEncoder(WithEncoding(format.EncodingType(0xF)))
	require.Error(t, err)

	_, err = NewBitmapEncoder(WithCompression(format.CompressionType(0xF)))
	require.Error(t, err)
}

func TestBitmapEncoder_RoundTrip(t *testing.T) {
	values := randomValues(1, 3000)

	encodings := []format.EncodingType{format.TypeRLE, format.TypeRaw}
	compressions := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	for _, enc := range encodings {
		for _, comp := range compressions {
			t.Run(enc.String()+"/"+comp.String(), func(t *testing.T) {
				encoder, err := NewBitmapEncoder(WithEncoding(enc), WithCompression(comp))
				require.NoError(t, err)

				encoder.WriteSlice(values)
				bitmap, err := encoder.Finish()
				require.NoError(t, err)

				decoded, err := DecodeBitmap(bitmap.Bytes())
				require.NoError(t, err)

				require.Equal(t, enc, decoded.Encoding())
				require.Equal(t, comp, decoded.Compression())
				require.Equal(t, len(values), decoded.ValueCount())
				require.Equal(t, countSet(values), decoded.SetCount())
				require.Equal(t, values, decoded.Bools())
			})
		}
	}
}

func TestBitmapEncoder_BigEndianRoundTrip(t *testing.T) {
	values := randomValues(2, 500)

	encoder, err := NewBitmapEncoder(WithBigEndian(), WithCompression(format.CompressionS2))
	require.NoError(t, err)

	encoder.WriteSlice(values)
	bitmap, err := encoder.Finish()
	require.NoError(t, err)

	decoded, err := DecodeBitmap(bitmap.Bytes())
	require.NoError(t, err)
	require.Equal(t, values, decoded.Bools())
}

func TestBitmapEncoder_WriteRun(t *testing.T) {
	encoder, err := NewBitmapEncoder()
	require.NoError(t, err)

	encoder.WriteRun(true, 1000)
	encoder.WriteRun(false, 1000)

	bitmap, err := encoder.Finish()
	require.NoError(t, err)
	require.Equal(t, 2000, bitmap.ValueCount())
	require.Equal(t, 1000, bitmap.SetCount())

	// Two repeated runs plus the header stay tiny.
	require.Equal(t, section.HeaderSize+6, len(bitmap.Bytes()))
}

func TestBitmapEncoder_Empty(t *testing.T) {
	encoder, err := NewBitmapEncoder()
	require.NoError(t, err)

	bitmap, err := encoder.Finish()
	require.NoError(t, err)
	require.Equal(t, 0, bitmap.ValueCount())
	require.Equal(t, 0, bitmap.SetCount())

	decoded, err := DecodeBitmap(bitmap.Bytes())
	require.NoError(t, err)
	require.Empty(t, decoded.Bools())

	reader := decoded.Reader()
	_, ok := reader.Next()
	require.False(t, ok)
}

func TestBitmapEncoder_FinishTwice(t *testing.T) {
	encoder, err := NewBitmapEncoder()
	require.NoError(t, err)

	encoder.Write(true)
	_, err = encoder.Finish()
	require.NoError(t, err)

	_, err = encoder.Finish()
	require.Error(t, err)
	require.Panics(t, func() { encoder.Write(true) })
}

func TestBitmapEncoder_RLEBeatsRawOnRuns(t *testing.T) {
	rle, err := NewBitmapEncoder(WithEncoding(format.TypeRLE))
	require.NoError(t, err)
	raw, err := NewBitmapEncoder(WithEncoding(format.TypeRaw))
	require.NoError(t, err)

	rle.WriteRun(true, 100000)
	raw.WriteRun(true, 100000)

	rleBitmap, err := rle.Finish()
	require.NoError(t, err)
	rawBitmap, err := raw.Finish()
	require.NoError(t, err)

	require.Less(t, len(rleBitmap.Bytes()), len(rawBitmap.Bytes()))
}
