package bibo

import (
	"testing"

	"github.com/arloliu/bibo/blob"
	"github.com/arloliu/bibo/format"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	values := []bool{true, true, false, true, false, false, false, true}

	data, err := Encode(values)
	require.NoError(t, err)

	bitmap, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, values, bitmap.Bools())
	require.Equal(t, 4, bitmap.SetCount())
}

func TestEncodeDecode_WithOptions(t *testing.T) {
	values := make([]bool, 10000)
	for i := range values {
		values[i] = i < 6000
	}

	data, err := Encode(values,
		blob.WithEncoding(format.TypeRLE),
		blob.WithCompression(format.CompressionZstd),
	)
	require.NoError(t, err)

	bitmap, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, format.CompressionZstd, bitmap.Compression())
	require.Equal(t, 6000, bitmap.SetCount())
	require.Equal(t, values, bitmap.Bools())
}

func TestNewBitmapEncoder(t *testing.T) {
	encoder, err := NewBitmapEncoder()
	require.NoError(t, err)

	encoder.WriteRun(true, 64)
	bitmap, err := encoder.Finish()
	require.NoError(t, err)

	reader := bitmap.Reader()
	v, length, ok := reader.NextRun()
	require.True(t, ok)
	require.True(t, v)
	require.Equal(t, 64, length)
}

func TestDecode_RejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not a bitmap blob, definitely"))
	require.Error(t, err)
}
