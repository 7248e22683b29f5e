package blob

import (
	"testing"

	"github.com/arloliu/bibo/errs"
	"github.com/arloliu/bibo/format"
	"github.com/arloliu/bibo/section"
	"github.com/stretchr/testify/require"
)

func encodeBitmap(t *testing.T, values []bool, opts ...BitmapEncoderOption) Bitmap {
	t.Helper()

	encoder, err := NewBitmapEncoder(opts...)
	require.NoError(t, err)
	encoder.WriteSlice(values)

	bitmap, err := encoder.Finish()
	require.NoError(t, err)

	return bitmap
}

func TestDecodeBitmap_TooShort(t *testing.T) {
	_, err := DecodeBitmap(make([]byte, section.HeaderSize-1))
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
}

func TestDecodeBitmap_BadMagic(t *testing.T) {
	bitmap := encodeBitmap(t, []bool{true})
	data := append([]byte(nil), bitmap.Bytes()...)
	data[1] = 0x00

	_, err := DecodeBitmap(data)
	require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
}

func TestDecodeBitmap_TruncatedPayload(t *testing.T) {
	bitmap := encodeBitmap(t, randomValues(3, 1000))
	data := append([]byte(nil), bitmap.Bytes()...)

	_, err := DecodeBitmap(data[:len(data)-1])
	require.ErrorIs(t, err, errs.ErrInvalidPayloadSize)
}

func TestDecodeBitmap_CorruptPayload(t *testing.T) {
	bitmap := encodeBitmap(t, randomValues(4, 1000))
	data := append([]byte(nil), bitmap.Bytes()...)
	data[len(data)-1] ^= 0xFF

	_, err := DecodeBitmap(data)
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)
}

func TestDecodeBitmap_CorruptHeaderChecksumField(t *testing.T) {
	bitmap := encodeBitmap(t, randomValues(5, 100))
	data := append([]byte(nil), bitmap.Bytes()...)
	data[16] ^= 0xFF // checksum field

	_, err := DecodeBitmap(data)
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)
}

func TestBitmap_At(t *testing.T) {
	values := randomValues(6, 800)

	for _, enc := range []format.EncodingType{format.TypeRLE, format.TypeRaw} {
		t.Run(enc.String(), func(t *testing.T) {
			bitmap := encodeBitmap(t, values, WithEncoding(enc))
			decoded, err := DecodeBitmap(bitmap.Bytes())
			require.NoError(t, err)

			for _, idx := range []int{0, 1, 63, 64, 399, 799} {
				got, ok := decoded.At(idx)
				require.True(t, ok, "idx=%d", idx)
				require.Equal(t, values[idx], got, "idx=%d", idx)
			}

			_, ok := decoded.At(800)
			require.False(t, ok)
			_, ok = decoded.At(-1)
			require.False(t, ok)
		})
	}
}

func TestBitmap_All_StopsAtValueCount(t *testing.T) {
	// Five values leave literal tail padding in the RLE payload; the bitmap
	// view must hide it.
	values := []bool{true, false, true, true, false}
	bitmap := encodeBitmap(t, values)

	decoded, err := DecodeBitmap(bitmap.Bytes())
	require.NoError(t, err)
	require.Equal(t, values, decoded.Bools())
}

func TestRunReader_NextAndRuns(t *testing.T) {
	values := []bool{true, true, true, false, false, true}

	for _, enc := range []format.EncodingType{format.TypeRLE, format.TypeRaw} {
		t.Run(enc.String(), func(t *testing.T) {
			bitmap := encodeBitmap(t, values, WithEncoding(enc))
			decoded, err := DecodeBitmap(bitmap.Bytes())
			require.NoError(t, err)

			reader := decoded.Reader()

			v, length, ok := reader.NextRun()
			require.True(t, ok)
			require.True(t, v)
			require.Equal(t, 3, length)

			v, length, ok = reader.NextRun()
			require.True(t, ok)
			require.False(t, v)
			require.Equal(t, 2, length)

			v, nok := reader.Next()
			require.True(t, nok)
			require.True(t, v)

			_, _, ok = reader.NextRun()
			require.False(t, ok)
			_, nok = reader.Next()
			require.False(t, nok)
		})
	}
}

func TestRunReader_TailPaddingNotObservable(t *testing.T) {
	// The last run of real values must not be extended by literal padding.
	values := []bool{true, false, false, false}
	bitmap := encodeBitmap(t, values)

	decoded, err := DecodeBitmap(bitmap.Bytes())
	require.NoError(t, err)

	reader := decoded.Reader()
	_, _, _ = reader.NextRun()

	v, length, ok := reader.NextRun()
	require.True(t, ok)
	require.False(t, v)
	require.Equal(t, 3, length)

	_, _, ok = reader.NextRun()
	require.False(t, ok)
}

func TestRunReader_Skip(t *testing.T) {
	values := randomValues(7, 1200)

	for _, enc := range []format.EncodingType{format.TypeRLE, format.TypeRaw} {
		t.Run(enc.String(), func(t *testing.T) {
			bitmap := encodeBitmap(t, values, WithEncoding(enc))
			decoded, err := DecodeBitmap(bitmap.Bytes())
			require.NoError(t, err)

			reader := decoded.Reader()

			k := 500
			require.Equal(t, countSet(values[:k]), reader.Skip(k))

			got, ok := reader.Next()
			require.True(t, ok)
			require.Equal(t, values[k], got)

			// Skipping past the end stops at the last value.
			rest := values[k+1:]
			require.Equal(t, countSet(rest), reader.Skip(len(values)))
			_, ok = reader.Next()
			require.False(t, ok)
		})
	}
}

func TestBitmap_ConcurrentReaders(t *testing.T) {
	values := randomValues(8, 2000)
	bitmap := encodeBitmap(t, values, WithCompression(format.CompressionLZ4))

	decoded, err := DecodeBitmap(bitmap.Bytes())
	require.NoError(t, err)

	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			defer func() { done <- struct{}{} }()

			reader := decoded.Reader()
			count := 0
			for {
				if _, ok := reader.Next(); !ok {
					break
				}
				count++
			}
			if count != len(values) {
				t.Errorf("reader consumed %d values, want %d", count, len(values))
			}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}
}
