package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_AppendAndPatch(t *testing.T) {
	bb := NewByteBuffer(16)

	bb.AppendByte(0x00)
	bb.MustWrite([]byte{0xAA, 0xBB})
	require.Equal(t, 3, bb.Len())

	// Back-patch the placeholder byte appended first.
	bb.SetByte(0, 0x33)
	require.Equal(t, []byte{0x33, 0xAA, 0xBB}, bb.Bytes())
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte{1, 2, 3})

	capBefore := bb.Cap()
	bb.Reset()

	require.Equal(t, 0, bb.Len())
	require.Equal(t, capBefore, bb.Cap())
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.Grow(1024)
	require.GreaterOrEqual(t, bb.Cap(), 1024)

	// Growing within capacity is a no-op.
	capBefore := bb.Cap()
	bb.Grow(16)
	require.Equal(t, capBefore, bb.Cap())
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte{0xDE, 0xAD})

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
	require.Equal(t, []byte{0xDE, 0xAD}, out.Bytes())
}

func TestByteBufferPool_Reuse(t *testing.T) {
	p := NewByteBufferPool(64, 1024)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.MustWrite([]byte{1, 2, 3})
	p.Put(bb)

	bb2 := p.Get()
	require.Equal(t, 0, bb2.Len())
}

func TestByteBufferPool_DiscardsOversized(t *testing.T) {
	p := NewByteBufferPool(64, 128)

	bb := p.Get()
	bb.Grow(4096)
	p.Put(bb) // exceeds threshold, must not be retained

	bb2 := p.Get()
	require.Less(t, bb2.Cap(), 4096)
	require.Equal(t, 0, bb2.Len())
}

func TestGetBitmapBuffer(t *testing.T) {
	bb := GetBitmapBuffer()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())
	PutBitmapBuffer(bb)
}
