package archive

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bufSerializer struct {
	buf bytes.Buffer
}

func (b *bufSerializer) Write(p []byte) (int, error) {
	return b.buf.Write(p)
}

func (b *bufSerializer) Pos() Pos {
	return Pos(b.buf.Len())
}

type mapDeserializer struct {
	shared map[Pos]any
}

func (m *mapDeserializer) Shared(pos Pos) (any, bool) {
	v, ok := m.shared[pos]
	return v, ok
}

func (m *mapDeserializer) AddShared(pos Pos, v any) {
	if m.shared == nil {
		m.shared = make(map[Pos]any)
	}

	m.shared[pos] = v
}

func TestIdentityRoundTrip(t *testing.T) {
	s := &bufSerializer{}
	conv := Identity[string]{}

	value := "hello"

	res, err := conv.Serialize(&value, s)
	require.NoError(t, err)
	assert.Equal(t, Resolver(0), res)
	assert.Zero(t, s.buf.Len(), "identity writes no out-of-line bytes")

	var out string
	conv.Build(&value, 0, res, &out)
	assert.Equal(t, "hello", out)

	back, err := conv.Deserialize(&out, &mapDeserializer{})
	require.NoError(t, err)
	assert.Equal(t, "hello", back)
}

func TestIdentityResolvesToCurrentPos(t *testing.T) {
	s := &bufSerializer{}
	_, err := s.Write([]byte("prefix"))
	require.NoError(t, err)

	value := 42
	res, err := Identity[int]{}.Serialize(&value, s)
	require.NoError(t, err)
	assert.Equal(t, Resolver(6), res)
}

func TestDeserializerShared(t *testing.T) {
	d := &mapDeserializer{}

	_, ok := d.Shared(10)
	assert.False(t, ok)

	d.AddShared(10, "cached")
	v, ok := d.Shared(10)
	require.True(t, ok)
	assert.Equal(t, "cached", v)
}

func TestWrap(t *testing.T) {
	type octal struct{}

	w := Wrap[uint32, octal](0o755)
	assert.Equal(t, uint32(0o755), w.Value)
}
