package source

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadRunes(t *testing.T) {
	r := New(strings.NewReader("ab"))

	ch, ok, err := r.Peek()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 'a', ch)
	require.Equal(t, 0, r.Offset(), "peek must not advance the offset")

	ch, ok, err = r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 'a', ch)
	require.Equal(t, 1, r.Offset())

	ch, ok, err = r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 'b', ch)
	require.Equal(t, 2, r.Offset())

	_, ok, err = r.Next()
	require.NoError(t, err)
	require.False(t, ok)
	_, ok, err = r.Peek()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOffsetCountsBytes(t *testing.T) {
	r := New(strings.NewReader("é!"))

	ch, ok, err := r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 'é', ch)
	require.Equal(t, 2, r.Offset(), "offset advances by encoded byte length")

	ch, ok, err = r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, '!', ch)
	require.Equal(t, 3, r.Offset())
}

func TestSmallBuffer(t *testing.T) {
	input := strings.Repeat("x", 100)
	r := NewSize(strings.NewReader(input), 16)

	for i := 0; i < 100; i++ {
		ch, ok, err := r.Next()
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, 'x', ch)
	}
	require.Equal(t, 100, r.Offset())

	_, ok, err := r.Next()
	require.NoError(t, err)
	require.False(t, ok)
}
