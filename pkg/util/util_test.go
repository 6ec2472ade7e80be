package util

import (
	"bufio"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapErrorfMatchesCodeAndCause(t *testing.T) {
	cause := errors.New("frontier exhausted")
	err := WrapErrorf(cause, ErrNotFound, "no pair for origin %d", 3)

	require.EqualError(t, err, "no pair for origin 3")
	require.True(t, errors.Is(err, ErrNotFound), "errors.Is must match the code sentinel")
	require.True(t, errors.Is(err, cause), "errors.Is must match the wrapped cause")
	require.False(t, errors.Is(err, ErrBadParamInput))

	// double wrapping keeps both the inner code and the inner cause reachable
	outer := WrapErrorf(err, ErrInternalError, "batch aborted")
	require.True(t, errors.Is(outer, ErrInternalError))
	require.True(t, errors.Is(outer, ErrNotFound))
	require.True(t, errors.Is(outer, cause))
}

func TestWrapErrorfNilCause(t *testing.T) {
	err := WrapErrorf(nil, ErrBadParamInput, "count must be >= 1")
	require.True(t, errors.Is(err, ErrBadParamInput))
	require.False(t, errors.Is(err, ErrNotFound))
}

func TestReadLine(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("first\r\nsecond\nlast without newline"))

	line, err := ReadLine(br)
	require.NoError(t, err)
	require.Equal(t, "first", line)

	line, err = ReadLine(br)
	require.NoError(t, err)
	require.Equal(t, "second", line)

	line, err = ReadLine(br)
	require.NoError(t, err)
	require.Equal(t, "last without newline", line)

	_, err = ReadLine(br)
	require.Error(t, err)
}
