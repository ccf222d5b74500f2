package prompt

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPattern(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("1 2 2 0 2\n00120\n"), &out)

	pat, err := p.ReadPattern()
	require.NoError(t, err)
	assert.Equal(t, "12202", pat.String())

	pat, err = p.ReadPattern()
	require.NoError(t, err)
	assert.Equal(t, "00120", pat.String())

	_, err = p.ReadPattern()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 3, strings.Count(out.String(), "Enter Result: "))
}

func TestReadPatternReprompts(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("1 2 2\n1 2 3 0 2\nhello\n\n2 2 2 2 2\n"), &out)

	pat, err := p.ReadPattern()
	require.NoError(t, err)
	assert.True(t, pat.IsSolved())
	assert.Equal(t, 4, strings.Count(out.String(), "Invalid!"))
	assert.Equal(t, 5, strings.Count(out.String(), "Enter Result: "))
}

func TestReadPatternStop(t *testing.T) {
	p := New(strings.NewReader("bad\nSTOP\n0 0 0 0 0\n"), io.Discard)
	_, err := p.ReadPattern()
	assert.ErrorIs(t, err, ErrStop)
}

func TestReadWord(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("roat\nROATE\n"), &out)

	w, err := p.ReadWord("Starting Word: ")
	require.NoError(t, err)
	assert.Equal(t, "roate", w.String())
	assert.Equal(t, 1, strings.Count(out.String(), "Invalid!"))

	_, err = p.ReadWord("Starting Word: ")
	assert.ErrorIs(t, err, io.EOF)
}
