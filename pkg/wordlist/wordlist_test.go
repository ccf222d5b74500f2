package wordlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"crosswarped.com/wordlecalc/pkg/primitives"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "trailing newline", input: "cigar\nrebut\nsissy\n", want: []string{"cigar", "rebut", "sissy"}},
		{name: "no trailing newline", input: "cigar\nrebut", want: []string{"cigar", "rebut"}},
		{name: "crlf and spaces", input: " CIGAR\r\nrebut \r\n", want: []string{"cigar", "rebut"}},
		{name: "empty", input: "", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, err := Read(strings.NewReader(tt.input))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, primitives.WordStrings(words)); diff != "" {
				t.Errorf("Read() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadErrors(t *testing.T) {
	_, err := Read(strings.NewReader("cigar\n\nrebut\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = Read(strings.NewReader("cigar\nreb\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, primitives.ErrInvalidWord)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.txt")
	require.NoError(t, os.WriteFile(path, []byte("cigar\nrebut\n"), 0o600))

	words, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"cigar", "rebut"}, primitives.WordStrings(words))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestSuperset(t *testing.T) {
	answers := primitives.MustParseWords("cigar", "rebut", "sissy")
	guesses := primitives.MustParseWords("aahed", "rebut", "zymic")

	got := Superset(answers, guesses)
	assert.Equal(t, []string{"aahed", "rebut", "zymic", "cigar", "sissy"}, primitives.WordStrings(got))
	assert.Equal(t, "aahed", guesses[0].String())
	assert.Len(t, guesses, 3)
}
