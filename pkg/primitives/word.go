package primitives

import (
	"errors"
	"fmt"
	"strings"
)

// WordLength is the number of letters in every word of the puzzle.
const WordLength = 5

// ErrInvalidWord is returned when a string is not a 5-letter ASCII word.
var ErrInvalidWord = errors.New("invalid word")

// Word is a 5-letter lowercase word. It is a comparable value type.
type Word [WordLength]byte

// ParseWord converts s to a Word. Uppercase letters are folded to lowercase; any other
// character, or a length other than 5, is rejected.
func ParseWord(s string) (Word, error) {
	var w Word
	if len(s) != WordLength {
		return w, fmt.Errorf("%w: %q has %d characters, want %d", ErrInvalidWord, s, len(s), WordLength)
	}
	for i := range WordLength {
		b := s[i]
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		if b < minChar || b > maxChar {
			return Word{}, fmt.Errorf("%w: %q contains %q", ErrInvalidWord, s, s[i])
		}
		w[i] = b
	}
	return w, nil
}

// MustParseWord is like ParseWord but panics on error. Intended for constants and tests.
func MustParseWord(s string) Word {
	w, err := ParseWord(s)
	if err != nil {
		panic(err)
	}
	return w
}

// ParseWords converts every string in ss, failing on the first invalid one.
func ParseWords(ss []string) ([]Word, error) {
	words := make([]Word, 0, len(ss))
	for _, s := range ss {
		w, err := ParseWord(s)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, nil
}

// MustParseWords is like ParseWords but panics on error.
func MustParseWords(ss ...string) []Word {
	words, err := ParseWords(ss)
	if err != nil {
		panic(err)
	}
	return words
}

// IsZero reports whether w is the zero Word, which is never a valid word.
func (w Word) IsZero() bool {
	return w == Word{}
}

// Contains reports whether the letter b occurs anywhere in w.
func (w Word) Contains(b byte) bool {
	for _, c := range w {
		if c == b {
			return true
		}
	}
	return false
}

// Letters returns the set of distinct letters in w.
func (w Word) Letters() CharSet {
	var c CharSet
	for _, b := range w {
		// Words are validated at construction.
		_ = c.Add(rune(b))
	}
	return c
}

func (w Word) String() string {
	return string(w[:])
}

// WordStrings converts words back to strings, mostly for printing.
func WordStrings(words []Word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.String()
	}
	return out
}

// JoinWords renders words separated by sep.
func JoinWords(words []Word, sep string) string {
	return strings.Join(WordStrings(words), sep)
}
