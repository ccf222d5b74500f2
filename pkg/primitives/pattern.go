package primitives

import (
	"errors"
	"fmt"
	"strings"
)

// Mark is the feedback for a single letter of a guess.
type Mark uint8

const (
	// Absent means the letter is not in the answer (or every copy is already accounted for).
	Absent Mark = iota
	// Present means the letter is in the answer at a different position.
	Present
	// Exact means the letter is in the answer at this position.
	Exact
)

// NumPatterns is the number of distinct patterns, 3^5.
const NumPatterns = 243

// ErrInvalidPattern is returned when feedback input cannot be parsed.
var ErrInvalidPattern = errors.New("invalid pattern")

// Pattern is the feedback for one guess against one answer.
type Pattern [WordLength]Mark

// Solved is the all-Exact pattern.
var Solved = Pattern{Exact, Exact, Exact, Exact, Exact}

// Feedback computes the pattern for guess against answer.
//
// Exact matches are taken first; every unmatched answer letter then satisfies at most
// one Present mark, left to right, so a letter is never marked more times than it
// appears in the answer.
func Feedback(guess, answer Word) Pattern {
	var p Pattern
	var unmatched [numChars]int8
	for i := range WordLength {
		if guess[i] == answer[i] {
			p[i] = Exact
			continue
		}
		unmatched[answer[i]-minChar]++
	}
	for i := range WordLength {
		if p[i] == Exact {
			continue
		}
		if k := guess[i] - minChar; unmatched[k] > 0 {
			p[i] = Present
			unmatched[k]--
		}
	}
	return p
}

// IsSolved reports whether every mark is Exact.
func (p Pattern) IsSolved() bool {
	return p == Solved
}

// Index returns the base-3 encoding p4 + 3·p3 + 9·p2 + 27·p1 + 81·p0.
func (p Pattern) Index() int {
	idx := 0
	for _, m := range p {
		idx = idx*3 + int(m)
	}
	return idx
}

// PatternFromIndex is the inverse of Pattern.Index.
func PatternFromIndex(idx int) (Pattern, error) {
	var p Pattern
	if idx < 0 || idx >= NumPatterns {
		return p, fmt.Errorf("%w: index %d out of range", ErrInvalidPattern, idx)
	}
	for i := WordLength - 1; i >= 0; i-- {
		p[i] = Mark(idx % 3)
		idx /= 3
	}
	return p, nil
}

// ParsePattern parses either five whitespace-separated digits ("1 2 2 0 2") or a single
// five-digit token ("12202"). Each digit must be 0, 1 or 2.
func ParsePattern(s string) (Pattern, error) {
	var p Pattern
	fields := strings.Fields(s)
	if len(fields) == 1 && len(fields[0]) == WordLength {
		fields = strings.Split(fields[0], "")
	}
	if len(fields) != WordLength {
		return p, fmt.Errorf("%w: want %d values, got %d", ErrInvalidPattern, WordLength, len(fields))
	}
	for i, f := range fields {
		if len(f) != 1 || f[0] < '0' || f[0] > '2' {
			return Pattern{}, fmt.Errorf("%w: %q at position %d is not 0, 1 or 2", ErrInvalidPattern, f, i+1)
		}
		p[i] = Mark(f[0] - '0')
	}
	return p, nil
}

// String renders the pattern as five digits, e.g. "12202".
func (p Pattern) String() string {
	var b [WordLength]byte
	for i, m := range p {
		b[i] = '0' + byte(m)
	}
	return string(b[:])
}

// Spaced renders the pattern as space-separated digits, e.g. "1 2 2 0 2".
func (p Pattern) Spaced() string {
	parts := make([]string, WordLength)
	for i, m := range p {
		parts[i] = string('0' + rune(m))
	}
	return strings.Join(parts, " ")
}
