// Package book holds precomputed second guesses for every first-turn pattern of a fixed
// opening word.
//
// The text format has one line per pattern, ordered by Pattern.Index. The last five
// characters of each line are the recommended guess, or the tail of NotPossible when no
// answer is consistent with that pattern:
//
//	0 0 0 0 0 lysin
//	0 0 0 0 1 whelp
//	...
//	2 2 2 2 1 NOT_POSSIBLE
package book

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"crosswarped.com/wordlecalc/pkg/primitives"
	"github.com/schollz/progressbar/v3"
)

// NotPossible marks a pattern no answer can produce.
const NotPossible = "NOT_POSSIBLE"

var sentinelTail = NotPossible[len(NotPossible)-primitives.WordLength:]

// ErrNoConsistentAnswer is returned by Lookup for a pattern no answer can produce.
// Callers should fall back to computing the guess.
var ErrNoConsistentAnswer = errors.New("no consistent answer for pattern")

// Book maps each first-turn pattern of Opening to a second guess.
type Book struct {
	Opening primitives.Word
	// The zero Word marks a pattern with no consistent answer.
	entries [primitives.NumPatterns]primitives.Word
}

// Lookup returns the second guess for the first-turn pattern p.
func (b *Book) Lookup(p primitives.Pattern) (primitives.Word, error) {
	w := b.entries[p.Index()]
	if w.IsZero() {
		return primitives.Word{}, fmt.Errorf("%w %s after %s", ErrNoConsistentAnswer, p, b.Opening)
	}
	return w, nil
}

// Parse reads a book for opening from r. A single trailing empty line is ignored.
func Parse(r io.Reader, opening primitives.Word) (*Book, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), " \t\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read opening book: %w", err)
	}
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	if len(lines) != primitives.NumPatterns {
		return nil, fmt.Errorf("opening book has %d lines, want %d", len(lines), primitives.NumPatterns)
	}

	b := &Book{Opening: opening}
	for i, line := range lines {
		if len(line) < primitives.WordLength {
			return nil, fmt.Errorf("opening book line %d: %q is too short", i+1, line)
		}
		tail := line[len(line)-primitives.WordLength:]
		if tail == sentinelTail {
			continue
		}
		w, err := primitives.ParseWord(tail)
		if err != nil {
			return nil, fmt.Errorf("opening book line %d: %w", i+1, err)
		}
		b.entries[i] = w
	}
	return b, nil
}

// Load reads a book for opening from a file.
func Load(path string, opening primitives.Word) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open opening book: %w", err)
	}
	defer f.Close()
	return Parse(f, opening)
}

// LoadGCS reads a book for opening from gs://bucket/object.
func LoadGCS(ctx context.Context, client *storage.Client, bucket, object string, opening primitives.Word) (*Book, error) {
	rc, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("open gs://%s/%s: %w", bucket, object, err)
	}
	defer rc.Close()
	return Parse(rc, opening)
}

// WriteTo writes the book in the text format Parse reads.
func (b *Book) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	for i, entry := range b.entries {
		p, _ := primitives.PatternFromIndex(i)
		guess := NotPossible
		if !entry.IsZero() {
			guess = entry.String()
		}
		n, err := fmt.Fprintf(bw, "%s %s\n", p.Spaced(), guess)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, bw.Flush()
}

// Chooser picks the next guess for a history.
type Chooser interface {
	NextGuess(ctx context.Context, h primitives.History) (primitives.Word, error)
}

// GenerateOption configures Generate.
type GenerateOption func(*generateOptions)

type generateOptions struct {
	bar *progressbar.ProgressBar
}

// WithProgressBar advances bar once per pattern.
func WithProgressBar(bar *progressbar.ProgressBar) GenerateOption {
	return func(o *generateOptions) {
		o.bar = bar
	}
}

// Generate builds a book by asking chooser for the second guess after every possible
// first-turn pattern of opening. Patterns that leave no answer get the sentinel.
//
// chooser must not itself consult a book for opening, or it will be asked to look up
// the entries being generated.
func Generate(ctx context.Context, opening primitives.Word, answers primitives.Candidates, chooser Chooser, opts ...GenerateOption) (*Book, error) {
	var o generateOptions
	for _, opt := range opts {
		opt(&o)
	}

	b := &Book{Opening: opening}
	for i := range primitives.NumPatterns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, _ := primitives.PatternFromIndex(i)
		h := primitives.History{{Guess: opening, Pattern: p}}
		switch {
		case len(h.Candidates(answers)) == 0:
			// Left as the sentinel.
		case p.IsSolved():
			b.entries[i] = opening
		default:
			w, err := chooser.NextGuess(ctx, h)
			if err != nil {
				return nil, fmt.Errorf("pattern %s: %w", p, err)
			}
			b.entries[i] = w
		}
		if o.bar != nil {
			_ = o.bar.Add(1)
		}
	}
	return b, nil
}
