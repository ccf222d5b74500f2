// Package wordlist loads the answer and guess lists.
package wordlist

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/bigquery"
	"crosswarped.com/wordlecalc/pkg/primitives"
	"google.golang.org/api/iterator"
)

// Read parses one word per line. Surrounding whitespace is trimmed and a single
// trailing empty line is ignored; any other blank or malformed line is an error.
func Read(r io.Reader) ([]primitives.Word, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	words := make([]primitives.Word, 0, len(lines))
	for i, line := range lines {
		w, err := primitives.ParseWord(line)
		if err != nil {
			return nil, fmt.Errorf("word list line %d: %w", i+1, err)
		}
		words = append(words, w)
	}
	return words, nil
}

// LoadFile reads a word list file.
func LoadFile(path string) ([]primitives.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	words, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}

type wordRow struct {
	Word string `bigquery:"word"`
}

// LoadBigQuery runs query and reads its "word" column.
func LoadBigQuery(ctx context.Context, client *bigquery.Client, query string) ([]primitives.Word, error) {
	it, err := client.Query(query).Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("run word query: %w", err)
	}
	var words []primitives.Word
	for {
		var row wordRow
		err := it.Next(&row)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read word row: %w", err)
		}
		w, err := primitives.ParseWord(strings.TrimSpace(row.Word))
		if err != nil {
			return nil, fmt.Errorf("word query row %d: %w", len(words)+1, err)
		}
		words = append(words, w)
	}
	if len(words) == 0 {
		return nil, errors.New("word query returned no rows")
	}
	return words, nil
}

// Superset returns guesses followed by every answer it does not already contain.
func Superset(answers, guesses []primitives.Word) []primitives.Word {
	seen := make(map[primitives.Word]struct{}, len(guesses))
	for _, g := range guesses {
		seen[g] = struct{}{}
	}
	out := append([]primitives.Word(nil), guesses...)
	for _, a := range answers {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}
