// Package prompt reads guesses and feedback typed by a player.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"crosswarped.com/wordlecalc/pkg/primitives"
)

// ErrStop is returned when the player types STOP.
var ErrStop = errors.New("stopped by player")

const stopWord = "STOP"

// Prompter asks questions on out and reads answers line by line from in.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// New creates a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// readLine prints label and returns the next trimmed line. It returns io.EOF once input
// is exhausted and ErrStop for the stop word.
func (p *Prompter) readLine(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	line := strings.TrimSpace(p.in.Text())
	if strings.EqualFold(line, stopWord) {
		return "", ErrStop
	}
	return line, nil
}

// ReadPattern asks for the feedback to the last guess, as five digits 0-2 with or
// without spaces. Invalid input is reported and asked for again.
func (p *Prompter) ReadPattern() (primitives.Pattern, error) {
	for {
		line, err := p.readLine("Enter Result: ")
		if err != nil {
			return primitives.Pattern{}, err
		}
		pat, err := primitives.ParsePattern(line)
		if err != nil {
			fmt.Fprintln(p.out, "Invalid!")
			continue
		}
		return pat, nil
	}
}

// ReadWord asks for a five-letter word, re-asking until one is given.
func (p *Prompter) ReadWord(label string) (primitives.Word, error) {
	for {
		line, err := p.readLine(label)
		if err != nil {
			return primitives.Word{}, err
		}
		w, err := primitives.ParseWord(line)
		if err != nil {
			fmt.Fprintln(p.out, "Invalid!")
			continue
		}
		return w, nil
	}
}

// Printf writes to the prompter's output.
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}
