package primitives

import (
	"fmt"
	"strings"
)

// Turn is a single guess together with the feedback it received.
type Turn struct {
	Guess   Word
	Pattern Pattern
}

func (t Turn) String() string {
	return t.Guess.String() + ":" + t.Pattern.String()
}

// History is the ordered sequence of turns played so far in one game.
type History []Turn

// Append returns a new History with t added. The receiver is never aliased, so a
// History can be shared by callers that branch from it.
func (h History) Append(t Turn) History {
	out := make(History, len(h), len(h)+1)
	copy(out, h)
	return append(out, t)
}

// Last returns the most recent turn, or false if nothing has been played.
func (h History) Last() (Turn, bool) {
	if len(h) == 0 {
		return Turn{}, false
	}
	return h[len(h)-1], true
}

// Solved reports whether the last turn solved the puzzle.
func (h History) Solved() bool {
	t, ok := h.Last()
	return ok && t.Pattern.IsSolved()
}

// Candidates narrows answers by every turn in order.
func (h History) Candidates(answers Candidates) Candidates {
	cs := answers
	for _, t := range h {
		cs = cs.Filter(t.Guess, t.Pattern)
	}
	return cs
}

// AbsentLetters returns the letters some turn proved are not in the answer, in the
// order they were first seen. A letter is proven absent when every copy of it in that
// guess was marked Absent.
func (h History) AbsentLetters() []rune {
	var out []rune
	seen := NewCharSet()
	for _, t := range h {
		hit := NewCharSet()
		for i, m := range t.Pattern {
			if m != Absent {
				_ = hit.Add(rune(t.Guess[i]))
			}
		}
		for i, m := range t.Pattern {
			r := rune(t.Guess[i])
			if m == Absent && !hit.Contains(r) && !seen.Contains(r) {
				_ = seen.Add(r)
				out = append(out, r)
			}
		}
	}
	return out
}

// Key serializes the history as comma-separated guess:pattern pairs, e.g.
// "roate:00120,lucid:20000". The empty history has the empty key.
func (h History) Key() string {
	parts := make([]string, len(h))
	for i, t := range h {
		parts[i] = t.String()
	}
	return strings.Join(parts, ",")
}

func (h History) String() string {
	return h.Key()
}

// ParseHistoryKey is the inverse of History.Key.
func ParseHistoryKey(key string) (History, error) {
	if key == "" {
		return nil, nil
	}
	pairs := strings.Split(key, ",")
	h := make(History, 0, len(pairs))
	for _, pair := range pairs {
		guess, pattern, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("history entry %q: missing ':'", pair)
		}
		w, err := ParseWord(guess)
		if err != nil {
			return nil, fmt.Errorf("history entry %q: %w", pair, err)
		}
		p, err := ParsePattern(pattern)
		if err != nil {
			return nil, fmt.Errorf("history entry %q: %w", pair, err)
		}
		h = append(h, Turn{Guess: w, Pattern: p})
	}
	return h, nil
}
