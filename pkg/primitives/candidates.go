package primitives

import (
	"slices"
)

// Candidates is a set of answers still consistent with the feedback seen so far.
// Order is irrelevant to its meaning but is kept stable so results are deterministic.
type Candidates []Word

// Filter returns the candidates c for which Feedback(guess, c) == pattern.
//
// When every candidate already matches, the receiver itself is returned and nothing is
// allocated.
func (cs Candidates) Filter(guess Word, pattern Pattern) Candidates {
	// Lazy: First check if any candidate doesn't match the pattern.
	// Otherwise we don't need to copy the list.
	if !slices.ContainsFunc(cs, func(c Word) bool {
		return Feedback(guess, c) != pattern
	}) {
		return cs
	}

	var filtered Candidates
	for idx, c := range cs {
		if Feedback(guess, c) == pattern {
			// Allocate with capacity of len-idx only if we get here.
			if filtered == nil {
				filtered = make(Candidates, 0, len(cs)-idx)
			}
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// Contains reports whether w is one of the candidates.
func (cs Candidates) Contains(w Word) bool {
	return slices.Contains(cs, w)
}

// Partition returns, for each pattern index, how many candidates produce that pattern
// when guess is played.
func (cs Candidates) Partition(guess Word) [NumPatterns]int {
	var counts [NumPatterns]int
	for _, c := range cs {
		counts[Feedback(guess, c).Index()]++
	}
	return counts
}

// LetterFrequency counts letter occurrences across the candidates.
func (cs Candidates) LetterFrequency() LetterFrequency {
	var f LetterFrequency
	for _, c := range cs {
		for _, b := range c {
			f[b-minChar]++
		}
	}
	return f
}

func (cs Candidates) String() string {
	return "[" + JoinWords(cs, " ") + "]"
}

// LetterFrequency maps each letter 'a'..'z' to its number of occurrences.
type LetterFrequency [numChars]int

// Of returns the count for letter r, or 0 if r is not a lowercase letter.
func (f *LetterFrequency) Of(r rune) int {
	if r < minChar || r > maxChar {
		return 0
	}
	return f[r-minChar]
}

// Unused returns the letters that never occur.
func (f *LetterFrequency) Unused() *CharSet {
	c := NewCharSet()
	for i, n := range f {
		if n == 0 {
			_ = c.Add(rune(minChar + i))
		}
	}
	return c
}

// LeastFrequent returns the letter with the smallest nonzero count that is not in
// exclude. Ties go to the alphabetically first letter. ok is false when no such letter
// exists.
func (f *LetterFrequency) LeastFrequent(exclude *CharSet) (r rune, ok bool) {
	least := 0
	for i, n := range f {
		letter := rune(minChar + i)
		if n == 0 || exclude.Contains(letter) {
			continue
		}
		if !ok || n < least {
			least, r, ok = n, letter, true
		}
	}
	return r, ok
}
