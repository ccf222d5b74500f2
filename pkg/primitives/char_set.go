package primitives

import (
	"fmt"
	"iter"
	"math/bits"
	"strings"
)

// CharSet efficiently represents a set of letters using bit manipulation.
// It supports the lowercase letters 'a' (97) to 'z' (122), which fit in a uint32.
// The zero value is an empty set, and a CharSet is small enough to pass by value.
type CharSet struct {
	bits  uint32
	count int
}

const (
	minChar  = 'a'
	maxChar  = 'z'
	numChars = maxChar - minChar + 1 // 26 letters
)

// NewCharSet creates a new empty letter set.
func NewCharSet() *CharSet {
	return &CharSet{}
}

// CharSetOf creates a set holding every letter of s.
func CharSetOf(s string) (*CharSet, error) {
	c := NewCharSet()
	for _, r := range s {
		if err := c.Add(r); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add adds a letter to the set.
func (c *CharSet) Add(r rune) error {
	if r < minChar || r > maxChar {
		return fmt.Errorf("character %c is out of range", r)
	}

	bitPos := uint(r - minChar)
	if c.bits&(1<<bitPos) == 0 {
		c.bits |= 1 << bitPos
		c.count = bits.OnesCount32(c.bits)
	}
	return nil
}

// Remove removes a letter from the set. Letters outside the range are ignored.
func (c *CharSet) Remove(r rune) {
	if r < minChar || r > maxChar {
		return
	}
	bitPos := uint(r - minChar)
	if c.bits&(1<<bitPos) != 0 {
		c.bits &^= 1 << bitPos
		c.count = bits.OnesCount32(c.bits)
	}
}

// Contains checks if a letter is in the set.
func (c CharSet) Contains(r rune) bool {
	if r < minChar || r > maxChar {
		return false
	}
	bitPos := uint(r - minChar)
	return c.bits&(1<<bitPos) != 0
}

// ContainsAll reports whether every letter of other is in the set.
func (c CharSet) ContainsAll(other *CharSet) bool {
	return c.bits&other.bits == other.bits
}

// ContainsAny reports whether the two sets share at least one letter.
func (c CharSet) ContainsAny(other *CharSet) bool {
	return c.bits&other.bits != 0
}

// IsEmpty checks if the set has no letters.
func (c CharSet) IsEmpty() bool {
	return c.count == 0
}

// Count returns the number of letters in the set.
func (c CharSet) Count() int {
	return c.count
}

// Letters yields the letters of the set in alphabetical order.
func (c CharSet) Letters() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for i := range uint(numChars) {
			if c.bits&(1<<i) != 0 {
				if !yield(rune(minChar + i)) {
					return
				}
			}
		}
	}
}

// String returns a string representation of the set.
func (c CharSet) String() string {
	if c.count == 0 {
		return "letters [] (0/26)"
	}

	var chars []string
	for r := range c.Letters() {
		chars = append(chars, fmt.Sprintf("'%c'", r))
	}
	return fmt.Sprintf("letters [%s] (%d/%d)", strings.Join(chars, ", "), c.count, numChars)
}
