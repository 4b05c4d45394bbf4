package puzzle

import (
	"fmt"
	"math/bits"
	"sort"
	"strings"
)

// Mask is a 26-bit letter-set signature: bit n is set when letter 'a'+n
// occurs in the word. Subset containment against a puzzle's 7 letters is a
// single AND.
type Mask uint32

// MaskOf computes the letter-set signature of a lowercase word. Characters
// outside a-z are ignored; callers validate words before indexing.
func MaskOf(word string) Mask {
	var m Mask
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c >= 'a' && c <= 'z' {
			m |= 1 << (c - 'a')
		}
	}
	return m
}

// Has reports whether the mask contains the given letter.
func (m Mask) Has(letter byte) bool {
	if letter < 'a' || letter > 'z' {
		return false
	}
	return m&(1<<(letter-'a')) != 0
}

// ContainsAll reports whether sub ⊆ m.
func (m Mask) ContainsAll(sub Mask) bool {
	return m&sub == sub
}

// Count returns the number of distinct letters in the mask.
func (m Mask) Count() int {
	return bits.OnesCount32(uint32(m))
}

// Letters returns the mask's letters in alphabetical order.
func (m Mask) Letters() []byte {
	out := make([]byte, 0, m.Count())
	for n := 0; n < 26; n++ {
		if m&(1<<n) != 0 {
			out = append(out, byte('a'+n))
		}
	}
	return out
}

// LetterSet is a puzzle's 7 distinct letters: one required center letter
// and 6 outer letters.
type LetterSet struct {
	Center byte
	Outer  [6]byte
}

// NewLetterSet builds a LetterSet, enforcing 7 distinct lowercase letters
// with the center outside the outer six.
func NewLetterSet(center byte, outer []byte) (LetterSet, error) {
	var s LetterSet
	if center < 'a' || center > 'z' {
		return s, fmt.Errorf("center %q is not a lowercase letter", center)
	}
	if len(outer) != 6 {
		return s, fmt.Errorf("got %d outer letters; expected 6", len(outer))
	}
	seen := Mask(1 << (center - 'a'))
	for i, l := range outer {
		if l < 'a' || l > 'z' {
			return s, fmt.Errorf("outer letter %q is not a lowercase letter", l)
		}
		if seen.Has(l) {
			return s, fmt.Errorf("duplicate letter %q in set", l)
		}
		seen |= 1 << (l - 'a')
		s.Outer[i] = l
	}
	s.Center = center
	sort.Slice(s.Outer[:], func(i, j int) bool { return s.Outer[i] < s.Outer[j] })
	return s, nil
}

// ParseLetterSet builds a LetterSet from string fields as they appear in a
// puzzle record.
func ParseLetterSet(center string, outside []string) (LetterSet, error) {
	if len(center) != 1 {
		return LetterSet{}, fmt.Errorf("center letter %q must be a single character", center)
	}
	outer := make([]byte, 0, len(outside))
	for _, l := range outside {
		if len(l) != 1 {
			return LetterSet{}, fmt.Errorf("outside letter %q must be a single character", l)
		}
		outer = append(outer, l[0])
	}
	return NewLetterSet(center[0], outer)
}

// All returns the full 7-letter signature mask. Two puzzles repeat within
// the diversity window exactly when their All masks are equal, regardless
// of which letter is the center.
func (s LetterSet) All() Mask {
	m := Mask(1 << (s.Center - 'a'))
	for _, l := range s.Outer {
		m |= 1 << (l - 'a')
	}
	return m
}

// CenterMask returns the single-bit mask of the center letter.
func (s LetterSet) CenterMask() Mask {
	return 1 << (s.Center - 'a')
}

// Letters returns all 7 letters, center first, outer sorted.
func (s LetterSet) Letters() []byte {
	out := make([]byte, 0, 7)
	out = append(out, s.Center)
	out = append(out, s.Outer[:]...)
	return out
}

// String renders the set as "c|abcdef" for diagnostics.
func (s LetterSet) String() string {
	var b strings.Builder
	b.WriteByte(s.Center)
	b.WriteByte('|')
	b.Write(s.Outer[:])
	return b.String()
}
