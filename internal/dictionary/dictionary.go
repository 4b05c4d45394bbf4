// Package dictionary loads the filtered word list and indexes it by
// letter-set signature for constant-overhead "which words fit these 7
// letters" queries.
package dictionary

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/hivelark/beegen/internal/errors"
	"github.com/hivelark/beegen/internal/puzzle"
)

// Word is a dictionary entry, immutable once loaded.
type Word struct {
	Text string
	Freq int
	Mask puzzle.Mask
}

// LoadOptions control dictionary filtering at load time.
type LoadOptions struct {
	// Rejected words (review-store snapshot) are dropped before indexing.
	Rejected map[string]bool

	// MaxWordLength drops over-long entries; 0 disables the cut.
	MaxWordLength int
}

// Dictionary is the frozen word list the generator reads. The generator
// never mutates it; review state lives elsewhere.
type Dictionary struct {
	Words []Word

	// Skipped counts malformed entries (empty or non-alphabetic) dropped
	// during load. Malformed entries are never fatal.
	Skipped int

	// Excluded counts entries dropped by the rejected-word snapshot or the
	// length cut.
	Excluded int
}

// Load reads a dictionary file: a JSON object of word → frequency.
func Load(path string, opts LoadOptions) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound(path)
		}
		return nil, errors.NewInternal(err)
	}

	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewInvalidDictionary(fmt.Sprintf("%s: %v", path, err))
	}

	return FromMap(raw, opts), nil
}

// FromMap builds a Dictionary from an in-memory word → frequency map,
// applying the same filtering as Load. Words come out sorted so that
// everything downstream is deterministic regardless of map order.
func FromMap(raw map[string]int, opts LoadOptions) *Dictionary {
	d := &Dictionary{Words: make([]Word, 0, len(raw))}
	for text, freq := range raw {
		if !isLowerAlpha(text) {
			d.Skipped++
			continue
		}
		if opts.MaxWordLength > 0 && len(text) > opts.MaxWordLength {
			d.Excluded++
			continue
		}
		if opts.Rejected[text] {
			d.Excluded++
			continue
		}
		d.Words = append(d.Words, Word{Text: text, Freq: freq, Mask: puzzle.MaskOf(text)})
	}
	sort.Slice(d.Words, func(i, j int) bool { return d.Words[i].Text < d.Words[j].Text })
	return d
}

// Frequencies returns the word → frequency view used by review auto-marking.
func (d *Dictionary) Frequencies() map[string]int {
	out := make(map[string]int, len(d.Words))
	for _, w := range d.Words {
		out[w.Text] = w.Freq
	}
	return out
}

func isLowerAlpha(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
