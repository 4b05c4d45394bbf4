package dictionary

import "github.com/hivelark/beegen/internal/puzzle"

// pangramLetters is the number of distinct letters a pangram base carries.
const pangramLetters = 7

// Index groups words by letter-set signature. A usable-words query for a
// 7-letter set enumerates the (at most 2^7) submask buckets instead of
// scanning the dictionary.
type Index struct {
	buckets map[puzzle.Mask][]Word
	bases   []Word
	size    int
}

// NewIndex builds the index. An empty word list yields an index that
// always returns empty results.
func NewIndex(words []Word) *Index {
	ix := &Index{buckets: make(map[puzzle.Mask][]Word)}
	for _, w := range words {
		ix.buckets[w.Mask] = append(ix.buckets[w.Mask], w)
		if w.Mask.Count() == pangramLetters {
			ix.bases = append(ix.bases, w)
		}
		ix.size++
	}
	return ix
}

// Size returns the number of indexed words.
func (ix *Index) Size() int {
	return ix.size
}

// UsableWithin returns every word whose letters are a subset of the given
// mask, in deterministic order. Cost is proportional to the result plus
// the submask enumeration of the query mask.
func (ix *Index) UsableWithin(letters puzzle.Mask) []Word {
	var out []Word
	// Standard descending submask walk; terminates after visiting sub == 0.
	for sub := letters; ; sub = (sub - 1) & letters {
		if sub != 0 {
			out = append(out, ix.buckets[sub]...)
		}
		if sub == 0 {
			break
		}
	}
	return out
}

// PangramBases returns the words with exactly 7 distinct letters. Each one
// is a pangram of its own letter set, so a set sampled from a base is
// guaranteed at least one pangram.
func (ix *Index) PangramBases() []Word {
	return ix.bases
}
