package generate

import (
	"math/rand"

	"github.com/hivelark/beegen/internal/dictionary"
	"github.com/hivelark/beegen/internal/errors"
	"github.com/hivelark/beegen/internal/puzzle"
)

// English letter frequencies (percent), a through z. Used to break ties
// when picking centers among consonant-only sets.
var letterFrequencies = [26]float64{
	8.12, 1.49, 2.71, 4.32, 12.02, 2.30, 2.03, 5.92, 7.31, 0.10,
	0.69, 3.98, 2.61, 6.95, 7.68, 1.82, 0.11, 6.02, 6.28, 9.10,
	2.88, 1.11, 2.09, 0.17, 2.11, 0.07,
}

const vowels = "aeiou"

// tournamentSize is how many pangram bases each proposal draws before
// keeping the one that best covers under-represented letters.
const tournamentSize = 8

// Sampler proposes candidate letter sets. Every proposal is built from a
// dictionary word with exactly 7 distinct letters, so the proposed set is
// guaranteed to admit at least one pangram; evaluation cycles are never
// spent on sets that cannot qualify.
type Sampler struct {
	rng   *rand.Rand
	bases []dictionary.Word
}

// NewSampler creates a sampler over the index's pangram bases.
// Deterministic given the rng's seed.
func NewSampler(index *dictionary.Index, rng *rand.Rand) (*Sampler, error) {
	bases := index.PangramBases()
	if len(bases) == 0 {
		return nil, errors.NewInvalidDictionary("dictionary contains no 7-distinct-letter words; no puzzle can have a pangram")
	}
	return &Sampler{rng: rng, bases: bases}, nil
}

// Propose returns the next candidate letter set. The weights argument is
// the scheduler's letter under-representation feedback: higher weight
// means the letter has appeared in fewer accepted puzzles so far.
func (s *Sampler) Propose(weights [26]float64) puzzle.LetterSet {
	base := s.pickBase(weights)
	letters := base.Mask.Letters()
	center := s.pickCenter(letters)

	outer := make([]byte, 0, 6)
	for _, l := range letters {
		if l != center {
			outer = append(outer, l)
		}
	}

	set, err := puzzle.NewLetterSet(center, outer)
	if err != nil {
		// Unreachable: letters come from a 7-distinct-letter mask.
		panic(err)
	}
	return set
}

// pickBase draws a small tournament of random bases and keeps the one
// whose letters are most under-represented in the running batch.
func (s *Sampler) pickBase(weights [26]float64) dictionary.Word {
	best := s.bases[s.rng.Intn(len(s.bases))]
	bestScore := coverage(best.Mask, weights)
	for i := 1; i < tournamentSize; i++ {
		w := s.bases[s.rng.Intn(len(s.bases))]
		if score := coverage(w.Mask, weights); score > bestScore {
			best, bestScore = w, score
		}
	}
	return best
}

// pickCenter prefers a vowel from the set; consonant-only sets fall back
// to a frequency-weighted draw.
func (s *Sampler) pickCenter(letters []byte) byte {
	var setVowels []byte
	for _, l := range letters {
		for i := 0; i < len(vowels); i++ {
			if l == vowels[i] {
				setVowels = append(setVowels, l)
			}
		}
	}
	if len(setVowels) > 0 {
		return setVowels[s.rng.Intn(len(setVowels))]
	}

	var total float64
	for _, l := range letters {
		total += letterFrequencies[l-'a']
	}
	draw := s.rng.Float64() * total
	for _, l := range letters {
		draw -= letterFrequencies[l-'a']
		if draw <= 0 {
			return l
		}
	}
	return letters[len(letters)-1]
}

// coverage sums the feedback weights of a mask's letters.
func coverage(m puzzle.Mask, weights [26]float64) float64 {
	var sum float64
	for _, l := range m.Letters() {
		sum += weights[l-'a']
	}
	return sum
}
