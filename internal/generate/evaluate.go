package generate

import (
	"sort"

	"github.com/hivelark/beegen/internal/config"
	"github.com/hivelark/beegen/internal/dictionary"
	"github.com/hivelark/beegen/internal/puzzle"
)

// Scoring rules.
const (
	pangramBonus   = 10
	bingoBonus     = 10
	shortWordScore = 1 // minimum-length words score 1 point
)

// Reason is a diagnostic rejection code. Rejections are recoverable; the
// caller discards the candidate and resamples.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonNoPangram       Reason = "no_pangram"
	ReasonTooFewWords     Reason = "too_few_words"
	ReasonTooManyWords    Reason = "too_many_words"
	ReasonTooManyPangrams Reason = "too_many_pangrams"
)

// Candidate is an evaluated letter set that passed the numeric gates but
// has not yet been accepted into a batch.
type Candidate struct {
	Set           puzzle.LetterSet
	ValidWords    []string
	Pangrams      []string
	BingoPossible bool
	TotalScore    int
}

// Evaluator computes the full word list and quality gates for letter sets.
// Evaluation is a pure function of (letter set, dictionary): same inputs,
// bit-identical outputs.
type Evaluator struct {
	index *dictionary.Index
	cfg   *config.Config
}

// NewEvaluator creates an evaluator over a frozen dictionary index.
func NewEvaluator(index *dictionary.Index, cfg *config.Config) *Evaluator {
	return &Evaluator{index: index, cfg: cfg}
}

// Evaluate scores a letter set. A non-empty Reason means the set violates
// a numeric constraint and the candidate is nil.
func (e *Evaluator) Evaluate(set puzzle.LetterSet) (*Candidate, Reason) {
	all := set.All()
	center := set.CenterMask()

	var valid []string
	var pangrams []string
	for _, w := range e.index.UsableWithin(all) {
		if len(w.Text) < e.cfg.MinWordLength {
			continue
		}
		if !w.Mask.ContainsAll(center) {
			continue
		}
		valid = append(valid, w.Text)
		if w.Mask == all {
			pangrams = append(pangrams, w.Text)
		}
	}

	if len(pangrams) < e.cfg.MinPangrams {
		return nil, ReasonNoPangram
	}
	if len(pangrams) > e.cfg.MaxPangrams {
		return nil, ReasonTooManyPangrams
	}
	if len(valid) < e.cfg.MinWords {
		return nil, ReasonTooFewWords
	}
	if len(valid) > e.cfg.MaxWords {
		return nil, ReasonTooManyWords
	}

	sort.Strings(valid)
	sort.Strings(pangrams)

	bingo := hasBingo(valid, set)

	score := 0
	for _, w := range valid {
		if len(w) == e.cfg.MinWordLength {
			score += shortWordScore
		} else {
			score += len(w)
		}
	}
	score += pangramBonus * len(pangrams)
	if bingo {
		score += bingoBonus
	}

	return &Candidate{
		Set:           set,
		ValidWords:    valid,
		Pangrams:      pangrams,
		BingoPossible: bingo,
		TotalScore:    score,
	}, ReasonNone
}

// hasBingo reports whether every one of the 7 letters starts at least one
// valid word.
func hasBingo(words []string, set puzzle.LetterSet) bool {
	var starts puzzle.Mask
	for _, w := range words {
		starts |= puzzle.MaskOf(w[:1])
	}
	return starts.ContainsAll(set.All())
}
