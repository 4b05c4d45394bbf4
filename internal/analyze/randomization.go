package analyze

import "github.com/hivelark/beegen/internal/puzzle"

// Correlations holds the Pearson r between sequence position and each
// difficulty signal of a batch.
type Correlations struct {
	Words    float64 `json:"words"`
	Score    float64 `json:"score"`
	Pangrams float64 `json:"pangrams"`
}

// Max returns the largest correlation magnitude across the three signals.
func (c Correlations) Max() float64 {
	m := abs(c.Words)
	if a := abs(c.Score); a > m {
		m = a
	}
	if a := abs(c.Pangrams); a > m {
		m = a
	}
	return m
}

// SequenceCorrelations measures how strongly puzzle difficulty signals
// track the batch order. Callers pass puzzles already sorted by live date
// (or provisional slot).
func SequenceCorrelations(batch []puzzle.Puzzle) Correlations {
	n := len(batch)
	slots := make([]float64, n)
	words := make([]float64, n)
	scores := make([]float64, n)
	pangrams := make([]float64, n)
	for i, p := range batch {
		slots[i] = float64(i)
		words[i] = float64(p.TotalWords)
		scores[i] = float64(p.TotalScore)
		pangrams[i] = float64(len(p.Pangrams))
	}
	return Correlations{
		Words:    Pearson(slots, words),
		Score:    Pearson(slots, scores),
		Pangrams: Pearson(slots, pangrams),
	}
}

// RandomizationReport is the output of the `check` command.
type RandomizationReport struct {
	Puzzles      int          `json:"puzzles"`
	Correlations Correlations `json:"correlations"`
	Target       float64      `json:"target"`
	TargetMet    bool         `json:"target_met"`
}

// CheckRandomization evaluates a batch against the correlation target.
func CheckRandomization(batch []puzzle.Puzzle, target float64) RandomizationReport {
	corr := SequenceCorrelations(batch)
	return RandomizationReport{
		Puzzles:      len(batch),
		Correlations: corr,
		Target:       target,
		TargetMet:    corr.Max() <= target,
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
