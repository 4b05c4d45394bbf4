package generate

import (
	"math/rand"

	"github.com/hivelark/beegen/internal/analyze"
)

// RandomizeReport describes how the temporal shuffle went.
type RandomizeReport struct {
	Trials       int                  `json:"trials"`
	Correlations analyze.Correlations `json:"correlations"`
	Target       float64              `json:"target"`
	TargetMet    bool                 `json:"target_met"`
}

// Reorder permutes the batch so difficulty signals (word count, score,
// pangram count) are decorrelated from sequence position. It scores up to
// `trials` seeded shuffles against the correlation target and keeps the
// best permutation found; missing the target is reported, not fatal.
func Reorder(batch []*Candidate, seed int64, trials int, target float64) ([]*Candidate, RandomizeReport) {
	report := RandomizeReport{Target: target}
	if len(batch) < 2 {
		report.TargetMet = true
		return batch, report
	}

	rng := rand.New(rand.NewSource(seed))

	best := make([]*Candidate, len(batch))
	copy(best, batch)
	bestScore := candidateCorrelations(best).Max()

	current := make([]*Candidate, len(batch))
	copy(current, batch)

	for trial := 1; trial <= trials; trial++ {
		report.Trials = trial
		rng.Shuffle(len(current), func(i, j int) {
			current[i], current[j] = current[j], current[i]
		})
		corr := candidateCorrelations(current)
		if score := corr.Max(); score < bestScore {
			bestScore = score
			copy(best, current)
			report.Correlations = corr
		}
		if bestScore <= target {
			break
		}
	}

	report.Correlations = candidateCorrelations(best)
	report.TargetMet = bestScore <= target
	return best, report
}

// candidateCorrelations measures each difficulty signal against the
// provisional sequence position.
func candidateCorrelations(batch []*Candidate) analyze.Correlations {
	n := len(batch)
	slots := make([]float64, n)
	words := make([]float64, n)
	scores := make([]float64, n)
	pangrams := make([]float64, n)
	for i, c := range batch {
		slots[i] = float64(i)
		words[i] = float64(len(c.ValidWords))
		scores[i] = float64(c.TotalScore)
		pangrams[i] = float64(len(c.Pangrams))
	}
	return analyze.Correlations{
		Words:    analyze.Pearson(slots, words),
		Score:    analyze.Pearson(slots, scores),
		Pangrams: analyze.Pearson(slots, pangrams),
	}
}
