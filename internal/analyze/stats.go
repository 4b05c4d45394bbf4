package analyze

import "github.com/hivelark/beegen/internal/puzzle"

// Range summarizes min/max/mean of an integer signal across a batch.
type Range struct {
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
}

// BatchStats is the output of the `analyze` command.
type BatchStats struct {
	Puzzles          int            `json:"puzzles"`
	Words            Range          `json:"words"`
	Score            Range          `json:"score"`
	PangramHistogram map[int]int    `json:"pangram_histogram"`
	BingoPossible    int            `json:"bingo_possible"`
	CenterLetters    map[string]int `json:"center_letters"`
	LetterCoverage   map[string]int `json:"letter_coverage"`
}

// Stats computes batch-level statistics over puzzle records.
func Stats(batch []puzzle.Puzzle) *BatchStats {
	stats := &BatchStats{
		Puzzles:          len(batch),
		PangramHistogram: make(map[int]int),
		CenterLetters:    make(map[string]int),
		LetterCoverage:   make(map[string]int),
	}
	if len(batch) == 0 {
		return stats
	}

	var wordSum, scoreSum int
	stats.Words = Range{Min: batch[0].TotalWords, Max: batch[0].TotalWords}
	stats.Score = Range{Min: batch[0].TotalScore, Max: batch[0].TotalScore}

	for _, p := range batch {
		wordSum += p.TotalWords
		scoreSum += p.TotalScore
		stats.Words.Min = min(stats.Words.Min, p.TotalWords)
		stats.Words.Max = max(stats.Words.Max, p.TotalWords)
		stats.Score.Min = min(stats.Score.Min, p.TotalScore)
		stats.Score.Max = max(stats.Score.Max, p.TotalScore)

		stats.PangramHistogram[len(p.Pangrams)]++
		if p.BingoPossible {
			stats.BingoPossible++
		}
		stats.CenterLetters[p.CenterLetter]++
		stats.LetterCoverage[p.CenterLetter]++
		for _, l := range p.OutsideLetters {
			stats.LetterCoverage[l]++
		}
	}

	stats.Words.Mean = float64(wordSum) / float64(len(batch))
	stats.Score.Mean = float64(scoreSum) / float64(len(batch))
	return stats
}
