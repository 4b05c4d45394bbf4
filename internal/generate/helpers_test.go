package generate

import (
	"testing"

	"github.com/hivelark/beegen/internal/config"
	"github.com/hivelark/beegen/internal/dictionary"
	"github.com/hivelark/beegen/internal/puzzle"
)

// testConfig relaxes word-count gates so small synthetic dictionaries can
// produce acceptable puzzles.
func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.BatchSize = 6
	cfg.WindowSlots = 4
	cfg.MinWords = 10
	cfg.AttemptsPerSlot = 1000
	cfg.ShuffleTrials = 50
	cfg.MaxCenterShare = 0.5
	return cfg
}

// addSyntheticSet fills raw with words playable within one 7-letter set:
// two pangrams (the letters and a rotation), a starter word per letter so
// bingo is reachable, and enough 4-letter filler to clear the word gate.
func addSyntheticSet(raw map[string]int, letters string) {
	if len(letters) != 7 {
		panic("synthetic set needs exactly 7 letters")
	}
	raw[letters] = 500
	raw[letters[1:]+letters[:1]] = 400

	center := letters[0]
	for i := 0; i < 7; i++ {
		l := letters[i]
		raw[string([]byte{l, center, l, center})] = 300
	}
	for i := 1; i < 7; i++ {
		for j := 1; j < 7; j++ {
			raw[string([]byte{center, letters[i], letters[j], letters[i]})] = 200
		}
	}
}

// syntheticDictionary builds an index over n rotated alphabet sets, each
// rich enough to pass the relaxed gates.
func syntheticDictionary(t *testing.T, n int) *dictionary.Index {
	t.Helper()
	raw := make(map[string]int)
	alphabet := "abcdefghijklmnopqrstuvwxyz"
	for i := 0; i < n; i++ {
		addSyntheticSet(raw, alphabet[i:i+7])
	}
	d := dictionary.FromMap(raw, dictionary.LoadOptions{})
	if d.Skipped != 0 {
		t.Fatalf("synthetic dictionary produced %d malformed words", d.Skipped)
	}
	return dictionary.NewIndex(d.Words)
}

// orientationIndex is the small dictionary used by the evaluator's worked
// example around the set t|aeinor.
func orientationIndex() *dictionary.Index {
	raw := map[string]int{
		"orientation": 100,
		"orientate":   90,
		"anterior":    80,
		"notice":      70,
		"train":       60,
		"attire":      50,
	}
	return dictionary.NewIndex(dictionary.FromMap(raw, dictionary.LoadOptions{}).Words)
}

func mustSet(t *testing.T, center byte, outer string) puzzle.LetterSet {
	t.Helper()
	set, err := puzzle.NewLetterSet(center, []byte(outer))
	if err != nil {
		t.Fatalf("bad letter set %c|%s: %v", center, outer, err)
	}
	return set
}
