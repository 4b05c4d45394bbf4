package generate

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/hivelark/beegen/internal/errors"
	"github.com/hivelark/beegen/internal/puzzle"
)

// idLength is the number of hex characters in a puzzle ID.
const idLength = 8

// Finalize turns the reordered candidates into puzzle records: each gets
// a unique short ID, a live date one day after the previous slot, and a
// last-reviewed stamp of the generation time.
func Finalize(batch []*Candidate, startDate, now time.Time, idRetries int) ([]puzzle.Puzzle, error) {
	puzzles := make([]puzzle.Puzzle, 0, len(batch))
	assigned := make(map[string]bool, len(batch))
	reviewed := now.Format(puzzle.ReviewedTimeFormat)

	for slot, c := range batch {
		id, err := assignID(c.Set, slot, assigned, idRetries)
		if err != nil {
			return nil, err
		}
		assigned[id] = true

		outside := make([]string, 0, 6)
		for _, l := range c.Set.Outer {
			outside = append(outside, string(l))
		}

		puzzles = append(puzzles, puzzle.Puzzle{
			ID:             id,
			LastReviewed:   reviewed,
			LiveDate:       startDate.AddDate(0, 0, slot).Format(puzzle.DateFormat),
			CenterLetter:   string(c.Set.Center),
			OutsideLetters: outside,
			Pangrams:       c.Pangrams,
			BingoPossible:  c.BingoPossible,
			TotalScore:     c.TotalScore,
			TotalWords:     len(c.ValidWords),
			ValidWords:     c.ValidWords,
		})
	}
	return puzzles, nil
}

// assignID derives a short hash ID from the letter set and slot, salting
// with a retry counter until it no longer collides with already-assigned
// IDs. Collisions past the retry budget fail the run.
func assignID(set puzzle.LetterSet, slot int, assigned map[string]bool, retries int) (string, error) {
	var id string
	for attempt := 0; attempt <= retries; attempt++ {
		sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%d:%d", set.String(), slot, attempt)))
		id = hex.EncodeToString(sum[:])[:idLength]
		if !assigned[id] {
			return id, nil
		}
	}
	return "", errors.NewIDCollision(id, retries)
}

// Redate rewrites live dates over an existing batch, one puzzle per day
// from the given start, preserving order. Content is untouched.
func Redate(batch []puzzle.Puzzle, startDate time.Time) {
	for i := range batch {
		batch[i].LiveDate = startDate.AddDate(0, 0, i).Format(puzzle.DateFormat)
	}
}
