package generate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hivelark/beegen/internal/puzzle"
)

// TestGenerateWorkflow runs the whole pipeline over a synthetic
// dictionary and checks every batch-level invariant on the output.
func TestGenerateWorkflow(t *testing.T) {
	cfg := testConfig()
	ix := syntheticDictionary(t, 10)

	gen, err := New(cfg, ix, 1234)
	require.NoError(t, err)

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	result, err := gen.Run(start, now)
	require.NoError(t, err)
	require.Len(t, result.Puzzles, cfg.BatchSize)
	require.Len(t, result.Summary.RunID, 26, "run ID should be a ULID")
	require.Equal(t, cfg.BatchSize, result.Summary.Puzzles)
	require.GreaterOrEqual(t, result.Summary.Attempts, cfg.BatchSize)

	ids := make(map[string]bool)
	for i, p := range result.Puzzles {
		require.False(t, ids[p.ID], "duplicate ID %q", p.ID)
		ids[p.ID] = true

		set, err := p.Set()
		require.NoError(t, err, "puzzle %d has malformed letters", i)
		all := set.All()
		require.Equal(t, 7, all.Count())

		require.GreaterOrEqual(t, p.TotalWords, cfg.MinWords)
		require.LessOrEqual(t, p.TotalWords, cfg.MaxWords)
		require.Equal(t, p.TotalWords, len(p.ValidWords))
		require.GreaterOrEqual(t, len(p.Pangrams), cfg.MinPangrams)
		require.LessOrEqual(t, len(p.Pangrams), cfg.MaxPangrams)

		for _, w := range p.ValidWords {
			require.GreaterOrEqual(t, len(w), cfg.MinWordLength, "word %q too short", w)
			require.True(t, puzzle.MaskOf(w).Has(set.Center), "word %q misses center", w)
			require.True(t, all.ContainsAll(puzzle.MaskOf(w)), "word %q escapes the set", w)
		}
		for _, pg := range p.Pangrams {
			require.Equal(t, all, puzzle.MaskOf(pg), "pangram %q does not cover the set", pg)
		}

		wantDate := start.AddDate(0, 0, i).Format(puzzle.DateFormat)
		require.Equal(t, wantDate, p.LiveDate)
	}

	// No identical letter set within any trailing window.
	for i := range result.Puzzles {
		for j := i + 1; j < len(result.Puzzles) && j-i <= cfg.WindowSlots; j++ {
			require.NotEqual(t, result.Puzzles[i].Mask(), result.Puzzles[j].Mask(),
				"puzzles %d and %d repeat a letter set inside the window", i, j)
		}
	}
}

// TestGenerateDeterministicBySeed re-runs the pipeline with the same seed
// and expects identical batches.
func TestGenerateDeterministicBySeed(t *testing.T) {
	cfg := testConfig()
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	run := func() []puzzle.Puzzle {
		gen, err := New(cfg, syntheticDictionary(t, 10), 77)
		require.NoError(t, err)
		result, err := gen.Run(start, now)
		require.NoError(t, err)
		return result.Puzzles
	}

	a, b := run(), run()
	require.Equal(t, len(a), len(b))
	for i := range a {
		require.Equal(t, a[i].ID, b[i].ID, "slot %d diverged", i)
		require.Equal(t, a[i].ValidWords, b[i].ValidWords)
	}
}

// TestGenerateSamplingExhaustion verifies that an impossible constraint
// set fails the run instead of looping forever.
func TestGenerateSamplingExhaustion(t *testing.T) {
	cfg := testConfig()
	cfg.MinWords = 1000 // no synthetic set reaches this
	cfg.AttemptsPerSlot = 50

	gen, err := New(cfg, syntheticDictionary(t, 10), 1)
	require.NoError(t, err)

	_, err = gen.Run(time.Now(), time.Now())
	require.Error(t, err)
	require.Contains(t, err.Error(), "SAMPLING_EXHAUSTED")
}

// TestGenerateHistorySeeding pre-loads the window with a prior batch and
// expects those letter sets to stay out of the new one for the window
// span.
func TestGenerateHistorySeeding(t *testing.T) {
	cfg := testConfig()
	cfg.BatchSize = 3
	cfg.WindowSlots = 20 // wider than both batches combined

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	gen, err := New(cfg, syntheticDictionary(t, 10), 5)
	require.NoError(t, err)
	prior, err := gen.Run(start, now)
	require.NoError(t, err)

	gen2, err := New(cfg, syntheticDictionary(t, 10), 6)
	require.NoError(t, err)
	gen2.SeedHistory(prior.Puzzles)
	next, err := gen2.Run(start.AddDate(0, 0, cfg.BatchSize), now)
	require.NoError(t, err)

	priorMasks := make(map[puzzle.Mask]bool)
	for i := range prior.Puzzles {
		priorMasks[prior.Puzzles[i].Mask()] = true
	}
	for i := range next.Puzzles {
		require.False(t, priorMasks[next.Puzzles[i].Mask()],
			"puzzle %d reuses a letter set from the seeded history", i)
	}
}
