// Package generate implements the puzzle batch pipeline: sample letter
// sets, evaluate them against the dictionary index, schedule a diverse
// batch, decorrelate difficulty from the date sequence, and emit records.
package generate

import (
	crand "crypto/rand"
	"fmt"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hivelark/beegen/internal/config"
	"github.com/hivelark/beegen/internal/dictionary"
	"github.com/hivelark/beegen/internal/errors"
	"github.com/hivelark/beegen/internal/puzzle"
)

// rejectDiversity tallies scheduler rejections alongside evaluator reasons.
const rejectDiversity = "diversity"

// Summary describes a completed generation run.
type Summary struct {
	RunID           string          `json:"run_id"`
	Puzzles         int             `json:"puzzles"`
	Attempts        int             `json:"attempts"`
	DictionaryWords int             `json:"dictionary_words"`
	Rejections      map[string]int  `json:"rejections"`
	Randomization   RandomizeReport `json:"randomization"`
	Warnings        []string        `json:"warnings,omitempty"`
}

// Result is a finished batch plus its run summary.
type Result struct {
	Puzzles []puzzle.Puzzle
	Summary Summary
}

// Generator runs the synchronous single-threaded pipeline. The dictionary
// index is read-only after construction; all mutable state lives in the
// scheduler and is touched one candidate at a time.
type Generator struct {
	cfg       *config.Config
	index     *dictionary.Index
	sampler   *Sampler
	evaluator *Evaluator
	scheduler *Scheduler
	seed      int64
}

// New wires a generator. Fails fast when the dictionary cannot support
// pangrams at all.
func New(cfg *config.Config, index *dictionary.Index, seed int64) (*Generator, error) {
	rng := rand.New(rand.NewSource(seed))
	sampler, err := NewSampler(index, rng)
	if err != nil {
		return nil, err
	}
	return &Generator{
		cfg:       cfg,
		index:     index,
		sampler:   sampler,
		evaluator: NewEvaluator(index, cfg),
		scheduler: NewScheduler(cfg, rng),
		seed:      seed,
	}, nil
}

// SeedHistory preloads the no-repeat window from a prior batch so the
// 60-slot rule holds across generation runs.
func (g *Generator) SeedHistory(prior []puzzle.Puzzle) {
	masks := make([]puzzle.Mask, 0, len(prior))
	for i := range prior {
		if m := prior[i].Mask(); m != 0 {
			masks = append(masks, m)
		}
	}
	g.scheduler.SeedWindow(masks)
}

// Run produces the batch. Spending the per-slot attempt budget without an
// accepted candidate fails the whole run: the dictionary cannot satisfy
// the constraints and retrying indefinitely would hide that.
func (g *Generator) Run(startDate, now time.Time) (*Result, error) {
	summary := Summary{
		RunID:           newRunID(now),
		DictionaryWords: g.index.Size(),
		Rejections:      make(map[string]int),
	}

	for slot := 0; !g.scheduler.Done(); slot++ {
		accepted := false
		for attempt := 1; attempt <= g.cfg.AttemptsPerSlot; attempt++ {
			summary.Attempts++
			set := g.sampler.Propose(g.scheduler.LetterWeights())
			cand, reason := g.evaluator.Evaluate(set)
			if reason != ReasonNone {
				summary.Rejections[string(reason)]++
				continue
			}
			if !g.scheduler.Offer(cand) {
				summary.Rejections[rejectDiversity]++
				continue
			}
			accepted = true
			break
		}
		if !accepted {
			return nil, errors.NewSamplingExhausted(slot, g.cfg.AttemptsPerSlot)
		}
	}

	ordered, report := Reorder(g.scheduler.Batch(), g.seed, g.cfg.ShuffleTrials, g.cfg.CorrelationTarget)
	summary.Randomization = report
	if !report.TargetMet {
		summary.Warnings = append(summary.Warnings, fmt.Sprintf(
			"randomizer missed correlation target %.2f after %d trials; best |r| = %.3f",
			report.Target, report.Trials, report.Correlations.Max()))
	}

	puzzles, err := Finalize(ordered, startDate, now, g.cfg.IDRetries)
	if err != nil {
		return nil, err
	}

	summary.Puzzles = len(puzzles)
	return &Result{Puzzles: puzzles, Summary: summary}, nil
}

// newRunID generates a ULID for run provenance.
func newRunID(now time.Time) string {
	entropy := ulid.Monotonic(crand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(now), entropy)
	if err != nil {
		// crypto/rand failures are not recoverable here; an empty run ID
		// would silently break provenance.
		panic(err)
	}
	return id.String()
}
