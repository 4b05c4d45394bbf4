package generate

import (
	"math/rand"

	"github.com/hivelark/beegen/internal/config"
	"github.com/hivelark/beegen/internal/puzzle"
)

// Scheduler decides which evaluated candidates enter the batch. It tracks
// the rolling no-repeat window, the pangram-count histogram, and the
// center-letter histogram, and feeds letter weights back to the sampler.
// Offer must be called from a single goroutine: accept/reject decisions
// are ordering-sensitive.
type Scheduler struct {
	cfg *config.Config
	rng *rand.Rand

	window      []puzzle.Mask
	pangramHist map[int]int
	centerHist  [26]int
	letterHist  [26]int
	batch       []*Candidate
}

// NewScheduler creates a scheduler for one batch run.
func NewScheduler(cfg *config.Config, rng *rand.Rand) *Scheduler {
	return &Scheduler{
		cfg:         cfg,
		rng:         rng,
		pangramHist: make(map[int]int),
	}
}

// SeedWindow preloads the no-repeat window with letter sets from prior
// live puzzles, trailing-most last. Only the newest WindowSlots survive.
func (s *Scheduler) SeedWindow(masks []puzzle.Mask) {
	s.window = append(s.window, masks...)
	if excess := len(s.window) - s.cfg.WindowSlots; excess > 0 {
		s.window = s.window[excess:]
	}
}

// Offer decides whether a candidate joins the batch. On acceptance the
// running tallies and the rolling window are updated and the candidate
// takes the next provisional sequence position.
func (s *Scheduler) Offer(c *Candidate) bool {
	mask := c.Set.All()

	// Hard gate: identical 7-letter set within the trailing window.
	for _, prev := range s.window {
		if prev == mask {
			return false
		}
	}

	// Soft gate: over-represented pangram counts get rejected with rising
	// probability as their share exceeds the target.
	if s.overRepresented(s.pangramHist[len(c.Pangrams)], s.cfg.PangramTargets[len(c.Pangrams)]) {
		return false
	}

	// Soft gate: center-letter share cap.
	if s.overRepresented(s.centerHist[c.Set.Center-'a'], s.cfg.MaxCenterShare) {
		return false
	}

	s.accept(c, mask)
	return true
}

// softGateCap bounds the soft-gate rejection probability. Without it a
// dictionary where every candidate lands in the same bucket would reject
// forever and burn the whole attempt budget.
const softGateCap = 0.9

// overRepresented applies the probabilistic rejection: the further the
// observed share sits above the target, the more likely the rejection.
func (s *Scheduler) overRepresented(count int, target float64) bool {
	if len(s.batch) == 0 {
		return false
	}
	share := float64(count) / float64(len(s.batch))
	if share <= target {
		return false
	}
	p := (share - target) / (1 - target)
	if p > softGateCap {
		p = softGateCap
	}
	return s.rng.Float64() < p
}

func (s *Scheduler) accept(c *Candidate, mask puzzle.Mask) {
	s.window = append(s.window, mask)
	if len(s.window) > s.cfg.WindowSlots {
		s.window = s.window[1:]
	}
	s.pangramHist[len(c.Pangrams)]++
	s.centerHist[c.Set.Center-'a']++
	for _, l := range c.Set.Letters() {
		s.letterHist[l-'a']++
	}
	s.batch = append(s.batch, c)
}

// Done reports whether the batch reached its target size.
func (s *Scheduler) Done() bool {
	return len(s.batch) >= s.cfg.BatchSize
}

// Batch returns the accepted candidates in provisional sequence order.
func (s *Scheduler) Batch() []*Candidate {
	return s.batch
}

// LetterWeights returns sampling feedback: letters that have appeared in
// fewer accepted puzzles weigh more.
func (s *Scheduler) LetterWeights() [26]float64 {
	var w [26]float64
	for i := range w {
		w[i] = 1 / float64(1+s.letterHist[i])
	}
	return w
}
