package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds generation policy parameters. Everything here is tunable;
// the defaults match the live game rules.
type Config struct {
	// BatchSize is the number of puzzles per generation run.
	BatchSize int `json:"batch_size"`

	// WindowSlots is the trailing number of live-date slots within which a
	// 7-letter set may not repeat.
	WindowSlots int `json:"window_slots"`

	// MinWords / MaxWords bound the valid-word count of an acceptable puzzle.
	MinWords int `json:"min_words"`
	MaxWords int `json:"max_words"`

	// MinPangrams / MaxPangrams bound the pangram count of an acceptable puzzle.
	MinPangrams int `json:"min_pangrams"`
	MaxPangrams int `json:"max_pangrams"`

	// MinWordLength is the shortest playable word.
	MinWordLength int `json:"min_word_length"`

	// MaxWordLength caps dictionary entries at load time. Longer words are
	// unplayable in practice and bloat review.
	MaxWordLength int `json:"max_word_length"`

	// AttemptsPerSlot is the sampling budget per batch slot. Spending it
	// without an accepted puzzle fails the whole run.
	AttemptsPerSlot int `json:"attempts_per_slot"`

	// ShuffleTrials is the number of permutations the temporal randomizer
	// scores before settling for the best one found.
	ShuffleTrials int `json:"shuffle_trials"`

	// CorrelationTarget is the acceptable |Pearson r| between slot position
	// and each difficulty signal after reordering.
	CorrelationTarget float64 `json:"correlation_target"`

	// PangramTargets maps pangram count to its target share of the batch.
	// Shares need not sum to 1; a count with no entry is treated as target
	// zero and strongly discouraged.
	PangramTargets map[int]float64 `json:"pangram_targets,omitempty"`

	// MaxCenterShare caps any single center letter's share of the batch.
	MaxCenterShare float64 `json:"max_center_share"`

	// IDRetries is how many times a colliding puzzle ID is regenerated
	// before the run fails.
	IDRetries int `json:"id_retries,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:         180,
		WindowSlots:       60,
		MinWords:          25,
		MaxWords:          200,
		MinPangrams:       1,
		MaxPangrams:       6,
		MinWordLength:     4,
		MaxWordLength:     16,
		AttemptsPerSlot:   5000,
		ShuffleTrials:     200,
		CorrelationTarget: 0.15,
		PangramTargets: map[int]float64{
			1: 0.16,
			2: 0.37,
			3: 0.25,
			4: 0.12,
			5: 0.06,
			6: 0.04,
		},
		MaxCenterShare: 0.12,
		IDRetries:      5,
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.beegen.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence where non-zero; the pangram target map
// replaces wholesale when present.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.BatchSize = pick(overlay.BatchSize, base.BatchSize)
	result.WindowSlots = pick(overlay.WindowSlots, base.WindowSlots)
	result.MinWords = pick(overlay.MinWords, base.MinWords)
	result.MaxWords = pick(overlay.MaxWords, base.MaxWords)
	result.MinPangrams = pick(overlay.MinPangrams, base.MinPangrams)
	result.MaxPangrams = pick(overlay.MaxPangrams, base.MaxPangrams)
	result.MinWordLength = pick(overlay.MinWordLength, base.MinWordLength)
	result.MaxWordLength = pick(overlay.MaxWordLength, base.MaxWordLength)
	result.AttemptsPerSlot = pick(overlay.AttemptsPerSlot, base.AttemptsPerSlot)
	result.ShuffleTrials = pick(overlay.ShuffleTrials, base.ShuffleTrials)
	result.IDRetries = pick(overlay.IDRetries, base.IDRetries)

	result.CorrelationTarget = overlay.CorrelationTarget
	if result.CorrelationTarget == 0 {
		result.CorrelationTarget = base.CorrelationTarget
	}
	result.MaxCenterShare = overlay.MaxCenterShare
	if result.MaxCenterShare == 0 {
		result.MaxCenterShare = base.MaxCenterShare
	}

	result.PangramTargets = overlay.PangramTargets
	if len(result.PangramTargets) == 0 {
		result.PangramTargets = base.PangramTargets
	}

	return result
}

// pick returns overlay if non-zero, else base.
func pick(overlay, base int) int {
	if overlay != 0 {
		return overlay
	}
	return base
}
