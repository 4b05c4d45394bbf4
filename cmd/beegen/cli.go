package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/hivelark/beegen/internal/analyze"
	"github.com/hivelark/beegen/internal/config"
	"github.com/hivelark/beegen/internal/dictionary"
	"github.com/hivelark/beegen/internal/errors"
	"github.com/hivelark/beegen/internal/generate"
	"github.com/hivelark/beegen/internal/puzzle"
	"github.com/hivelark/beegen/internal/review"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(store *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "beegen",
		Usage:   "Letter-set puzzle batch generator",
		Version: Version,
		Commands: []*cli.Command{
			generateCmd(store, cfg),
			analyzeCmd(),
			checkCmd(cfg),
			wordsCmd(store),
			redateCmd(),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// generateCmd creates the generate command.
func generateCmd(store *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate a batch of puzzles from a dictionary",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dict", Aliases: []string{"d"}, Required: true, Usage: "Dictionary file (JSON word → frequency)"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "batch.json", Usage: "Output batch file"},
			&cli.StringFlag{Name: "config", Usage: "Directory with a config.json overriding ~/.beegen"},
			&cli.Int64Flag{Name: "seed", Usage: "Random seed (default: time-based)"},
			&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Usage: "Puzzles to generate (default: configured batch size)"},
			&cli.StringFlag{Name: "start-date", Usage: "Live date of the first puzzle (YYYY-MM-DD, default: today)"},
			&cli.StringFlag{Name: "history", Usage: "Prior batch file to seed the no-repeat window"},
			&cli.BoolFlag{Name: "summary", Usage: "Emit the full run summary instead of the short result"},
		},
		Action: func(c *cli.Context) error {
			runCfg := cfg
			if dir := c.String("config"); dir != "" {
				loaded, err := config.Load(dir)
				if err != nil {
					return outputError(errors.NewInvalidRequest(fmt.Sprintf("config: %v", err)))
				}
				runCfg = loaded
			}
			if count := c.Int("count"); count > 0 {
				cloned := *runCfg
				cloned.BatchSize = count
				runCfg = &cloned
			}

			startDate, err := parseDateFlag(c.String("start-date"))
			if err != nil {
				return outputError(err)
			}

			rejected, err := review.RejectedSet(store)
			if err != nil {
				return outputError(err)
			}

			dict, err := dictionary.Load(c.String("dict"), dictionary.LoadOptions{
				Rejected:      rejected,
				MaxWordLength: runCfg.MaxWordLength,
			})
			if err != nil {
				return outputError(err)
			}

			seed := c.Int64("seed")
			if !c.IsSet("seed") {
				seed = time.Now().UnixNano()
			}

			gen, err := generate.New(runCfg, dictionary.NewIndex(dict.Words), seed)
			if err != nil {
				return outputError(err)
			}

			if history := c.String("history"); history != "" {
				prior, err := puzzle.ReadBatch(history)
				if err != nil {
					return outputError(err)
				}
				gen.SeedHistory(prior)
			}

			result, err := gen.Run(startDate, time.Now())
			if err != nil {
				return outputError(err)
			}

			outPath := c.String("out")
			if err := puzzle.WriteBatch(outPath, result.Puzzles); err != nil {
				return outputError(err)
			}

			for _, w := range result.Summary.Warnings {
				fmt.Fprintf(os.Stderr, "warning: %s\n", w)
			}

			if c.Bool("summary") {
				return outputJSON(result.Summary)
			}
			return outputJSON(map[string]any{
				"run_id":  result.Summary.RunID,
				"puzzles": result.Summary.Puzzles,
				"out":     outPath,
			})
		},
	}
}

// analyzeCmd creates the analyze command.
func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Summarize a batch file (word/score ranges, pangram histogram, letter coverage)",
		ArgsUsage: "batch.json",
		Action: func(c *cli.Context) error {
			batch, err := readBatchArg(c)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(analyze.Stats(batch))
		},
	}
}

// checkCmd creates the check command.
func checkCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Check a batch file's difficulty-vs-date correlations",
		ArgsUsage: "batch.json",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "target", Usage: "Correlation target (default: configured)"},
		},
		Action: func(c *cli.Context) error {
			batch, err := readBatchArg(c)
			if err != nil {
				return outputError(err)
			}
			target := c.Float64("target")
			if !c.IsSet("target") {
				target = cfg.CorrelationTarget
			}
			return outputJSON(analyze.CheckRandomization(batch, target))
		},
	}
}

// wordsCmd creates the words command group.
func wordsCmd(store *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "words",
		Usage: "Manage the review word-mark store",
		Subcommands: []*cli.Command{
			wordsMarkCmd(store),
			wordsAutoCmd(store),
			wordsListCmd(store),
		},
	}
}

// wordsMarkCmd creates the words mark command.
func wordsMarkCmd(store *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "mark",
		Usage: "Record a verdict for one or more words",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Required: true, Usage: "Verdict: valid|obscure"},
			&cli.StringFlag{Name: "words", Aliases: []string{"w"}, Usage: "Comma-separated words"},
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "File with one word per line"},
		},
		Action: func(c *cli.Context) error {
			words := parseWords(c.String("words"))
			if path := c.String("file"); path != "" {
				fromFile, err := readWordFile(path)
				if err != nil {
					return outputError(err)
				}
				words = append(words, fromFile...)
			}

			output, err := review.MarkWords(store, words, c.String("status"))
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// wordsAutoCmd creates the words auto command.
func wordsAutoCmd(store *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "auto",
		Usage: "Auto-mark dictionary words by frequency",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dict", Aliases: []string{"d"}, Required: true, Usage: "Dictionary file (JSON word → frequency)"},
			&cli.IntFlag{Name: "threshold", Aliases: []string{"t"}, Value: 50000, Usage: "Frequency at or above which a word is valid"},
			&cli.IntFlag{Name: "min-length", Value: 8, Usage: "Rare words shorter than this are obscure"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Preview verdicts without writing"},
		},
		Action: func(c *cli.Context) error {
			dict, err := dictionary.Load(c.String("dict"), dictionary.LoadOptions{})
			if err != nil {
				return outputError(err)
			}

			output, err := review.AutoMark(store, dict.Frequencies(),
				c.Int("threshold"), c.Int("min-length"), c.Bool("dry-run"))
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// wordsListCmd creates the words list command.
func wordsListCmd(store *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List recorded word marks",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "Filter: valid|obscure"},
		},
		Action: func(c *cli.Context) error {
			marks, err := review.ListMarks(store, c.String("status"))
			if err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{
				"count": len(marks),
				"marks": marks,
			})
		},
	}
}

// redateCmd creates the redate command.
func redateCmd() *cli.Command {
	return &cli.Command{
		Name:      "redate",
		Usage:     "Rewrite live dates over an existing batch, one day per slot",
		ArgsUsage: "batch.json",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "start-date", Required: true, Usage: "Live date of the first puzzle (YYYY-MM-DD)"},
		},
		Action: func(c *cli.Context) error {
			batch, err := readBatchArg(c)
			if err != nil {
				return outputError(err)
			}
			startDate, err := parseDateFlag(c.String("start-date"))
			if err != nil {
				return outputError(err)
			}

			generate.Redate(batch, startDate)
			path := c.Args().First()
			if err := puzzle.WriteBatch(path, batch); err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{
				"puzzles":    len(batch),
				"start_date": startDate.Format(puzzle.DateFormat),
				"out":        path,
			})
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if genErr, ok := err.(*errors.GenError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", genErr.Code, genErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// readBatchArg loads the batch file named by the first positional argument.
func readBatchArg(c *cli.Context) ([]puzzle.Puzzle, error) {
	if c.NArg() < 1 {
		return nil, errors.NewInvalidRequest("batch file argument required")
	}
	return puzzle.ReadBatch(c.Args().First())
}

// parseDateFlag parses a YYYY-MM-DD flag, defaulting to today.
func parseDateFlag(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(puzzle.DateFormat, s)
	if err != nil {
		return time.Time{}, errors.NewInvalidRequest(fmt.Sprintf("invalid date %q: use YYYY-MM-DD", s))
	}
	return t, nil
}

// parseWords splits a comma-separated string into a slice of words.
func parseWords(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		w := strings.TrimSpace(p)
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// readWordFile reads one word per line, ignoring blanks.
func readWordFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound(path)
		}
		return nil, errors.NewInternal(err)
	}
	var words []string
	for _, line := range strings.Split(string(data), "\n") {
		if w := strings.TrimSpace(line); w != "" {
			words = append(words, w)
		}
	}
	return words, nil
}
