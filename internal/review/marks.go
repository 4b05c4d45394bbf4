package review

import (
	crand "crypto/rand"
	"database/sql"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hivelark/beegen/internal/errors"
)

// Mark statuses. A word is marked at most once; the first verdict wins and
// later batches skip it.
const (
	StatusValid   = "valid"
	StatusObscure = "obscure"
)

// Mark sources.
const (
	SourceManual = "manual"
	SourceAuto   = "auto"
)

// Mark is one word's review verdict.
type Mark struct {
	Word     string `json:"word"`
	Status   string `json:"status"`
	Source   string `json:"source"`
	BatchID  string `json:"batch_id"`
	MarkedAt int64  `json:"marked_at"`
}

// MarkResult reports what a mark batch changed.
type MarkResult struct {
	BatchID string   `json:"batch_id"`
	Marked  []string `json:"marked"`
	Skipped []string `json:"skipped,omitempty"`
}

// MarkWords records a manual verdict for each word that has none yet.
// Already-marked words are skipped, not overwritten.
func MarkWords(db *sql.DB, words []string, status string) (*MarkResult, error) {
	if status != StatusValid && status != StatusObscure {
		return nil, errors.NewInvalidRequest("status must be 'valid' or 'obscure'")
	}
	if len(words) == 0 {
		return nil, errors.NewInvalidRequest("no words given")
	}
	return apply(db, words, status, SourceManual)
}

// AutoMarkResult previews or reports a frequency-driven marking pass.
type AutoMarkResult struct {
	BatchID string   `json:"batch_id,omitempty"`
	Valid   []string `json:"valid"`
	Obscure []string `json:"obscure"`
	Applied bool     `json:"applied"`
}

// AutoMark marks unmarked dictionary words by frequency: at or above the
// threshold a word is valid; below it (or absent from the frequency map)
// a word shorter than minLength is obscure. Longer rare words are left for
// manual review. With dryRun the verdicts are returned without writing.
func AutoMark(db *sql.DB, freqs map[string]int, threshold, minLength int, dryRun bool) (*AutoMarkResult, error) {
	if threshold <= 0 {
		return nil, errors.NewInvalidRequest("threshold must be positive")
	}

	marked, err := markedSet(db)
	if err != nil {
		return nil, err
	}

	result := &AutoMarkResult{Valid: []string{}, Obscure: []string{}}
	for word, freq := range freqs {
		if marked[word] {
			continue
		}
		switch {
		case freq >= threshold:
			result.Valid = append(result.Valid, word)
		case len(word) < minLength:
			result.Obscure = append(result.Obscure, word)
		}
	}
	sort.Strings(result.Valid)
	sort.Strings(result.Obscure)

	if dryRun {
		return result, nil
	}

	if len(result.Valid) > 0 {
		res, err := apply(db, result.Valid, StatusValid, SourceAuto)
		if err != nil {
			return nil, err
		}
		result.BatchID = res.BatchID
	}
	if len(result.Obscure) > 0 {
		res, err := apply(db, result.Obscure, StatusObscure, SourceAuto)
		if err != nil {
			return nil, err
		}
		if result.BatchID == "" {
			result.BatchID = res.BatchID
		}
	}
	result.Applied = true
	return result, nil
}

// apply inserts one mark batch under a fresh ULID, skipping words that
// already carry a verdict.
func apply(db *sql.DB, words []string, status, source string) (*MarkResult, error) {
	result := &MarkResult{BatchID: newBatchID(), Marked: []string{}}
	now := time.Now().Unix()

	tx, err := db.Begin()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO word_marks (word, status, source, batch_id, marked_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(word) DO NOTHING
	`
	for _, word := range words {
		res, err := tx.Exec(query, word, status, source, result.BatchID, now)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		if affected == 0 {
			result.Skipped = append(result.Skipped, word)
			continue
		}
		result.Marked = append(result.Marked, word)
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return result, nil
}

// ListMarks returns marks ordered by word, optionally filtered by status.
func ListMarks(db *sql.DB, status string) ([]Mark, error) {
	if status != "" && status != StatusValid && status != StatusObscure {
		return nil, errors.NewInvalidRequest("status must be 'valid' or 'obscure'")
	}

	query := `
		SELECT word, status, source, batch_id, marked_at
		FROM word_marks
	`
	args := []any{}
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY word"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	marks := []Mark{}
	for rows.Next() {
		var m Mark
		if err := rows.Scan(&m.Word, &m.Status, &m.Source, &m.BatchID, &m.MarkedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		marks = append(marks, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return marks, nil
}

// RejectedSet returns the obscure words as a set, for the dictionary
// loader's snapshot.
func RejectedSet(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query(`SELECT word FROM word_marks WHERE status = ?`, StatusObscure)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, errors.NewInternal(err)
		}
		out[word] = true
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return out, nil
}

// markedSet returns every word that already carries a verdict.
func markedSet(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query(`SELECT word FROM word_marks`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, errors.NewInternal(err)
		}
		out[word] = true
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return out, nil
}

// newBatchID generates a ULID for mark-batch provenance.
func newBatchID() string {
	entropy := ulid.Monotonic(crand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
