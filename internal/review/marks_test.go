package review

import (
	"database/sql"
	"testing"

	"github.com/hivelark/beegen/internal/errors"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMarkWords(t *testing.T) {
	db := testDB(t)

	result, err := MarkWords(db, []string{"tortilla", "rotini"}, StatusObscure)
	if err != nil {
		t.Fatalf("MarkWords() error = %v", err)
	}
	if len(result.Marked) != 2 {
		t.Errorf("Marked = %v, want 2 words", result.Marked)
	}
	if len(result.BatchID) != 26 {
		t.Errorf("BatchID = %q, want a ULID", result.BatchID)
	}

	marks, err := ListMarks(db, "")
	if err != nil {
		t.Fatalf("ListMarks() error = %v", err)
	}
	if len(marks) != 2 {
		t.Fatalf("ListMarks() returned %d marks, want 2", len(marks))
	}
	// Ordered by word
	if marks[0].Word != "rotini" || marks[1].Word != "tortilla" {
		t.Errorf("marks out of order: %v", marks)
	}
	for _, m := range marks {
		if m.Status != StatusObscure {
			t.Errorf("mark %q status = %s, want obscure", m.Word, m.Status)
		}
		if m.Source != SourceManual {
			t.Errorf("mark %q source = %s, want manual", m.Word, m.Source)
		}
		if m.BatchID != result.BatchID {
			t.Errorf("mark %q batch = %s, want %s", m.Word, m.BatchID, result.BatchID)
		}
	}
}

func TestMarkWords_FirstVerdictWins(t *testing.T) {
	db := testDB(t)

	if _, err := MarkWords(db, []string{"train"}, StatusValid); err != nil {
		t.Fatalf("MarkWords() error = %v", err)
	}

	// A second verdict on the same word is skipped, not overwritten.
	result, err := MarkWords(db, []string{"train", "attire"}, StatusObscure)
	if err != nil {
		t.Fatalf("MarkWords() error = %v", err)
	}
	if len(result.Marked) != 1 || result.Marked[0] != "attire" {
		t.Errorf("Marked = %v, want [attire]", result.Marked)
	}
	if len(result.Skipped) != 1 || result.Skipped[0] != "train" {
		t.Errorf("Skipped = %v, want [train]", result.Skipped)
	}

	valid, err := ListMarks(db, StatusValid)
	if err != nil {
		t.Fatalf("ListMarks() error = %v", err)
	}
	if len(valid) != 1 || valid[0].Word != "train" {
		t.Errorf("valid marks = %v, want train only", valid)
	}
}

func TestMarkWords_InvalidInput(t *testing.T) {
	db := testDB(t)

	if _, err := MarkWords(db, []string{"train"}, "maybe"); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("bad status: error = %v, want INVALID_REQUEST", err)
	}
	if _, err := MarkWords(db, nil, StatusValid); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("no words: error = %v, want INVALID_REQUEST", err)
	}
}

func TestAutoMark(t *testing.T) {
	db := testDB(t)

	freqs := map[string]int{
		"orientation": 90000, // common -> valid
		"roti":        1200,  // rare and short -> obscure
		"anterooms":   1300,  // rare but long -> left unmarked
	}

	result, err := AutoMark(db, freqs, 50000, 8, false)
	if err != nil {
		t.Fatalf("AutoMark() error = %v", err)
	}
	if !result.Applied {
		t.Error("Applied = false, want true")
	}
	if len(result.Valid) != 1 || result.Valid[0] != "orientation" {
		t.Errorf("Valid = %v, want [orientation]", result.Valid)
	}
	if len(result.Obscure) != 1 || result.Obscure[0] != "roti" {
		t.Errorf("Obscure = %v, want [roti]", result.Obscure)
	}

	marks, err := ListMarks(db, "")
	if err != nil {
		t.Fatalf("ListMarks() error = %v", err)
	}
	if len(marks) != 2 {
		t.Fatalf("ListMarks() returned %d marks, want 2", len(marks))
	}
	for _, m := range marks {
		if m.Source != SourceAuto {
			t.Errorf("mark %q source = %s, want auto", m.Word, m.Source)
		}
	}
}

func TestAutoMark_DryRun(t *testing.T) {
	db := testDB(t)

	freqs := map[string]int{"orientation": 90000, "roti": 1200}
	result, err := AutoMark(db, freqs, 50000, 8, true)
	if err != nil {
		t.Fatalf("AutoMark() error = %v", err)
	}
	if result.Applied {
		t.Error("Applied = true on dry run")
	}
	if len(result.Valid) != 1 || len(result.Obscure) != 1 {
		t.Errorf("dry run preview = %+v, want 1 valid and 1 obscure", result)
	}

	marks, err := ListMarks(db, "")
	if err != nil {
		t.Fatalf("ListMarks() error = %v", err)
	}
	if len(marks) != 0 {
		t.Errorf("dry run wrote %d marks", len(marks))
	}
}

func TestAutoMark_SkipsMarkedWords(t *testing.T) {
	db := testDB(t)

	if _, err := MarkWords(db, []string{"roti"}, StatusValid); err != nil {
		t.Fatalf("MarkWords() error = %v", err)
	}

	result, err := AutoMark(db, map[string]int{"roti": 1200}, 50000, 8, false)
	if err != nil {
		t.Fatalf("AutoMark() error = %v", err)
	}
	if len(result.Valid) != 0 || len(result.Obscure) != 0 {
		t.Errorf("AutoMark touched an already-marked word: %+v", result)
	}
}

func TestRejectedSet(t *testing.T) {
	db := testDB(t)

	if _, err := MarkWords(db, []string{"roti", "naan"}, StatusObscure); err != nil {
		t.Fatalf("MarkWords() error = %v", err)
	}
	if _, err := MarkWords(db, []string{"train"}, StatusValid); err != nil {
		t.Fatalf("MarkWords() error = %v", err)
	}

	rejected, err := RejectedSet(db)
	if err != nil {
		t.Fatalf("RejectedSet() error = %v", err)
	}
	if len(rejected) != 2 || !rejected["roti"] || !rejected["naan"] {
		t.Errorf("RejectedSet() = %v, want {roti, naan}", rejected)
	}
	if rejected["train"] {
		t.Error("RejectedSet() includes a valid word")
	}
}
