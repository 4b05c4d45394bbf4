// Package puzzle holds the domain model shared by the generator, the
// review tooling, and the analysis commands: letter-set signatures and the
// puzzle record emitted to batch files.
package puzzle

// Date formats used in batch files.
const (
	DateFormat         = "2006-01-02"
	ReviewedTimeFormat = "2006-01-02 15:04:05"
)

// Puzzle is the unit of output. The generator creates it and never touches
// it again; review tooling may re-mark valid_words but must not alter
// center_letter, outside_letters, or pangrams.
type Puzzle struct {
	// ID is a short content-derived identifier, unique within a batch
	ID string `json:"id"`

	// LastReviewed is the generation (or latest review) time
	LastReviewed string `json:"last_reviewed"`

	// LiveDate is the day the puzzle goes live, one puzzle per day
	LiveDate string `json:"live_date"`

	// CenterLetter must appear in every valid word
	CenterLetter string `json:"center_letter"`

	// OutsideLetters are the 6 non-center letters, sorted
	OutsideLetters []string `json:"outside_letters"`

	// Pangrams are the valid words using all 7 letters
	Pangrams []string `json:"pangrams"`

	// BingoPossible is true when every letter starts at least one valid word
	BingoPossible bool `json:"bingo_possible"`

	// TotalScore is the summed word scores plus pangram and bingo bonuses
	TotalScore int `json:"total_score"`

	// TotalWords equals len(ValidWords)
	TotalWords int `json:"total_words"`

	// ValidWords is the sorted list of playable words
	ValidWords []string `json:"valid_words"`
}

// Set reconstructs the puzzle's LetterSet from its record fields.
func (p *Puzzle) Set() (LetterSet, error) {
	return ParseLetterSet(p.CenterLetter, p.OutsideLetters)
}

// Mask returns the full 7-letter signature, or 0 if the record's letter
// fields are malformed.
func (p *Puzzle) Mask() Mask {
	set, err := p.Set()
	if err != nil {
		return 0
	}
	return set.All()
}
