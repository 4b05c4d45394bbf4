package puzzle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hivelark/beegen/internal/errors"
)

// ReadBatch loads a batch file (JSON array of puzzle records).
func ReadBatch(path string) ([]Puzzle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound(path)
		}
		return nil, errors.NewInternal(err)
	}

	var batch []Puzzle
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("%s is not a valid batch file: %v", path, err))
	}
	return batch, nil
}

// WriteBatch writes a batch file atomically: temp file in the target
// directory, then rename over the destination.
func WriteBatch(path string, batch []Puzzle) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".batch-*.tmp")
	if err != nil {
		return errors.NewInternal(err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(batch); err != nil {
		tmp.Close()
		return errors.NewInternal(err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewInternal(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}
