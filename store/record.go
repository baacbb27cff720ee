package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"sente/game"
)

// Record is the persisted form of a match: everything needed to resume
// play or to replay the game action by action.
type Record struct {
	Variant game.Variant `json:"variant"`
	Mover   game.Cell    `json:"mover"`
	Passes  int          `json:"passes"`
	Board   string       `json:"board"`
	History []game.Move  `json:"history"`
}

// Save writes rec as JSON, creating parent directories as needed.
func Save(path string, rec Record) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create save directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// Load reads a record previously written by Save. A missing or corrupt
// file yields an error and no partial record.
func Load(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("failed to read record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("failed to decode record: %w", err)
	}
	return rec, nil
}
