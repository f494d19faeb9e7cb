package history

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/copperline/xtasks/internal/domain"
)

const historyFile = ".xtasks/history/checks.json"

// FileHistory implements domain.HistoryStore using JSON file storage under
// the project's .xtasks directory.
type FileHistory struct{}

func New() *FileHistory {
	return &FileHistory{}
}

// Append loads the existing run log, adds entry, and writes it back.
func (h *FileHistory) Append(root string, entry domain.HistoryEntry) error {
	entries, err := h.Load(root)
	if err != nil {
		return err
	}

	entries = append(entries, entry)

	fp := filepath.Join(root, historyFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(fp, data, 0644)
}

// Load returns all persisted check runs, oldest first. No history file is
// not an error.
func (h *FileHistory) Load(root string) ([]domain.HistoryEntry, error) {
	fp := filepath.Join(root, historyFile)

	data, err := os.ReadFile(fp)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}
