package pinstore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/copperline/xtasks/internal/domain"
)

// Store is a file-based implementation of domain.PinStore. The pin records
// which baseline revision was last applied to a project and a hash of the
// manifest it produced, so a later check can tell a stale pin from manual
// drift.
type Store struct{}

// New creates a new file-based pin store.
func New() *Store {
	return &Store{}
}

// Load reads the project pin. Returns ok=false when no pin exists.
func (s *Store) Load(root string) (domain.AppliedPin, bool, error) {
	data, err := os.ReadFile(pinPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.AppliedPin{}, false, nil
		}
		return domain.AppliedPin{}, false, err
	}

	var pin domain.AppliedPin
	if err := json.Unmarshal(data, &pin); err != nil {
		return domain.AppliedPin{}, false, err
	}
	return pin, true, nil
}

// Save writes the pin, creating the .xtasks directory as needed.
func (s *Store) Save(root string, pin domain.AppliedPin) error {
	if err := os.MkdirAll(pinDir(root), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(pin, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(pinPath(root), data, 0644)
}

// Invalidate removes the pin file for the given project.
func (s *Store) Invalidate(root string) error {
	if err := os.Remove(pinPath(root)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func pinDir(root string) string {
	return filepath.Join(root, ".xtasks")
}

func pinPath(root string) string {
	return filepath.Join(root, ".xtasks", "pin.json")
}
