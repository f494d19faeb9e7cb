package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const versionFileName = "VERSION"

// VersionFile implements domain.VersionFile: a single-line version marker
// at the project root.
type VersionFile struct{}

func NewVersionFile() *VersionFile {
	return &VersionFile{}
}

func (v *VersionFile) Path(root string) string {
	return filepath.Join(root, versionFileName)
}

// Read returns the trimmed file content, or "" when the file is absent.
func (v *VersionFile) Read(root string) (string, error) {
	data, err := os.ReadFile(v.Path(root))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read version file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Write persists version with a trailing newline and returns the path.
func (v *VersionFile) Write(root, version string) (string, error) {
	path := v.Path(root)
	if err := os.WriteFile(path, []byte(version+"\n"), 0644); err != nil {
		return "", fmt.Errorf("write version file: %w", err)
	}
	return path, nil
}
