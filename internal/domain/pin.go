package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// AppliedPin records the baseline revision last applied to a project,
// together with a hash of the manifest the apply produced. A later check
// compares the hash to tell a stale pin from manual drift.
type AppliedPin struct {
	ReferenceVersion string    `json:"reference_version"`
	ManifestSHA      string    `json:"manifest_sha"`
	AppliedAt        time.Time `json:"applied_at"`
}

// ManifestSHA hashes manifest bytes the way pins record them.
func ManifestSHA(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
