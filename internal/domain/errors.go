package domain

import "errors"

// Sentinel errors shared across services and adapters.
var (
	// ErrNoManifest means no go.mod was found at or above the start path.
	ErrNoManifest = errors.New("no go.mod found")
	// ErrAnchorNotPinned means the anchor module is absent from the
	// manifest's require block.
	ErrAnchorNotPinned = errors.New("anchor module not required by manifest")
)
