package domain

// SyncOptions control how sync-version derives the project version from the
// pinned anchor module.
type SyncOptions struct {
	// Build replaces the version's build metadata (the part after "+").
	Build string
	// StripPre drops any prerelease suffix from the anchor version.
	StripPre bool
	// DryRun reports the result without touching the VERSION file.
	DryRun bool
}

// SyncResult reports what sync-version wrote, or would write under DryRun.
type SyncResult struct {
	Anchor   string `json:"anchor"`
	Resolved string `json:"resolved"`
	// Previous is the VERSION file content before the run, empty when the
	// file did not exist yet.
	Previous string `json:"previous,omitempty"`
	Path     string `json:"path"`
	Changed  bool   `json:"changed"`
	DryRun   bool   `json:"dry_run"`
}
