package domain

// ConfigLoader merges .xtasks.yaml, environment, and flags over defaults.
type ConfigLoader interface {
	Load(root string) (Config, error)
}

// ManifestSource locates a project and reads its manifests into a snapshot.
type ManifestSource interface {
	// Root walks upward from start until it finds a go.mod.
	Root(start string) (string, error)
	// Snapshot builds the ordered project descriptor from go.mod plus the
	// config metadata block. prefixes scope which requires are included.
	Snapshot(root string, cfg Config, prefixes []string) (ProjectSnapshot, error)
	// AnchorVersion returns the version the manifest pins for anchor.
	AnchorVersion(root, anchor string) (string, error)
}

// ManifestEditor rewrites go.mod according to plan actions.
type ManifestEditor interface {
	// Apply performs the actions and returns the resulting manifest bytes.
	// Under dryRun nothing is written.
	Apply(snapshot ProjectSnapshot, actions []PlanAction, dryRun bool) ([]byte, error)
}

// VersionFile reads and writes the project VERSION file.
type VersionFile interface {
	Read(root string) (string, error)
	// Write persists version and returns the file path.
	Write(root string, version string) (string, error)
	// Path returns where the VERSION file lives for root.
	Path(root string) string
}

// GitInfo reports repository metadata for a project path.
type GitInfo interface {
	IsGitRepo(path string) bool
	CommitHash(path string) (string, error)
}

// HistoryStore persists check summaries per project.
type HistoryStore interface {
	Append(root string, entry HistoryEntry) error
	Load(root string) ([]HistoryEntry, error)
}

// PinStore persists the applied pin under the project's .xtasks directory.
type PinStore interface {
	Save(root string, pin AppliedPin) error
	// Load returns the pin and whether one exists.
	Load(root string) (AppliedPin, bool, error)
	Invalidate(root string) error
}
