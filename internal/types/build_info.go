package types

type BuildInfo struct {
	BuildID        string   `yaml:"build_id"`
	Package        string   `yaml:"package"`
	Version        string   `yaml:"version"`
	CreatedAt      string   `yaml:"created_at"`
	ToolVersion    string   `yaml:"tool_version"`
	SourceRevision string   `yaml:"source_revision,omitempty"`
	SourceBranch   string   `yaml:"source_branch,omitempty"`
	SourceDirty    bool     `yaml:"source_dirty,omitempty"`
	Dependencies   []string `yaml:"dependencies"`
	EnvHash        string   `yaml:"env_hash"`
}

// SourceRevision describes the VCS state of the package source directory.
type SourceRevision struct {
	Commit string
	Branch string
	Dirty  bool
}
