package ports

import "ros-cargo-build/internal/types"

// EnvironmentPort supplies the process environment, optionally merged with
// a dotenv file.
type EnvironmentPort interface {
	Load(envFile string) (map[string]string, error)
}

type SourceRevisionPort interface {
	Revision(dir string) (types.SourceRevision, bool, error)
}
