package ports

import (
	"context"

	"ros-cargo-build/internal/types"
)

// PackageIndexPort locates installed ROS and CMake packages in a set of
// install prefixes.
type PackageIndexPort interface {
	// Locate returns (dep, true, nil) when name is found in one of the
	// prefixes, (zero, false, nil) when it is not, and an error only when
	// the lookup itself failed.
	Locate(ctx context.Context, name string, prefixes []string) (types.ResolvedDependency, bool, error)
}
