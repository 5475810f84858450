package ports

import (
	"context"

	"ros-cargo-build/internal/types"
)

type InstallerPort interface {
	// Install copies every rule into prefix. All sources are checked before
	// the first copy so a failed install leaves the prefix untouched.
	Install(ctx context.Context, prefix string, rules []types.InstallRule) ([]string, error)
}
