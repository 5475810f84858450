package ports

import (
	"context"

	"ros-cargo-build/internal/types"
)

type PackagingRequest struct {
	Plan       types.InstallPlan
	PackageXML []byte
	BuildInfo  types.BuildInfo
}

// PackagingPort writes the metadata the ROS tooling expects next to an
// installed package.
type PackagingPort interface {
	Finalize(ctx context.Context, req PackagingRequest) ([]string, error)
}
