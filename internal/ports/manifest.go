package ports

import "ros-cargo-build/internal/types"

type ManifestPort interface {
	LoadManifest(path string) (types.Manifest, error)
}
