package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"ros-cargo-build/internal/core"
)

func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package manifest path is required")
	}
	manifest, err := s.Manifests.LoadManifest(manifestPath)
	if err != nil {
		return ValidateResult{}, err
	}
	if err := core.NewManifestValidator().ValidateManifest(ctx, manifest); err != nil {
		return ValidateResult{}, err
	}
	return ValidateResult{
		PackageName:  manifest.Metadata.Name,
		Dependencies: len(manifest.Dependencies),
	}, nil
}
