package adapters

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"ros-cargo-build/internal/ports"
	"ros-cargo-build/internal/types"
)

const resourceIndexDir = "share/ament_index/resource_index"

// AmentPackageAdapter writes what ament_package() would generate for the
// package: resource index entries and the share/<name> directory.
type AmentPackageAdapter struct{}

func NewAmentPackageAdapter() AmentPackageAdapter {
	return AmentPackageAdapter{}
}

func (a AmentPackageAdapter) Finalize(ctx context.Context, req ports.PackagingRequest) ([]string, error) {
	plan := req.Plan
	name := strings.TrimSpace(plan.Project.Name)
	if name == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package name is empty")
	}
	prefix := strings.TrimSpace(plan.InstallPrefix)
	if prefix == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("install prefix is empty")
	}
	if len(req.PackageXML) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package.xml content is empty")
	}

	depNames := make([]string, 0, len(plan.Dependencies))
	for _, dep := range plan.Dependencies {
		depNames = append(depNames, dep.Name)
	}
	buildInfo, err := yaml.Marshal(req.BuildInfo)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal build info").
			WithCause(err)
	}

	files := []struct {
		rel     string
		content []byte
	}{
		{filepath.Join(resourceIndexDir, "packages", name), nil},
		{filepath.Join(resourceIndexDir, "package_run_dependencies", name), []byte(strings.Join(depNames, ";"))},
		{filepath.Join(resourceIndexDir, "parent_prefix_path", name), []byte(parentPrefixPath(plan))},
		{filepath.Join("share", name, "package.xml"), req.PackageXML},
		{filepath.Join("share", name, "build-info.yaml"), buildInfo},
	}
	written := make([]string, 0, len(files))
	for _, file := range files {
		path := filepath.Join(prefix, filepath.FromSlash(file.rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return written, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create package metadata directory").
				WithCause(err)
		}
		if err := os.WriteFile(path, file.content, 0o644); err != nil {
			return written, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to write package metadata").
				WithCause(err)
		}
		written = append(written, path)
	}
	log.Ctx(ctx).Info().Str("package", name).Int("files", len(written)).Msg("package metadata written")
	return written, nil
}

// parentPrefixPath lists the underlay prefixes the package was built
// against, excluding its own install prefix.
func parentPrefixPath(plan types.InstallPlan) string {
	var parents []string
	for _, prefix := range strings.Split(plan.Environment.PrefixPath, ":") {
		prefix = strings.TrimSpace(prefix)
		if prefix == "" || prefix == plan.InstallPrefix {
			continue
		}
		parents = append(parents, prefix)
	}
	return strings.Join(parents, ";")
}

var _ ports.PackagingPort = AmentPackageAdapter{}
