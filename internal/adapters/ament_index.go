package adapters

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"ros-cargo-build/internal/ports"
	"ros-cargo-build/internal/types"
)

const amentPackagesResource = "share/ament_index/resource_index/packages"

// AmentIndexAdapter locates packages the way find_package would inside a
// sourced ROS environment: ament resource index first, then CMake package
// config files, then CMake find modules shipped by other packages.
type AmentIndexAdapter struct {
	PackageXML ports.PackageXMLPort
}

func NewAmentIndexAdapter(pkgXML ports.PackageXMLPort) AmentIndexAdapter {
	return AmentIndexAdapter{PackageXML: pkgXML}
}

func (a AmentIndexAdapter) Locate(ctx context.Context, name string, prefixes []string) (types.ResolvedDependency, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.ResolvedDependency{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package name is empty")
	}
	for _, prefix := range prefixes {
		if err := ctx.Err(); err != nil {
			return types.ResolvedDependency{}, false, err
		}
		prefix = strings.TrimSpace(prefix)
		if prefix == "" {
			continue
		}
		dep, ok, err := a.locateInPrefix(name, prefix)
		if err != nil {
			return types.ResolvedDependency{}, false, err
		}
		if ok {
			log.Ctx(ctx).Debug().
				Str("package", name).
				Str("kind", string(dep.Kind)).
				Str("prefix", prefix).
				Msg("package located")
			return dep, true, nil
		}
	}
	return types.ResolvedDependency{}, false, nil
}

func (a AmentIndexAdapter) locateInPrefix(name string, prefix string) (types.ResolvedDependency, bool, error) {
	marker := filepath.Join(prefix, filepath.FromSlash(amentPackagesResource), name)
	if fileExists(marker) {
		dep := types.ResolvedDependency{
			Name:   name,
			Kind:   types.DependencyKindAment,
			Prefix: prefix,
			Marker: marker,
		}
		manifest := filepath.Join(prefix, "share", name, "package.xml")
		if a.PackageXML != nil && fileExists(manifest) {
			info, err := a.PackageXML.ParsePackageInfo(manifest)
			if err != nil {
				return types.ResolvedDependency{}, false, err
			}
			dep.Version = info.Version
		}
		return dep, true, nil
	}

	for _, candidate := range cmakeConfigCandidates(prefix, name) {
		if fileExists(candidate) {
			return types.ResolvedDependency{
				Name:   name,
				Kind:   types.DependencyKindCMakeConfig,
				Prefix: prefix,
				Marker: candidate,
			}, true, nil
		}
	}

	module, err := findCMakeModule(prefix, name)
	if err != nil {
		return types.ResolvedDependency{}, false, err
	}
	if module != "" {
		return types.ResolvedDependency{
			Name:   name,
			Kind:   types.DependencyKindCMakeModule,
			Prefix: prefix,
			Marker: module,
		}, true, nil
	}
	return types.ResolvedDependency{}, false, nil
}

func cmakeConfigCandidates(prefix string, name string) []string {
	lower := strings.ToLower(name)
	var candidates []string
	for _, dir := range []string{
		filepath.Join(prefix, "share", name, "cmake"),
		filepath.Join(prefix, "share", lower, "cmake"),
		filepath.Join(prefix, "lib", "cmake", name),
		filepath.Join(prefix, "lib", "cmake", lower),
	} {
		candidates = append(candidates,
			filepath.Join(dir, name+"Config.cmake"),
			filepath.Join(dir, lower+"-config.cmake"),
		)
	}
	return candidates
}

// findCMakeModule searches share/*/cmake/Modules for Find<name>.cmake.
// Matches are sorted so the outcome does not depend on directory order.
func findCMakeModule(prefix string, name string) (string, error) {
	pattern := filepath.Join(prefix, "share", "*", "cmake", "Modules", "Find"+name+".cmake")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to search cmake modules").
			WithCause(err)
	}
	if len(matches) == 0 {
		return "", nil
	}
	sort.Strings(matches)
	return matches[0], nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

var _ ports.PackageIndexPort = AmentIndexAdapter{}
