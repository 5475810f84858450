package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"ros-cargo-build/internal/ports"
	"ros-cargo-build/internal/types"
)

// DependencyDeclarer turns the manifest dependency list, and optionally the
// package.xml of the package, into the ordered dependency set.
type DependencyDeclarer struct {
	Workspace  ports.WorkspacePort
	PackageXML ports.PackageXMLPort
}

func NewDependencyDeclarer(workspace ports.WorkspacePort, pkgXML ports.PackageXMLPort) DependencyDeclarer {
	return DependencyDeclarer{
		Workspace:  workspace,
		PackageXML: pkgXML,
	}
}

// Declare returns dependencies in declaration order: manifest entries
// first, then package.xml keys not already declared. Duplicate names keep
// their first position; their version bounds are merged.
func (d DependencyDeclarer) Declare(ctx context.Context, manifest types.Manifest, packageXMLPath string) ([]types.PackageDependency, error) {
	var deps []types.PackageDependency
	index := map[string]int{}
	add := func(name string, source types.DependencySource, constraints []types.Constraint) error {
		name = strings.TrimSpace(name)
		if name == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("empty dependency name from %s", source))
		}
		if pos, ok := index[name]; ok {
			deps[pos].Constraints = mergeConstraints(deps[pos].Constraints, constraints)
			log.Ctx(ctx).Debug().Str("dependency", name).Str("source", string(source)).Msg("duplicate dependency ignored")
			return nil
		}
		index[name] = len(deps)
		deps = append(deps, types.PackageDependency{
			Name:        name,
			Source:      source,
			Constraints: constraints,
		})
		return nil
	}

	for _, decl := range manifest.Dependencies {
		if err := add(decl.Name, types.DependencySourceManifest, ConstraintsFromDecl(decl)); err != nil {
			return nil, err
		}
	}

	if manifest.PackageXML.Enabled {
		if strings.TrimSpace(packageXMLPath) == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("package_xml enabled but no package.xml found")
		}
		tags, err := d.PackageXML.ParseROSTags([]string{packageXMLPath})
		if err != nil {
			return nil, err
		}
		for _, tag := range tags {
			if !buildRelevantScope(tag.Scope) {
				continue
			}
			if err := add(tag.Key, types.DependencySourcePackageXML, tag.Constraints); err != nil {
				return nil, err
			}
		}
	}

	log.Ctx(ctx).Debug().Int("deps", len(deps)).Msg("dependencies declared")
	return deps, nil
}

// LocatePackageXML picks the package.xml of the package: the configured
// path when set, else the shallowest one below the source directory.
func (d DependencyDeclarer) LocatePackageXML(sourceDir string, configured string) (string, error) {
	if strings.TrimSpace(configured) != "" {
		return configured, nil
	}
	paths, err := d.Workspace.FindPackageXML(sourceDir)
	if err != nil {
		return "", err
	}
	if len(paths) == 0 {
		return "", nil
	}
	return paths[0], nil
}

// buildRelevantScope reports whether a package.xml scope is needed to
// build or run the node: <depend>, <build_depend> and <exec_depend> (or
// the format 1 <run_depend>). Export-only and test dependencies are not
// resolved.
func buildRelevantScope(scope types.ROSDepScope) bool {
	switch scope {
	case types.ROSDepScopeAll, types.ROSDepScopeBuild, types.ROSDepScopeExec:
		return true
	default:
		return false
	}
}
