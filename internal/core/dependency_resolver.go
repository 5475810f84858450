package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"

	"ros-cargo-build/internal/ports"
	"ros-cargo-build/internal/types"
)

// MissingPackageMsg prefixes the error returned when declared packages
// cannot be found in any prefix.
const MissingPackageMsg = "missing package"

type DependencyResolver struct {
	Index ports.PackageIndexPort
}

func NewDependencyResolver(index ports.PackageIndexPort) DependencyResolver {
	return DependencyResolver{Index: index}
}

type lookupResult struct {
	dep   types.ResolvedDependency
	found bool
	err   error
}

// Resolve locates every dependency concurrently and returns them in
// declaration order. Missing packages are reported together.
func (r DependencyResolver) Resolve(ctx context.Context, deps []types.PackageDependency, prefixes []string) ([]types.ResolvedDependency, error) {
	if len(prefixes) == 0 && len(deps) > 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("no package prefixes to search; source a ROS environment or set prefix_path")
	}
	results := make([]lookupResult, len(deps))
	var wg conc.WaitGroup
	for i, dep := range deps {
		wg.Go(func() {
			resolved, found, err := r.Index.Locate(ctx, dep.Name, prefixes)
			results[i] = lookupResult{dep: resolved, found: found, err: err}
		})
	}
	wg.Wait()

	var missing []string
	resolved := make([]types.ResolvedDependency, 0, len(deps))
	cache := newVersionCache()
	for i, result := range results {
		if result.err != nil {
			return nil, result.err
		}
		if !result.found {
			missing = append(missing, deps[i].Name)
			continue
		}
		if err := checkConstraints(deps[i].Name, result.dep.Version, deps[i].Constraints, cache); err != nil {
			return nil, err
		}
		resolved = append(resolved, result.dep)
	}
	if len(missing) > 0 {
		log.Ctx(ctx).Error().Strs("missing", missing).Strs("prefixes", prefixes).Msg("dependency resolution failed")
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("%s: %s", MissingPackageMsg, strings.Join(missing, ", ")))
	}
	log.Ctx(ctx).Info().Int("resolved", len(resolved)).Msg("dependencies resolved")
	return resolved, nil
}
