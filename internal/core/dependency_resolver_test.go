package core

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ros-cargo-build/internal/types"
)

type fakeIndex struct {
	mu       sync.Mutex
	packages map[string]types.ResolvedDependency
	errs     map[string]error
	calls    []string
}

func (f *fakeIndex) Locate(_ context.Context, name string, _ []string) (types.ResolvedDependency, bool, error) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
	if err := f.errs[name]; err != nil {
		return types.ResolvedDependency{}, false, err
	}
	dep, ok := f.packages[name]
	return dep, ok, nil
}

func indexOf(deps ...types.ResolvedDependency) *fakeIndex {
	index := &fakeIndex{packages: map[string]types.ResolvedDependency{}, errs: map[string]error{}}
	for _, dep := range deps {
		index.packages[dep.Name] = dep
	}
	return index
}

func declared(names ...string) []types.PackageDependency {
	deps := make([]types.PackageDependency, 0, len(names))
	for _, name := range names {
		deps = append(deps, types.PackageDependency{Name: name, Source: types.DependencySourceManifest})
	}
	return deps
}

func TestResolveKeepsDeclarationOrder(t *testing.T) {
	index := indexOf(
		types.ResolvedDependency{Name: "FastRTPS", Kind: types.DependencyKindCMakeModule, Prefix: "/opt/ros/humble"},
		types.ResolvedDependency{Name: "rcl", Kind: types.DependencyKindAment, Prefix: "/opt/ros/humble", Version: "5.3.7"},
		types.ResolvedDependency{Name: "std_msgs", Kind: types.DependencyKindAment, Prefix: "/opt/ros/humble", Version: "4.2.3"},
	)
	resolved, err := NewDependencyResolver(index).Resolve(t.Context(), declared("std_msgs", "rcl", "FastRTPS"), []string{"/opt/ros/humble"})
	require.NoError(t, err)

	got := make([]string, 0, len(resolved))
	for _, dep := range resolved {
		got = append(got, dep.Name)
	}
	if diff := cmp.Diff([]string{"std_msgs", "rcl", "FastRTPS"}, got); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
	assert.ElementsMatch(t, []string{"std_msgs", "rcl", "FastRTPS"}, index.calls)
}

func TestResolveReportsAllMissing(t *testing.T) {
	index := indexOf(types.ResolvedDependency{Name: "rcl", Kind: types.DependencyKindAment})
	_, err := NewDependencyResolver(index).Resolve(t.Context(), declared("sensor_msgz", "rcl", "tf2_msgz"), []string{"/opt/ros/humble"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), MissingPackageMsg+": sensor_msgz, tf2_msgz")
}

func TestResolveWithoutPrefixes(t *testing.T) {
	_, err := NewDependencyResolver(indexOf()).Resolve(t.Context(), declared("rcl"), nil)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}

func TestResolveNothingDeclared(t *testing.T) {
	resolved, err := NewDependencyResolver(indexOf()).Resolve(t.Context(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, resolved)
}

func TestResolveChecksVersionBounds(t *testing.T) {
	index := indexOf(types.ResolvedDependency{Name: "rcl", Kind: types.DependencyKindAment, Version: "5.3.7"})
	deps := []types.PackageDependency{{
		Name:        "rcl",
		Constraints: []types.Constraint{{Op: types.ConstraintOpGte, Version: "6.0.0"}},
	}}
	_, err := NewDependencyResolver(index).Resolve(t.Context(), deps, []string{"/opt/ros/humble"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))

	deps[0].Constraints = []types.Constraint{{Op: types.ConstraintOpGte, Version: "5.3.0"}}
	resolved, err := NewDependencyResolver(index).Resolve(t.Context(), deps, []string{"/opt/ros/humble"})
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "5.3.7", resolved[0].Version)
}

func TestResolvePropagatesIndexError(t *testing.T) {
	indexErr := errors.New("permission denied")
	index := indexOf(types.ResolvedDependency{Name: "rcl"})
	index.errs["std_msgs"] = indexErr
	_, err := NewDependencyResolver(index).Resolve(t.Context(), declared("rcl", "std_msgs"), []string{"/opt/ros/humble"})
	require.ErrorIs(t, err, indexErr)
}
