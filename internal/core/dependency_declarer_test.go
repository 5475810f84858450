package core

import (
	"errors"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ros-cargo-build/internal/types"
)

type fakePackageXML struct {
	tags  []types.ROSTagDependency
	err   error
	paths []string
}

func (f *fakePackageXML) ParseROSTags(paths []string) ([]types.ROSTagDependency, error) {
	f.paths = append(f.paths, paths...)
	return f.tags, f.err
}

func (f *fakePackageXML) ParsePackageInfo(string) (types.PackageXMLInfo, error) {
	return types.PackageXMLInfo{}, nil
}

func (f *fakePackageXML) RenderPackageXML(types.Metadata, []types.PackageDependency) ([]byte, error) {
	return nil, nil
}

type fakeWorkspace struct {
	paths []string
	err   error
}

func (f fakeWorkspace) FindPackageXML(string) ([]string, error) {
	return f.paths, f.err
}

func names(deps []types.PackageDependency) []string {
	out := make([]string, 0, len(deps))
	for _, dep := range deps {
		out = append(out, dep.Name)
	}
	return out
}

func TestDeclareKeepsManifestOrder(t *testing.T) {
	manifest := types.Manifest{Dependencies: []types.DependencyDecl{
		{Name: "sensor_msgs"}, {Name: "std_msgs"}, {Name: "std_srvs"},
		{Name: "geometry_msgs"}, {Name: "tf2_msgs"}, {Name: "rcl"},
		{Name: "rcl_action"}, {Name: "rmw_fastrtps_cpp"}, {Name: "FastRTPS"},
	}}
	deps, err := NewDependencyDeclarer(fakeWorkspace{}, &fakePackageXML{}).Declare(t.Context(), manifest, "")
	require.NoError(t, err)

	want := []string{"sensor_msgs", "std_msgs", "std_srvs", "geometry_msgs", "tf2_msgs", "rcl", "rcl_action", "rmw_fastrtps_cpp", "FastRTPS"}
	if diff := cmp.Diff(want, names(deps)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
	for _, dep := range deps {
		assert.Equal(t, types.DependencySourceManifest, dep.Source)
	}
}

func TestDeclareCollapsesDuplicates(t *testing.T) {
	manifest := types.Manifest{Dependencies: []types.DependencyDecl{
		{Name: "rcl", VersionGte: "5.0.0"},
		{Name: "std_msgs"},
		{Name: " rcl ", VersionLt: "6.0.0"},
	}}
	deps, err := NewDependencyDeclarer(fakeWorkspace{}, &fakePackageXML{}).Declare(t.Context(), manifest, "")
	require.NoError(t, err)
	require.Len(t, deps, 2)
	assert.Equal(t, "rcl", deps[0].Name)
	assert.Equal(t, []types.Constraint{
		{Op: types.ConstraintOpGte, Version: "5.0.0"},
		{Op: types.ConstraintOpLt, Version: "6.0.0"},
	}, deps[0].Constraints)
}

func TestDeclareEmptyName(t *testing.T) {
	manifest := types.Manifest{Dependencies: []types.DependencyDecl{{Name: "rcl"}, {Name: "  "}}}
	_, err := NewDependencyDeclarer(fakeWorkspace{}, &fakePackageXML{}).Declare(t.Context(), manifest, "")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestDeclareAppendsPackageXML(t *testing.T) {
	pkgXML := &fakePackageXML{tags: []types.ROSTagDependency{
		{Key: "std_msgs", Scope: types.ROSDepScopeAll},
		{Key: "tf2_msgs", Scope: types.ROSDepScopeBuild},
		{Key: "rclcpp", Scope: types.ROSDepScopeExec},
		{Key: "ament_lint_auto", Scope: types.ROSDepScopeTest},
	}}
	manifest := types.Manifest{
		Dependencies: []types.DependencyDecl{{Name: "std_msgs"}},
		PackageXML:   types.PackageXMLInput{Enabled: true},
	}
	deps, err := NewDependencyDeclarer(fakeWorkspace{}, pkgXML).Declare(t.Context(), manifest, "/src/package.xml")
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"std_msgs", "tf2_msgs", "rclcpp"}, names(deps)); diff != "" {
		t.Fatalf("unexpected deps (-want +got):\n%s", diff)
	}
	assert.Equal(t, types.DependencySourceManifest, deps[0].Source)
	assert.Equal(t, types.DependencySourcePackageXML, deps[1].Source)
	assert.Equal(t, []string{"/src/package.xml"}, pkgXML.paths)
}

func TestDeclareSkipsExportOnlyDependencies(t *testing.T) {
	pkgXML := &fakePackageXML{tags: []types.ROSTagDependency{
		{Key: "geometry_msgs", Scope: types.ROSDepScopeAll},
		{Key: "eigen3_cmake_module", Scope: types.ROSDepScopeBuildExec},
		{Key: "std_srvs", Scope: types.ROSDepScopeExec},
	}}
	manifest := types.Manifest{PackageXML: types.PackageXMLInput{Enabled: true}}
	deps, err := NewDependencyDeclarer(fakeWorkspace{}, pkgXML).Declare(t.Context(), manifest, "/src/package.xml")
	require.NoError(t, err)
	assert.Equal(t, []string{"geometry_msgs", "std_srvs"}, names(deps))
}

func TestBuildRelevantScope(t *testing.T) {
	tests := map[types.ROSDepScope]bool{
		types.ROSDepScopeAll:       true,
		types.ROSDepScopeBuild:     true,
		types.ROSDepScopeExec:      true,
		types.ROSDepScopeBuildExec: false,
		types.ROSDepScopeTest:      false,
	}
	for scope, want := range tests {
		assert.Equal(t, want, buildRelevantScope(scope), string(scope))
	}
}

func TestDeclarePackageXMLDisabledIgnoresFile(t *testing.T) {
	pkgXML := &fakePackageXML{tags: []types.ROSTagDependency{{Key: "rclcpp", Scope: types.ROSDepScopeAll}}}
	manifest := types.Manifest{Dependencies: []types.DependencyDecl{{Name: "std_msgs"}}}
	deps, err := NewDependencyDeclarer(fakeWorkspace{}, pkgXML).Declare(t.Context(), manifest, "/src/package.xml")
	require.NoError(t, err)
	assert.Equal(t, []string{"std_msgs"}, names(deps))
	assert.Empty(t, pkgXML.paths)
}

func TestDeclarePackageXMLEnabledWithoutFile(t *testing.T) {
	manifest := types.Manifest{PackageXML: types.PackageXMLInput{Enabled: true}}
	_, err := NewDependencyDeclarer(fakeWorkspace{}, &fakePackageXML{}).Declare(t.Context(), manifest, "")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestDeclarePackageXMLParseError(t *testing.T) {
	parseErr := errors.New("broken xml")
	manifest := types.Manifest{PackageXML: types.PackageXMLInput{Enabled: true}}
	_, err := NewDependencyDeclarer(fakeWorkspace{}, &fakePackageXML{err: parseErr}).Declare(t.Context(), manifest, "/src/package.xml")
	require.ErrorIs(t, err, parseErr)
}

func TestLocatePackageXML(t *testing.T) {
	declarer := NewDependencyDeclarer(fakeWorkspace{paths: []string{"/src/package.xml", "/src/sub/package.xml"}}, &fakePackageXML{})

	got, err := declarer.LocatePackageXML("/src", "")
	require.NoError(t, err)
	assert.Equal(t, "/src/package.xml", got)

	got, err = declarer.LocatePackageXML("/src", "custom/package.xml")
	require.NoError(t, err)
	assert.Equal(t, "custom/package.xml", got)

	got, err = NewDependencyDeclarer(fakeWorkspace{}, &fakePackageXML{}).LocatePackageXML("/src", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}
