package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ros-cargo-build/internal/types"
)

func samplePlan() types.InstallPlan {
	return types.InstallPlan{
		APIVersion:    types.PlanAPIVersion,
		Project:       types.Metadata{Name: "gantry_position_estimator", Version: "0.1.0"},
		SourceDir:     "/ws/src/gantry_position_estimator",
		InstallPrefix: "/ws/install",
		Dependencies: []types.ResolvedDependency{
			{Name: "std_msgs", Kind: types.DependencyKindAment, Prefix: "/opt/ros/humble", Version: "4.2.3", Marker: "/opt/ros/humble/share/ament_index/resource_index/packages/std_msgs"},
		},
		Rules: []types.InstallRule{{
			Source:      "/ws/src/gantry_position_estimator/target/release/gantry_position_estimator",
			Destination: "lib/gantry_position_estimator/gantry_position_estimator",
		}},
		Build: types.PlanBuild{
			Tool:         types.BuildToolCargo,
			Command:      "cargo",
			Profile:      "release",
			ManifestPath: "/ws/src/gantry_position_estimator/Cargo.toml",
			Artifact:     "/ws/src/gantry_position_estimator/target/release/gantry_position_estimator",
		},
		Environment: types.BuildEnvironment{CMakeIDLPackages: "std_msgs", TargetDir: "/ws/src/gantry_position_estimator/target", Hash: "abc"},
	}
}

func TestPlanFileWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build", types.PlanFileName)
	adapter := NewPlanFileAdapter()
	require.NoError(t, adapter.WritePlan(path, samplePlan()))

	got, err := adapter.ReadPlan(path)
	require.NoError(t, err)
	if diff := cmp.Diff(samplePlan(), got); diff != "" {
		t.Fatalf("plan changed on disk (-want +got):\n%s", diff)
	}
}

func TestPlanFileWriteIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	adapter := NewPlanFileAdapter()
	first := filepath.Join(dir, "a.yaml")
	second := filepath.Join(dir, "b.yaml")
	require.NoError(t, adapter.WritePlan(first, samplePlan()))
	require.NoError(t, adapter.WritePlan(second, samplePlan()))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestPlanFileReadMissing(t *testing.T) {
	_, err := NewPlanFileAdapter().ReadPlan(filepath.Join(t.TempDir(), types.PlanFileName))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}

func TestPlanFileReadIncompatibleVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), types.PlanFileName)
	require.NoError(t, os.WriteFile(path, []byte("api_version: ros-cargo-build/v0\n"), 0644))

	_, err := NewPlanFileAdapter().ReadPlan(path)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}

func TestPlanFileRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), types.PlanFileName)
	adapter := NewPlanFileAdapter()
	require.NoError(t, adapter.RemovePlan(path))

	require.NoError(t, adapter.WritePlan(path, samplePlan()))
	require.NoError(t, adapter.RemovePlan(path))
	assert.NoFileExists(t, path)
}
