package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"ros-cargo-build/internal/adapters"
	"ros-cargo-build/internal/types"
	"ros-cargo-build/tests/testutil"
)

func TestRunBuildsInstallsAndFinalizes(t *testing.T) {
	cargo := testutil.FakeCargo(t, samplePackage)
	ws := newSampleWorkspace(t, samplePackage, testutil.SampleDependencies, cargo)
	service := newTestService("RMW_IMPLEMENTATION=rmw_fastrtps_cpp")
	metrics := adapters.NewPhaseMetricsAdapter(samplePackage)
	service.Metrics = metrics
	metricsFile := filepath.Join(t.TempDir(), "ros_cargo_build.prom")

	result, err := service.Run(t.Context(), RunRequest{
		Configure:   ws.configureRequest(),
		MetricsFile: metricsFile,
	})
	require.NoError(t, err)

	dest := filepath.Join(ws.Prefix, "lib", samplePackage, samplePackage)
	assert.Equal(t, []string{dest}, result.Install.Installed)
	testutil.RequireExecutable(t, dest)

	targetDir := filepath.Join(ws.SourceDir, "target")
	idl, err := os.ReadFile(filepath.Join(targetDir, "idl_packages.txt"))
	require.NoError(t, err)
	assert.Equal(t, strings.Join(testutil.SampleDependencies, ":"), strings.TrimSpace(string(idl)))
	args, err := os.ReadFile(filepath.Join(targetDir, "args.txt"))
	require.NoError(t, err)
	assert.Equal(t, "build --release --manifest-path "+filepath.Join(ws.SourceDir, "Cargo.toml"), strings.TrimSpace(string(args)))

	index := filepath.Join(ws.Prefix, "share", "ament_index", "resource_index")
	require.FileExists(t, filepath.Join(index, "packages", samplePackage))
	runDeps, err := os.ReadFile(filepath.Join(index, "package_run_dependencies", samplePackage))
	require.NoError(t, err)
	assert.Equal(t, strings.Join(testutil.SampleDependencies, ";"), string(runDeps))

	generated, err := os.ReadFile(filepath.Join(ws.Prefix, "share", samplePackage, "package.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(generated), "<name>gantry_position_estimator</name>")
	assert.Contains(t, string(generated), "<depend>rmw_fastrtps_cpp</depend>")

	raw, err := os.ReadFile(filepath.Join(ws.Prefix, "share", samplePackage, "build-info.yaml"))
	require.NoError(t, err)
	var info types.BuildInfo
	require.NoError(t, yaml.Unmarshal(raw, &info))
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", info.BuildID)
	assert.Equal(t, "2024-05-01T12:00:00Z", info.CreatedAt)
	assert.Equal(t, testutil.SampleDependencies, info.Dependencies)
	assert.NotEmpty(t, info.EnvHash)

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	for _, phase := range []string{PhaseConfigure, PhaseBuild, PhaseInstall, PhaseFinalize} {
		assert.Contains(t, string(prom), `phase="`+phase+`"`)
	}
	assert.Contains(t, string(prom), "ros_cargo_build_resolved_dependencies")
}

func TestRunStopsAtBuildFailure(t *testing.T) {
	ws := newSampleWorkspace(t, samplePackage, testutil.SampleDependencies, testutil.FailingCargo(t))

	_, err := newTestService().Run(t.Context(), RunRequest{Configure: ws.configureRequest()})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInternal, errbuilder.CodeOf(err))
	assert.NoDirExists(t, filepath.Join(ws.Prefix, "lib"))
	assert.NoDirExists(t, filepath.Join(ws.Prefix, "share"))
}

func TestBuildRequiresArtifact(t *testing.T) {
	noop := filepath.Join(t.TempDir(), "cargo")
	require.NoError(t, os.WriteFile(noop, []byte("#!/bin/sh\nexit 0\n"), 0o755))
	ws := newSampleWorkspace(t, samplePackage, []string{"std_msgs"}, noop)
	service := newTestService()
	_, err := service.Configure(t.Context(), ws.configureRequest())
	require.NoError(t, err)

	_, err = service.Build(t.Context(), BuildRequest{BuildDir: ws.BuildDir})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}

func TestFinalizeCopiesSourcePackageXML(t *testing.T) {
	ws := newSampleWorkspace(t, samplePackage, []string{"std_msgs"}, "")
	source := testutil.WriteFile(t, ws.SourceDir, "package.xml", `<?xml version="1.0"?>
<package format="3">
  <name>gantry_position_estimator</name>
  <version>0.1.0</version>
  <description>from source</description>
  <maintainer email="gantry@example.com">Gantry Team</maintainer>
  <license>Apache-2.0</license>
  <depend>std_msgs</depend>
</package>
`)
	service := newTestService()
	_, err := service.Configure(t.Context(), ws.configureRequest())
	require.NoError(t, err)

	result, err := service.Finalize(t.Context(), FinalizeRequest{BuildDir: ws.BuildDir})
	require.NoError(t, err)
	assert.Len(t, result.Files, 5)

	want, err := os.ReadFile(source)
	require.NoError(t, err)
	got, err := os.ReadFile(filepath.Join(ws.Prefix, "share", samplePackage, "package.xml"))
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

type fakeRevision struct {
	revision types.SourceRevision
}

func (f fakeRevision) Revision(string) (types.SourceRevision, bool, error) {
	return f.revision, true, nil
}

func TestFinalizeRecordsSourceRevision(t *testing.T) {
	ws := newSampleWorkspace(t, samplePackage, []string{"std_msgs"}, "")
	service := newTestService()
	service.Revision = fakeRevision{revision: types.SourceRevision{
		Commit: "3f2c1e0d9b8a7c6d5e4f3a2b1c0d9e8f7a6b5c4d",
		Branch: "main",
		Dirty:  true,
	}}
	_, err := service.Configure(t.Context(), ws.configureRequest())
	require.NoError(t, err)

	_, err = service.Finalize(t.Context(), FinalizeRequest{BuildDir: ws.BuildDir})
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(ws.Prefix, "share", samplePackage, "build-info.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "source_branch: main")
	var info types.BuildInfo
	require.NoError(t, yaml.Unmarshal(raw, &info))
	assert.Equal(t, "3f2c1e0d9b8a7c6d5e4f3a2b1c0d9e8f7a6b5c4d", info.SourceRevision)
	assert.Equal(t, "main", info.SourceBranch)
	assert.True(t, info.SourceDirty)
}
