// Package testutil provides shared test helpers used across integration,
// e2e, and unit test packages.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SampleDependencies are the packages the gantry position estimator is
// built against, in declaration order.
var SampleDependencies = []string{
	"sensor_msgs",
	"std_msgs",
	"std_srvs",
	"geometry_msgs",
	"tf2_msgs",
	"rcl",
	"rcl_action",
	"rmw_fastrtps_cpp",
	"FastRTPS",
}

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// WriteFile writes content below root, creating parent directories.
func WriteFile(t *testing.T, root string, rel string, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// FakeUnderlay creates an install prefix that looks like a sourced ROS
// distribution for the given packages. FastRTPS is provided the way the
// real distribution does it: through a CMake find module shipped by
// fastrtps_cmake_module.
func FakeUnderlay(t *testing.T, packages ...string) string {
	t.Helper()
	prefix := t.TempDir()
	for _, name := range packages {
		if name == "FastRTPS" {
			WriteFile(t, prefix, "share/fastrtps_cmake_module/cmake/Modules/FindFastRTPS.cmake", "# find module\n")
			continue
		}
		AddAmentPackage(t, prefix, name, "1.0.0")
	}
	return prefix
}

// AddAmentPackage registers name in the ament resource index of prefix.
func AddAmentPackage(t *testing.T, prefix string, name string, version string) {
	t.Helper()
	WriteFile(t, prefix, "share/ament_index/resource_index/packages/"+name, "")
	WriteFile(t, prefix, "share/"+name+"/package.xml", fmt.Sprintf(`<?xml version="1.0"?>
<package format="3">
  <name>%s</name>
  <version>%s</version>
  <description>%s</description>
  <maintainer email="ros@example.com">ROS</maintainer>
  <license>Apache-2.0</license>
</package>
`, name, version, name))
}

// SampleManifest renders a package manifest for name with the given
// dependencies.
func SampleManifest(name string, deps []string) string {
	content := fmt.Sprintf(`api_version: v1
kind: ros_package
metadata:
  name: %s
  version: 0.1.0
  description: Estimates the gantry position from ArUco detections
  maintainers:
    - Gantry Team <gantry@example.com>
  license: Apache-2.0
dependencies:
`, name)
	for _, dep := range deps {
		content += "  - " + dep + "\n"
	}
	content += `build:
  tool: cargo
  profile: release
  rmw_implementation: rmw_fastrtps_cpp
`
	return content
}

// SampleProject writes a source directory holding a manifest and a
// Cargo.toml and returns its path.
func SampleProject(t *testing.T, name string, deps []string) string {
	t.Helper()
	dir := t.TempDir()
	WriteFile(t, dir, "ros-package.yaml", SampleManifest(name, deps))
	WriteFile(t, dir, "Cargo.toml", fmt.Sprintf("[package]\nname = %q\nversion = \"0.1.0\"\nedition = \"2021\"\n", name))
	return dir
}

// FakeCargo writes a shell script standing in for cargo. It creates
// $CARGO_TARGET_DIR/release/<name> and records its arguments and
// CMAKE_IDL_PACKAGES next to the artifact.
func FakeCargo(t *testing.T, name string) string {
	t.Helper()
	dir := t.TempDir()
	script := fmt.Sprintf(`#!/bin/sh
set -e
mkdir -p "$CARGO_TARGET_DIR/release"
printf '#!/bin/sh\necho %s\n' > "$CARGO_TARGET_DIR/release/%s"
echo "$@" > "$CARGO_TARGET_DIR/args.txt"
echo "$CMAKE_IDL_PACKAGES" > "$CARGO_TARGET_DIR/idl_packages.txt"
`, name, name)
	path := filepath.Join(dir, "cargo")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

// FailingCargo writes a cargo stand-in that prints an error and exits 101.
func FailingCargo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "cargo")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\necho 'error[E0432]: unresolved import' >&2\nexit 101\n"), 0o755))
	return path
}

// RequireExecutable fails the test unless path is a regular file with the
// executable bits set for owner, group and others.
func RequireExecutable(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.True(t, info.Mode().IsRegular(), "%s is not a regular file", path)
	require.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}
