package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"ros-cargo-build/internal/adapters"
	"ros-cargo-build/tests/testutil"
)

const samplePackage = "gantry_position_estimator"

var fixedTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// newTestService returns the production wiring with a deterministic clock,
// build id and environment.
func newTestService(extraEnv ...string) Service {
	service := NewService()
	service.Clock = func() time.Time { return fixedTime }
	service.NewBuildID = func() string { return "00000000-0000-0000-0000-000000000001" }
	service.ToolVersion = "test"
	service.Environment = adapters.EnvFileAdapter{Environ: func() []string {
		env := []string{}
		for _, entry := range os.Environ() {
			if hasKey(entry, "AMENT_PREFIX_PATH", "CMAKE_PREFIX_PATH", "RMW_IMPLEMENTATION", "CMAKE_IDL_PACKAGES", "IDL_PACKAGES") {
				continue
			}
			env = append(env, entry)
		}
		return append(env, extraEnv...)
	}}
	return service
}

func hasKey(entry string, keys ...string) bool {
	for _, key := range keys {
		if len(entry) > len(key) && entry[:len(key)+1] == key+"=" {
			return true
		}
	}
	return false
}

type sampleWorkspace struct {
	SourceDir string
	BuildDir  string
	Prefix    string
	Underlay  string
}

func newSampleWorkspace(t *testing.T, name string, deps []string, command string) sampleWorkspace {
	t.Helper()
	source := testutil.SampleProject(t, name, deps)
	if command != "" {
		manifest := testutil.SampleManifest(name, deps) + "  command: " + command + "\n"
		testutil.WriteFile(t, source, "ros-package.yaml", manifest)
	}
	out := t.TempDir()
	return sampleWorkspace{
		SourceDir: source,
		BuildDir:  filepath.Join(out, "build"),
		Prefix:    filepath.Join(out, "install"),
		Underlay:  testutil.FakeUnderlay(t, testutil.SampleDependencies...),
	}
}

func (w sampleWorkspace) configureRequest() ConfigureRequest {
	return ConfigureRequest{
		SourceDir:     w.SourceDir,
		BuildDir:      w.BuildDir,
		InstallPrefix: w.Prefix,
		PrefixPaths:   []string{w.Underlay},
	}
}
