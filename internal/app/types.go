package app

import "ros-cargo-build/internal/types"

const (
	DefaultManifestFile  = "ros-package.yaml"
	DefaultBuildDir      = "build"
	DefaultInstallPrefix = "install"
)

type ValidateRequest struct {
	ManifestPath string
}

type ValidateResult struct {
	PackageName  string
	Dependencies int
}

type ConfigureRequest struct {
	ManifestPath  string
	SourceDir     string
	BuildDir      string
	InstallPrefix string
	PrefixPaths   []string
	EnvFile       string
}

type ConfigureResult struct {
	Plan     types.InstallPlan
	PlanPath string
	Warnings []string
}

type BuildRequest struct {
	BuildDir string
	EnvFile  string
	Jobs     int
}

type BuildResult struct {
	Artifact string
}

type InstallRequest struct {
	BuildDir string
}

type InstallResult struct {
	Installed []string
}

type FinalizeRequest struct {
	BuildDir string
	EnvFile  string
}

type FinalizeResult struct {
	Files     []string
	BuildInfo types.BuildInfo
}

type RunRequest struct {
	Configure   ConfigureRequest
	Jobs        int
	MetricsFile string
}

type RunResult struct {
	Configure ConfigureResult
	Build     BuildResult
	Install   InstallResult
	Finalize  FinalizeResult
}

type InspectRequest struct {
	BuildDir string
}

type InspectResult struct {
	PlanPath string
	Plan     types.InstallPlan
}

type WatchRequest struct {
	Run RunRequest

	// FullPipeline re-runs build, install and finalize after each change
	// instead of configure alone.
	FullPipeline bool
}
