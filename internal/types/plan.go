package types

// ResolvedDependency is a declared dependency located in a prefix.
type ResolvedDependency struct {
	Name    string         `yaml:"name"`
	Kind    DependencyKind `yaml:"kind"`
	Prefix  string         `yaml:"prefix"`
	Version string         `yaml:"version,omitempty"`
	Marker  string         `yaml:"marker"`
}

// InstallRule copies Source to Destination, which is relative to the
// install prefix.
type InstallRule struct {
	Source      string `yaml:"source"`
	Destination string `yaml:"destination"`
}

type BuildEnvironment struct {
	CMakeIDLPackages string `yaml:"cmake_idl_packages"`
	TargetDir        string `yaml:"cargo_target_dir"`
	PrefixPath       string `yaml:"prefix_path"`
	Hash             string `yaml:"hash"`
}

type PlanBuild struct {
	Tool         BuildTool `yaml:"tool"`
	Command      string    `yaml:"command"`
	Profile      string    `yaml:"profile"`
	ManifestPath string    `yaml:"manifest_path"`
	Features     []string  `yaml:"features,omitempty"`
	Jobs         int       `yaml:"jobs,omitempty"`
	Artifact     string    `yaml:"artifact"`
}

// InstallPlan is the outcome of configure and the input of every later
// phase. It must not carry anything that changes between two configure runs
// over unchanged inputs.
type InstallPlan struct {
	APIVersion    string               `yaml:"api_version"`
	Project       Metadata             `yaml:"project"`
	SourceDir     string               `yaml:"source_dir"`
	PackageXML    string               `yaml:"package_xml,omitempty"`
	InstallPrefix string               `yaml:"install_prefix"`
	Dependencies  []ResolvedDependency `yaml:"dependencies"`
	Rules         []InstallRule        `yaml:"install_rules"`
	Build         PlanBuild            `yaml:"build"`
	Environment   BuildEnvironment     `yaml:"environment"`
}

const PlanAPIVersion = "ros-cargo-build/v1"

// PlanFileName is the plan file written into the build directory.
const PlanFileName = "ros-cargo-build.plan.yaml"
