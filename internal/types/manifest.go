package types

import (
	"strings"

	"gopkg.in/yaml.v3"
)

type Metadata struct {
	Name        string   `yaml:"name"`
	Version     string   `yaml:"version"`
	Description string   `yaml:"description,omitempty"`
	Maintainers []string `yaml:"maintainers,omitempty"`
	License     string   `yaml:"license,omitempty"`
}

// DependencyDecl is one entry of the manifest dependency list. It accepts
// either a bare package name or a mapping carrying REP-149 version bounds:
//
//	dependencies:
//	  - sensor_msgs
//	  - name: rcl
//	    version_gte: "5.3.0"
type DependencyDecl struct {
	Name       string `yaml:"name"`
	VersionLt  string `yaml:"version_lt,omitempty"`
	VersionLte string `yaml:"version_lte,omitempty"`
	VersionEq  string `yaml:"version_eq,omitempty"`
	VersionGte string `yaml:"version_gte,omitempty"`
	VersionGt  string `yaml:"version_gt,omitempty"`
}

func (d *DependencyDecl) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		d.Name = strings.TrimSpace(value.Value)
		return nil
	}
	type plain DependencyDecl
	var decoded plain
	if err := value.Decode(&decoded); err != nil {
		return err
	}
	*d = DependencyDecl(decoded)
	return nil
}

type BuildSettings struct {
	Tool         BuildTool `yaml:"tool,omitempty"`
	Command      string    `yaml:"command,omitempty"`
	Profile      string    `yaml:"profile,omitempty"`
	ManifestPath string    `yaml:"manifest_path,omitempty"`
	TargetDir    string    `yaml:"target_dir,omitempty"`
	Features     []string  `yaml:"features,omitempty"`
	Jobs         int       `yaml:"jobs,omitempty"`

	// RMWImplementation is the middleware the node expects the invoking
	// environment to select through RMW_IMPLEMENTATION. It is never
	// exported by the tool.
	RMWImplementation string `yaml:"rmw_implementation,omitempty"`
}

type PackageXMLInput struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
}

type InstallRuleDecl struct {
	Source      string `yaml:"source"`
	Destination string `yaml:"destination"`
}

// Manifest is the package description consumed by configure. It takes the
// place of the CMakeLists.txt that would otherwise call r2r_cargo and
// ament_package.
type Manifest struct {
	APIVersion   string            `yaml:"api_version"`
	Kind         ManifestKind      `yaml:"kind"`
	Metadata     Metadata          `yaml:"metadata"`
	Dependencies []DependencyDecl  `yaml:"dependencies"`
	Build        BuildSettings     `yaml:"build"`
	PackageXML   PackageXMLInput   `yaml:"package_xml"`
	Install      []InstallRuleDecl `yaml:"install,omitempty"`
}
