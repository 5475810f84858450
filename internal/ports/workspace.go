package ports

import "ros-cargo-build/internal/types"

// PackageXMLPort parses ROS package.xml manifests.
type PackageXMLPort interface {
	// ParseROSTags extracts dependency keys from the standard ROS tags:
	// <depend>, <exec_depend>, <build_depend>, <build_export_depend>,
	// <run_depend>, <test_depend>.
	ParseROSTags(paths []string) ([]types.ROSTagDependency, error)

	// ParsePackageInfo returns name, version and dependency information of
	// a single package.xml.
	ParsePackageInfo(path string) (types.PackageXMLInfo, error)

	// RenderPackageXML produces a format 3 package.xml for a package that
	// ships without one.
	RenderPackageXML(meta types.Metadata, deps []types.PackageDependency) ([]byte, error)
}

// WorkspacePort discovers package.xml files below a source root.
type WorkspacePort interface {
	FindPackageXML(root string) ([]string, error)
}
