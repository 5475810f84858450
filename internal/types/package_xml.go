package types

// ROSTagDependency is a dependency key extracted from a standard ROS
// package.xml tag together with the scope derived from the element name.
type ROSTagDependency struct {
	Key         string
	Scope       ROSDepScope
	Constraints []Constraint
}

// PackageXMLInfo is the subset of a package.xml manifest the tool reads.
type PackageXMLInfo struct {
	Name         string
	Version      string
	Description  string
	Maintainers  []string
	Licenses     []string
	Dependencies []ROSTagDependency
}
