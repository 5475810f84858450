package types

type ManifestKind string

const (
	ManifestKindPackage ManifestKind = "ros_package"
)

type BuildTool string

const (
	BuildToolCargo BuildTool = "cargo"
)

const (
	DefaultBuildProfile      = "release"
	DefaultRMWImplementation = "rmw_fastrtps_cpp"
	DefaultCargoManifest     = "Cargo.toml"
	DefaultTargetDir         = "target"
)

// DependencySource records where a dependency declaration came from.
type DependencySource string

const (
	DependencySourceManifest   DependencySource = "manifest"
	DependencySourcePackageXML DependencySource = "package_xml"
)

// DependencyKind records how a dependency was located in a prefix.
type DependencyKind string

const (
	DependencyKindAment       DependencyKind = "ament"
	DependencyKindCMakeConfig DependencyKind = "cmake-config"
	DependencyKindCMakeModule DependencyKind = "cmake-module"
)

type ROSDepScope string

const (
	ROSDepScopeAll       ROSDepScope = "all"
	ROSDepScopeBuild     ROSDepScope = "build"
	ROSDepScopeExec      ROSDepScope = "exec"
	ROSDepScopeBuildExec ROSDepScope = "build_export"
	ROSDepScopeTest      ROSDepScope = "test"
)

type ConstraintOp string

const (
	ConstraintOpLt  ConstraintOp = "<<"
	ConstraintOpLte ConstraintOp = "<="
	ConstraintOpEq  ConstraintOp = "="
	ConstraintOpGte ConstraintOp = ">="
	ConstraintOpGt  ConstraintOp = ">>"
)
