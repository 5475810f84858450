package types

type Constraint struct {
	Op      ConstraintOp `yaml:"op"`
	Version string       `yaml:"version"`
}

// PackageDependency is a declared dependency after normalization. The
// declaration order of the manifest is preserved by every consumer.
type PackageDependency struct {
	Name        string           `yaml:"name"`
	Source      DependencySource `yaml:"source"`
	Constraints []Constraint     `yaml:"constraints,omitempty"`
}
