package core

import (
	"strings"

	"ros-cargo-build/internal/types"
)

// ConstraintsFromDecl turns the REP-149 attributes of a manifest entry into
// constraints, in a fixed operator order.
func ConstraintsFromDecl(decl types.DependencyDecl) []types.Constraint {
	bounds := []struct {
		op    types.ConstraintOp
		value string
	}{
		{types.ConstraintOpLt, decl.VersionLt},
		{types.ConstraintOpLte, decl.VersionLte},
		{types.ConstraintOpEq, decl.VersionEq},
		{types.ConstraintOpGte, decl.VersionGte},
		{types.ConstraintOpGt, decl.VersionGt},
	}
	var constraints []types.Constraint
	for _, bound := range bounds {
		if value := strings.TrimSpace(bound.value); value != "" {
			constraints = append(constraints, types.Constraint{Op: bound.op, Version: value})
		}
	}
	return constraints
}

// mergeConstraints appends constraints from extra that are not already
// present in base.
func mergeConstraints(base []types.Constraint, extra []types.Constraint) []types.Constraint {
	seen := map[types.Constraint]struct{}{}
	for _, c := range base {
		seen[c] = struct{}{}
	}
	merged := base
	for _, c := range extra {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		merged = append(merged, c)
	}
	return merged
}
