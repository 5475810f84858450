package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	debversion "github.com/knqyf263/go-deb-version"

	"ros-cargo-build/internal/types"
)

// versionCache memoizes parsed Debian versions. ROS package versions are
// plain X.Y.Z strings, which Debian ordering compares the same way catkin
// and rosdep do.
type versionCache struct {
	deb map[string]debversion.Version
}

func newVersionCache() *versionCache {
	return &versionCache{deb: map[string]debversion.Version{}}
}

func (c *versionCache) debVersion(value string) (debversion.Version, error) {
	if parsed, ok := c.deb[value]; ok {
		return parsed, nil
	}
	parsed, err := debversion.NewVersion(value)
	if err != nil {
		return debversion.Version{}, err
	}
	c.deb[value] = parsed
	return parsed, nil
}

// checkConstraints verifies that version satisfies every bound. An empty
// version only passes when there are no bounds.
func checkConstraints(name string, version string, constraints []types.Constraint, cache *versionCache) error {
	if len(constraints) == 0 {
		return nil
	}
	if strings.TrimSpace(version) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("version constraint on %s cannot be checked: installed version unknown", name))
	}
	v, err := cache.debVersion(version)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid installed version %q for %s", version, name)).
			WithCause(err)
	}
	for _, constraint := range constraints {
		bound, err := cache.debVersion(constraint.Version)
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid version bound %q for %s", constraint.Version, name)).
				WithCause(err)
		}
		ok, err := satisfies(v, constraint.Op, bound)
		if err != nil {
			return err
		}
		if !ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("version constraint not satisfied: %s %s %s (installed %s)", name, constraint.Op, constraint.Version, version))
		}
	}
	return nil
}

func satisfies(v debversion.Version, op types.ConstraintOp, bound debversion.Version) (bool, error) {
	switch op {
	case types.ConstraintOpEq:
		return v.Equal(bound), nil
	case types.ConstraintOpGte:
		return !v.LessThan(bound), nil
	case types.ConstraintOpLte:
		return !v.GreaterThan(bound), nil
	case types.ConstraintOpGt:
		return v.GreaterThan(bound), nil
	case types.ConstraintOpLt:
		return v.LessThan(bound), nil
	default:
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported constraint operator %q", op))
	}
}
