package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"ros-cargo-build/internal/types"
)

// Variables of the build environment that change what r2r generates.
// They take part in the environment hash.
var hashedEnvKeys = []string{
	"AMENT_PREFIX_PATH",
	"CMAKE_PREFIX_PATH",
	"CMAKE_IDL_PACKAGES",
	"IDL_PACKAGES",
	"RMW_IMPLEMENTATION",
	"ROS_DISTRO",
}

// NewBuildEnvironment derives the variables r2r reads at build time.
// CMAKE_IDL_PACKAGES is the colon separated list of declared packages, the
// same value the r2r_cargo CMake macro exports.
func NewBuildEnvironment(deps []types.ResolvedDependency, targetDir string, prefixes []string) types.BuildEnvironment {
	names := make([]string, 0, len(deps))
	for _, dep := range deps {
		names = append(names, dep.Name)
	}
	env := types.BuildEnvironment{
		CMakeIDLPackages: strings.Join(names, ":"),
		TargetDir:        targetDir,
		PrefixPath:       strings.Join(prefixes, ":"),
	}
	env.Hash = envHash(env)
	return env
}

func envHash(env types.BuildEnvironment) string {
	h := sha256.New()
	for _, part := range []string{env.CMakeIDLPackages, env.TargetDir, env.PrefixPath} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// ComposeBuildEnv overlays the plan variables on the invoking environment.
// IDL_PACKAGES, r2r's comma separated filter, and RMW_IMPLEMENTATION are
// passed through untouched.
func ComposeBuildEnv(base map[string]string, plan types.InstallPlan) map[string]string {
	env := make(map[string]string, len(base)+2)
	for key, value := range base {
		env[key] = value
	}
	env["CMAKE_IDL_PACKAGES"] = plan.Environment.CMakeIDLPackages
	env["CARGO_TARGET_DIR"] = plan.Environment.TargetDir
	return env
}

// RuntimeEnvHash fingerprints the build environment variables that affect
// code generation, so a changed environment is visible in build info.
func RuntimeEnvHash(plan types.InstallPlan, env map[string]string) string {
	h := sha256.New()
	h.Write([]byte(plan.Environment.Hash))
	for _, key := range hashedEnvKeys {
		h.Write([]byte{0})
		h.Write([]byte(key + "=" + env[key]))
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
