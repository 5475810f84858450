package core

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"ros-cargo-build/internal/types"
)

const ManifestAPIVersion = "v1"

// REP-144 package names: lowercase alphanumerics and underscores, starting
// with a letter.
var packageNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Dependency names also cover CMake packages such as FastRTPS.
var dependencyNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_+.-]*$`)

type ManifestValidator struct{}

func NewManifestValidator() ManifestValidator {
	return ManifestValidator{}
}

func (v ManifestValidator) ValidateManifest(ctx context.Context, manifest types.Manifest) error {
	if strings.TrimSpace(manifest.APIVersion) != ManifestAPIVersion {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("api_version must be %s", ManifestAPIVersion))
	}
	if manifest.Kind != types.ManifestKindPackage {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("kind must be ros_package")
	}
	if err := validateMetadata(manifest.Metadata); err != nil {
		return err
	}
	if len(manifest.Dependencies) == 0 && !manifest.PackageXML.Enabled {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("dependencies must not be empty unless package_xml is enabled")
	}
	for i, dep := range manifest.Dependencies {
		if err := validateDependencyDecl(i, dep); err != nil {
			return err
		}
	}
	if err := validateBuild(manifest.Build); err != nil {
		return err
	}
	for _, rule := range manifest.Install {
		if err := validateInstallRuleDecl(rule); err != nil {
			return err
		}
	}
	log.Ctx(ctx).Debug().Str("package", manifest.Metadata.Name).Msg("manifest validated")
	return nil
}

func validateMetadata(meta types.Metadata) error {
	name := strings.TrimSpace(meta.Name)
	if name == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("metadata.name must be set")
	}
	if !packageNamePattern.MatchString(name) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("metadata.name %q is not a valid ROS package name", name))
	}
	if strings.TrimSpace(meta.Version) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("metadata.version must be set")
	}
	// package.xml requires exactly MAJOR.MINOR.PATCH.
	parsed, err := semver.StrictNewVersion(meta.Version)
	if err != nil || parsed.Prerelease() != "" || parsed.Metadata() != "" {
		builder := errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("metadata.version %q must be MAJOR.MINOR.PATCH", meta.Version))
		if err != nil {
			builder = builder.WithCause(err)
		}
		return builder
	}
	return nil
}

func validateDependencyDecl(index int, dep types.DependencyDecl) error {
	name := strings.TrimSpace(dep.Name)
	if name == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("dependencies[%d].name must not be empty", index))
	}
	if !dependencyNamePattern.MatchString(name) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("dependencies[%d].name %q is not a valid package identifier", index, name))
	}
	cache := newVersionCache()
	for _, c := range ConstraintsFromDecl(dep) {
		if _, err := cache.debVersion(c.Version); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("dependency %s has invalid version bound %q", name, c.Version)).
				WithCause(err)
		}
	}
	return nil
}

func validateBuild(build types.BuildSettings) error {
	if build.Tool != "" && build.Tool != types.BuildToolCargo {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported build tool: %s", build.Tool))
	}
	if build.Jobs < 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("build.jobs must not be negative")
	}
	if strings.ContainsAny(build.Profile, "/\\ ") {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid build profile: %s", build.Profile))
	}
	return nil
}

func validateInstallRuleDecl(rule types.InstallRuleDecl) error {
	if strings.TrimSpace(rule.Source) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("install rule source must not be empty")
	}
	if _, err := cleanDestination(rule.Destination); err != nil {
		return err
	}
	return nil
}

// cleanDestination normalizes an install destination and rejects anything
// that would land outside the install prefix.
func cleanDestination(dest string) (string, error) {
	trimmed := strings.TrimSpace(dest)
	if trimmed == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("install rule destination must not be empty")
	}
	slashed := filepath.ToSlash(trimmed)
	if strings.HasPrefix(slashed, "/") || filepath.IsAbs(trimmed) {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("install rule destination must be relative: %s", dest))
	}
	cleaned := filepath.ToSlash(filepath.Clean(slashed))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("install rule destination escapes the install prefix: %s", dest))
	}
	return cleaned, nil
}
