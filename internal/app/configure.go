package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"ros-cargo-build/internal/core"
	"ros-cargo-build/internal/shared"
	"ros-cargo-build/internal/types"
)

// PlanPath is the location of the install plan inside a build directory.
func PlanPath(buildDir string) string {
	if strings.TrimSpace(buildDir) == "" {
		buildDir = DefaultBuildDir
	}
	return filepath.Join(buildDir, types.PlanFileName)
}

// Configure declares and resolves dependencies and registers the install
// rules. On any failure the plan of a previous run is removed so later
// phases cannot act on stale rules.
func (s Service) Configure(ctx context.Context, req ConfigureRequest) (result ConfigureResult, err error) {
	req = normalizeConfigureRequest(req)
	planPath := PlanPath(req.BuildDir)
	defer func() {
		if err == nil {
			return
		}
		if rmErr := s.PlanWriter.RemovePlan(planPath); rmErr != nil {
			log.Ctx(ctx).Warn().Err(rmErr).Str("plan", planPath).Msg("failed to remove stale install plan")
		}
	}()

	manifest, err := s.Manifests.LoadManifest(req.ManifestPath)
	if err != nil {
		return ConfigureResult{}, err
	}
	if err := core.NewManifestValidator().ValidateManifest(ctx, manifest); err != nil {
		return ConfigureResult{}, err
	}
	env, err := s.Environment.Load(req.EnvFile)
	if err != nil {
		return ConfigureResult{}, err
	}
	prefixes := searchPrefixes(req.PrefixPaths, env)

	packageXML, err := s.locatePackageXML(ctx, manifest, req.SourceDir)
	if err != nil {
		return ConfigureResult{}, err
	}
	declarer := core.NewDependencyDeclarer(s.Workspace, s.PackageXML)
	deps, err := declarer.Declare(ctx, manifest, packageXML)
	if err != nil {
		return ConfigureResult{}, err
	}
	resolved, err := core.NewDependencyResolver(s.Index).Resolve(ctx, deps, prefixes)
	if err != nil {
		return ConfigureResult{}, err
	}
	s.metrics().SetDependencies(len(resolved))

	plan, err := core.NewInstallPlanner().Plan(ctx, core.PlanInput{
		Manifest:      manifest,
		Resolved:      resolved,
		SourceDir:     req.SourceDir,
		PackageXML:    packageXML,
		InstallPrefix: req.InstallPrefix,
		Prefixes:      prefixes,
	})
	if err != nil {
		return ConfigureResult{}, err
	}
	if err := s.PlanWriter.WritePlan(planPath, plan); err != nil {
		return ConfigureResult{}, err
	}

	warnings := rmwWarnings(manifest.Build.RMWImplementation, env)
	for _, warning := range warnings {
		log.Ctx(ctx).Warn().Msg(warning)
	}
	log.Ctx(ctx).Info().
		Str("package", plan.Project.Name).
		Str("plan", planPath).
		Int("dependencies", len(plan.Dependencies)).
		Msg("configure complete")
	return ConfigureResult{Plan: plan, PlanPath: planPath, Warnings: warnings}, nil
}

func normalizeConfigureRequest(req ConfigureRequest) ConfigureRequest {
	req.ManifestPath = strings.TrimSpace(req.ManifestPath)
	req.SourceDir = strings.TrimSpace(req.SourceDir)
	if req.SourceDir == "" {
		if req.ManifestPath != "" {
			req.SourceDir = filepath.Dir(req.ManifestPath)
		} else {
			req.SourceDir = "."
		}
	}
	if req.ManifestPath == "" {
		req.ManifestPath = filepath.Join(req.SourceDir, DefaultManifestFile)
	}
	if strings.TrimSpace(req.BuildDir) == "" {
		req.BuildDir = DefaultBuildDir
	}
	if strings.TrimSpace(req.InstallPrefix) == "" {
		req.InstallPrefix = DefaultInstallPrefix
	}
	return req
}

// searchPrefixes returns the explicit prefixes, else AMENT_PREFIX_PATH
// followed by CMAKE_PREFIX_PATH from the environment.
func searchPrefixes(explicit []string, env map[string]string) []string {
	var prefixes []string
	seen := map[string]struct{}{}
	add := func(values []string) {
		for _, value := range values {
			if _, ok := seen[value]; ok {
				continue
			}
			seen[value] = struct{}{}
			prefixes = append(prefixes, value)
		}
	}
	for _, value := range explicit {
		add(shared.SplitPathList(value))
	}
	if len(prefixes) > 0 {
		return prefixes
	}
	add(shared.SplitPathList(env["AMENT_PREFIX_PATH"]))
	add(shared.SplitPathList(env["CMAKE_PREFIX_PATH"]))
	return prefixes
}

func (s Service) locatePackageXML(ctx context.Context, manifest types.Manifest, sourceDir string) (string, error) {
	configured := strings.TrimSpace(manifest.PackageXML.Path)
	if configured != "" && !filepath.IsAbs(configured) {
		configured = filepath.Join(sourceDir, configured)
	}
	declarer := core.NewDependencyDeclarer(s.Workspace, s.PackageXML)
	path, err := declarer.LocatePackageXML(sourceDir, configured)
	if err != nil {
		if manifest.PackageXML.Enabled {
			return "", err
		}
		log.Ctx(ctx).Debug().Err(err).Msg("no package.xml in source directory")
		return "", nil
	}
	if path == "" {
		return "", nil
	}
	info, err := s.PackageXML.ParsePackageInfo(path)
	if err != nil {
		return "", err
	}
	if info.Name == manifest.Metadata.Name {
		return path, nil
	}
	if manifest.PackageXML.Enabled {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("package.xml %s declares %q, manifest declares %q", path, info.Name, manifest.Metadata.Name))
	}
	log.Ctx(ctx).Warn().Str("package_xml", path).Str("name", info.Name).Msg("ignoring package.xml of another package")
	return "", nil
}

// rmwWarnings reports a missing or unexpected RMW_IMPLEMENTATION. The
// variable is read by the node at runtime and is never set here.
func rmwWarnings(expected string, env map[string]string) []string {
	if strings.TrimSpace(expected) == "" {
		expected = types.DefaultRMWImplementation
	}
	actual := strings.TrimSpace(env["RMW_IMPLEMENTATION"])
	switch {
	case actual == "":
		return []string{fmt.Sprintf("RMW_IMPLEMENTATION is not set; expected %s", expected)}
	case actual != expected:
		return []string{fmt.Sprintf("RMW_IMPLEMENTATION is %s; expected %s", actual, expected)}
	default:
		return nil
	}
}
