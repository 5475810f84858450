package core

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"ros-cargo-build/internal/types"
)

type PlanInput struct {
	Manifest      types.Manifest
	Resolved      []types.ResolvedDependency
	SourceDir     string
	PackageXML    string
	InstallPrefix string
	Prefixes      []string
}

type InstallPlanner struct{}

func NewInstallPlanner() InstallPlanner {
	return InstallPlanner{}
}

// DefaultDestination is where ROS tooling (ros2 run, launch) expects the
// executable of a package: lib/<name>/<name> below the install prefix.
func DefaultDestination(project string) string {
	return path.Join("lib", project, project)
}

// ProfileDir maps a cargo profile to its directory below the target dir.
// The built-in test and bench profiles share debug and release.
func ProfileDir(profile string) string {
	switch strings.TrimSpace(profile) {
	case "", types.DefaultBuildProfile, "bench":
		return "release"
	case "dev", "debug", "test":
		return "debug"
	default:
		return profile
	}
}

func (p InstallPlanner) Plan(ctx context.Context, in PlanInput) (types.InstallPlan, error) {
	meta := in.Manifest.Metadata
	sourceDir, err := filepath.Abs(in.SourceDir)
	if err != nil {
		return types.InstallPlan{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to resolve source directory").
			WithCause(err)
	}
	prefix, err := filepath.Abs(in.InstallPrefix)
	if err != nil {
		return types.InstallPlan{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to resolve install prefix").
			WithCause(err)
	}

	build := in.Manifest.Build
	targetDir := build.TargetDir
	if strings.TrimSpace(targetDir) == "" {
		targetDir = types.DefaultTargetDir
	}
	targetDir = absUnder(sourceDir, targetDir)
	cargoManifest := build.ManifestPath
	if strings.TrimSpace(cargoManifest) == "" {
		cargoManifest = types.DefaultCargoManifest
	}
	profile := build.Profile
	if strings.TrimSpace(profile) == "" {
		profile = types.DefaultBuildProfile
	}
	command := build.Command
	if strings.TrimSpace(command) == "" {
		command = string(types.BuildToolCargo)
	}
	artifact := filepath.Join(targetDir, ProfileDir(profile), meta.Name)

	rules := []types.InstallRule{{
		Source:      artifact,
		Destination: DefaultDestination(meta.Name),
	}}
	for _, decl := range in.Manifest.Install {
		dest, err := cleanDestination(decl.Destination)
		if err != nil {
			return types.InstallPlan{}, err
		}
		rules = append(rules, types.InstallRule{
			Source:      absUnder(sourceDir, decl.Source),
			Destination: dest,
		})
	}

	var packageXML string
	if strings.TrimSpace(in.PackageXML) != "" {
		packageXML = absUnder(sourceDir, in.PackageXML)
	}

	plan := types.InstallPlan{
		APIVersion:    types.PlanAPIVersion,
		Project:       meta,
		SourceDir:     sourceDir,
		PackageXML:    packageXML,
		InstallPrefix: prefix,
		Dependencies:  in.Resolved,
		Rules:         rules,
		Build: types.PlanBuild{
			Tool:         types.BuildToolCargo,
			Command:      command,
			Profile:      profile,
			ManifestPath: absUnder(sourceDir, cargoManifest),
			Features:     build.Features,
			Jobs:         build.Jobs,
			Artifact:     artifact,
		},
		Environment: NewBuildEnvironment(in.Resolved, targetDir, in.Prefixes),
	}
	assert.NotEmpty(ctx, plan.Project.Name, "plan project name must be set")
	assert.NotEmpty(ctx, plan.Rules[0].Destination, "default install rule must have a destination")
	return plan, nil
}

func absUnder(base string, value string) string {
	if filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	return filepath.Join(base, value)
}
