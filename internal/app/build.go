package app

import (
	"context"
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"ros-cargo-build/internal/core"
	"ros-cargo-build/internal/ports"
)

func (s Service) Build(ctx context.Context, req BuildRequest) (BuildResult, error) {
	plan, err := s.PlanReader.ReadPlan(PlanPath(req.BuildDir))
	if err != nil {
		return BuildResult{}, err
	}
	env, err := s.Environment.Load(req.EnvFile)
	if err != nil {
		return BuildResult{}, err
	}
	jobs := plan.Build.Jobs
	if req.Jobs > 0 {
		jobs = req.Jobs
	}
	log.Ctx(ctx).Info().
		Str("package", plan.Project.Name).
		Str("command", plan.Build.Command).
		Str("profile", plan.Build.Profile).
		Msg("building")
	if err := s.BuildTool.Build(ctx, ports.BuildToolRequest{
		Command:      plan.Build.Command,
		SourceDir:    plan.SourceDir,
		ManifestPath: plan.Build.ManifestPath,
		Profile:      plan.Build.Profile,
		Features:     plan.Build.Features,
		Jobs:         jobs,
		Env:          core.ComposeBuildEnv(env, plan),
	}); err != nil {
		return BuildResult{}, err
	}
	if info, err := os.Stat(plan.Build.Artifact); err != nil || info.IsDir() {
		return BuildResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("%s did not produce %s", plan.Build.Command, plan.Build.Artifact))
	}
	return BuildResult{Artifact: plan.Build.Artifact}, nil
}
