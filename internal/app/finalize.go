package app

import (
	"context"
	"os"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"ros-cargo-build/internal/core"
	"ros-cargo-build/internal/ports"
	"ros-cargo-build/internal/types"
)

func (s Service) Finalize(ctx context.Context, req FinalizeRequest) (FinalizeResult, error) {
	plan, err := s.PlanReader.ReadPlan(PlanPath(req.BuildDir))
	if err != nil {
		return FinalizeResult{}, err
	}
	env, err := s.Environment.Load(req.EnvFile)
	if err != nil {
		return FinalizeResult{}, err
	}
	packageXML, err := s.packageXMLContent(plan)
	if err != nil {
		return FinalizeResult{}, err
	}
	info := s.buildInfo(ctx, plan, env)
	files, err := s.Packaging.Finalize(ctx, ports.PackagingRequest{
		Plan:       plan,
		PackageXML: packageXML,
		BuildInfo:  info,
	})
	if err != nil {
		return FinalizeResult{}, err
	}
	return FinalizeResult{Files: files, BuildInfo: info}, nil
}

// packageXMLContent copies the package.xml of the source tree, or renders
// one from the manifest metadata when the package has none.
func (s Service) packageXMLContent(plan types.InstallPlan) ([]byte, error) {
	if plan.PackageXML != "" {
		content, err := os.ReadFile(plan.PackageXML)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("failed to read package.xml").
				WithCause(err)
		}
		return content, nil
	}
	deps := make([]types.PackageDependency, 0, len(plan.Dependencies))
	for _, dep := range plan.Dependencies {
		deps = append(deps, types.PackageDependency{Name: dep.Name})
	}
	return s.PackageXML.RenderPackageXML(plan.Project, deps)
}

func (s Service) buildInfo(ctx context.Context, plan types.InstallPlan, env map[string]string) types.BuildInfo {
	clock := s.Clock
	if clock == nil {
		clock = time.Now
	}
	info := types.BuildInfo{
		Package:     plan.Project.Name,
		Version:     plan.Project.Version,
		CreatedAt:   clock().UTC().Format(time.RFC3339),
		ToolVersion: s.ToolVersion,
		EnvHash:     core.RuntimeEnvHash(plan, core.ComposeBuildEnv(env, plan)),
	}
	if s.NewBuildID != nil {
		info.BuildID = s.NewBuildID()
	}
	for _, dep := range plan.Dependencies {
		info.Dependencies = append(info.Dependencies, dep.Name)
	}
	if s.Revision == nil {
		return info
	}
	rev, ok, err := s.Revision.Revision(plan.SourceDir)
	switch {
	case err != nil:
		log.Ctx(ctx).Warn().Err(err).Str("source_dir", plan.SourceDir).Msg("failed to read source revision")
	case ok:
		info.SourceRevision = rev.Commit
		info.SourceBranch = rev.Branch
		info.SourceDirty = rev.Dirty
	}
	return info
}
