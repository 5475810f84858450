package app

import "context"

// Install copies the registered artifacts into the install prefix of the
// plan. Nothing is copied when any source is missing.
func (s Service) Install(ctx context.Context, req InstallRequest) (InstallResult, error) {
	plan, err := s.PlanReader.ReadPlan(PlanPath(req.BuildDir))
	if err != nil {
		return InstallResult{}, err
	}
	installed, err := s.Installer.Install(ctx, plan.InstallPrefix, plan.Rules)
	if err != nil {
		return InstallResult{}, err
	}
	return InstallResult{Installed: installed}, nil
}
