package app

import "context"

func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	path := PlanPath(req.BuildDir)
	plan, err := s.PlanReader.ReadPlan(path)
	if err != nil {
		return InspectResult{}, err
	}
	return InspectResult{PlanPath: path, Plan: plan}, nil
}
