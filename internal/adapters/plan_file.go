package adapters

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"ros-cargo-build/internal/ports"
	"ros-cargo-build/internal/types"
)

// PlanFileAdapter persists the install plan as YAML. The encoder output is
// deterministic for equal plans, which keeps configure idempotent on disk.
type PlanFileAdapter struct{}

func NewPlanFileAdapter() PlanFileAdapter {
	return PlanFileAdapter{}
}

func (a PlanFileAdapter) WritePlan(path string, plan types.InstallPlan) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create build directory").
			WithCause(err)
	}
	data, err := yaml.Marshal(plan)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal install plan").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write install plan").
			WithCause(err)
	}
	return nil
}

func (a PlanFileAdapter) RemovePlan(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to remove stale install plan").
			WithCause(err)
	}
	return nil
}

func (a PlanFileAdapter) ReadPlan(path string) (types.InstallPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.InstallPlan{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("install plan not found; run configure first").
			WithCause(err)
	}
	var plan types.InstallPlan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return types.InstallPlan{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse install plan").
			WithCause(err)
	}
	if plan.APIVersion != types.PlanAPIVersion {
		return types.InstallPlan{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("install plan was written by an incompatible version; run configure again")
	}
	return plan, nil
}

var (
	_ ports.PlanWriterPort = PlanFileAdapter{}
	_ ports.PlanReaderPort = PlanFileAdapter{}
)
