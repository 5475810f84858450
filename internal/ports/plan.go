package ports

import "ros-cargo-build/internal/types"

type PlanWriterPort interface {
	WritePlan(path string, plan types.InstallPlan) error
	RemovePlan(path string) error
}

type PlanReaderPort interface {
	ReadPlan(path string) (types.InstallPlan, error)
}
