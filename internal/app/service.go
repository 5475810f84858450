package app

import (
	"time"

	"github.com/google/uuid"

	"ros-cargo-build/internal/adapters"
	"ros-cargo-build/internal/ports"
)

type Service struct {
	Manifests   ports.ManifestPort
	Workspace   ports.WorkspacePort
	PackageXML  ports.PackageXMLPort
	Index       ports.PackageIndexPort
	BuildTool   ports.BuildToolPort
	Installer   ports.InstallerPort
	Packaging   ports.PackagingPort
	PlanWriter  ports.PlanWriterPort
	PlanReader  ports.PlanReaderPort
	Environment ports.EnvironmentPort
	Revision    ports.SourceRevisionPort
	Metrics     ports.PhaseMetricsPort
	Clock       func() time.Time
	NewBuildID  func() string
	ToolVersion string
}

func NewService() Service {
	pkgXML := adapters.NewPackageXMLAdapter()
	plans := adapters.NewPlanFileAdapter()
	return Service{
		Manifests:   adapters.NewManifestFileAdapter(),
		Workspace:   adapters.NewWorkspaceAdapter(),
		PackageXML:  pkgXML,
		Index:       adapters.NewAmentIndexAdapter(pkgXML),
		BuildTool:   adapters.NewCargoBuildAdapter(),
		Installer:   adapters.NewArtifactInstallAdapter(),
		Packaging:   adapters.NewAmentPackageAdapter(),
		PlanWriter:  plans,
		PlanReader:  plans,
		Environment: adapters.NewEnvFileAdapter(),
		Revision:    adapters.NewGitRevisionAdapter(),
		Metrics:     adapters.NopPhaseMetrics{},
		Clock:       time.Now,
		NewBuildID:  uuid.NewString,
		ToolVersion: "dev",
	}
}
