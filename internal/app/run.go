package app

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"ros-cargo-build/internal/adapters"
	"ros-cargo-build/internal/ports"
)

const (
	PhaseConfigure = "configure"
	PhaseBuild     = "build"
	PhaseInstall   = "install"
	PhaseFinalize  = "finalize"
)

// Run executes configure, build, install and finalize in order and stops
// at the first failure.
func (s Service) Run(ctx context.Context, req RunRequest) (result RunResult, err error) {
	defer s.writeMetrics(ctx, req.MetricsFile)
	configure := normalizeConfigureRequest(req.Configure)

	err = s.observe(PhaseConfigure, func() (phaseErr error) {
		result.Configure, phaseErr = s.Configure(ctx, configure)
		return phaseErr
	})
	if err != nil {
		return result, err
	}
	err = s.observe(PhaseBuild, func() (phaseErr error) {
		result.Build, phaseErr = s.Build(ctx, BuildRequest{BuildDir: configure.BuildDir, EnvFile: configure.EnvFile, Jobs: req.Jobs})
		return phaseErr
	})
	if err != nil {
		return result, err
	}
	err = s.observe(PhaseInstall, func() (phaseErr error) {
		result.Install, phaseErr = s.Install(ctx, InstallRequest{BuildDir: configure.BuildDir})
		return phaseErr
	})
	if err != nil {
		return result, err
	}
	err = s.observe(PhaseFinalize, func() (phaseErr error) {
		result.Finalize, phaseErr = s.Finalize(ctx, FinalizeRequest{BuildDir: configure.BuildDir, EnvFile: configure.EnvFile})
		return phaseErr
	})
	return result, err
}

func (s Service) observe(phase string, fn func() error) error {
	start := time.Now()
	err := fn()
	s.metrics().ObservePhase(phase, time.Since(start), err)
	return err
}

// writeMetrics writes the textfile when a path is set. Failures are only
// logged.
func (s Service) writeMetrics(ctx context.Context, path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return
	}
	if err := s.metrics().WriteTextfile(path); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("failed to write metrics textfile")
	}
}

func (s Service) metrics() ports.PhaseMetricsPort {
	if s.Metrics == nil {
		return adapters.NopPhaseMetrics{}
	}
	return s.Metrics
}
