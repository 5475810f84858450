package app

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"ros-cargo-build/internal/ports"
)

// WatchFiles lists the inputs whose change invalidates the plan.
func WatchFiles(req ConfigureRequest) []string {
	req = normalizeConfigureRequest(req)
	return []string{
		req.ManifestPath,
		filepath.Join(req.SourceDir, "package.xml"),
		filepath.Join(req.SourceDir, "Cargo.toml"),
	}
}

// Watch runs once, then again after every debounced change of the watched
// inputs until ctx is cancelled. Failed runs are reported through onRun and
// do not end the loop.
func (s Service) Watch(ctx context.Context, req WatchRequest, watcher ports.FileWatcherPort, onRun func(RunResult, error)) error {
	changes, err := watcher.Watch(ctx, WatchFiles(req.Run.Configure))
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil {
			log.Ctx(ctx).Warn().Err(closeErr).Msg("failed to close file watcher")
		}
	}()

	s.watchOnce(ctx, req, onRun)
	for {
		select {
		case <-ctx.Done():
			return nil
		case changed, ok := <-changes:
			if !ok {
				return nil
			}
			log.Ctx(ctx).Info().Str("file", changed).Msg("input changed, reconfiguring")
			s.watchOnce(ctx, req, onRun)
		}
	}
}

func (s Service) watchOnce(ctx context.Context, req WatchRequest, onRun func(RunResult, error)) {
	var (
		result RunResult
		err    error
	)
	if req.FullPipeline {
		result, err = s.Run(ctx, req.Run)
	} else {
		err = s.observe(PhaseConfigure, func() (phaseErr error) {
			result.Configure, phaseErr = s.Configure(ctx, req.Run.Configure)
			return phaseErr
		})
		s.writeMetrics(ctx, req.Run.MetricsFile)
	}
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("watch run failed")
	}
	if onRun != nil {
		onRun(result, err)
	}
}
