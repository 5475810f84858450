package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ros-cargo-build/internal/adapters"
	"ros-cargo-build/internal/app"
)

type watchOptions struct {
	Run          runOptions
	FullPipeline bool
	Debounce     time.Duration
}

func newWatchCommand() *cobra.Command {
	opts := watchOptions{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reconfigure when the manifest, package.xml or Cargo.toml change",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd.Context(), cmd, opts)
		},
	}
	addProjectFlags(cmd, &opts.Run.Project)
	addJobsFlag(cmd, &opts.Run.Jobs)
	addMetricsFileFlag(cmd, &opts.Run.MetricsFile)
	cmd.Flags().BoolVar(&opts.FullPipeline, "full", false, "Build, install and finalize after each reconfigure")
	cmd.Flags().DurationVar(&opts.Debounce, "debounce", 500*time.Millisecond, "Quiet period before acting on changes")
	_ = viper.BindPFlag("watch_full", cmd.Flags().Lookup("full"))
	_ = viper.BindPFlag("watch_debounce", cmd.Flags().Lookup("debounce"))
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, opts watchOptions) error {
	req := app.WatchRequest{
		Run:          resolveRunRequest(cmd, opts.Run),
		FullPipeline: resolveBool(cmd, opts.FullPipeline, "watch_full", "full"),
	}
	debounce := opts.Debounce
	if !flagChanged(cmd, "debounce") {
		debounce = viper.GetDuration("watch_debounce")
	}
	service := serviceWithMetrics(req.Run, packageNameHint(req.Run.Configure))
	watcher := adapters.NewFileWatcherAdapter(debounce)
	log.Ctx(ctx).Info().Strs("files", app.WatchFiles(req.Run.Configure)).Msg("watching")
	return service.Watch(ctx, req, watcher, func(result app.RunResult, err error) {
		if err != nil {
			fmt.Printf("failed: %s\n", errorMessage(err))
			return
		}
		fmt.Printf("configured: %s (%d dependencies)\n", result.Configure.Plan.Project.Name, len(result.Configure.Plan.Dependencies))
	})
}
