package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ros-cargo-build/internal/adapters"
	"ros-cargo-build/internal/app"
)

type runOptions struct {
	Project     projectOptions
	Jobs        int
	MetricsFile string
}

func newRunCommand() *cobra.Command {
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Configure, build, install and finalize in one go",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRun(cmd.Context(), cmd, opts)
		},
	}
	addProjectFlags(cmd, &opts.Project)
	addJobsFlag(cmd, &opts.Jobs)
	addMetricsFileFlag(cmd, &opts.MetricsFile)
	return cmd
}

func addMetricsFileFlag(cmd *cobra.Command, value *string) {
	cmd.Flags().StringVar(value, "metrics-file", "", "Write phase metrics in node_exporter textfile format")
	_ = viper.BindPFlag("metrics_file", cmd.Flags().Lookup("metrics-file"))
}

func resolveRunRequest(cmd *cobra.Command, opts runOptions) app.RunRequest {
	return app.RunRequest{
		Configure:   resolveConfigureRequest(cmd, opts.Project),
		Jobs:        resolveInt(cmd, opts.Jobs, "jobs", "jobs"),
		MetricsFile: resolveString(cmd, opts.MetricsFile, "metrics_file", "metrics-file"),
	}
}

// serviceWithMetrics wires a textfile collector when a metrics file is
// requested.
func serviceWithMetrics(req app.RunRequest, pkg string) app.Service {
	service := newAppService()
	if req.MetricsFile != "" {
		service.Metrics = adapters.NewPhaseMetricsAdapter(pkg)
	}
	return service
}

func runRun(ctx context.Context, cmd *cobra.Command, opts runOptions) error {
	req := resolveRunRequest(cmd, opts)
	service := serviceWithMetrics(req, packageNameHint(req.Configure))
	result, err := service.Run(ctx, req)
	if err != nil {
		return err
	}
	for _, path := range result.Install.Installed {
		fmt.Printf("installed: %s\n", path)
	}
	fmt.Printf("finalized: %s (build %s)\n", result.Finalize.BuildInfo.Package, result.Finalize.BuildInfo.BuildID)
	return nil
}

// packageNameHint reads the package name for metric labels. An unreadable
// manifest yields an empty label; configure reports the real error.
func packageNameHint(req app.ConfigureRequest) string {
	path := req.ManifestPath
	if path == "" {
		sourceDir := req.SourceDir
		if sourceDir == "" {
			sourceDir = "."
		}
		path = filepath.Join(sourceDir, app.DefaultManifestFile)
	}
	manifest, err := adapters.NewManifestFileAdapter().LoadManifest(path)
	if err != nil {
		return ""
	}
	return manifest.Metadata.Name
}
