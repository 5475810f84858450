package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ros-cargo-build/internal/app"
)

type buildOptions struct {
	BuildDir string
	EnvFile  string
	Jobs     int
}

func newBuildCommand() *cobra.Command {
	opts := buildOptions{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Run cargo for a configured package",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd.Context(), cmd, opts)
		},
	}
	addBuildDirFlag(cmd, &opts.BuildDir)
	addEnvFileFlag(cmd, &opts.EnvFile)
	addJobsFlag(cmd, &opts.Jobs)
	return cmd
}

func addJobsFlag(cmd *cobra.Command, value *int) {
	cmd.Flags().IntVarP(value, "jobs", "j", 0, "Parallel cargo jobs (0 uses the manifest or cargo default)")
	_ = viper.BindPFlag("jobs", cmd.Flags().Lookup("jobs"))
}

func runBuild(ctx context.Context, cmd *cobra.Command, opts buildOptions) error {
	service := newAppService()
	result, err := service.Build(ctx, app.BuildRequest{
		BuildDir: resolveString(cmd, opts.BuildDir, "build_dir", "build-dir"),
		EnvFile:  resolveString(cmd, opts.EnvFile, "env_file", "env-file"),
		Jobs:     resolveInt(cmd, opts.Jobs, "jobs", "jobs"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("built: %s\n", result.Artifact)
	return nil
}
