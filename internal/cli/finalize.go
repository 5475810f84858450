package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ros-cargo-build/internal/app"
)

type finalizeOptions struct {
	BuildDir string
	EnvFile  string
}

func newFinalizeCommand() *cobra.Command {
	opts := finalizeOptions{}
	cmd := &cobra.Command{
		Use:   "finalize",
		Short: "Write ament index entries and package metadata",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFinalize(cmd.Context(), cmd, opts)
		},
	}
	addBuildDirFlag(cmd, &opts.BuildDir)
	addEnvFileFlag(cmd, &opts.EnvFile)
	return cmd
}

func runFinalize(ctx context.Context, cmd *cobra.Command, opts finalizeOptions) error {
	service := newAppService()
	result, err := service.Finalize(ctx, app.FinalizeRequest{
		BuildDir: resolveString(cmd, opts.BuildDir, "build_dir", "build-dir"),
		EnvFile:  resolveString(cmd, opts.EnvFile, "env_file", "env-file"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("finalized: %s (build %s)\n", result.BuildInfo.Package, result.BuildInfo.BuildID)
	return nil
}
