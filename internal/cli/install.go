package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ros-cargo-build/internal/app"
)

type installOptions struct {
	BuildDir string
}

func newInstallCommand() *cobra.Command {
	opts := installOptions{}
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Copy built artifacts into the install prefix",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInstall(cmd.Context(), cmd, opts)
		},
	}
	addBuildDirFlag(cmd, &opts.BuildDir)
	return cmd
}

func runInstall(ctx context.Context, cmd *cobra.Command, opts installOptions) error {
	service := newAppService()
	result, err := service.Install(ctx, app.InstallRequest{
		BuildDir: resolveString(cmd, opts.BuildDir, "build_dir", "build-dir"),
	})
	if err != nil {
		return err
	}
	for _, path := range result.Installed {
		fmt.Printf("installed: %s\n", path)
	}
	return nil
}
