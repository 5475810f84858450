package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ros-cargo-build/internal/app"
)

type validateOptions struct {
	Manifest  string
	SourceDir string
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the package manifest",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "Package manifest path")
	cmd.Flags().StringVar(&opts.SourceDir, "source-dir", "", "Package source directory")
	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("source_dir", cmd.Flags().Lookup("source-dir"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions) error {
	manifest := resolveString(cmd, opts.Manifest, "manifest", "manifest")
	if manifest == "" {
		sourceDir := resolveString(cmd, opts.SourceDir, "source_dir", "source-dir")
		if sourceDir == "" {
			sourceDir = "."
		}
		manifest = filepath.Join(sourceDir, app.DefaultManifestFile)
	}
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{ManifestPath: manifest})
	if err != nil {
		return err
	}
	fmt.Printf("validated: %s (%d dependencies)\n", result.PackageName, result.Dependencies)
	return nil
}
