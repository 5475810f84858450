package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ros-cargo-build/internal/app"
)

// projectOptions are the flags shared by every command that works on a
// package source tree.
type projectOptions struct {
	Manifest      string
	SourceDir     string
	BuildDir      string
	InstallPrefix string
	PrefixPaths   []string
	EnvFile       string
}

func addProjectFlags(cmd *cobra.Command, opts *projectOptions) {
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "Package manifest path (default <source-dir>/"+app.DefaultManifestFile+")")
	cmd.Flags().StringVar(&opts.SourceDir, "source-dir", "", "Package source directory")
	addBuildDirFlag(cmd, &opts.BuildDir)
	cmd.Flags().StringVar(&opts.InstallPrefix, "install-prefix", app.DefaultInstallPrefix, "Install prefix")
	cmd.Flags().StringSliceVar(&opts.PrefixPaths, "prefix-path", nil, "Prefixes to search for dependencies (default AMENT_PREFIX_PATH, CMAKE_PREFIX_PATH)")
	addEnvFileFlag(cmd, &opts.EnvFile)
	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("source_dir", cmd.Flags().Lookup("source-dir"))
	_ = viper.BindPFlag("install_prefix", cmd.Flags().Lookup("install-prefix"))
	_ = viper.BindPFlag("prefix_path", cmd.Flags().Lookup("prefix-path"))
}

func addBuildDirFlag(cmd *cobra.Command, value *string) {
	cmd.Flags().StringVar(value, "build-dir", app.DefaultBuildDir, "Build directory holding the install plan")
	_ = viper.BindPFlag("build_dir", cmd.Flags().Lookup("build-dir"))
}

func addEnvFileFlag(cmd *cobra.Command, value *string) {
	cmd.Flags().StringVar(value, "env-file", "", "Dotenv file merged into the build environment")
	_ = viper.BindPFlag("env_file", cmd.Flags().Lookup("env-file"))
}

func resolveConfigureRequest(cmd *cobra.Command, opts projectOptions) app.ConfigureRequest {
	return app.ConfigureRequest{
		ManifestPath:  resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		SourceDir:     resolveString(cmd, opts.SourceDir, "source_dir", "source-dir"),
		BuildDir:      resolveString(cmd, opts.BuildDir, "build_dir", "build-dir"),
		InstallPrefix: resolveString(cmd, opts.InstallPrefix, "install_prefix", "install-prefix"),
		PrefixPaths:   resolveStrings(cmd, opts.PrefixPaths, "prefix_path", "prefix-path"),
		EnvFile:       resolveString(cmd, opts.EnvFile, "env_file", "env-file"),
	}
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
