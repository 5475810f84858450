package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ros-cargo-build/internal/app"
)

func newAppService() app.Service {
	service := app.NewService()
	service.ToolVersion = version
	return service
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetInt(key)
}
