package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigureCommand() *cobra.Command {
	opts := projectOptions{}
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Resolve dependencies and write the install plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigure(cmd.Context(), cmd, opts)
		},
	}
	addProjectFlags(cmd, &opts)
	return cmd
}

func runConfigure(ctx context.Context, cmd *cobra.Command, opts projectOptions) error {
	service := newAppService()
	result, err := service.Configure(ctx, resolveConfigureRequest(cmd, opts))
	if err != nil {
		return err
	}
	fmt.Printf("configured: %s (%d dependencies)\n", result.Plan.Project.Name, len(result.Plan.Dependencies))
	fmt.Printf("plan: %s\n", result.PlanPath)
	return nil
}
