package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"ros-cargo-build/internal/app"
	"ros-cargo-build/internal/types"
)

type inspectOptions struct {
	BuildDir string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the install plan of a configured package",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd.Context(), cmd, opts)
		},
	}
	addBuildDirFlag(cmd, &opts.BuildDir)
	return cmd
}

func runInspect(ctx context.Context, cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(ctx, app.InspectRequest{
		BuildDir: resolveString(cmd, opts.BuildDir, "build_dir", "build-dir"),
	})
	if err != nil {
		return err
	}
	out, err := renderPlan(result.Plan)
	if err != nil {
		return err
	}
	fmt.Printf("plan: %s\n", result.PlanPath)
	fmt.Print(out)
	return nil
}

func renderPlan(plan types.InstallPlan) (string, error) {
	var out strings.Builder
	summary := [][]string{
		{"package", plan.Project.Name},
		{"version", plan.Project.Version},
		{"source", plan.SourceDir},
		{"install prefix", plan.InstallPrefix},
		{"build", strings.TrimSpace(plan.Build.Command + " " + plan.Build.Profile)},
		{"artifact", plan.Build.Artifact},
		{"env hash", plan.Environment.Hash},
	}
	if err := renderTable(&out, []string{"Field", "Value"}, summary); err != nil {
		return "", err
	}

	deps := make([][]string, 0, len(plan.Dependencies))
	for _, dep := range plan.Dependencies {
		version := dep.Version
		if version == "" {
			version = "-"
		}
		deps = append(deps, []string{dep.Name, string(dep.Kind), version, dep.Prefix})
	}
	if err := renderTable(&out, []string{"Dependency", "Kind", "Version", "Prefix"}, deps); err != nil {
		return "", err
	}

	rules := make([][]string, 0, len(plan.Rules))
	for _, rule := range plan.Rules {
		rules = append(rules, []string{rule.Source, rule.Destination})
	}
	if err := renderTable(&out, []string{"Source", "Destination"}, rules); err != nil {
		return "", err
	}
	return out.String(), nil
}

func renderTable(out *strings.Builder, header []string, rows [][]string) error {
	table := tablewriter.NewTable(out,
		tablewriter.WithRowAutoWrap(tw.WrapNone),
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.Off}},
		})))
	headerCells := make([]any, 0, len(header))
	for _, cell := range header {
		headerCells = append(headerCells, cell)
	}
	table.Header(headerCells...)
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("error rendering plan: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("error rendering plan: %w", err)
	}
	return nil
}
