package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/timesheet/internal/summary"
)

var (
	projectClient string
	projectFormat string
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage the project catalogue and show project detail",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known projects and their clients",
	Args:  cobra.NoArgs,
	RunE:  runProjectList,
}

var projectAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a project or change its client",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectAdd,
}

var projectShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show every saved job booked on a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectShow,
}

func init() {
	projectAddCmd.Flags().StringVar(&projectClient, "client", "", "Client the project is done for")
	projectShowCmd.Flags().StringVar(&projectFormat, "format", "table", "Output format: table, json")
	projectCmd.AddCommand(projectListCmd, projectAddCmd, projectShowCmd)
}

func runProjectList(cmd *cobra.Command, args []string) error {
	projects := loadProjects()
	if len(projects) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No projects yet. Add one with: tsheet project add <name> --client <client>")
		return nil
	}
	t := newTable(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Project", "Client"})
	for _, p := range projects {
		t.AppendRow(table.Row{p.Name, p.Client})
	}
	t.Render()
	return nil
}

func runProjectAdd(cmd *cobra.Command, args []string) error {
	p, err := store.UpsertProject(args[0], projectClient)
	if err != nil {
		fatalStorage(err)
	}
	if p.Name == "" {
		return fmt.Errorf("project name must not be blank")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Project %s saved.\n", p.Name)
	return nil
}

func runProjectShow(cmd *cobra.Command, args []string) error {
	report := summary.ProjectDetail(loadHistory(), args[0], loadProjects())
	switch projectFormat {
	case "json":
		return writeJSONOut(cmd.OutOrStdout(), report)
	case "table":
		renderProject(cmd.OutOrStdout(), report)
		return nil
	default:
		return fmt.Errorf("invalid --format %q (want table or json)", projectFormat)
	}
}
