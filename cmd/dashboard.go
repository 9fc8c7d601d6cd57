package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timesheet/internal/summary"
)

var (
	dashboardBy      string
	dashboardFormat  string
	dashboardClients bool
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Summarise saved weeks by employee, project and date",
	Args:  cobra.NoArgs,
	RunE:  runDashboard,
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardBy, "by", "", "Only one grouping: employee, project, date")
	dashboardCmd.Flags().StringVar(&dashboardFormat, "format", "table", "Output format: table, csv, json")
	dashboardCmd.Flags().BoolVar(&dashboardClients, "clients", false, "Show the client next to each project")
}

var dashboardTitles = map[summary.Dimension]string{
	summary.ByEmployee: "Employee",
	summary.ByProject:  "Project",
	summary.ByDate:     "Week Ending",
}

// writeDashboard renders the requested groupings of s in format.
func writeDashboard(out io.Writer, s summary.Summaries, by, format string) error {
	dims := []summary.Dimension{summary.ByEmployee, summary.ByProject, summary.ByDate}
	if by != "" {
		if _, ok := s.By(summary.Dimension(by)); !ok {
			return fmt.Errorf("invalid --by %q (want employee, project or date)", by)
		}
		dims = []summary.Dimension{summary.Dimension(by)}
	}

	switch format {
	case "json":
		if by == "" {
			return writeJSONOut(out, s)
		}
		rows, _ := s.By(dims[0])
		return writeJSONOut(out, rows)
	case "csv", "table":
		for i, d := range dims {
			if i > 0 {
				fmt.Fprintln(out)
			}
			rows, _ := s.By(d)
			renderSummary(out, dashboardTitles[d], rows, format == "csv")
		}
		return nil
	default:
		return fmt.Errorf("invalid --format %q (want table, csv or json)", format)
	}
}

func runDashboard(cmd *cobra.Command, args []string) error {
	s := summary.Summarize(loadHistory())
	if dashboardClients {
		s.ByProject = summary.WithClients(s.ByProject, loadProjects())
	}
	return writeDashboard(cmd.OutOrStdout(), s, dashboardBy, dashboardFormat)
}
