package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timesheet/internal/summary"
)

var employeeFormat string

var employeeCmd = &cobra.Command{
	Use:   "employee <name>",
	Short: "Show every saved week of one employee, day by day",
	Long: `Show every saved week of one employee with the days that have entries,
latest weekday first. Use "(Unnamed)" for weeks saved without a name.`,
	Args: cobra.ExactArgs(1),
	RunE: runEmployee,
}

func init() {
	employeeCmd.Flags().StringVar(&employeeFormat, "format", "table", "Output format: table, json")
}

func runEmployee(cmd *cobra.Command, args []string) error {
	weeks := summary.EmployeeDetail(loadHistory(), args[0])
	switch employeeFormat {
	case "json":
		return writeJSONOut(cmd.OutOrStdout(), weeks)
	case "table":
		renderEmployee(cmd.OutOrStdout(), args[0], weeks)
		return nil
	default:
		return fmt.Errorf("invalid --format %q (want table or json)", employeeFormat)
	}
}
