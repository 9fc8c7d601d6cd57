package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timesheet/internal/api"
	"github.com/Tiliavir/timesheet/internal/model"
)

var historyFormat string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or import saved weeks",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved weeks",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Append the weeks of a JSON history dump to the history",
	Long: `Append every week of a JSON array of weeks, such as a history dump from
another installation, to the history. Use - to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runHistoryImport,
}

func init() {
	historyListCmd.Flags().StringVar(&historyFormat, "format", "table", "Output format: table, json")
	historyCmd.AddCommand(historyListCmd, historyImportCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	items := api.NewHistoryItems(loadHistory())
	switch historyFormat {
	case "json":
		return writeJSONOut(cmd.OutOrStdout(), items)
	case "table":
		if len(items) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No saved weeks.")
			return nil
		}
		renderHistory(cmd.OutOrStdout(), items)
		return nil
	default:
		return fmt.Errorf("invalid --format %q (want table or json)", historyFormat)
	}
}

// decodeHistory reads a JSON array of weeks and pads each to seven days.
func decodeHistory(r io.Reader) ([]model.Week, error) {
	var weeks []model.Week
	if err := json.NewDecoder(r).Decode(&weeks); err != nil {
		return nil, fmt.Errorf("decoding history: %w", err)
	}
	for i := range weeks {
		weeks[i].Normalize()
	}
	return weeks, nil
}

func runHistoryImport(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()
		in = f
	}
	weeks, err := decodeHistory(in)
	if err != nil {
		return err
	}
	stored, err := store.AppendHistory(weeks...)
	if err != nil {
		fatalStorage(err)
	}
	logger.Info("history imported", "source", args[0], "weeks", len(stored))
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d week(s).\n", len(stored))
	return nil
}
