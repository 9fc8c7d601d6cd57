package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Tiliavir/timesheet/internal/model"
	"github.com/Tiliavir/timesheet/internal/timecalc"
)

var (
	allowanceStart      string
	allowanceFinish     string
	allowanceUnit       string
	allowanceApprovedBy string
)

var allowanceCmd = &cobra.Command{
	Use:   "allowance",
	Short: "Edit the spray allowance and wet hours tables",
}

var allowanceSetCmd = &cobra.Command{
	Use:       "set <spray|wet> <weekday>",
	Short:     "Set one day of an allowance table",
	Example:   `  tsheet allowance set spray wed --start 08:00 --finish 09:30 --unit U7`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"spray", "wet"},
	RunE:      runAllowanceSet,
}

func init() {
	f := allowanceSetCmd.Flags()
	f.StringVar(&allowanceStart, "start", "", "Start (HH:MM)")
	f.StringVar(&allowanceFinish, "finish", "", "Finish (HH:MM)")
	f.StringVar(&allowanceUnit, "unit", "", "Unit number")
	f.StringVar(&allowanceApprovedBy, "approved-by", "", "Approved by")
	allowanceCmd.AddCommand(allowanceSetCmd)
}

// allowanceTable returns the table named by kind.
func allowanceTable(w *model.Week, kind string) ([]model.AllowanceRow, string, error) {
	switch strings.ToLower(kind) {
	case "spray":
		return w.SprayAllowance, "Spray allowance", nil
	case "wet":
		return w.WetHours, "Wet hours", nil
	}
	return nil, "", fmt.Errorf("invalid allowance table %q (want spray or wet)", kind)
}

func applyAllowanceFlags(r *model.AllowanceRow, flags *pflag.FlagSet) {
	if flags.Changed("start") {
		r.Start = allowanceStart
	}
	if flags.Changed("finish") {
		r.Finish = allowanceFinish
	}
	if flags.Changed("unit") {
		r.UnitNo = strings.TrimSpace(allowanceUnit)
	}
	if flags.Changed("approved-by") {
		r.ApprovedBy = strings.TrimSpace(allowanceApprovedBy)
	}
}

func runAllowanceSet(cmd *cobra.Command, args []string) error {
	i, err := weekdayArg(args[1])
	if err != nil {
		return err
	}
	if err := checkClocks(map[string]string{"start": allowanceStart, "finish": allowanceFinish}); err != nil {
		return err
	}

	var title string
	var total int
	if _, err := updateWorking(func(w *model.Week) error {
		rows, t, err := allowanceTable(w, args[0])
		if err != nil {
			return err
		}
		applyAllowanceFlags(&rows[i], cmd.Flags())
		title, total = t, timecalc.AllowanceTotalMinutes(rows)
		return nil
	}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s updated, table total %s h\n",
		title, model.Weekdays[i], timecalc.FormatHours(total))
	return nil
}
