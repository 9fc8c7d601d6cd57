package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Tiliavir/timesheet/internal/model"
	"github.com/Tiliavir/timesheet/internal/timecalc"
)

var (
	dayDepotStart  string
	dayDepotFinish string
	dayLunch       bool
	dayLunchPen    bool
	dayLunchTime   string
	dayRemarks     string
	dayApprovedBy  string
)

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Edit one day of the working week",
}

var daySetCmd = &cobra.Command{
	Use:   "set <weekday>",
	Short: "Set depot times, lunch, remarks or approval for a day",
	Example: `  tsheet day set mon --depot-start 06:30 --depot-finish 15:00 --lunch
  tsheet day set 5 --remarks "rained off after 11"`,
	Args: cobra.ExactArgs(1),
	RunE: runDaySet,
}

func init() {
	f := daySetCmd.Flags()
	f.StringVar(&dayDepotStart, "depot-start", "", "Depot start (HH:MM)")
	f.StringVar(&dayDepotFinish, "depot-finish", "", "Depot finish (HH:MM)")
	f.BoolVar(&dayLunch, "lunch", false, "Lunch taken (deducts 30 minutes)")
	f.BoolVar(&dayLunchPen, "lunch-penalty", false, "Lunch penalty claimed")
	f.StringVar(&dayLunchTime, "lunch-time", "", "Lunch time (HH:MM)")
	f.StringVar(&dayRemarks, "remarks", "", "Remarks")
	f.StringVar(&dayApprovedBy, "approved-by", "", "Approved by")
	dayCmd.AddCommand(daySetCmd)
}

const clockLayout = "15:04"

// checkClock rejects a non-empty value that is not an HH:MM clock time.
func checkClock(flag, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(clockLayout, value); err != nil {
		return fmt.Errorf("invalid --%s value %q (want HH:MM)", flag, value)
	}
	return nil
}

func checkClocks(values map[string]string) error {
	for flag, v := range values {
		if err := checkClock(flag, v); err != nil {
			return err
		}
	}
	return nil
}

// applyDayFlags copies every changed flag onto d.
func applyDayFlags(d *model.Day, flags *pflag.FlagSet) {
	if flags.Changed("depot-start") {
		d.DepotStart = dayDepotStart
	}
	if flags.Changed("depot-finish") {
		d.DepotFinish = dayDepotFinish
	}
	if flags.Changed("lunch") {
		d.LunchTaken = dayLunch
	}
	if flags.Changed("lunch-penalty") {
		d.LunchPenaltyClaimed = dayLunchPen
	}
	if flags.Changed("lunch-time") {
		d.LunchTime = dayLunchTime
	}
	if flags.Changed("remarks") {
		d.Remarks = strings.TrimSpace(dayRemarks)
	}
	if flags.Changed("approved-by") {
		d.ApprovedBy = strings.TrimSpace(dayApprovedBy)
	}
}

func runDaySet(cmd *cobra.Command, args []string) error {
	i, err := weekdayArg(args[0])
	if err != nil {
		return err
	}
	if err := checkClocks(map[string]string{
		"depot-start":  dayDepotStart,
		"depot-finish": dayDepotFinish,
		"lunch-time":   dayLunchTime,
	}); err != nil {
		return err
	}

	w, err := updateWorking(func(w *model.Week) error {
		applyDayFlags(&w.Days[i], cmd.Flags())
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s h\n", model.Weekdays[i],
		timecalc.FormatHours(timecalc.DayTotalMinutes(w.Days[i])))
	return nil
}
