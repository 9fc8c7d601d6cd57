package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timesheet/internal/model"
)

var (
	weatherType       string
	weatherStart      string
	weatherFinish     string
	weatherApprovedBy string
)

var weatherCmd = &cobra.Command{
	Use:   "weather",
	Short: "Record weather delays (not counted in any total)",
}

var weatherAddCmd = &cobra.Command{
	Use:     "add <weekday>",
	Short:   "Add a weather delay to a day",
	Example: `  tsheet weather add thu --type Rain --start 10:00 --finish 11:30 --approved-by Sam`,
	Args:    cobra.ExactArgs(1),
	RunE:    runWeatherAdd,
}

func init() {
	weatherAddCmd.Flags().StringVar(&weatherType, "type", "", "Delay type, e.g. Rain")
	weatherAddCmd.Flags().StringVar(&weatherStart, "start", "", "Start (HH:MM)")
	weatherAddCmd.Flags().StringVar(&weatherFinish, "finish", "", "Finish (HH:MM)")
	weatherAddCmd.Flags().StringVar(&weatherApprovedBy, "approved-by", "", "Approved by")
	weatherCmd.AddCommand(weatherAddCmd)
}

func runWeatherAdd(cmd *cobra.Command, args []string) error {
	i, err := weekdayArg(args[0])
	if err != nil {
		return err
	}
	if err := checkClocks(map[string]string{"start": weatherStart, "finish": weatherFinish}); err != nil {
		return err
	}
	delay := model.NewWeatherDelay()
	delay.Type = strings.TrimSpace(weatherType)
	delay.Start, delay.Finish = weatherStart, weatherFinish
	delay.ApprovedBy = strings.TrimSpace(weatherApprovedBy)
	if _, err := updateWorking(func(w *model.Week) error {
		w.Days[i].Weather = append(w.Days[i].Weather, delay)
		return nil
	}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: weather delay %s %s recorded\n",
		model.Weekdays[i], dashIfEmpty(delay.Type), clockRange(delay.Start, delay.Finish))
	return nil
}
