package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timesheet/internal/model"
	"github.com/Tiliavir/timesheet/internal/timecalc"
)

var (
	jobProject string
	jobOn      string
	jobOff     string
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Add or remove jobs on a day of the working week",
}

var jobAddCmd = &cobra.Command{
	Use:     "add <weekday>",
	Short:   "Add a job to a day",
	Example: `  tsheet job add tue --project Fencing --on 07:00 --off 15:30`,
	Args:    cobra.ExactArgs(1),
	RunE:    runJobAdd,
}

var jobRmCmd = &cobra.Command{
	Use:   "rm <weekday> <n>",
	Short: "Remove the n-th job (1-based) from a day",
	Args:  cobra.ExactArgs(2),
	RunE:  runJobRm,
}

func init() {
	jobAddCmd.Flags().StringVar(&jobProject, "project", "", "Project or unit/job name")
	jobAddCmd.Flags().StringVar(&jobOn, "on", "", "On-site time (HH:MM)")
	jobAddCmd.Flags().StringVar(&jobOff, "off", "", "Off-site time (HH:MM)")
	jobCmd.AddCommand(jobAddCmd, jobRmCmd)
}

// removeJob deletes job n (1-based).
func removeJob(d *model.Day, n int) error {
	if !d.RemoveJob(n - 1) {
		return fmt.Errorf("no job %d (day has %d)", n, len(d.Jobs))
	}
	return nil
}

// rememberProject adds name to the catalogue unless it is already known.
func rememberProject(name string) {
	for _, p := range loadProjects() {
		if strings.EqualFold(strings.TrimSpace(p.Name), name) {
			return
		}
	}
	if _, err := store.UpsertProject(name, ""); err != nil {
		fatalStorage(err)
	}
}

func runJobAdd(cmd *cobra.Command, args []string) error {
	i, err := weekdayArg(args[0])
	if err != nil {
		return err
	}
	if err := checkClocks(map[string]string{"on": jobOn, "off": jobOff}); err != nil {
		return err
	}
	job := model.Job{ProjectName: strings.TrimSpace(jobProject), OnSite: jobOn, OffSite: jobOff}

	w, err := updateWorking(func(w *model.Week) error {
		w.Days[i].AddJob(job)
		return nil
	})
	if err != nil {
		return err
	}
	if job.ProjectName != "" {
		rememberProject(job.ProjectName)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: added %s %s (%s h), day total %s h\n",
		model.Weekdays[i], dashIfEmpty(job.ProjectName), clockRange(job.OnSite, job.OffSite),
		timecalc.FormatHours(timecalc.IntervalMinutes(job.OnSite, job.OffSite)),
		timecalc.FormatHours(timecalc.DayTotalMinutes(w.Days[i])))
	return nil
}

func runJobRm(cmd *cobra.Command, args []string) error {
	i, err := weekdayArg(args[0])
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid job number %q", args[1])
	}
	if _, err := updateWorking(func(w *model.Week) error {
		return removeJob(&w.Days[i], n)
	}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: removed job %d\n", model.Weekdays[i], n)
	return nil
}
