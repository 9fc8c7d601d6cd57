package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timesheet/internal/model"
	"github.com/Tiliavir/timesheet/internal/msgraph"
	"github.com/Tiliavir/timesheet/internal/timecalc"
)

var (
	outlookSyncDryRun  bool
	outlookSyncProject string
	outlookSyncTZ      string
)

var outlookCmd = &cobra.Command{
	Use:   "outlook",
	Short: "Outlook calendar integration",
}

var outlookSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import Outlook calendar events of the working week as jobs",
	Long: `Import the Outlook calendar events that fall within the working week as
jobs on the matching days. Events already imported are updated in place when
their times change. Cancelled, all-day, private and free events are ignored.`,
	Args: cobra.NoArgs,
	RunE: runOutlookSync,
}

func init() {
	outlookSyncCmd.Flags().BoolVar(&outlookSyncDryRun, "dry-run", false, "Print planned operations without writing")
	outlookSyncCmd.Flags().StringVar(&outlookSyncProject, "project", "", "Project name for imported events (default: config, then the event subject)")
	outlookSyncCmd.Flags().StringVar(&outlookSyncTZ, "timezone", "", "IANA timezone for event times (e.g. Europe/Berlin)")
	outlookCmd.AddCommand(outlookSyncCmd)
}

func runOutlookSync(cmd *cobra.Command, args []string) error {
	project := cfg.Outlook.DefaultProject
	if cmd.Flags().Changed("project") {
		project = outlookSyncProject
	}
	timezone := cfg.Outlook.Timezone
	if cmd.Flags().Changed("timezone") {
		timezone = outlookSyncTZ
	}
	loc, err := msgraph.LoadLocation(timezone)
	if err != nil {
		return err
	}

	w := loadWorking()
	from, to, ok := timecalc.WeekRange(w, loc)
	if !ok {
		return fmt.Errorf("the working week has no week ending date; set one with: tsheet week set --week-ending YYYY-MM-DD")
	}

	out := cmd.OutOrStdout()
	dryTag := ""
	if outlookSyncDryRun {
		dryTag = " [dry-run]"
	}
	fmt.Fprintf(out, "Syncing Outlook events (%s → %s)%s...\n",
		from.Format(model.DateLayout), to.Format(model.DateLayout), dryTag)
	fmt.Fprintln(out)

	ctx := cmd.Context()
	client, err := msgraph.Authenticate(ctx, cfg.Outlook.TenantID, cfg.Outlook.ClientID, cfg.Storage.Path, out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Authentication failed: %v\n", err)
		os.Exit(1)
	}

	events, err := client.GetCalendarView(ctx, from, to, timezone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch calendar events: %v\n", err)
		os.Exit(1)
	}

	opts := msgraph.SyncOptions{
		DryRun:   outlookSyncDryRun,
		Project:  project,
		Location: loc,
		Out:      out,
		Logger:   logger,
	}

	var result msgraph.SyncResult
	if outlookSyncDryRun {
		result = msgraph.SyncEvents(&w, events, opts)
	} else {
		if _, err := updateWorking(func(w *model.Week) error {
			result = msgraph.SyncEvents(w, events, opts)
			return nil
		}); err != nil {
			return err
		}
	}

	printSyncResult(out, result)
	if result.Errors > 0 {
		os.Exit(2)
	}
	return nil
}
