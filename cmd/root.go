package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timesheet/internal/config"
	"github.com/Tiliavir/timesheet/internal/logging"
	"github.com/Tiliavir/timesheet/internal/model"
	"github.com/Tiliavir/timesheet/internal/storage"
)

// Shared state set up before every command runs.
var (
	cfg       config.Config
	logger    = logging.Discard()
	store     *storage.Store
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "tsheet",
	Short: "tsheet – weekly site timesheets from the command line",
	Long: `tsheet records a worker's week (depot times, jobs, lunch, weather delays,
spray allowance and wet hours), saves finished weeks to a history and
summarises that history by employee, project and date.
All data is stored in ~/.tsheet/ (override with TSHEET_HOME).`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(jobCmd)
	rootCmd.AddCommand(weatherCmd)
	rootCmd.AddCommand(allowanceCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(employeeCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(outlookCmd)
	rootCmd.AddCommand(serveCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	l, closer, err := logging.Open(cfg.Storage.Path, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else {
		logger, logCloser = l, closer
	}

	store, err = storage.Open(cfg.Storage.Driver, cfg.Storage.Path, logger)
	if err != nil {
		fatalStorage(err)
	}
	logger.Debug("command started", "command", cmd.CommandPath(), "driver", cfg.Storage.Driver)
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Warn("closing store", "error", err)
		}
	}
	if logCloser != nil {
		_ = logCloser.Close()
	}
	return nil
}

// fatalStorage reports a storage failure and exits with status 2.
func fatalStorage(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(2)
}

// updateWorking applies fn to the stored working week. Errors returned by fn
// are usage errors and are passed back to cobra.
func updateWorking(fn func(*model.Week) error) (model.Week, error) {
	var usageErr error
	w, err := store.UpdateWorking(func(w *model.Week) error {
		usageErr = fn(w)
		return usageErr
	})
	if usageErr != nil {
		return w, usageErr
	}
	if err != nil {
		fatalStorage(err)
	}
	return w, nil
}

func loadWorking() model.Week {
	w, err := store.Working()
	if err != nil {
		fatalStorage(err)
	}
	return w
}

func loadHistory() []model.Week {
	h, err := store.History()
	if err != nil {
		fatalStorage(err)
	}
	return h
}

func loadProjects() []model.Project {
	ps, err := store.Projects()
	if err != nil {
		fatalStorage(err)
	}
	return ps
}

// weekdayArg parses a weekday argument such as "mon", "Tuesday" or "3".
func weekdayArg(s string) (int, error) {
	i, ok := model.ParseWeekday(s)
	if !ok {
		return 0, fmt.Errorf("invalid weekday %q (use mon..sun or 1..7)", s)
	}
	return i, nil
}
