package cmd

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timesheet/internal/api"
	"github.com/Tiliavir/timesheet/internal/export"
	"github.com/Tiliavir/timesheet/internal/model"
	"github.com/Tiliavir/timesheet/internal/timecalc"
)

var (
	weekShowFormat string

	weekSetName        string
	weekSetClass       string
	weekSetEnding      string
	weekSetSignature   string
	weekClearSignature bool

	weekReqType  string
	weekReqTotal string
	weekReqRDO   string
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show and edit the working week",
}

var weekShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the working week with its totals",
	Args:  cobra.NoArgs,
	RunE:  runWeekShow,
}

var weekSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set name, class, week ending date or signature",
	Args:  cobra.NoArgs,
	RunE:  runWeekSet,
}

var weekRequestCmd = &cobra.Command{
	Use:       "request <payout|hold>",
	Short:     "Fill in the payout or hold request",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"payout", "hold"},
	RunE:      runWeekRequest,
}

var weekClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Discard the working week and start a blank one",
	Args:  cobra.NoArgs,
	RunE:  runWeekClear,
}

var weekSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Append the working week to history and start a blank one",
	Args:  cobra.NoArgs,
	RunE:  runWeekSave,
}

func init() {
	weekShowCmd.Flags().StringVar(&weekShowFormat, "format", "table", "Output format: table, json")

	weekSetCmd.Flags().StringVar(&weekSetName, "name", "", "Employee name")
	weekSetCmd.Flags().StringVar(&weekSetClass, "class", "", "Employee class")
	weekSetCmd.Flags().StringVar(&weekSetEnding, "week-ending", "", "Week ending date (YYYY-MM-DD)")
	weekSetCmd.Flags().StringVar(&weekSetSignature, "signature", "", "PNG or JPEG image file with the signature")
	weekSetCmd.Flags().BoolVar(&weekClearSignature, "clear-signature", false, "Remove the signature")

	weekRequestCmd.Flags().StringVar(&weekReqType, "type", "", "Request type")
	weekRequestCmd.Flags().StringVar(&weekReqTotal, "total", "", "Total hours")
	weekRequestCmd.Flags().StringVar(&weekReqRDO, "rdo", "", "RDO hours")

	weekCmd.AddCommand(weekShowCmd, weekSetCmd, weekRequestCmd, weekClearCmd, weekSaveCmd)
}

func runWeekShow(cmd *cobra.Command, args []string) error {
	w := loadWorking()
	switch weekShowFormat {
	case "json":
		return writeJSONOut(cmd.OutOrStdout(), api.NewWeekView(w))
	case "table":
		renderWeek(cmd.OutOrStdout(), w)
		return nil
	default:
		return fmt.Errorf("invalid --format %q (want table or json)", weekShowFormat)
	}
}

func runWeekSet(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	var signature string
	if weekSetSignature != "" {
		var err error
		if signature, err = readSignature(weekSetSignature); err != nil {
			return err
		}
	}
	if weekSetEnding != "" {
		if _, err := time.Parse(model.DateLayout, weekSetEnding); err != nil {
			return fmt.Errorf("invalid --week-ending value %q: %w", weekSetEnding, err)
		}
	}

	w, err := updateWorking(func(w *model.Week) error {
		if flags.Changed("name") {
			w.Meta.EmployeeName = strings.TrimSpace(weekSetName)
		}
		if flags.Changed("class") {
			w.Meta.ClassName = strings.TrimSpace(weekSetClass)
		}
		if flags.Changed("week-ending") {
			w.Meta.WeekEndingDate = weekSetEnding
		}
		if weekClearSignature {
			w.SignatureImage = ""
		}
		if signature != "" {
			w.SignatureImage = signature
		}
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Week ending %s for %s updated.\n",
		dashIfEmpty(w.Meta.WeekEndingDate), dashIfEmpty(w.Meta.EmployeeName))
	return nil
}

// readSignature loads an image file as a data URL.
func readSignature(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading signature: %w", err)
	}
	contentType := http.DetectContentType(data)
	if contentType != "image/png" && contentType != "image/jpeg" {
		return "", fmt.Errorf("signature must be a PNG or JPEG image, got %s", contentType)
	}
	return export.DataURL(contentType, data), nil
}

func runWeekRequest(cmd *cobra.Command, args []string) error {
	kind := strings.ToLower(args[0])
	if kind != "payout" && kind != "hold" {
		return fmt.Errorf("invalid request %q (want payout or hold)", args[0])
	}
	flags := cmd.Flags()
	_, err := updateWorking(func(w *model.Week) error {
		req := &w.PayoutRequest
		if kind == "hold" {
			req = &w.HoldRequest
		}
		if flags.Changed("type") {
			req.Type = weekReqType
		}
		if flags.Changed("total") {
			req.TotalHours = weekReqTotal
		}
		if flags.Changed("rdo") {
			req.RDOHours = weekReqRDO
		}
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s request updated.\n", strings.ToUpper(kind[:1])+kind[1:])
	return nil
}

func runWeekClear(cmd *cobra.Command, args []string) error {
	w, err := store.ClearWorking()
	if err != nil {
		fatalStorage(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Started a blank week ending %s.\n", w.Meta.WeekEndingDate)
	return nil
}

func runWeekSave(cmd *cobra.Command, args []string) error {
	snap, err := store.SaveWeek()
	if err != nil {
		fatalStorage(err)
	}
	logger.Info("week saved", "id", snap.ID, "employee", snap.Meta.EmployeeName, "week_ending", snap.Meta.WeekEndingDate)
	fmt.Fprintf(cmd.OutOrStdout(), "Saved week ending %s for %s (%s h) as %s.\n",
		dashIfEmpty(snap.Meta.WeekEndingDate), dashIfEmpty(snap.Meta.EmployeeName),
		timecalc.FormatHours(timecalc.WeekTotalMinutes(snap)), snap.ID)
	return nil
}
