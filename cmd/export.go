package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/timesheet/internal/export"
	"github.com/Tiliavir/timesheet/internal/model"
)

var (
	exportFormat string
	exportID     string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the working week or a saved week as CSV, XLSX or PDF",
	Long: `Export a week in the printable timesheet layout. Without --id the working
week is exported. The file is named after the week ending date and written
to the configured export directory unless --out is given.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, xlsx, pdf")
	exportCmd.Flags().StringVar(&exportID, "id", "", "Export the saved week with this ID")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file, or - for stdout")
}

var exportWriters = map[string]func(io.Writer, model.Week) error{
	"csv":  export.WriteCSV,
	"xlsx": export.WriteXLSX,
	"pdf":  export.WritePDF,
}

// exportPath returns where a week goes when --out is not given.
func exportPath(dir string, w model.Week, ext string) string {
	return filepath.Join(dir, export.FileName(w, ext))
}

func runExport(cmd *cobra.Command, args []string) error {
	write, ok := exportWriters[exportFormat]
	if !ok {
		return fmt.Errorf("invalid --format %q (want csv, xlsx or pdf)", exportFormat)
	}

	w := loadWorking()
	if exportID != "" {
		saved, found, err := store.Week(exportID)
		if err != nil {
			fatalStorage(err)
		}
		if !found {
			return fmt.Errorf("no saved week with id %q", exportID)
		}
		w = saved
	}

	if exportOut == "-" {
		return write(cmd.OutOrStdout(), w)
	}

	path := exportOut
	if path == "" {
		path = exportPath(cfg.Export.Dir, w, exportFormat)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f, w); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	logger.Info("week exported", "format", exportFormat, "path", path, "id", w.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", path)
	return nil
}
