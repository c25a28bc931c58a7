package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/presencelabs/facemark/internal/facemark/types"
	"github.com/presencelabs/facemark/internal/report"
)

var (
	exportOut  string
	exportDate string
	exportAll  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export attendance records to CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		var rows []types.AttendanceRow
		if exportAll {
			rows, err = app.ledger.QueryAll(cmd.Context())
		} else {
			day := exportDate
			if day == "" {
				day = types.DayOf(time.Now())
			} else if _, perr := time.Parse(types.DayLayout, day); perr != nil {
				return fmt.Errorf("invalid date %q, want YYYY-MM-DD", day)
			}
			rows, err = app.ledger.QueryByDate(cmd.Context(), day)
		}
		if err != nil {
			return err
		}

		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOut, err)
		}
		defer f.Close()

		bar := report.NewExportBar(len(rows))
		if err := report.ExportCSV(f, rows, bar); err != nil {
			return err
		}
		_ = bar.Finish()

		fmt.Fprintf(os.Stderr, "\nwrote %d row(s) to %s\n", len(rows), exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output CSV file (required)")
	exportCmd.Flags().StringVar(&exportDate, "date", "", "export one date (YYYY-MM-DD, default today)")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "export every record")
	_ = exportCmd.MarkFlagRequired("out")
	exportCmd.MarkFlagsMutuallyExclusive("date", "all")
	rootCmd.AddCommand(exportCmd)
}
