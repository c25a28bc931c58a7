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
	reportDate string
	reportAll  bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show attendance records",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		if reportAll {
			rows, err := app.ledger.QueryAll(cmd.Context())
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Println("no attendance records")
				return nil
			}
			return report.WriteTable(os.Stdout, rows, true)
		}

		day := reportDate
		if day == "" {
			day = types.DayOf(time.Now())
		} else if _, err := time.Parse(types.DayLayout, day); err != nil {
			return fmt.Errorf("invalid date %q, want YYYY-MM-DD", day)
		}

		rows, err := app.ledger.QueryByDate(cmd.Context(), day)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Printf("no attendance records for %s\n", day)
			return nil
		}

		fmt.Printf("attendance for %s\n", day)
		return report.WriteTable(os.Stdout, rows, false)
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportDate, "date", "", "date to report (YYYY-MM-DD, default today)")
	reportCmd.Flags().BoolVar(&reportAll, "all", false, "report every record")
	reportCmd.MarkFlagsMutuallyExclusive("date", "all")
	rootCmd.AddCommand(reportCmd)
}
