// Package report renders attendance rows for human and file consumption.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"

	"github.com/presencelabs/facemark/internal/facemark/types"
)

// ExportCSV writes rows to w as CSV with a header.  progress, when not nil,
// is bumped once per row; pass nil in tests or when exporting to stdout.
func ExportCSV(w io.Writer, rows []types.AttendanceRow, progress *progressbar.ProgressBar) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"name", "external_id", "date", "time", "status"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range rows {
		if err := cw.Write([]string{r.DisplayName, r.ExternalID, r.Day, r.Clock, string(r.Status)}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
		if progress != nil {
			_ = progress.Add(1)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// NewExportBar returns a progress bar for an export of n rows, drawn on
// stderr so it never mixes with exported data.
func NewExportBar(n int) *progressbar.ProgressBar {
	return progressbar.NewOptions(n,
		progressbar.OptionSetDescription("Exporting"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("rows"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionFullWidth(),
	)
}

// WriteTable renders rows as an aligned text table.  withDay adds the date
// column, used by the all-records report.
func WriteTable(w io.Writer, rows []types.AttendanceRow, withDay bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	if withDay {
		fmt.Fprintln(tw, "NAME\tID\tDATE\tTIME\tSTATUS")
	} else {
		fmt.Fprintln(tw, "NAME\tID\tTIME\tSTATUS")
	}

	for _, r := range rows {
		if withDay {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.DisplayName, r.ExternalID, r.Day, r.Clock, r.Status)
		} else {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.DisplayName, r.ExternalID, r.Clock, r.Status)
		}
	}

	return tw.Flush()
}
