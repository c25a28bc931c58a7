package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var identitiesCmd = &cobra.Command{
	Use:   "identities",
	Short: "List enrolled identities",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		all, err := app.identities.ListAll(cmd.Context())
		if err != nil {
			return err
		}
		if len(all) == 0 {
			fmt.Println("no identities enrolled")
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "LABEL\tID\tNAME\tENROLLED")
		for _, ident := range all {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
				ident.ID, ident.ExternalID, ident.DisplayName,
				ident.EnrolledAt.Format("2006-01-02"))
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(identitiesCmd)
}
