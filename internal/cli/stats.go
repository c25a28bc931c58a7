package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <external-id>",
	Short: "Show an identity's total attendance count",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		ident, ok, err := app.identities.GetByExternalID(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no identity with external id %s", args[0])
		}

		n, err := app.ledger.CountFor(cmd.Context(), ident.ID)
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s): present %d day(s)\n", ident.DisplayName, ident.ExternalID, n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
