package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	dbpkg "github.com/presencelabs/facemark/internal/db"
)

var initSeedDev bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database and apply migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		if initSeedDev {
			if app.cfg.Env != "dev" {
				return fmt.Errorf("--seed-dev is only allowed with FACEMARK_ENV=dev")
			}
			if err := dbpkg.SeedDev(cmd.Context(), app.conn); err != nil {
				return err
			}
			fmt.Println("database ready (dev identities seeded)")
			return nil
		}

		fmt.Println("database ready")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initSeedDev, "seed-dev", false, "seed demo identities (dev only)")
	rootCmd.AddCommand(initCmd)
}
