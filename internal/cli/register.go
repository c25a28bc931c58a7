package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/presencelabs/facemark/internal/facemark/store"
)

var registerCmd = &cobra.Command{
	Use:   "register <external-id> <full name>",
	Short: "Enroll a new identity",
	Long: `Register adds the identity row that attendance records reference.
Face sample capture and model training happen in the capture/trainer
tooling; once retraining finishes, the next attendance session picks the
new identity up automatically.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		externalID := strings.TrimSpace(args[0])
		name := strings.TrimSpace(args[1])

		if externalID == "" {
			return fmt.Errorf("external id must not be empty")
		}
		if len(name) < 2 {
			return fmt.Errorf("name must be at least 2 characters")
		}

		app, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		ident, err := app.identities.Add(cmd.Context(), externalID, name, time.Now().UTC())
		if errors.Is(err, store.ErrDuplicateExternalID) {
			return fmt.Errorf("identity %s already exists", externalID)
		}
		if err != nil {
			return err
		}

		fmt.Printf("registered %s (%s), label %d\n", ident.DisplayName, ident.ExternalID, ident.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
}
