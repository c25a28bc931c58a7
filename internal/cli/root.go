// Package cli wires the facemark commands: enrollment metadata, live
// attendance sessions, reports, and export.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "facemark",
	Short: "Face-recognition attendance tracking",
	Long: `Facemark records daily attendance by matching camera frames against
enrolled identities.  A capture process feeds frames through a spool
directory, a recognition sidecar scores them, and facemark persists one
attendance record per person per day.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initEnv)
}

func initEnv() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
