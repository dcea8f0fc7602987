package commands

import (
	"fmt"

	"leetdeck/lib/scrapers/leetcode"
	"leetdeck/lib/serviceutil"

	"github.com/spf13/cobra"
)

var whoamiConfig *string

func init() {
	whoamiConfig = whoamiCmd.Flags().String("config", "config.json5", "The config file to read.")
	rootCmd.AddCommand(whoamiCmd)
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami [--config <config.json5>]",
	Short: "Verifies the configured session and prints the signed-in user.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig(*whoamiConfig)
		ctx := cmd.Context()

		client := createClient(ctx, cfg)
		status, err := client.UserStatus(ctx)
		if err != nil {
			serviceutil.Fatal("failed to verify session", err)
		}
		if !status.IsSignedIn {
			serviceutil.Fatal("failed to verify session", leetcode.ErrAuthentication)
		}

		fmt.Printf("signed in as %s (premium: %v)\n", status.Username, status.IsPremium)
	},
}
