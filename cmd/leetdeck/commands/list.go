package commands

import (
	"os"

	"leetdeck/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var listConfig *string
var listLimit *int
var listFree *bool

func init() {
	listConfig = listCmd.Flags().String("config", "config.json5", "The config file to read.")
	listLimit = listCmd.Flags().Int("limit", 50, "Maximum number of problems to print, 0 prints everything.")
	listFree = listCmd.Flags().Bool("free", false, "Only print problems that don't require a subscription.")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list [--limit <n>] [--free]",
	Short: "Prints the remote problem index.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig(*listConfig)
		ctx := cmd.Context()

		client := createClient(ctx, cfg)
		entries, err := client.ProblemList(ctx, *listLimit)
		if err != nil {
			serviceutil.Fatal("failed to fetch problem index", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Id", "Slug", "Title", "Difficulty", "Paid"})
		for _, entry := range entries {
			if *listFree && entry.IsPaidOnly {
				continue
			}
			t.AppendRow(table.Row{
				entry.QuestionFrontendId,
				entry.TitleSlug,
				entry.Title,
				entry.Difficulty,
				entry.IsPaidOnly,
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
