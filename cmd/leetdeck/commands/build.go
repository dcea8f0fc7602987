package commands

import (
	"log/slog"
	"os"
	"time"

	"leetdeck/lib/problemcache"
	"leetdeck/lib/serviceutil"
	"leetdeck/lib/sqliteutil"
	"leetdeck/lib/telemetry"
	"leetdeck/services/deckbuilder"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	_ "modernc.org/sqlite"
)

var buildConfig *string
var buildOut *string
var buildSlugs *string

func init() {
	buildConfig = buildCmd.Flags().String("config", "config.json5", "The config file to read.")
	buildOut = buildCmd.Flags().String("out", "", "Overrides the output path from the config.")
	buildSlugs = buildCmd.Flags().String("slugs", "", "Overrides the slug list file from the config.")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build [--config <config.json5>] [--out <deck.apkg>] [--slugs <problems.txt>]",
	Short: "Fetches every listed problem and packages them into one .apkg file.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig(*buildConfig)
		if *buildOut != "" {
			cfg.Output = *buildOut
		}
		if *buildSlugs != "" {
			cfg.SlugsFile = *buildSlugs
		}

		ctx := cmd.Context()
		telemetry.InstrumentPerfStats(ctx)

		slugs, err := deckbuilder.ReadSlugList(cfg.SlugsFile)
		if err != nil {
			serviceutil.Fatal("failed to read slug list", err)
		}
		slog.Info("building deck", "slugs", len(slugs), "output", cfg.Output)

		client := createClient(ctx, cfg)

		var cache *problemcache.Cache
		if cfg.CachePath != "" {
			cacheDb, err := sqliteutil.OpenDB(problemcache.Schema, cfg.CachePath)
			if err != nil {
				serviceutil.Fatal("failed to open record cache", err)
			}
			defer cacheDb.Close()
			c := problemcache.New(cacheDb, cfg.cacheTtl())
			cache = &c
		}

		t1 := time.Now()
		result, err := deckbuilder.Build(ctx, client, cache, deckbuilder.Options{
			Slugs:         slugs,
			DeckName:      cfg.DeckName,
			Output:        cfg.Output,
			BaseUrl:       client.BaseUrl.String(),
			Concurrency:   cfg.Concurrency,
			SkipMissing:   cfg.SkipMissing,
			SkipMalformed: cfg.SkipMalformed,
		})
		if err != nil {
			serviceutil.Fatal("failed to build deck", err)
		}
		t2 := time.Now()

		slog.Info("deck built", "notes", result.NoteCount, "seconds", t2.Sub(t1).Seconds())

		if len(result.Skipped) > 0 {
			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Skipped slug", "Reason"})
			for _, skip := range result.Skipped {
				t.AppendRow(table.Row{skip.Slug, skip.Reason})
			}
			t.Render()
		}
	},
}
