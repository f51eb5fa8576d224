package commands

import (
	"log/slog"

	"malobby-backend/lib/serviceutil"
	"malobby-backend/lib/sqliteutil"
	"malobby-backend/services/disclosures"
	"malobby-backend/services/disclosures/db"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	extractInput   *string
	extractDb      *string
	extractWorkers *int
	extractSkipLog *string
)

func init() {
	extractInput = extractCmd.Flags().String("input", "html_output", "Directory of saved disclosure pages.")
	extractDb = extractCmd.Flags().String("db", "results.db", "The database to write extracted records to.")
	extractWorkers = extractCmd.Flags().Int("workers", 8, "Number of concurrent extraction workers.")
	extractSkipLog = extractCmd.Flags().String("skip-log", "skipped.log", "File to record skipped documents in.")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract [--input <dir>] [--db <path/to/results.db>]",
	Short: "Extracts disclosure records from saved pages into a database.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		docs, err := disclosures.ReadDir(*extractInput)
		if err != nil {
			serviceutil.Fatal("failed to read input directory", err)
		}
		slog.Info("extracting disclosures", "documents", len(docs))

		result := disclosures.Run(ctx, docs, *extractWorkers)

		if len(result.Skips) > 0 {
			err = disclosures.WriteSkipLog(*extractSkipLog, result.Skips)
			if err != nil {
				serviceutil.Fatal("failed to write skip log", err)
			}
		}

		out, err := sqliteutil.OpenDB(db.Schema, *extractDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer out.Close()

		store := disclosures.NewStore(out)
		err = store.Load(ctx, result.Collections)
		if err != nil {
			serviceutil.Fatal("failed to load records into db", err)
		}

		c := result.Collections
		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"metric", "count"})
		t.AppendRows([]table.Row{
			{"documents", result.Summary.Total},
			{"processed", result.Summary.Processed},
			{"skipped", len(result.Skips)},
			{"reports", len(c.Reports)},
			{"lobbyists", len(c.Lobbyists)},
			{"clients", len(c.Clients)},
			{"compensations", len(c.Compensations)},
			{"activities", len(c.Activities)},
			{"met expenses", len(c.METExpenses)},
			{"operating expenses", len(c.OperatingExpenses)},
			{"additional expenses", len(c.AdditionalExpenses)},
			{"contributions", len(c.Contributions)},
		})
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
