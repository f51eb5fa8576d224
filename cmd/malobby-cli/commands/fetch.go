package commands

import (
	"malobby-backend/lib/serviceutil"
	"malobby-backend/services/fetcher"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	fetchURLs    *string
	fetchOutput  *string
	fetchState   *string
	fetchWorkers *int
	fetchRate    *float64
)

func init() {
	fetchURLs = fetchCmd.Flags().String("urls", "urls.txt", "File listing disclosure urls, one per line.")
	fetchOutput = fetchCmd.Flags().String("out", "html_output", "Directory to save pages to.")
	fetchState = fetchCmd.Flags().String("state", "state.json", "Path of the resume state file.")
	fetchWorkers = fetchCmd.Flags().Int("workers", 8, "Number of concurrent downloads.")
	fetchRate = fetchCmd.Flags().Float64("rate", 4, "Maximum requests per second.")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [--urls <urls.txt>] [--out <dir>]",
	Short: "Downloads disclosure pages, resuming from previous runs.",
	Run: func(cmd *cobra.Command, args []string) {
		urls, err := readLines(*fetchURLs)
		if err != nil {
			serviceutil.Fatal("failed to read url list", err)
		}

		f, err := fetcher.New(fetcher.Options{
			OutputDir:      *fetchOutput,
			StatePath:      *fetchState,
			Workers:        *fetchWorkers,
			RequestsPerSec: *fetchRate,
		})
		if err != nil {
			serviceutil.Fatal("failed to initialize fetcher", err)
		}

		counts, err := f.Run(cmd.Context(), urls)
		if err != nil {
			serviceutil.Fatal("fetch run failed", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"status", "count"})
		for status, count := range counts {
			t.AppendRow(table.Row{string(status), count})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
