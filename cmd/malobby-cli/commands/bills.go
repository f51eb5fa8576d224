package commands

import (
	"time"

	"malobby-backend/lib/configutil"
	"malobby-backend/lib/serviceutil"
	"malobby-backend/lib/sqliteutil"
	"malobby-backend/services/bills"
	"malobby-backend/services/disclosures/db"

	"github.com/spf13/cobra"
)

type LegiscanConfig struct {
	ApiKey  string `json:"api_key"`
	BaseUrl string `json:"base_url"`
}

var (
	billsDb    *string
	billsState *string
	billsYear  *int
)

func init() {
	billsDb = billsCmd.Flags().String("db", "results.db", "The database holding extracted lobbying activities.")
	billsState = billsCmd.Flags().String("state", "MA", "Two-letter state code for the legislative session.")
	billsYear = billsCmd.Flags().Int("year", time.Now().Year(), "Year whose legislative session covers the bills.")
	rootCmd.AddCommand(billsCmd)
}

var billsCmd = &cobra.Command{
	Use:   "bills [--db <path/to/results.db>] [--year <year>]",
	Short: "Enriches lobbying activities with LegiScan bill ids and statuses.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configutil.ReadConfig[LegiscanConfig]("legiscan.json5")
		if err != nil {
			serviceutil.Fatal("failed to read legiscan config", err)
		}
		if cfg.BaseUrl == "" {
			cfg.BaseUrl = "https://api.legiscan.com/"
		}

		conn, err := sqliteutil.OpenDB(db.Schema, *billsDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer conn.Close()

		client := bills.NewClient(cfg.BaseUrl, cfg.ApiKey)
		enricher := bills.NewEnricher(client, db.New(conn))

		result, err := enricher.Run(cmd.Context(), *billsState, *billsYear)
		if err != nil {
			serviceutil.Fatal("bill enrichment failed", err)
		}
		cmd.Printf("matched %d bills, %d not found, updated %d activity rows\n",
			result.Matched, result.Missing, result.Updated)
	},
}
