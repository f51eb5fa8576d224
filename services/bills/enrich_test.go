package bills

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"malobby-backend/lib/sqliteutil"
	"malobby-backend/lib/telemetry"
	"malobby-backend/services/disclosures/db"

	"github.com/stretchr/testify/require"
)

func TestStatusName(t *testing.T) {
	require.Equal(t, "Prefiled", StatusName(0))
	require.Equal(t, "Passed", StatusName(4))
	require.Equal(t, "Failed", StatusName(6))
	require.Equal(t, "Unknown", StatusName(42))
}

func TestBillPrefix(t *testing.T) {
	require.Equal(t, "H", BillPrefix("House Bill"))
	require.Equal(t, "S", BillPrefix("Senate Bill"))
	require.Equal(t, "S", BillPrefix("Joint Bill"))
}

func legiscanStub(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.URL.Query().Get("key"))

		var payload any
		switch r.URL.Query().Get("op") {
		case "getSessionList":
			require.Equal(t, "MA", r.URL.Query().Get("state"))
			payload = map[string]any{
				"status": "OK",
				"sessions": []map[string]any{
					{"session_id": 100, "year_start": 2021, "year_end": 2022, "special": 0},
					{"session_id": 205, "year_start": 2023, "year_end": 2024, "special": 1},
					{"session_id": 200, "year_start": 2023, "year_end": 2024, "special": 0},
				},
			}
		case "getMasterList":
			require.Equal(t, "200", r.URL.Query().Get("id"))
			payload = map[string]any{
				"status": "OK",
				"masterlist": map[string]any{
					"session": map[string]any{"session_id": 200},
					"0":       map[string]any{"bill_id": 555, "number": "H1234"},
					"1":       map[string]any{"bill_id": 556, "number": "S99"},
				},
			}
		case "getBill":
			require.Equal(t, "555", r.URL.Query().Get("id"))
			payload = map[string]any{
				"status": "OK",
				"bill": map[string]any{
					"bill_id":     555,
					"bill_number": "H1234",
					"status":      4,
					"title":       "An Act relative to clean energy",
				},
			}
		default:
			t.Fatalf("unexpected op %q", r.URL.Query().Get("op"))
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}))
}

func TestEnricherRun(t *testing.T) {
	cleanup := telemetry.SetupForTesting("bills_test")
	defer cleanup()
	ctx := context.Background()

	server := legiscanStub(t)
	defer server.Close()

	conn, err := sqliteutil.OpenDB(db.Schema, ":memory:")
	require.NoError(t, err)
	defer conn.Close()
	qry := db.New(conn)

	require.NoError(t, qry.InsertDisclosureReport(ctx, db.InsertDisclosureReportParams{
		DisclosureID: "d1", ReportType: "Lobbyist",
	}))
	// two activities on the same bill, one on an unknown bill, one
	// agency row that must be left alone
	for _, a := range []db.InsertActivityParams{
		{DisclosureID: "d1", HouseSenate: "House Bill", BillOrAgency: "1234", BillTitle: "An Act relative to clean energy"},
		{DisclosureID: "d1", HouseSenate: "House Bill", BillOrAgency: "1234", BillTitle: "An Act relative to clean energy"},
		{DisclosureID: "d1", HouseSenate: "Senate Bill", BillOrAgency: "7777", BillTitle: "Unknown bill"},
		{DisclosureID: "d1", HouseSenate: "Agency", BillOrAgency: "DEP", BillTitle: ""},
	} {
		require.NoError(t, qry.InsertActivity(ctx, a))
	}

	enricher := NewEnricher(NewClient(server.URL, "test-key"), qry)
	result, err := enricher.Run(ctx, "MA", 2024)
	require.NoError(t, err)
	require.Equal(t, 1, result.Matched)
	require.Equal(t, 1, result.Missing)
	require.Equal(t, int64(2), result.Updated)

	rows, err := conn.Query(`
		SELECT house_senate, legiscan_bill_id, status
		FROM lobbying_activities
		WHERE legiscan_bill_id IS NOT NULL
	`)
	require.NoError(t, err)
	defer rows.Close()

	count := 0
	for rows.Next() {
		var chamber, status string
		var billID int64
		require.NoError(t, rows.Scan(&chamber, &billID, &status))
		require.Equal(t, "House Bill", chamber)
		require.Equal(t, int64(555), billID)
		require.Equal(t, "Passed", status)
		count++
	}
	require.NoError(t, rows.Err())
	require.Equal(t, 2, count)

	// nothing is left pending for the matched bill
	refs, err := qry.ListActivitiesMissingBill(ctx)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	require.Equal(t, "7777", refs[0].BillOrAgency)
}
