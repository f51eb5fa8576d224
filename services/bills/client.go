package bills

import (
	"context"
	"fmt"
	"time"

	"malobby-backend/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

// billStatuses maps LegiScan's numeric status codes to display names.
var billStatuses = map[int]string{
	0: "Prefiled",
	1: "Introduced",
	2: "Engrossed",
	3: "Enrolled",
	4: "Passed",
	5: "Vetoed",
	6: "Failed",
}

func StatusName(code int) string {
	name, ok := billStatuses[code]
	if !ok {
		return "Unknown"
	}
	return name
}

type Session struct {
	SessionID   int64  `json:"session_id"`
	YearStart   int    `json:"year_start"`
	YearEnd     int    `json:"year_end"`
	Special     int    `json:"special"`
	SessionName string `json:"session_name"`
}

type MasterListEntry struct {
	BillID int64  `json:"bill_id"`
	Number string `json:"number"`
}

type Bill struct {
	BillID         int64  `json:"bill_id"`
	Number         string `json:"bill_number"`
	Status         int    `json:"status"`
	LastActionDate string `json:"last_action_date"`
	LastAction     string `json:"last_action"`
	Title          string `json:"title"`
}

// Client talks to the LegiScan API.
type Client struct {
	http   *resty.Client
	apiKey string
}

func NewClient(baseURL, apiKey string) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(time.Second * 30)
	restyutil.InstrumentClient(client, otel.Tracer("services/bills/http"))

	return &Client{http: client, apiKey: apiKey}
}

type sessionListResponse struct {
	Status   string    `json:"status"`
	Sessions []Session `json:"sessions"`
}

type masterListResponse struct {
	Status     string                     `json:"status"`
	MasterList map[string]MasterListEntry `json:"masterlist"`
}

type billResponse struct {
	Status string `json:"status"`
	Bill   *Bill  `json:"bill"`
}

// GetSessionID returns the regular (non-special) session covering the
// given year for a state.
func (c *Client) GetSessionID(ctx context.Context, state string, year int) (int64, error) {
	var out sessionListResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key":   c.apiKey,
			"op":    "getSessionList",
			"state": state,
		}).
		SetResult(&out).
		Get("/")
	if err != nil {
		return 0, err
	}
	if res.IsError() || out.Status != "OK" {
		return 0, fmt.Errorf("getSessionList failed: http %d, status %q", res.StatusCode(), out.Status)
	}

	for _, s := range out.Sessions {
		if year >= s.YearStart && year <= s.YearEnd && s.Special == 0 {
			return s.SessionID, nil
		}
	}
	return 0, fmt.Errorf("no regular session covers year %d", year)
}

// GetBillNumberMap returns bill number -> bill id for every bill in a
// session. The "session" key in the masterlist payload is not a bill
// and is skipped.
func (c *Client) GetBillNumberMap(ctx context.Context, sessionID int64) (map[string]int64, error) {
	var out masterListResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key": c.apiKey,
			"op":  "getMasterList",
			"id":  fmt.Sprint(sessionID),
		}).
		SetResult(&out).
		Get("/")
	if err != nil {
		return nil, err
	}
	if res.IsError() || out.Status != "OK" {
		return nil, fmt.Errorf("getMasterList failed: http %d, status %q", res.StatusCode(), out.Status)
	}

	bills := map[string]int64{}
	for _, entry := range out.MasterList {
		if entry.Number == "" || entry.BillID == 0 {
			continue
		}
		bills[entry.Number] = entry.BillID
	}
	return bills, nil
}

func (c *Client) GetBill(ctx context.Context, billID int64) (*Bill, error) {
	var out billResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key": c.apiKey,
			"op":  "getBill",
			"id":  fmt.Sprint(billID),
		}).
		SetResult(&out).
		Get("/")
	if err != nil {
		return nil, err
	}
	if res.IsError() || out.Status != "OK" || out.Bill == nil {
		return nil, fmt.Errorf("getBill failed: http %d, status %q", res.StatusCode(), out.Status)
	}
	return out.Bill, nil
}
