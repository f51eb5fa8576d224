package bills

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"malobby-backend/lib/textutil"
	"malobby-backend/services/disclosures/db"

	"github.com/antzucaro/matchr"
	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/bills")

// Disclosure chamber values like "House Bill" become "H"; everything
// else is treated as a senate bill.
func BillPrefix(houseSenate string) string {
	if strings.Contains(houseSenate, "House") {
		return "H"
	}
	return "S"
}

type Enricher struct {
	client *Client
	qry    *db.Queries
	cache  *gocache.Cache
}

func NewEnricher(client *Client, qry *db.Queries) *Enricher {
	return &Enricher{
		client: client,
		qry:    qry,
		cache:  gocache.New(time.Hour, time.Minute*10),
	}
}

type EnrichResult struct {
	Matched int
	Missing int
	Updated int64
}

// Run fills legiscan_bill_id and status on every lobbying activity
// that references a bill, using the session that covers year.
func (e *Enricher) Run(ctx context.Context, state string, year int) (EnrichResult, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	var result EnrichResult

	sessionID, err := e.client.GetSessionID(ctx, state, year)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "resolve session")
		return result, err
	}
	numbers, err := e.client.GetBillNumberMap(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch master list")
		return result, err
	}
	refs, err := e.qry.ListActivitiesMissingBill(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list activities")
		return result, err
	}

	slog.InfoContext(ctx, "enriching bill references",
		"session_id", sessionID, "bills_in_session", len(numbers), "refs", len(refs))

	for _, ref := range refs {
		number := BillPrefix(ref.HouseSenate) + ref.BillOrAgency
		billID, ok := numbers[number]
		if !ok {
			slog.WarnContext(ctx, "bill not found in session master list",
				"number", number, "chamber", ref.HouseSenate)
			result.Missing++
			continue
		}

		bill, err := e.billDetails(ctx, billID)
		if err != nil {
			slog.WarnContext(ctx, "failed to fetch bill details",
				"number", number, "err", err)
			result.Missing++
			continue
		}
		result.Matched++

		if ref.BillTitle != "" && bill.Title != "" {
			sim := matchr.JaroWinkler(textutil.NormalizeName(ref.BillTitle), textutil.NormalizeName(bill.Title), false)
			if sim < 0.6 {
				slog.WarnContext(ctx, "disclosure title diverges from legiscan title",
					"number", number, "disclosure", ref.BillTitle, "legiscan", bill.Title)
			}
		}

		rows, err := e.qry.UpdateActivityBill(ctx, db.UpdateActivityBillParams{
			LegiscanBillID: bill.BillID,
			Status:         StatusName(bill.Status),
			HouseSenate:    ref.HouseSenate,
			BillOrAgency:   ref.BillOrAgency,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "update activities")
			return result, err
		}
		result.Updated += rows
	}

	span.SetAttributes(
		attribute.Int("matched", result.Matched),
		attribute.Int("missing", result.Missing),
		attribute.Int64("updated", result.Updated),
	)
	return result, nil
}

// billDetails caches getBill responses so bills lobbied by many
// clients are only fetched once.
func (e *Enricher) billDetails(ctx context.Context, billID int64) (*Bill, error) {
	key := fmt.Sprint(billID)
	if cached, ok := e.cache.Get(key); ok {
		return cached.(*Bill), nil
	}
	bill, err := e.client.GetBill(ctx, billID)
	if err != nil {
		return nil, err
	}
	e.cache.Set(key, bill, gocache.DefaultExpiration)
	return bill, nil
}
