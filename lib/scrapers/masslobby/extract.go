package masslobby

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/masslobby")

type SkipReason string

const (
	// the document lacks the header span that marks a real disclosure
	// page (empty download, error page, login redirect)
	SkipNoHeader SkipReason = "no_header"
	// the document had a header but blew up mid-extraction
	SkipParseError SkipReason = "parse_error"
)

// SkipError marks a document as unprocessable. The document is skipped
// whole; no partial record set is ever emitted.
type SkipError struct {
	Reason SkipReason
	Err    error
}

func (e *SkipError) Error() string {
	if e.Err == nil {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Err)
}

func (e *SkipError) Unwrap() error { return e.Err }

// ExtractDocument walks one disclosure document and reconstructs its
// typed records. It is a pure function of the markup: no shared state is
// read or written, so documents can be extracted concurrently.
func ExtractDocument(ctx context.Context, locator string, markup []byte) (bundle Bundle, err error) {
	ctx, span := tracer.Start(ctx, "ExtractDocument")
	defer span.End()
	span.SetAttributes(attribute.String("locator", locator))

	// the format has no schema contract; anything structurally surprising
	// inside the walk skips the document instead of killing the batch
	defer func() {
		if r := recover(); r != nil {
			err = &SkipError{Reason: SkipParseError, Err: fmt.Errorf("%v", r)}
			span.RecordError(err)
			span.SetStatus(codes.Error, "panic during extraction")
		}
	}()

	doc, parseErr := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if parseErr != nil {
		span.RecordError(parseErr)
		span.SetStatus(codes.Error, "unparsable markup")
		return Bundle{}, &SkipError{Reason: SkipParseError, Err: parseErr}
	}

	headerText := fieldText(doc, idDisclosureHeader)
	if headerText == "" && doc.Find("span#"+idDisclosureHeader).Length() == 0 {
		return Bundle{}, &SkipError{Reason: SkipNoHeader}
	}

	id := DisclosureID(locator)

	reportType := ReportTypeClient
	if strings.Contains(headerText, "Lobbyist") {
		reportType = ReportTypeLobbyist
	}

	start, end := ParseDateRange(fieldText(doc, idYear))
	bundle.Report = DisclosureReport{
		DisclosureID: id,
		ReportType:   reportType,
		PeriodStart:  start,
		PeriodEnd:    end,
	}

	if reportType == ReportTypeLobbyist {
		extractLobbyistReport(doc, id, &bundle)
	} else {
		extractClientReport(doc, id, &bundle)
	}

	slog.DebugContext(
		ctx, "extracted document",
		"disclosure_id", id,
		"report_type", reportType,
		"activities", len(bundle.Activities),
		"met_expenses", len(bundle.METExpenses),
	)
	return bundle, nil
}

func extractLobbyistReport(doc *goquery.Document, id string, bundle *Bundle) {
	filer := Filer{
		FirstName: fieldText(doc, idLobbyistFirstName),
		LastName:  fieldText(doc, idLobbyistLastName),
		Employer:  fieldText(doc, idLobbyistCompany),
	}

	firstName := filer.FirstName
	if firstName == "" {
		// entity filers report under the employer name
		firstName = filer.Employer
	}
	bundle.Lobbyist = &Lobbyist{
		DisclosureID: id,
		FirstName:    firstName,
		LastName:     filer.LastName,
		EmployerName: filer.Employer,
		IsIncidental: hasElement(doc, idLobbyistIncidental),
	}

	order := newDocOrder(doc)

	// one activity table per lobbyist/client pairing; each is scoped by
	// whatever labels precede it, defaulting to the filer itself
	doc.Find(`table[id*='grdvActivitiesNew']`).Each(func(_ int, table *goquery.Selection) {
		lobbyistName := filer.DisplayName()
		if name, ok := order.nearestLabel(table.Nodes[0], lobbyistRowMatchers); ok {
			lobbyistName = name
		}
		clientName := filer.Employer
		if name, ok := order.nearestLabel(table.Nodes[0], clientRowMatchers); ok {
			clientName = name
		}
		bundle.Activities = append(bundle.Activities,
			parseActivities(table, id, lobbyistName, clientName)...)
	})

	// MET sections repeat per lobbyist, each announced by its own name span
	doc.Find(`table[id*='grdvMETExpenses']`).Each(func(_ int, table *goquery.Selection) {
		ambient := filer.DisplayName()
		if name, ok := order.nearestLabel(table.Nodes[0], metLobbyistMatchers); ok {
			ambient = name
		}
		bundle.METExpenses = append(bundle.METExpenses,
			parseMETExpenses(table, id, ambient)...)
	})

	doc.Find(`table[id*='grdvOperatingExpenses']`).Each(func(_ int, table *goquery.Selection) {
		bundle.OperatingExpenses = append(bundle.OperatingExpenses,
			parseOperatingExpenses(table, id)...)
	})
	doc.Find(`table[id*='grdvAdditionalExpenses']`).Each(func(_ int, table *goquery.Selection) {
		bundle.AdditionalExpenses = append(bundle.AdditionalExpenses,
			parseAdditionalExpenses(table, id)...)
	})

	contributions := doc.Find(`table[id*='grdvCampaignContribution']`).First()
	bundle.Contributions = parseContributions(contributions, id)
}

func extractClientReport(doc *goquery.Document, id string, bundle *Bundle) {
	officer := strings.TrimSpace(
		fieldText(doc, idClientOfficerFirstName) + " " + fieldText(doc, idClientOfficerLastName),
	)
	bundle.Client = &Client{
		DisclosureID:     id,
		ClientName:       fieldText(doc, idClientCompany),
		AuthOfficerName:  officer,
		BusinessInterest: fieldText(doc, idClientBusinessInterest),
	}

	compensation := doc.Find("table#" + idCompensationTable).First()
	bundle.Compensations = parseCompensations(compensation, id)

	// client filings carry no per-lobbyist name spans; rows without a
	// lobbyist column fall back to the placeholder the site itself uses
	met := doc.Find(`table[id*='grdvMETExpenses']`).First()
	bundle.METExpenses = parseMETExpenses(met, id, "N/A")

	doc.Find(`table[id*='grdvOperatingExpenses']`).Each(func(_ int, table *goquery.Selection) {
		bundle.OperatingExpenses = append(bundle.OperatingExpenses,
			parseOperatingExpenses(table, id)...)
	})
	doc.Find(`table[id*='grdvAdditionalExpenses']`).Each(func(_ int, table *goquery.Selection) {
		bundle.AdditionalExpenses = append(bundle.AdditionalExpenses,
			parseAdditionalExpenses(table, id)...)
	})
}
