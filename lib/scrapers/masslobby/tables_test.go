package masslobby

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableRowsNoDataPlaceholder(t *testing.T) {
	// stray rows alongside the placeholder still yield nothing
	doc := mustDoc(t, `
		<table id="t">
			<tr><td>Date</td><td>Recipient</td><td>Type</td><td>Amount</td></tr>
			<tr><td colspan="4">No operating expenses were filed.</td></tr>
			<tr><td>01/05/2024</td><td>Vendor</td><td>Rent</td><td>$100.00</td></tr>
		</table>
	`)
	rows := tableRows(doc.Find("table#t"), operatingKind)
	require.Empty(t, rows)
}

func TestTableRowsTotalAndShortRows(t *testing.T) {
	doc := mustDoc(t, `
		<table id="t">
			<tr><td>Date</td><td>Recipient</td><td>Type</td><td>Amount</td></tr>
			<tr><td>01/05/2024</td><td>Vendor A</td><td>Rent</td><td>$100.00</td></tr>
			<tr><td>Total operating expenses</td><td></td><td></td><td>$100.00</td></tr>
			<tr><td>orphan</td></tr>
			<tr><td>02/05/2024</td><td>Vendor B</td><td>Postage</td><td>$20.00</td></tr>
		</table>
	`)
	rows := tableRows(doc.Find("table#t"), operatingKind)
	require.Len(t, rows, 2)
	require.Equal(t, "Vendor A", rows[0][1])
	require.Equal(t, "Vendor B", rows[1][1])
}

func TestTableRowsAbsentTable(t *testing.T) {
	doc := mustDoc(t, `<div></div>`)
	require.Empty(t, tableRows(doc.Find("table#missing"), operatingKind))
	require.Empty(t, tableRows(nil, operatingKind))
}

func TestParseMETExpensesSixColumnLayout(t *testing.T) {
	doc := mustDoc(t, `
		<table id="t">
			<tr><td>Date</td><td>Lobbyist</td><td>Type</td><td>Payee</td><td>Attendees</td><td>Amount</td></tr>
			<tr><td>03/10/2024</td><td>Jane Doe</td><td>Meal</td><td>Bistro</td><td>Rep. Smith</td><td>$85.50</td></tr>
		</table>
	`)
	expenses := parseMETExpenses(doc.Find("table#t"), "d1", "Ambient Name")
	require.Len(t, expenses, 1)

	e := expenses[0]
	require.Equal(t, "d1", e.DisclosureID)
	require.Equal(t, "Jane Doe", e.LobbyistName)
	require.Equal(t, "Meal", e.EventType)
	require.Equal(t, "Bistro", e.PayeeVendor)
	require.Equal(t, "Rep. Smith", e.Attendees)
	require.Equal(t, 85.50, e.Amount)
	require.NotNil(t, e.Date)
}

func TestParseMETExpensesFiveColumnLayout(t *testing.T) {
	doc := mustDoc(t, `
		<table id="t">
			<tr><td>Date</td><td>Type</td><td>Payee</td><td>Attendees</td><td>Amount</td></tr>
			<tr><td>03/10/2024</td><td>Travel</td><td>Airline</td><td>Self</td><td>$400.00</td></tr>
		</table>
	`)
	expenses := parseMETExpenses(doc.Find("table#t"), "d1", "Ambient Name")
	require.Len(t, expenses, 1)

	// no lobbyist column: ambient name applies and fields shift left
	e := expenses[0]
	require.Equal(t, "Ambient Name", e.LobbyistName)
	require.Equal(t, "Travel", e.EventType)
	require.Equal(t, "Airline", e.PayeeVendor)
	require.Equal(t, "Self", e.Attendees)
	require.Equal(t, 400.0, e.Amount)
}

func TestParseMETExpensesNoData(t *testing.T) {
	doc := mustDoc(t, `
		<table id="t">
			<tr><td colspan="5">No meals, travel, or entertainment expenses were filed.</td></tr>
		</table>
	`)
	require.Empty(t, parseMETExpenses(doc.Find("table#t"), "d1", "x"))
}

func TestParseActivities(t *testing.T) {
	doc := mustDoc(t, `
		<table id="t">
			<tr><td>House/Senate</td><td>Bill</td><td>Title</td><td>Position</td><td>Amount</td><td>Association</td></tr>
			<tr><td>House Bill</td><td>1234</td><td>An Act</td><td>Support</td><td>$1,000.00</td><td>None</td></tr>
			<tr><td>Total amount</td><td></td><td></td><td></td><td>$1,000.00</td><td></td></tr>
		</table>
	`)
	activities := parseActivities(doc.Find("table#t"), "d1", "Jane Doe", "Acme Corp")
	require.Len(t, activities, 1)

	a := activities[0]
	require.Equal(t, "d1", a.DisclosureID)
	require.Equal(t, "Jane Doe", a.LobbyistName)
	require.Equal(t, "Acme Corp", a.ClientName)
	require.Equal(t, "House Bill", a.Chamber)
	require.Equal(t, "1234", a.BillOrAgency)
	require.Equal(t, "An Act", a.BillTitle)
	require.Equal(t, "Support", a.Position)
	require.Equal(t, 1000.0, a.Amount)
	require.Equal(t, "None", a.BusinessAssociation)
}

func TestParseCompensations(t *testing.T) {
	doc := mustDoc(t, `
		<table id="t">
			<tr><td>Payee</td><td>Amount</td></tr>
			<tr><td>Smith &amp; Jones LLP</td><td>$12,000.00</td></tr>
			<tr><td>Total</td><td>$12,000.00</td></tr>
		</table>
	`)
	comps := parseCompensations(doc.Find("table#t"), "d1")
	require.Len(t, comps, 1)
	require.Equal(t, "Smith & Jones LLP", comps[0].PayeeName)
	require.Equal(t, 12000.0, comps[0].Amount)
}

func TestParseAdditionalExpenses(t *testing.T) {
	doc := mustDoc(t, `
		<table id="t">
			<tr><td>Date</td><td>Lobbyist</td><td>Recipient</td><td>Type</td><td>Description</td><td>Amount</td></tr>
			<tr><td>04/01/2024</td><td>Jane Doe</td><td>Print Shop</td><td>Materials</td><td>Flyers</td><td>$75.25</td></tr>
		</table>
	`)
	expenses := parseAdditionalExpenses(doc.Find("table#t"), "d1")
	require.Len(t, expenses, 1)
	require.Equal(t, "Jane Doe", expenses[0].LobbyistName)
	require.Equal(t, "Flyers", expenses[0].Description)
	require.Equal(t, 75.25, expenses[0].Amount)
}

func TestParseContributions(t *testing.T) {
	doc := mustDoc(t, `
		<table id="t">
			<tr><td>Date</td><td>Recipient</td><td>Office</td><td>Amount</td></tr>
			<tr><td>05/01/2024</td><td>Committee to Elect X</td><td>State Senate</td><td>$250.00</td></tr>
			<tr><td>Total contributions</td><td></td><td></td><td>$250.00</td></tr>
		</table>
	`)
	contributions := parseContributions(doc.Find("table#t"), "d1")
	require.Len(t, contributions, 1)
	require.Equal(t, "Committee to Elect X", contributions[0].RecipientName)
	require.Equal(t, "State Senate", contributions[0].OfficeSought)
	require.Equal(t, 250.0, contributions[0].Amount)
}
