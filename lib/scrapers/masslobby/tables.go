package masslobby

import (
	"strings"

	"malobby-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// tableKind carries the row-filtering policy of one logical table: the
// placeholder phrase rendered when the filer reported nothing, the marker
// of the trailing summary row, and the smallest cell count a data row can
// have.
type tableKind struct {
	noData    string
	totalMark string
	minCols   int
}

var (
	activityKind = tableKind{
		totalMark: "Total amount",
		minCols:   6,
	}
	metKind = tableKind{
		noData:    "No meals, travel, or entertainment expenses",
		totalMark: "Total amount",
		minCols:   5,
	}
	operatingKind = tableKind{
		noData:    "No operating expenses were filed",
		totalMark: "Total operating expenses",
		minCols:   4,
	}
	additionalKind = tableKind{
		noData:    "No additional expenses were filed",
		totalMark: "Total additional expenses",
		minCols:   6,
	}
	contributionKind = tableKind{
		noData:    "No campaign contributions were filed",
		totalMark: "Total contributions",
		minCols:   4,
	}
	compensationKind = tableKind{
		totalMark: "Total",
		minCols:   2,
	}
)

// tableRows applies the shared row policy to one table: a nil/absent
// table or one carrying the kind's no-data placeholder yields nothing,
// the first row is the header, total rows and short rows are dropped.
// Whatever survives is returned as cleaned cell text.
func tableRows(table *goquery.Selection, kind tableKind) [][]string {
	if table == nil || table.Length() == 0 {
		return nil
	}
	if kind.noData != "" && strings.Contains(table.Text(), kind.noData) {
		return nil
	}

	var rows [][]string
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return
		}
		if strings.Contains(tr.Text(), kind.totalMark) {
			return
		}
		var cells []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, htmlutil.CleanText(td.Text()))
		})
		if len(cells) < kind.minCols {
			return
		}
		rows = append(rows, cells)
	})
	return rows
}

// metLayout maps MET-expense columns to fields. The table has two known
// layouts: with a dedicated lobbyist column (6 cells) and without one
// (5 cells, lobbyist taken from the ambient name, every later column
// shifted left).
type metLayout struct {
	lobbyist  int // -1 means use the ambient name
	eventType int
	payee     int
	attendees int
	amount    int
}

var (
	metLayoutWithLobbyist = metLayout{lobbyist: 1, eventType: 2, payee: 3, attendees: 4, amount: 5}
	metLayoutAmbient      = metLayout{lobbyist: -1, eventType: 1, payee: 2, attendees: 3, amount: 4}
)

func metLayoutFor(cells []string) metLayout {
	if len(cells) == 6 {
		return metLayoutWithLobbyist
	}
	return metLayoutAmbient
}

func parseMETExpenses(table *goquery.Selection, disclosureID, ambientLobbyist string) []METExpense {
	var expenses []METExpense
	for _, cells := range tableRows(table, metKind) {
		layout := metLayoutFor(cells)
		name := ambientLobbyist
		if layout.lobbyist >= 0 {
			name = cells[layout.lobbyist]
		}
		expenses = append(expenses, METExpense{
			DisclosureID: disclosureID,
			LobbyistName: name,
			Date:         ParseDate(cells[0]),
			EventType:    cells[layout.eventType],
			PayeeVendor:  cells[layout.payee],
			Attendees:    cells[layout.attendees],
			Amount:       CleanCurrency(cells[layout.amount]),
		})
	}
	return expenses
}

func parseActivities(table *goquery.Selection, disclosureID, lobbyistName, clientName string) []Activity {
	var activities []Activity
	for _, cells := range tableRows(table, activityKind) {
		activities = append(activities, Activity{
			DisclosureID:        disclosureID,
			LobbyistName:        lobbyistName,
			ClientName:          clientName,
			Chamber:             cells[0],
			BillOrAgency:        cells[1],
			BillTitle:           cells[2],
			Position:            cells[3],
			Amount:              CleanCurrency(cells[4]),
			BusinessAssociation: cells[5],
		})
	}
	return activities
}

func parseOperatingExpenses(table *goquery.Selection, disclosureID string) []OperatingExpense {
	var expenses []OperatingExpense
	for _, cells := range tableRows(table, operatingKind) {
		expenses = append(expenses, OperatingExpense{
			DisclosureID: disclosureID,
			Date:         ParseDate(cells[0]),
			Recipient:    cells[1],
			ExpenseType:  cells[2],
			Amount:       CleanCurrency(cells[3]),
		})
	}
	return expenses
}

func parseAdditionalExpenses(table *goquery.Selection, disclosureID string) []AdditionalExpense {
	var expenses []AdditionalExpense
	for _, cells := range tableRows(table, additionalKind) {
		expenses = append(expenses, AdditionalExpense{
			DisclosureID:  disclosureID,
			Date:          ParseDate(cells[0]),
			LobbyistName:  cells[1],
			RecipientName: cells[2],
			ExpenseType:   cells[3],
			Description:   cells[4],
			Amount:        CleanCurrency(cells[5]),
		})
	}
	return expenses
}

func parseContributions(table *goquery.Selection, disclosureID string) []Contribution {
	var contributions []Contribution
	for _, cells := range tableRows(table, contributionKind) {
		contributions = append(contributions, Contribution{
			DisclosureID:  disclosureID,
			Date:          ParseDate(cells[0]),
			RecipientName: cells[1],
			OfficeSought:  cells[2],
			Amount:        CleanCurrency(cells[3]),
		})
	}
	return contributions
}

func parseCompensations(table *goquery.Selection, disclosureID string) []Compensation {
	var compensations []Compensation
	for _, cells := range tableRows(table, compensationKind) {
		compensations = append(compensations, Compensation{
			DisclosureID: disclosureID,
			PayeeName:    cells[0],
			Amount:       CleanCurrency(cells[1]),
		})
	}
	return compensations
}
