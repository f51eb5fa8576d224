package masslobby

import "time"

type ReportType string

const (
	ReportTypeLobbyist ReportType = "Lobbyist"
	ReportTypeClient   ReportType = "Client"
)

// DisclosureReport is the per-document primary row. Every other record
// extracted from the same document carries its DisclosureID.
type DisclosureReport struct {
	DisclosureID string
	ReportType   ReportType
	PeriodStart  *time.Time
	PeriodEnd    *time.Time
}

type Lobbyist struct {
	DisclosureID string
	FirstName    string
	LastName     string
	EmployerName string
	IsIncidental bool
}

type Client struct {
	DisclosureID     string
	ClientName       string
	AuthOfficerName  string
	BusinessInterest string
}

type Compensation struct {
	DisclosureID string
	PayeeName    string
	Amount       float64
}

// Activity is one row of a lobbying activity table. LobbyistName and
// ClientName come from the label scoping the table, which is not
// necessarily the document's primary filer.
type Activity struct {
	DisclosureID        string
	LobbyistName        string
	ClientName          string
	Chamber             string
	BillOrAgency        string
	BillTitle           string
	Position            string
	Amount              float64
	BusinessAssociation string
}

// METExpense is a meals, entertainment or travel expense.
type METExpense struct {
	DisclosureID string
	LobbyistName string
	Date         *time.Time
	EventType    string
	PayeeVendor  string
	Attendees    string
	Amount       float64
}

type OperatingExpense struct {
	DisclosureID string
	Date         *time.Time
	Recipient    string
	ExpenseType  string
	Amount       float64
}

type AdditionalExpense struct {
	DisclosureID  string
	Date          *time.Time
	LobbyistName  string
	RecipientName string
	ExpenseType   string
	Description   string
	Amount        float64
}

type Contribution struct {
	DisclosureID  string
	Date          *time.Time
	RecipientName string
	OfficeSought  string
	Amount        float64
}

// Bundle is everything extracted from a single document. Extraction is
// all-or-nothing: a Bundle is only returned when the whole document
// parsed without error.
type Bundle struct {
	Report             DisclosureReport
	Lobbyist           *Lobbyist
	Client             *Client
	Compensations      []Compensation
	Activities         []Activity
	METExpenses        []METExpense
	OperatingExpenses  []OperatingExpense
	AdditionalExpenses []AdditionalExpense
	Contributions      []Contribution
}
