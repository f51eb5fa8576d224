package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

const insertDisclosureReport = `
INSERT OR REPLACE INTO disclosure_reports (
	disclosure_id, report_type, period_start_date, period_end_date
) VALUES (?, ?, ?, ?)
`

type InsertDisclosureReportParams struct {
	DisclosureID    string
	ReportType      string
	PeriodStartDate sql.NullString
	PeriodEndDate   sql.NullString
}

func (q *Queries) InsertDisclosureReport(ctx context.Context, arg InsertDisclosureReportParams) error {
	_, err := q.db.ExecContext(ctx, insertDisclosureReport,
		arg.DisclosureID, arg.ReportType, arg.PeriodStartDate, arg.PeriodEndDate)
	return err
}

const insertLobbyist = `
INSERT INTO lobbyists (
	disclosure_id, first_name, last_name, employer_name, is_incidental
) VALUES (?, ?, ?, ?, ?)
`

type InsertLobbyistParams struct {
	DisclosureID string
	FirstName    string
	LastName     string
	EmployerName string
	IsIncidental bool
}

func (q *Queries) InsertLobbyist(ctx context.Context, arg InsertLobbyistParams) error {
	_, err := q.db.ExecContext(ctx, insertLobbyist,
		arg.DisclosureID, arg.FirstName, arg.LastName, arg.EmployerName, arg.IsIncidental)
	return err
}

const insertClient = `
INSERT INTO clients (
	disclosure_id, client_name, auth_officer_name, business_interest
) VALUES (?, ?, ?, ?)
`

type InsertClientParams struct {
	DisclosureID     string
	ClientName       string
	AuthOfficerName  string
	BusinessInterest string
}

func (q *Queries) InsertClient(ctx context.Context, arg InsertClientParams) error {
	_, err := q.db.ExecContext(ctx, insertClient,
		arg.DisclosureID, arg.ClientName, arg.AuthOfficerName, arg.BusinessInterest)
	return err
}

const insertCompensation = `
INSERT INTO compensations (disclosure_id, payee_name, amount) VALUES (?, ?, ?)
`

type InsertCompensationParams struct {
	DisclosureID string
	PayeeName    string
	Amount       float64
}

func (q *Queries) InsertCompensation(ctx context.Context, arg InsertCompensationParams) error {
	_, err := q.db.ExecContext(ctx, insertCompensation,
		arg.DisclosureID, arg.PayeeName, arg.Amount)
	return err
}

const insertActivity = `
INSERT INTO lobbying_activities (
	disclosure_id, individual_lobbyist_name, client_name, house_senate,
	bill_or_agency, bill_title, agent_position, amount, business_association
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type InsertActivityParams struct {
	DisclosureID        string
	LobbyistName        string
	ClientName          string
	HouseSenate         string
	BillOrAgency        string
	BillTitle           string
	AgentPosition       string
	Amount              float64
	BusinessAssociation string
}

func (q *Queries) InsertActivity(ctx context.Context, arg InsertActivityParams) error {
	_, err := q.db.ExecContext(ctx, insertActivity,
		arg.DisclosureID, arg.LobbyistName, arg.ClientName, arg.HouseSenate,
		arg.BillOrAgency, arg.BillTitle, arg.AgentPosition, arg.Amount,
		arg.BusinessAssociation)
	return err
}

const insertMETExpense = `
INSERT INTO met_expenses (
	disclosure_id, lobbyist_name, date, event_type, payee_vendor, attendees, amount
) VALUES (?, ?, ?, ?, ?, ?, ?)
`

type InsertMETExpenseParams struct {
	DisclosureID string
	LobbyistName string
	Date         sql.NullString
	EventType    string
	PayeeVendor  string
	Attendees    string
	Amount       float64
}

func (q *Queries) InsertMETExpense(ctx context.Context, arg InsertMETExpenseParams) error {
	_, err := q.db.ExecContext(ctx, insertMETExpense,
		arg.DisclosureID, arg.LobbyistName, arg.Date, arg.EventType,
		arg.PayeeVendor, arg.Attendees, arg.Amount)
	return err
}

const insertOperatingExpense = `
INSERT INTO operating_expenses (
	disclosure_id, date, recipient, type_of_expense, amount
) VALUES (?, ?, ?, ?, ?)
`

type InsertOperatingExpenseParams struct {
	DisclosureID  string
	Date          sql.NullString
	Recipient     string
	TypeOfExpense string
	Amount        float64
}

func (q *Queries) InsertOperatingExpense(ctx context.Context, arg InsertOperatingExpenseParams) error {
	_, err := q.db.ExecContext(ctx, insertOperatingExpense,
		arg.DisclosureID, arg.Date, arg.Recipient, arg.TypeOfExpense, arg.Amount)
	return err
}

const insertAdditionalExpense = `
INSERT INTO additional_expenses (
	disclosure_id, date, lobbyist_name, recipient_name, type_of_expense, description, amount
) VALUES (?, ?, ?, ?, ?, ?, ?)
`

type InsertAdditionalExpenseParams struct {
	DisclosureID  string
	Date          sql.NullString
	LobbyistName  string
	RecipientName string
	TypeOfExpense string
	Description   string
	Amount        float64
}

func (q *Queries) InsertAdditionalExpense(ctx context.Context, arg InsertAdditionalExpenseParams) error {
	_, err := q.db.ExecContext(ctx, insertAdditionalExpense,
		arg.DisclosureID, arg.Date, arg.LobbyistName, arg.RecipientName,
		arg.TypeOfExpense, arg.Description, arg.Amount)
	return err
}

const insertContribution = `
INSERT INTO contributions (
	disclosure_id, date, recipient_name, office_sought, amount
) VALUES (?, ?, ?, ?, ?)
`

type InsertContributionParams struct {
	DisclosureID  string
	Date          sql.NullString
	RecipientName string
	OfficeSought  string
	Amount        float64
}

func (q *Queries) InsertContribution(ctx context.Context, arg InsertContributionParams) error {
	_, err := q.db.ExecContext(ctx, insertContribution,
		arg.DisclosureID, arg.Date, arg.RecipientName, arg.OfficeSought, arg.Amount)
	return err
}

const listActivitiesMissingBill = `
SELECT house_senate, bill_or_agency, MIN(bill_title)
FROM lobbying_activities
WHERE legiscan_bill_id IS NULL AND house_senate LIKE '%Bill%'
GROUP BY house_senate, bill_or_agency
`

type ActivityBillRef struct {
	HouseSenate  string
	BillOrAgency string
	BillTitle    string
}

func (q *Queries) ListActivitiesMissingBill(ctx context.Context) ([]ActivityBillRef, error) {
	rows, err := q.db.QueryContext(ctx, listActivitiesMissingBill)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []ActivityBillRef
	for rows.Next() {
		var r ActivityBillRef
		if err := rows.Scan(&r.HouseSenate, &r.BillOrAgency, &r.BillTitle); err != nil {
			return nil, err
		}
		refs = append(refs, r)
	}
	return refs, rows.Err()
}

const updateActivityBill = `
UPDATE lobbying_activities
SET legiscan_bill_id = ?, status = ?
WHERE house_senate = ? AND bill_or_agency = ?
`

type UpdateActivityBillParams struct {
	LegiscanBillID int64
	Status         string
	HouseSenate    string
	BillOrAgency   string
}

func (q *Queries) UpdateActivityBill(ctx context.Context, arg UpdateActivityBillParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateActivityBill,
		arg.LegiscanBillID, arg.Status, arg.HouseSenate, arg.BillOrAgency)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
