package disclosures

import (
	"context"
	"database/sql"
	"time"

	"malobby-backend/services/disclosures/db"

	"go.opentelemetry.io/otel/codes"
)

type Store struct {
	db  *sql.DB
	qry *db.Queries
}

func NewStore(database *sql.DB) Store {
	return Store{
		db:  database,
		qry: db.New(database),
	}
}

func nullDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format("2006-01-02"), Valid: true}
}

// Load writes a batch's collections into the relational store inside a
// single transaction, so a failed load leaves no partial batch behind.
func (s Store) Load(ctx context.Context, c Collections) error {
	ctx, span := tracer.Start(ctx, "store:Load")
	defer span.End()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	for _, r := range c.Reports {
		err := txqry.InsertDisclosureReport(ctx, db.InsertDisclosureReportParams{
			DisclosureID:    r.DisclosureID,
			ReportType:      string(r.ReportType),
			PeriodStartDate: nullDate(r.PeriodStart),
			PeriodEndDate:   nullDate(r.PeriodEnd),
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}
	for _, l := range c.Lobbyists {
		err := txqry.InsertLobbyist(ctx, db.InsertLobbyistParams{
			DisclosureID: l.DisclosureID,
			FirstName:    l.FirstName,
			LastName:     l.LastName,
			EmployerName: l.EmployerName,
			IsIncidental: l.IsIncidental,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}
	for _, cl := range c.Clients {
		err := txqry.InsertClient(ctx, db.InsertClientParams{
			DisclosureID:     cl.DisclosureID,
			ClientName:       cl.ClientName,
			AuthOfficerName:  cl.AuthOfficerName,
			BusinessInterest: cl.BusinessInterest,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}
	for _, comp := range c.Compensations {
		err := txqry.InsertCompensation(ctx, db.InsertCompensationParams{
			DisclosureID: comp.DisclosureID,
			PayeeName:    comp.PayeeName,
			Amount:       comp.Amount,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}
	for _, a := range c.Activities {
		err := txqry.InsertActivity(ctx, db.InsertActivityParams{
			DisclosureID:        a.DisclosureID,
			LobbyistName:        a.LobbyistName,
			ClientName:          a.ClientName,
			HouseSenate:         a.Chamber,
			BillOrAgency:        a.BillOrAgency,
			BillTitle:           a.BillTitle,
			AgentPosition:       a.Position,
			Amount:              a.Amount,
			BusinessAssociation: a.BusinessAssociation,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}
	for _, e := range c.METExpenses {
		err := txqry.InsertMETExpense(ctx, db.InsertMETExpenseParams{
			DisclosureID: e.DisclosureID,
			LobbyistName: e.LobbyistName,
			Date:         nullDate(e.Date),
			EventType:    e.EventType,
			PayeeVendor:  e.PayeeVendor,
			Attendees:    e.Attendees,
			Amount:       e.Amount,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}
	for _, e := range c.OperatingExpenses {
		err := txqry.InsertOperatingExpense(ctx, db.InsertOperatingExpenseParams{
			DisclosureID:  e.DisclosureID,
			Date:          nullDate(e.Date),
			Recipient:     e.Recipient,
			TypeOfExpense: e.ExpenseType,
			Amount:        e.Amount,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}
	for _, e := range c.AdditionalExpenses {
		err := txqry.InsertAdditionalExpense(ctx, db.InsertAdditionalExpenseParams{
			DisclosureID:  e.DisclosureID,
			Date:          nullDate(e.Date),
			LobbyistName:  e.LobbyistName,
			RecipientName: e.RecipientName,
			TypeOfExpense: e.ExpenseType,
			Description:   e.Description,
			Amount:        e.Amount,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}
	for _, con := range c.Contributions {
		err := txqry.InsertContribution(ctx, db.InsertContributionParams{
			DisclosureID:  con.DisclosureID,
			Date:          nullDate(con.Date),
			RecipientName: con.RecipientName,
			OfficeSought:  con.OfficeSought,
			Amount:        con.Amount,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}

	return tx.Commit()
}
