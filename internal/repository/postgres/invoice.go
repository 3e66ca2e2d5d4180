package postgres

import (
	"context"
	"database/sql"
	"time"

	"hess-portal-backend/internal/domain"
	"hess-portal-backend/internal/repository"

	"github.com/google/uuid"
)

type invoiceRepository struct {
	db *sql.DB
}

func NewInvoiceRepository(db *sql.DB) repository.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if inv.Status == "" {
		inv.Status = domain.InvoiceStatusOpen
	}
	query := `INSERT INTO invoices (id, organization_id, amount_cents, status, due_date, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, inv.ID, inv.OrganizationID, inv.AmountCents, inv.Status, inv.DueDate, time.Now())
	return err
}

func (r *invoiceRepository) ListByOrganization(ctx context.Context, orgID string) ([]domain.Invoice, error) {
	query := `SELECT id, organization_id, amount_cents, status, due_date, created_on
	          FROM invoices WHERE organization_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		var inv domain.Invoice
		if err := rows.Scan(&inv.ID, &inv.OrganizationID, &inv.AmountCents, &inv.Status, &inv.DueDate, &inv.CreatedOn); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (r *invoiceRepository) DeleteByOrganization(ctx context.Context, orgID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE organization_id = $1`, orgID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *invoiceRepository) MarkOverdue(ctx context.Context, asOf string) (int64, error) {
	query := `UPDATE invoices SET status = 'overdue' WHERE status = 'open' AND due_date < $1`
	res, err := r.db.ExecContext(ctx, query, asOf)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
