package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"hess-portal-backend/internal/domain"
	"hess-portal-backend/internal/repository"

	"github.com/google/uuid"
)

type pendingRegistrationRepository struct {
	db *sql.DB
}

func NewPendingRegistrationRepository(db *sql.DB) repository.PendingRegistrationRepository {
	return &pendingRegistrationRepository{db: db}
}

const pendingRegColumns = `id, email, approval_status, data, created_on`

func (r *pendingRegistrationRepository) Create(ctx context.Context, reg *domain.PendingRegistration) error {
	if reg.ID == "" {
		reg.ID = uuid.NewString()
	}
	if reg.ApprovalStatus == "" {
		reg.ApprovalStatus = domain.RequestStatusPending
	}
	data, err := json.Marshal(reg.Data)
	if err != nil {
		return err
	}
	query := `INSERT INTO pending_registrations (` + pendingRegColumns + `) VALUES ($1, $2, $3, $4, $5)`
	_, err = r.db.ExecContext(ctx, query, reg.ID, reg.Email, reg.ApprovalStatus, data, time.Now())
	return err
}

func (r *pendingRegistrationRepository) GetByID(ctx context.Context, id string) (*domain.PendingRegistration, error) {
	reg := &domain.PendingRegistration{}
	var data []byte
	query := `SELECT ` + pendingRegColumns + ` FROM pending_registrations WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&reg.ID, &reg.Email, &reg.ApprovalStatus, &data, &reg.CreatedOn)
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &reg.Data); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func (r *pendingRegistrationRepository) List(ctx context.Context) ([]domain.PendingRegistration, error) {
	query := `SELECT ` + pendingRegColumns + ` FROM pending_registrations ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []domain.PendingRegistration
	for rows.Next() {
		var reg domain.PendingRegistration
		var data []byte
		if err := rows.Scan(&reg.ID, &reg.Email, &reg.ApprovalStatus, &data, &reg.CreatedOn); err != nil {
			return nil, err
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &reg.Data); err != nil {
				return nil, err
			}
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (r *pendingRegistrationRepository) CountByStatus(ctx context.Context, status domain.RequestStatus) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pending_registrations WHERE approval_status = $1`, status).Scan(&count)
	return count, err
}

func (r *pendingRegistrationRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pending_registrations WHERE lower(email) = lower($1)`, email)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
