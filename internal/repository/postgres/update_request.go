package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"hess-portal-backend/internal/domain"
	"hess-portal-backend/internal/logger"
	"hess-portal-backend/internal/repository"

	"github.com/google/uuid"
)

type updateRequestRepository struct {
	db dbtx
}

func NewUpdateRequestRepository(db *sql.DB) repository.UpdateRequestRepository {
	return &updateRequestRepository{db: db}
}

const updateRequestColumns = `id, submitted_email, status, registration_data, organization_data,
	existing_organization_id, submission_type, admin_notes, reviewed_by, reviewed_at, created_on`

func (r *updateRequestRepository) Create(ctx context.Context, req *domain.RegistrationUpdateRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Status == "" {
		req.Status = domain.RequestStatusPending
	}

	regData, err := json.Marshal(req.RegistrationData)
	if err != nil {
		return err
	}
	orgData, err := json.Marshal(req.OrganizationData)
	if err != nil {
		return err
	}

	query := `INSERT INTO registration_update_requests (` + updateRequestColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	logger.DatabaseCall("INSERT", "registration_update_requests", "id", req.ID, "type", req.SubmissionType)
	_, err = r.db.ExecContext(ctx, query,
		req.ID, req.SubmittedEmail, req.Status, regData, orgData,
		req.ExistingOrganizationID, req.SubmissionType, req.AdminNotes, req.ReviewedBy, req.ReviewedAt, time.Now())
	logger.DatabaseResult("INSERT", 1, err, "id", req.ID)
	return err
}

func (r *updateRequestRepository) GetByID(ctx context.Context, id string) (*domain.RegistrationUpdateRequest, error) {
	query := `SELECT ` + updateRequestColumns + ` FROM registration_update_requests WHERE id = $1`
	return scanUpdateRequest(r.db.QueryRowContext(ctx, query, id))
}

func (r *updateRequestRepository) ListByStatus(ctx context.Context, status domain.RequestStatus) ([]domain.RegistrationUpdateRequest, error) {
	query := `SELECT ` + updateRequestColumns + ` FROM registration_update_requests
	          WHERE status = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.RegistrationUpdateRequest
	for rows.Next() {
		req, err := scanUpdateRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *req)
	}
	return reqs, rows.Err()
}

func (r *updateRequestRepository) CountByStatus(ctx context.Context, status domain.RequestStatus) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registration_update_requests WHERE status = $1`, status).Scan(&count)
	return count, err
}

// Resolve is the status-guarded state transition. The WHERE status = 'pending'
// clause is what prevents two admins from resolving the same request twice.
func (r *updateRequestRepository) Resolve(ctx context.Context, id string, status domain.RequestStatus, reviewedBy string, adminNotes *string, reviewedAt time.Time) (bool, error) {
	query := `UPDATE registration_update_requests
	          SET status = $1, reviewed_by = $2, admin_notes = $3, reviewed_at = $4
	          WHERE id = $5 AND status = 'pending'`
	res, err := r.db.ExecContext(ctx, query, status, reviewedBy, adminNotes, reviewedAt, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUpdateRequest(row rowScanner) (*domain.RegistrationUpdateRequest, error) {
	req := &domain.RegistrationUpdateRequest{}
	var regData, orgData []byte
	err := row.Scan(
		&req.ID, &req.SubmittedEmail, &req.Status, &regData, &orgData,
		&req.ExistingOrganizationID, &req.SubmissionType, &req.AdminNotes, &req.ReviewedBy, &req.ReviewedAt, &req.CreatedOn)
	if err != nil {
		return nil, err
	}
	if len(regData) > 0 {
		if err := json.Unmarshal(regData, &req.RegistrationData); err != nil {
			return nil, err
		}
	}
	if len(orgData) > 0 {
		if err := json.Unmarshal(orgData, &req.OrganizationData); err != nil {
			return nil, err
		}
	}
	return req, nil
}
