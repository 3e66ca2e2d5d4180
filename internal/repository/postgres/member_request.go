package postgres

import (
	"context"
	"database/sql"

	"hess-portal-backend/internal/repository"
)

type memberRequestRepository struct {
	db *sql.DB
}

func NewMemberRequestRepository(db *sql.DB) repository.MemberRequestRepository {
	return &memberRequestRepository{db: db}
}

func (r *memberRequestRepository) DeleteTransfersByOrganization(ctx context.Context, orgID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transfer_requests WHERE organization_id = $1`, orgID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *memberRequestRepository) DeleteReassignmentsByOrganization(ctx context.Context, orgID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reassignment_requests WHERE organization_id = $1`, orgID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
